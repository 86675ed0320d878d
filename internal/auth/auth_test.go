package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librarium/library-api/internal/database"
)

func newTestStore(t *testing.T) *database.Client {
	t.Helper()

	client, err := database.NewClient(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.Migrate("../../migrations"))
	return client
}

func runMiddleware(t *testing.T, store Store, cookie *http.Cookie) *Context {
	t.Helper()

	var captured *Context
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	Middleware(store)(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, captured)
	return captured
}

func TestMiddlewareWithoutCookie(t *testing.T) {
	store := newTestStore(t)

	authCtx := runMiddleware(t, store, nil)
	assert.False(t, authCtx.IsAuthenticated())
	assert.Nil(t, authCtx.User)
	assert.Nil(t, authCtx.Session)
	assert.NotNil(t, authCtx.Request)
	assert.NotNil(t, authCtx.Response)
}

func TestMiddlewareWithValidSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "librarian", "hash")
	require.NoError(t, err)
	session, err := store.CreateSession(ctx, "token-1", user.ID, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	authCtx := runMiddleware(t, store, &http.Cookie{Name: SessionCookie, Value: session.Token})
	require.True(t, authCtx.IsAuthenticated())
	assert.Equal(t, "librarian", authCtx.User.Username)
	assert.Equal(t, session.Token, authCtx.Session.Token)
}

func TestMiddlewareWithExpiredSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "librarian", "hash")
	require.NoError(t, err)
	_, err = store.CreateSession(ctx, "stale", user.ID, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	authCtx := runMiddleware(t, store, &http.Cookie{Name: SessionCookie, Value: "stale"})
	assert.False(t, authCtx.IsAuthenticated())
}

func TestMiddlewareWithUnknownToken(t *testing.T) {
	store := newTestStore(t)

	authCtx := runMiddleware(t, store, &http.Cookie{Name: SessionCookie, Value: "garbage"})
	assert.False(t, authCtx.IsAuthenticated())
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	authCtx := FromContext(context.Background())
	require.NotNil(t, authCtx)
	assert.False(t, authCtx.IsAuthenticated())
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "password123"))
}
