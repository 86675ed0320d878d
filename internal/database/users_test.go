package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateAndGetUser(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	created, err := client.CreateUser(ctx, "librarian", string(hash))
	require.NoError(t, err)

	fetched, err := client.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "librarian", fetched.Username)

	fetched, err = client.GetUserByUsername(ctx, "librarian")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)

	fetched, err = client.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, fetched)
}

func TestLibrarianExists(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	library, err := client.CreateLibrary(ctx, "Central Library")
	require.NoError(t, err)
	user, err := client.CreateUser(ctx, "librarian", "hash")
	require.NoError(t, err)

	exists, err := client.LibrarianExists(ctx, user.ID, library.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = client.CreateLibrarian(ctx, user.ID, library.ID, "Head Librarian")
	require.NoError(t, err)

	exists, err = client.LibrarianExists(ctx, user.ID, library.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	other, err := client.CreateLibrary(ctx, "Branch Library")
	require.NoError(t, err)

	exists, err = client.LibrarianExists(ctx, user.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSessionLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	user, err := client.CreateUser(ctx, "librarian", "hash")
	require.NoError(t, err)

	created, err := client.CreateSession(ctx, "token-1", user.ID, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	session, err := client.GetSession(ctx, created.Token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)

	require.NoError(t, client.DeleteSession(ctx, created.Token))

	session, err = client.GetSession(ctx, created.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetSessionExpired(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	user, err := client.CreateUser(ctx, "librarian", "hash")
	require.NoError(t, err)

	_, err = client.CreateSession(ctx, "stale", user.ID, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	session, err := client.GetSession(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetSessionUnknownToken(t *testing.T) {
	client := newTestClient(t)

	session, err := client.GetSession(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestSeedIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Seed(ctx))
	require.NoError(t, client.Seed(ctx))

	books, err := client.ListBooks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, books, 3)

	user, err := client.GetUserByUsername(ctx, "librarian")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}
