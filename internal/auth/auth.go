// Package auth resolves the requesting user from the sessionid cookie and
// attaches it to the request context before any resolver runs.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/librarium/library-api/internal/database"
)

// SessionCookie is the name of the inbound session cookie.
const SessionCookie = "sessionid"

type contextKey string

const contextKeyAuth contextKey = "auth"

// Context carries the per-request identity. User and Session are nil for
// anonymous requests; Request and Response expose the HTTP layer to the
// login/logout mutations.
type Context struct {
	User     *database.User
	Session  *database.Session
	Request  *http.Request
	Response http.ResponseWriter
}

// IsAuthenticated reports whether the context holds a recognized user.
func (c *Context) IsAuthenticated() bool {
	return c != nil && c.User != nil
}

// FromContext extracts the auth context from a request context. Requests
// that never passed through the middleware resolve as anonymous.
func FromContext(ctx context.Context) *Context {
	if authCtx, ok := ctx.Value(contextKeyAuth).(*Context); ok {
		return authCtx
	}
	return &Context{}
}

// WithContext attaches an auth context; exported for tests that exercise
// resolvers without the HTTP stack.
func WithContext(ctx context.Context, authCtx *Context) context.Context {
	return context.WithValue(ctx, contextKeyAuth, authCtx)
}

// Store is the subset of the database client the middleware needs.
type Store interface {
	GetSession(ctx context.Context, token string) (*database.Session, error)
	GetUser(ctx context.Context, id string) (*database.User, error)
}

// Middleware returns an HTTP middleware that resolves the current user once
// per request. Any lookup failure degrades to the anonymous identity; the
// middleware never rejects a request.
func Middleware(store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := &Context{Request: r, Response: w}

			if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				authCtx.User, authCtx.Session = resolveUser(r.Context(), store, cookie.Value)
			}

			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), authCtx)))
		})
	}
}

func resolveUser(ctx context.Context, store Store, token string) (*database.User, *database.Session) {
	session, err := store.GetSession(ctx, token)
	if err != nil {
		slog.Debug("session lookup failed", "error", err)
		return nil, nil
	}
	if session == nil {
		return nil, nil
	}

	user, err := store.GetUser(ctx, session.UserID)
	if err != nil {
		slog.Debug("session user lookup failed", "error", err)
		return nil, nil
	}
	if user == nil {
		return nil, nil
	}
	return user, session
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
