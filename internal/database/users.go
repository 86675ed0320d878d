package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

var userColumns = []interface{}{"id", "username", "password_hash", "created_at"}

// =============================================================================
// USER QUERIES
// =============================================================================

// CreateUser inserts a new user with an already-hashed password.
func (c *Client) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	user := &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query, args, err := c.dialect.Insert("users").Rows(goqu.Record{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build user insert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID. Returns nil when no row matches.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	return c.getUser(ctx, goqu.C("id").Eq(id))
}

// GetUserByUsername retrieves a user by username. Returns nil when no row
// matches.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return c.getUser(ctx, goqu.C("username").Eq(username))
}

func (c *Client) getUser(ctx context.Context, condition goqu.Expression) (*User, error) {
	query, args, err := c.dialect.From("users").
		Select(userColumns...).
		Where(condition).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build user select: %w", err)
	}

	var user User
	err = c.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// =============================================================================
// LIBRARIAN QUERIES
// =============================================================================

// CreateLibrarian grants a user authorization over a library.
func (c *Client) CreateLibrarian(ctx context.Context, userID, libraryID, name string) (*Librarian, error) {
	librarian := &Librarian{
		ID:        uuid.New().String(),
		UserID:    userID,
		LibraryID: libraryID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := c.dialect.Insert("librarians").Rows(goqu.Record{
		"id":         librarian.ID,
		"user_id":    librarian.UserID,
		"library_id": librarian.LibraryID,
		"name":       librarian.Name,
		"created_at": librarian.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build librarian insert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create librarian: %w", err)
	}
	return librarian, nil
}

// LibrarianExists reports whether the user holds a librarian grant for the
// library.
func (c *Client) LibrarianExists(ctx context.Context, userID, libraryID string) (bool, error) {
	query, args, err := c.dialect.From("librarians").
		Select(goqu.L("1")).
		Where(goqu.C("user_id").Eq(userID), goqu.C("library_id").Eq(libraryID)).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build librarian select: %w", err)
	}

	var one int
	err = c.db.GetContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check librarian grant: %w", err)
	}
	return true, nil
}

// =============================================================================
// SESSION QUERIES
// =============================================================================

// CreateSession stores a server-side session record for a user.
func (c *Client) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) (*Session, error) {
	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt.UTC(),
	}

	query, args, err := c.dialect.Insert("sessions").Rows(goqu.Record{
		"token":      session.Token,
		"user_id":    session.UserID,
		"created_at": session.CreatedAt,
		"expires_at": session.ExpiresAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build session insert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by token. Returns nil for an unknown token
// and for an expired session.
func (c *Client) GetSession(ctx context.Context, token string) (*Session, error) {
	query, args, err := c.dialect.From("sessions").
		Select("token", "user_id", "created_at", "expires_at").
		Where(goqu.C("token").Eq(token)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build session select: %w", err)
	}

	var session Session
	err = c.db.GetContext(ctx, &session, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.ExpiresAt.Before(time.Now().UTC()) {
		return nil, nil
	}
	return &session, nil
}

// DeleteSession removes a session record, logging the user out server-side.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	query, args, err := c.dialect.Delete("sessions").
		Where(goqu.C("token").Eq(token)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build session delete: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
