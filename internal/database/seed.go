package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

// Seed loads a small demo data set: one library, one author, a few books,
// and a librarian account ("librarian" / "password123") with a grant on the
// library. It is a no-op when any library already exists.
func (c *Client) Seed(ctx context.Context) error {
	seeded, err := c.hasLibraries(ctx)
	if err != nil {
		return err
	}
	if seeded {
		return nil
	}

	library, err := c.CreateLibrary(ctx, "Central Library")
	if err != nil {
		return err
	}

	author, err := c.CreateAuthor(ctx, "Ada Lovelace", "Countess")
	if err != nil {
		return err
	}

	titles := []struct {
		title         string
		publishedDate string
	}{
		{"Python Programming", "2020-05-01"},
		{"Python Web Development", "2021-09-15"},
		{"Java Programming", "2019-03-20"},
	}
	for _, t := range titles {
		if _, err := c.CreateBook(ctx, library.ID, author.ID, t.title, t.publishedDate); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	user, err := c.CreateUser(ctx, "librarian", string(hash))
	if err != nil {
		return err
	}

	if _, err := c.CreateLibrarian(ctx, user.ID, library.ID, user.Username); err != nil {
		return err
	}
	return nil
}

func (c *Client) hasLibraries(ctx context.Context) (bool, error) {
	query, args, err := c.dialect.From("libraries").
		Select(goqu.L("1")).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build seed check: %w", err)
	}

	var one int
	err = c.db.GetContext(ctx, &one, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for existing data: %w", err)
	}
	return true, nil
}
