package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

var (
	libraryColumns = []interface{}{"id", "name", "created_at"}
	authorColumns  = []interface{}{"id", "name", "title", "created_at"}
	bookColumns    = []interface{}{"id", "library_id", "author_id", "title", "published_date", "created_at"}
)

// =============================================================================
// LIBRARY QUERIES
// =============================================================================

// CreateLibrary inserts a new library and returns it.
func (c *Client) CreateLibrary(ctx context.Context, name string) (*Library, error) {
	library := &Library{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := c.dialect.Insert("libraries").Rows(goqu.Record{
		"id":         library.ID,
		"name":       library.Name,
		"created_at": library.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build library insert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create library: %w", err)
	}
	return library, nil
}

// GetLibrary retrieves a library by ID. Returns nil when no row matches.
func (c *Client) GetLibrary(ctx context.Context, id string) (*Library, error) {
	query, args, err := c.dialect.From("libraries").
		Select(libraryColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build library select: %w", err)
	}

	var library Library
	err = c.db.GetContext(ctx, &library, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}
	return &library, nil
}

// DeleteLibrary removes a library. Books referencing it are removed by the
// schema's cascade rule.
func (c *Client) DeleteLibrary(ctx context.Context, id string) (bool, error) {
	return c.deleteByID(ctx, "libraries", id)
}

// =============================================================================
// AUTHOR QUERIES
// =============================================================================

// CreateAuthor inserts a new author and returns it.
func (c *Client) CreateAuthor(ctx context.Context, name, title string) (*Author, error) {
	author := &Author{
		ID:        uuid.New().String(),
		Name:      name,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}

	query, args, err := c.dialect.Insert("authors").Rows(goqu.Record{
		"id":         author.ID,
		"name":       author.Name,
		"title":      author.Title,
		"created_at": author.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build author insert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return author, nil
}

// GetAuthor retrieves an author by ID. Returns nil when no row matches.
func (c *Client) GetAuthor(ctx context.Context, id string) (*Author, error) {
	query, args, err := c.dialect.From("authors").
		Select(authorColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build author select: %w", err)
	}

	var author Author
	err = c.db.GetContext(ctx, &author, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &author, nil
}

// DeleteAuthor removes an author; their books cascade away with them.
func (c *Client) DeleteAuthor(ctx context.Context, id string) (bool, error) {
	return c.deleteByID(ctx, "authors", id)
}

// =============================================================================
// BOOK QUERIES
// =============================================================================

// CreateBook inserts a new book referencing an existing library and author.
func (c *Client) CreateBook(ctx context.Context, libraryID, authorID, title, publishedDate string) (*Book, error) {
	book := &Book{
		ID:            uuid.New().String(),
		LibraryID:     libraryID,
		AuthorID:      authorID,
		Title:         title,
		PublishedDate: publishedDate,
		CreatedAt:     time.Now().UTC(),
	}

	query, args, err := c.dialect.Insert("books").Rows(goqu.Record{
		"id":             book.ID,
		"library_id":     book.LibraryID,
		"author_id":      book.AuthorID,
		"title":          book.Title,
		"published_date": book.PublishedDate,
		"created_at":     book.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build book insert: %w", err)
	}

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return book, nil
}

// GetBook retrieves a book by ID. Returns nil when no row matches.
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	query, args, err := c.dialect.From("books").
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build book select: %w", err)
	}

	var book Book
	err = c.db.GetContext(ctx, &book, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return &book, nil
}

// ListBooksByLibrary returns all books in a library, in creation order.
func (c *Client) ListBooksByLibrary(ctx context.Context, libraryID string) ([]*Book, error) {
	return c.listBooks(ctx, goqu.C("library_id").Eq(libraryID))
}

// ListBooksByAuthor returns all books by an author, in creation order.
func (c *Client) ListBooksByAuthor(ctx context.Context, authorID string) ([]*Book, error) {
	return c.listBooks(ctx, goqu.C("author_id").Eq(authorID))
}

// ListBooks returns books matching the optional title filter, in creation
// order. A nil filter returns every book.
func (c *Client) ListBooks(ctx context.Context, filter *BookTitleFilter) ([]*Book, error) {
	var conditions []exp.Expression
	if filter != nil {
		if filter.IContains != nil {
			conditions = append(conditions, goqu.C("title").ILike("%"+*filter.IContains+"%"))
		}
		if filter.Exact != nil {
			conditions = append(conditions, goqu.C("title").Eq(*filter.Exact))
		}
	}
	return c.listBooks(ctx, conditions...)
}

func (c *Client) listBooks(ctx context.Context, conditions ...exp.Expression) ([]*Book, error) {
	ds := c.dialect.From("books").
		Select(bookColumns...).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())
	if len(conditions) > 0 {
		ds = ds.Where(conditions...)
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build book list: %w", err)
	}

	var books []*Book
	if err := c.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// UpdateBook applies a partial update: only non-nil fields are written.
// Returns nil when the book does not exist; unsupplied fields keep their
// stored values.
func (c *Client) UpdateBook(ctx context.Context, id string, title, publishedDate *string) (*Book, error) {
	record := goqu.Record{}
	if title != nil {
		record["title"] = *title
	}
	if publishedDate != nil {
		record["published_date"] = *publishedDate
	}

	if len(record) > 0 {
		query, args, err := c.dialect.Update("books").
			Set(record).
			Where(goqu.C("id").Eq(id)).
			Prepared(true).ToSQL()
		if err != nil {
			return nil, fmt.Errorf("failed to build book update: %w", err)
		}

		result, err := c.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to update book: %w", err)
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return nil, nil
		}
	}

	return c.GetBook(ctx, id)
}

// DeleteBook removes a book. Reports whether a row was actually deleted so
// callers can distinguish a repeat delete from a successful one.
func (c *Client) DeleteBook(ctx context.Context, id string) (bool, error) {
	return c.deleteByID(ctx, "books", id)
}

// =============================================================================
// HELPERS
// =============================================================================

func (c *Client) deleteByID(ctx context.Context, table, id string) (bool, error) {
	query, args, err := c.dialect.Delete(table).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build %s delete: %w", table, err)
	}

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
