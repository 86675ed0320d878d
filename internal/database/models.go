package database

import (
	"time"
)

// =============================================================================
// LIBRARY DOMAIN MODELS
// =============================================================================

// Library is a collection of books overseen by zero or more librarians.
type Library struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Author writes books.
type Author struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Book belongs to exactly one library and one author. Deleting either
// cascades to the book (enforced by the schema, not in Go).
type Book struct {
	ID            string    `db:"id" json:"id"`
	LibraryID     string    `db:"library_id" json:"libraryId"`
	AuthorID      string    `db:"author_id" json:"authorId"`
	Title         string    `db:"title" json:"title"`
	PublishedDate string    `db:"published_date" json:"publishedDate"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// Librarian grants a user authorization over exactly one library.
type Librarian struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	LibraryID string    `db:"library_id" json:"libraryId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// BookTitleFilter narrows book listings by title. Both conditions may be
// combined; a nil filter matches everything.
type BookTitleFilter struct {
	IContains *string
	Exact     *string
}

// =============================================================================
// IDENTITY MODELS
// =============================================================================

// User is a registered identity that can hold librarian grants.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Session is a server-side login record referenced by the sessionid cookie.
type Session struct {
	Token     string    `db:"token" json:"token"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}
