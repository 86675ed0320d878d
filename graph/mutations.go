package graph

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/librarium/library-api/internal/auth"
	"github.com/librarium/library-api/internal/gid"
)

func (s *Schema) defineMutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"updateBook": &graphql.Field{
				Type: graphql.NewNonNull(s.bookType),
				Args: graphql.FieldConfigArgument{
					"id":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":         &graphql.ArgumentConfig{Type: graphql.String},
					"publishedDate": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: s.resolveUpdateBook,
			},
			"deleteBook": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: s.resolveDeleteBook,
			},
			"login": &graphql.Field{
				Type: s.userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: s.resolveLogin,
			},
			"logout": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: s.resolveLogout,
			},
		},
	})
}

// resolveUpdateBook applies a partial update: arguments left unset keep the
// stored values.
func (s *Schema) resolveUpdateBook(p graphql.ResolveParams) (interface{}, error) {
	rawID := p.Args["id"].(string)
	_, key, err := gid.Decode(rawID)
	if err != nil {
		return nil, errInvalidIdentifier(rawID)
	}

	var title, publishedDate *string
	if v, ok := p.Args["title"].(string); ok {
		title = &v
	}
	if v, ok := p.Args["publishedDate"].(string); ok {
		publishedDate = &v
	}

	book, err := s.store.UpdateBook(p.Context, key, title, publishedDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	if book == nil {
		return nil, errNotFound("book", rawID)
	}
	return book, nil
}

// resolveDeleteBook hard-deletes a book. A repeat delete of the same id is
// a NotFound error, not a second success.
func (s *Schema) resolveDeleteBook(p graphql.ResolveParams) (interface{}, error) {
	rawID := p.Args["id"].(string)
	_, key, err := gid.Decode(rawID)
	if err != nil {
		return nil, errInvalidIdentifier(rawID)
	}

	deleted, err := s.store.DeleteBook(p.Context, key)
	if err != nil {
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	if !deleted {
		return nil, errNotFound("book", rawID)
	}
	return true, nil
}

// resolveLogin verifies credentials, stores a session row and sets the
// sessionid cookie on the response.
func (s *Schema) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	username := p.Args["username"].(string)
	password := p.Args["password"].(string)

	user, err := s.store.GetUserByUsername(p.Context, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, &Error{Message: "invalid username or password", Code: CodeUnauthenticated}
	}

	token := uuid.New().String()
	session, err := s.store.CreateSession(p.Context, token, user.ID, time.Now().UTC().Add(s.sessionTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if authCtx := auth.FromContext(p.Context); authCtx.Response != nil {
		http.SetCookie(authCtx.Response, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return user, nil
}

// resolveLogout deletes the current session, if any. Always returns true so
// the operation is idempotent from the client's point of view.
func (s *Schema) resolveLogout(p graphql.ResolveParams) (interface{}, error) {
	authCtx := auth.FromContext(p.Context)
	if authCtx.Session != nil {
		if err := s.store.DeleteSession(p.Context, authCtx.Session.Token); err != nil {
			return nil, fmt.Errorf("failed to delete session: %w", err)
		}
	}

	if authCtx.Response != nil {
		http.SetCookie(authCtx.Response, &http.Cookie{
			Name:     auth.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
	return true, nil
}
