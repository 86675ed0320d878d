package graph

import (
	"context"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/librarium/library-api/internal/auth"
	"github.com/librarium/library-api/internal/gid"
)

// Permission gates a guarded field. A nil return allows resolution; an error
// aborts the field and surfaces in the response's error list.
type Permission func(ctx context.Context, args map[string]interface{}) error

// guard wraps a resolver with an ordered permission list. Evaluation stops
// at the first failing predicate and the resolver body never runs.
func guard(resolve graphql.FieldResolveFn, permissions ...Permission) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		for _, permission := range permissions {
			if err := permission(p.Context, p.Args); err != nil {
				return nil, err
			}
		}
		return resolve(p)
	}
}

// isAuthenticated passes for any recognized (non-anonymous) identity.
func (s *Schema) isAuthenticated(ctx context.Context, _ map[string]interface{}) error {
	if !auth.FromContext(ctx).IsAuthenticated() {
		return errUnauthenticated()
	}
	return nil
}

// isLibrarian decodes the nodeId argument and checks that the current user
// holds a librarian grant for that library.
func (s *Schema) isLibrarian(ctx context.Context, args map[string]interface{}) error {
	nodeID, _ := args["nodeId"].(string)
	_, key, err := gid.Decode(nodeID)
	if err != nil {
		return errInvalidIdentifier(nodeID)
	}

	authCtx := auth.FromContext(ctx)
	if !authCtx.IsAuthenticated() {
		return errForbidden()
	}

	granted, err := s.store.LibrarianExists(ctx, authCtx.User.ID, key)
	if err != nil {
		return fmt.Errorf("failed to check librarian grant: %w", err)
	}
	if !granted {
		return errForbidden()
	}
	return nil
}
