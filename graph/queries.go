package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/librarium/library-api/internal/auth"
	"github.com/librarium/library-api/internal/database"
	"github.com/librarium/library-api/internal/gid"
)

func (s *Schema) defineQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"node": s.nodeDefinitions.NodeField,
			"me": &graphql.Field{
				Type:        graphql.String,
				Description: "Username of the requesting user, null when anonymous.",
				Resolve:     s.resolveMe,
			},
			"library": &graphql.Field{
				Type: s.libraryType,
				Args: graphql.FieldConfigArgument{
					"nodeId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: guard(s.resolveLibrary, s.isAuthenticated, s.isLibrarian),
			},
			"books": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(s.bookType))),
				Args: graphql.FieldConfigArgument{
					"filters": &graphql.ArgumentConfig{Type: s.bookFilterInput},
				},
				Resolve: s.resolveBooks,
			},
		},
	})
}

func (s *Schema) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	authCtx := auth.FromContext(p.Context)
	if !authCtx.IsAuthenticated() {
		return nil, nil
	}
	return authCtx.User.Username, nil
}

func (s *Schema) resolveLibrary(p graphql.ResolveParams) (interface{}, error) {
	nodeID := p.Args["nodeId"].(string)
	_, key, err := gid.Decode(nodeID)
	if err != nil {
		return nil, errInvalidIdentifier(nodeID)
	}

	library, err := s.store.GetLibrary(p.Context, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get library: %w", err)
	}
	if library == nil {
		return nil, errNotFound("library", nodeID)
	}
	return library, nil
}

func (s *Schema) resolveBooks(p graphql.ResolveParams) (interface{}, error) {
	books, err := s.store.ListBooks(p.Context, bookFilterFromArgs(p.Args))
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func bookFilterFromArgs(args map[string]interface{}) *database.BookTitleFilter {
	filters, ok := args["filters"].(map[string]interface{})
	if !ok {
		return nil
	}
	title, ok := filters["title"].(map[string]interface{})
	if !ok {
		return nil
	}

	filter := &database.BookTitleFilter{}
	if v, ok := title["iContains"].(string); ok {
		filter.IContains = &v
	}
	if v, ok := title["exact"].(string); ok {
		filter.Exact = &v
	}
	return filter
}
