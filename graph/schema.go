// Package graph builds the GraphQL schema for the library API.
//
// The schema is an explicit mapping table: one *graphql.Object per domain
// entity, constructed once in NewSchema and wired to the storage client.
// Guarded fields attach their permission predicates at registration time.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"

	"github.com/librarium/library-api/internal/database"
	"github.com/librarium/library-api/internal/gid"
)

// GraphQL type names. The node type name is the first half of every opaque
// identifier, so these are part of the public API surface.
const (
	libraryTypeName = "LibraryNode"
	authorTypeName  = "AuthorNode"
	bookTypeName    = "BookNode"
	userTypeName    = "UserNode"
)

// Schema holds the executable schema and the dependencies its resolvers use.
type Schema struct {
	store      *database.Client
	sessionTTL time.Duration

	schema graphql.Schema

	nodeDefinitions    *relay.NodeDefinitions
	libraryType        *graphql.Object
	authorType         *graphql.Object
	bookType           *graphql.Object
	userType           *graphql.Object
	bookConnectionType *graphql.Object
	bookFilterInput    *graphql.InputObject
}

// NewSchema builds the executable schema against the given storage client.
// sessionTTL bounds the lifetime of sessions created by the login mutation.
func NewSchema(store *database.Client, sessionTTL time.Duration) (*Schema, error) {
	s := &Schema{
		store:      store,
		sessionTTL: sessionTTL,
	}

	s.defineNodeDefinitions()
	s.defineNodeTypes()
	s.defineConnectionTypes()
	s.defineInputTypes()

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    s.defineQuery(),
		Mutation: s.defineMutation(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}
	s.schema = schema
	return s, nil
}

// Schema returns the executable schema for the HTTP handler.
func (s *Schema) Schema() *graphql.Schema {
	return &s.schema
}

// defineNodeDefinitions wires the relay node interface. The IDFetcher decodes
// the opaque identifier and dispatches by type name; a missing row resolves
// to null rather than an error.
func (s *Schema) defineNodeDefinitions() {
	s.nodeDefinitions = relay.NewNodeDefinitions(relay.NodeDefinitionsConfig{
		IDFetcher: func(id string, info graphql.ResolveInfo, ctx context.Context) (interface{}, error) {
			typeName, key, err := gid.Decode(id)
			if err != nil {
				return nil, errInvalidIdentifier(id)
			}

			switch typeName {
			case libraryTypeName:
				library, err := s.store.GetLibrary(ctx, key)
				if err != nil || library == nil {
					return nil, err
				}
				return library, nil
			case authorTypeName:
				author, err := s.store.GetAuthor(ctx, key)
				if err != nil || author == nil {
					return nil, err
				}
				return author, nil
			case bookTypeName:
				book, err := s.store.GetBook(ctx, key)
				if err != nil || book == nil {
					return nil, err
				}
				return book, nil
			case userTypeName:
				user, err := s.store.GetUser(ctx, key)
				if err != nil || user == nil {
					return nil, err
				}
				return user, nil
			}
			return nil, nil
		},
		TypeResolve: func(p graphql.ResolveTypeParams) *graphql.Object {
			switch p.Value.(type) {
			case *database.Library:
				return s.libraryType
			case *database.Author:
				return s.authorType
			case *database.Book:
				return s.bookType
			case *database.User:
				return s.userType
			}
			return nil
		},
	})
}

// defineNodeTypes registers one object per entity. Fields reference each
// other through thunks so the circular library/author/book shape resolves
// when the schema is assembled.
func (s *Schema) defineNodeTypes() {
	s.bookType = graphql.NewObject(graphql.ObjectConfig{
		Name:       bookTypeName,
		Interfaces: []*graphql.Interface{s.nodeDefinitions.NodeInterface},
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": globalIDField(bookTypeName, func(source interface{}) string {
					return source.(*database.Book).ID
				}),
				"title": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
				},
				"publishedDate": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
				},
				"author": &graphql.Field{
					Type:    graphql.NewNonNull(s.authorType),
					Resolve: s.resolveBookAuthor,
				},
				"library": &graphql.Field{
					Type:    graphql.NewNonNull(s.libraryType),
					Resolve: s.resolveBookLibrary,
				},
			}
		}),
	})

	s.libraryType = graphql.NewObject(graphql.ObjectConfig{
		Name:       libraryTypeName,
		Interfaces: []*graphql.Interface{s.nodeDefinitions.NodeInterface},
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": globalIDField(libraryTypeName, func(source interface{}) string {
					return source.(*database.Library).ID
				}),
				"name": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
				},
				"books": &graphql.Field{
					Type:    graphql.NewNonNull(s.bookConnectionType),
					Args:    relay.ConnectionArgs,
					Resolve: s.resolveLibraryBooks,
				},
			}
		}),
	})

	s.authorType = graphql.NewObject(graphql.ObjectConfig{
		Name:       authorTypeName,
		Interfaces: []*graphql.Interface{s.nodeDefinitions.NodeInterface},
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": globalIDField(authorTypeName, func(source interface{}) string {
					return source.(*database.Author).ID
				}),
				"name": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
				},
				"title": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
				},
				"books": &graphql.Field{
					Type:    graphql.NewNonNull(s.bookConnectionType),
					Args:    relay.ConnectionArgs,
					Resolve: s.resolveAuthorBooks,
				},
			}
		}),
	})

	s.userType = graphql.NewObject(graphql.ObjectConfig{
		Name:       userTypeName,
		Interfaces: []*graphql.Interface{s.nodeDefinitions.NodeInterface},
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": globalIDField(userTypeName, func(source interface{}) string {
					return source.(*database.User).ID
				}),
				"username": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
				},
			}
		}),
	})
}

func (s *Schema) defineInputTypes() {
	titleFilter := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TitleFilterLookup",
		Fields: graphql.InputObjectConfigFieldMap{
			"iContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"exact":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	s.bookFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BookFilter",
		Fields: graphql.InputObjectConfigFieldMap{
			"title": &graphql.InputObjectFieldConfig{Type: titleFilter},
		},
	})
}

// globalIDField builds the opaque id field for a node type.
func globalIDField(typeName string, keyOf func(source interface{}) string) *graphql.Field {
	return &graphql.Field{
		Type:        graphql.NewNonNull(graphql.ID),
		Description: "The opaque identifier of the node.",
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return gid.Encode(typeName, keyOf(p.Source)), nil
		},
	}
}

func (s *Schema) resolveBookAuthor(p graphql.ResolveParams) (interface{}, error) {
	book := p.Source.(*database.Book)
	author, err := s.store.GetAuthor(p.Context, book.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, errNotFound("author", book.AuthorID)
	}
	return author, nil
}

func (s *Schema) resolveBookLibrary(p graphql.ResolveParams) (interface{}, error) {
	book := p.Source.(*database.Book)
	library, err := s.store.GetLibrary(p.Context, book.LibraryID)
	if err != nil {
		return nil, err
	}
	if library == nil {
		return nil, errNotFound("library", book.LibraryID)
	}
	return library, nil
}
