package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"

	"github.com/librarium/library-api/internal/database"
)

// bookConnection pairs the relay pagination window with the total count of
// the unpaginated set.
type bookConnection struct {
	conn  *relay.Connection
	total int
}

// paginateBooks applies first/after (and last/before) to the full
// creation-ordered row set. Cursors are offset-based, so they stay stable
// across requests while the underlying set is unchanged.
func paginateBooks(books []*database.Book, rawArgs map[string]interface{}) *bookConnection {
	data := make([]interface{}, len(books))
	for i, book := range books {
		data[i] = book
	}
	return &bookConnection{
		conn:  relay.ConnectionFromArray(data, relay.NewConnectionArguments(rawArgs)),
		total: len(books),
	}
}

func (s *Schema) defineConnectionTypes() {
	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"hasNextPage": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(relay.PageInfo).HasNextPage, nil
				},
			},
			"hasPreviousPage": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(relay.PageInfo).HasPreviousPage, nil
				},
			},
			"startCursor": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nullableCursor(p.Source.(relay.PageInfo).StartCursor), nil
				},
			},
			"endCursor": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return nullableCursor(p.Source.(relay.PageInfo).EndCursor), nil
				},
			},
		},
	})

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BookEdge",
		Fields: graphql.Fields{
			"node": &graphql.Field{
				Type: graphql.NewNonNull(s.bookType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*relay.Edge).Node, nil
				},
			},
			"cursor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(*relay.Edge).Cursor), nil
				},
			},
		},
	})

	s.bookConnectionType = graphql.NewObject(graphql.ObjectConfig{
		Name: "BookConnection",
		Fields: graphql.Fields{
			"edges": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(edgeType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*bookConnection).conn.Edges, nil
				},
			},
			"pageInfo": &graphql.Field{
				Type: graphql.NewNonNull(pageInfoType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*bookConnection).conn.PageInfo, nil
				},
			},
			"totalCount": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.Int),
				Description: "Number of books in the full set, ignoring the pagination window.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*bookConnection).total, nil
				},
			},
		},
	})
}

func (s *Schema) resolveLibraryBooks(p graphql.ResolveParams) (interface{}, error) {
	library := p.Source.(*database.Library)
	books, err := s.store.ListBooksByLibrary(p.Context, library.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list library books: %w", err)
	}
	return paginateBooks(books, p.Args), nil
}

func (s *Schema) resolveAuthorBooks(p graphql.ResolveParams) (interface{}, error) {
	author := p.Source.(*database.Author)
	books, err := s.store.ListBooksByAuthor(p.Context, author.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list author books: %w", err)
	}
	return paginateBooks(books, p.Args), nil
}

func nullableCursor(cursor relay.ConnectionCursor) interface{} {
	if cursor == "" {
		return nil
	}
	return string(cursor)
}
