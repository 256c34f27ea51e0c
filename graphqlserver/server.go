package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"procurement.GO/graphql"
	"procurement.GO/graphql/resolvers"
)

// NewSchema parses the schema (base + extensions) against the root resolver.
func NewSchema(root *resolvers.QueryResolver) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), root, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
