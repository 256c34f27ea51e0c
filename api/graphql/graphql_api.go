package graphql

import (
	"github.com/labstack/echo/v4"

	"procurement.GO/api"
	_ "procurement.GO/custom"
	graphqlpkg "procurement.GO/graphql"
	"procurement.GO/graphql/resolvers"
	"procurement.GO/graphqlserver"
)

func init() {
	api.RegisterModule(RegisterGraphQLRoutes)
}

// GraphQLRequest is the standard GraphQL request body
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// RegisterGraphQLRoutes mounts POST /graphql on the authenticated /api group.
func RegisterGraphQLRoutes(apiGroup *echo.Group, deps *api.Deps) {
	var searcher resolvers.Searcher
	if deps.Search != nil {
		searcher = deps.Search
	}
	schema, err := graphqlserver.NewSchema(resolvers.NewQueryResolver(deps.PurchaseOrders, searcher, deps.Log))
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	h := graphqlpkg.OrganizationMiddleware(graphqlserver.Handler(schema))
	apiGroup.POST("/graphql", echo.WrapHandler(h))
}
