package graphql

import (
	"strings"
	"sync"

	_ "embed"

	gql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphqls
var schemaBase string

var (
	schemaExtensions []string
	schemaMu         sync.Mutex
)

// RegisterSchemaExtension appends schema (usually "extend type Query { ... }").
// Call from init() in custom packages.
func RegisterSchemaExtension(schema string) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaExtensions = append(schemaExtensions, strings.TrimSpace(schema))
}

// Schema returns base schema + registered extensions.
func Schema() string {
	schemaMu.Lock()
	ext := schemaExtensions
	schemaMu.Unlock()
	if len(ext) == 0 {
		return schemaBase
	}
	return schemaBase + "\n\n" + strings.Join(ext, "\n\n")
}

// --- Query arguments (matched by graphql-go on field name) ---

type PurchaseOrdersArgs struct {
	OrganizationID *int32
	Status         *string
}

type PurchaseOrderArgs struct {
	ID gql.ID
}

type SearchPurchaseOrdersArgs struct {
	Query          string
	OrganizationID *int32
	PageSize       int32
}

type ExtensionArgs struct {
	Name string
	Args *string
}
