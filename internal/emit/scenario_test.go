package emit

import (
	"testing"

	"github.com/jzeiders/graphql-go-gen/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

const menuSchemaSrc = `
type Query {
  storefrontMenus(shop_id: String!, ids: [String!]!): [StorefrontMenu]
}

type StorefrontMenu {
  id: String!
  name: String!
}
`

// TestMinimalQueryWithFragmentScenario mirrors the minimal query-with-
// fragment end-to-end scenario: the operation's default export concatenates
// its fragment dependency first and the minified operation text last, the
// fragment file is a bare default-exported string, and the types module
// carries a three-field meta marker per operation.
func TestMinimalQueryWithFragmentScenario(t *testing.T) {
	schema, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: "schema.graphql", Input: menuSchemaSrc})
	require.NoError(t, err)

	doc, err := parser.ParseQuery(&ast.Source{Name: "q.graphql", Input: `
fragment MenuShort on StorefrontMenu { id name }
query GetMenu($shopID:String!,$id:String!){ storefrontMenus(shop_id:$shopID,ids:[$id]){ ...MenuShort } }
`})
	require.NoError(t, err)

	ctx, err := resolve.Resolve(schema, doc, nil, nil)
	require.NoError(t, err)

	opts := Options{}

	fragEntry := ctx.Fragments["MenuShort"]
	fragFile := RenderFragmentFile("MenuShort", fragEntry, "fragment MenuShort on StorefrontMenu { id name }", opts)
	assert.Equal(t, "// Code generated. DO NOT EDIT.\nexport default \"fragment MenuShort on StorefrontMenu { id name }\\n\";\n", fragFile)

	opEntry := ctx.Operations["GetMenuQuery"]
	opFile := RenderOperationFile("GetMenuQuery", opEntry, `query GetMenu($shopID:String!,$id:String!){ storefrontMenus(shop_id:$shopID,ids:[$id]){ ...MenuShort } }`, ctx, nil, "/out/operations", opts)

	assert.Contains(t, opFile, `import MenuShort from "../fragments/MenuShort";`)
	assert.Contains(t, opFile, `import type { GetMenuQueryMeta } from "../types";`)
	assert.Contains(t, opFile, `export default (MenuShort + "query GetMenu($shopID:String!,$id:String!){ storefrontMenus(shop_id:$shopID,ids:[$id]){ ...MenuShort } }\n") as GetMenuQueryMeta;`)

	typesFile := RenderTypesModule(schema, ctx, nil, "/out", nil, opts)
	assert.Contains(t, typesFile, "export type ArbitraryObjectType = any;")
	assert.Contains(t, typesFile, "interface MenuShortFragment { id: string; name: string }")
	assert.Contains(t, typesFile, "GetMenuQueryVariables")
	assert.Contains(t, typesFile, "export type GetMenuQueryMeta = {\n  __resultType: GetMenuQuery;\n  __variablesType: GetMenuQueryVariables;\n  __apiType: \"graphql-operation\";\n};")
}
