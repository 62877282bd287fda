package resolve

import (
	"testing"

	"github.com/jzeiders/graphql-go-gen/internal/hosttype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

const testSchemaSrc = `
type Query {
  menu(id: ID!): MenuItem
  menus(filter: MenuFilter): [MenuItem!]!
}

input MenuFilter {
  category: Category
  tag: TagFilter
}

input TagFilter {
  name: String
}

enum Category {
  FOOD
  DRINK
}

type MenuItem {
  id: ID!
  name: String!
  category: Category!
  price: Float
  tags: [String!]
}
`

func mustLoadSchema(t *testing.T) *ast.Schema {
	t.Helper()
	s, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: "schema.graphql", Input: testSchemaSrc})
	require.NoError(t, err)
	return s
}

func TestResolveSimpleFragmentAndOperation(t *testing.T) {
	schema := mustLoadSchema(t)
	doc, err := parser.ParseQuery(&ast.Source{Name: "q.graphql", Input: `
fragment MenuShortFragment on MenuItem {
  id
  name
}

query GetMenu($id: ID!) {
  menu(id: $id) {
    ...MenuShortFragment
  }
}
`})
	require.NoError(t, err)

	ctx, err := Resolve(schema, doc, nil, nil)
	require.NoError(t, err)

	frag, ok := ctx.Fragments["MenuShortFragment"]
	require.True(t, ok)
	assert.False(t, frag.HostType.Nullable)
	assert.Equal(t, "interface MenuShortFragment { id: string; name: string }", hosttype.RenderDeclaration("MenuShortFragment", frag.HostType, false))

	op, ok := ctx.Operations["GetMenuQuery"]
	require.True(t, ok)
	assert.False(t, op.Result.Nullable)
}

func TestResolveUsedNamedTypesClosure(t *testing.T) {
	schema := mustLoadSchema(t)
	doc, err := parser.ParseQuery(&ast.Source{Name: "q.graphql", Input: `
query ListMenus($filter: MenuFilter) {
  menus(filter: $filter) {
    id
  }
}
`})
	require.NoError(t, err)

	ctx, err := Resolve(schema, doc, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, ctx.UsedNamedTypes, "MenuFilter")
	assert.Contains(t, ctx.UsedNamedTypes, "TagFilter")
	assert.Contains(t, ctx.UsedNamedTypes, "Category")
}

func TestResolveFixpointUnresolvableReturnsError(t *testing.T) {
	schema := mustLoadSchema(t)
	doc, err := parser.ParseQuery(&ast.Source{Name: "q.graphql", Input: `
fragment A on MenuItem {
  ...DoesNotExist
}
`})
	require.NoError(t, err)

	_, err = Resolve(schema, doc, nil, nil)
	require.Error(t, err)
}
