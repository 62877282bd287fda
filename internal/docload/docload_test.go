package docload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jzeiders/graphql-go-gen/pkg/documents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
)

const testSchemaSrc = `
type Query { menu(id: ID!): MenuItem }
type MenuItem { id: ID! name: String! }
`

func TestLoadDirCollectsGraphqlFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.graphql"), []byte(`
query GetMenu($id: ID!) {
  menu(id: $id) { id name }
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("not graphql"), 0o644))

	docs, imports, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, imports)
}

func TestLoadDirScansImportDirectives(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.graphql"), []byte(`
# import { MenuShortFragment } from "shared.graphql"

query GetMenu($id: ID!) {
  menu(id: $id) { ...MenuShortFragment }
}
`), 0o644))

	_, imports, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, imports, 1)
}

func TestMergeRejectsDuplicateFragmentNames(t *testing.T) {
	docA, err := ParseString("a.graphql", `fragment A on MenuItem { id }`)
	require.NoError(t, err)
	docB, err := ParseString("b.graphql", `fragment A on MenuItem { name }`)
	require.NoError(t, err)

	_, err = Merge([]*documents.Document{
		{FilePath: "a.graphql", AST: docA},
		{FilePath: "b.graphql", AST: docB},
	})
	assert.Error(t, err)
}

func TestValidateRejectsAnonymousOperations(t *testing.T) {
	schema, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: "schema.graphql", Input: testSchemaSrc})
	require.NoError(t, err)

	doc, err := ParseString("a.graphql", `query { menu(id: "1") { id } }`)
	require.NoError(t, err)

	err = Validate(schema, doc, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anonymous operations")
}
