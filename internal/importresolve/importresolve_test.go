package importresolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jzeiders/graphql-go-gen/internal/importlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/validator"
)

const sharedSchemaSrc = `
type Query { menu: MenuItem }
type MenuItem { id: ID! name: String! }
`

func TestParseIncludeRules(t *testing.T) {
	rules, err := ParseIncludeRules([]string{"shared=../shared=Shared"})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "shared", rules[0].Name)
	assert.Equal(t, "../shared", rules[0].Dir)
	assert.Equal(t, "Shared", rules[0].Prefix)
}

func TestParseIncludeRulesRejectsMalformed(t *testing.T) {
	_, err := ParseIncludeRules([]string{"not-enough-parts"})
	assert.Error(t, err)
}

func TestResolveLoadsNamedImport(t *testing.T) {
	dir := t.TempDir()
	importedPath := filepath.Join(dir, "shared.graphql")
	require.NoError(t, os.WriteFile(importedPath, []byte(`
fragment MenuShortFragment on MenuItem {
  id
  name
}
`), 0o644))

	schema, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: "schema.graphql", Input: sharedSchemaSrc})
	require.NoError(t, err)

	localPath := filepath.Join(dir, "local.graphql")
	specs := map[string][]importlex.Spec{
		localPath: {{From: "shared.graphql", Kind: importlex.Some, Names: []string{"MenuShortFragment"}}},
	}

	bundle, err := Resolve(schema, specs, Options{})
	require.NoError(t, err)
	require.Len(t, bundle.LoadedImports, 1)
	assert.Equal(t, "MenuShortFragment", bundle.LoadedImports[0].Name)
}

func TestResolveWiresPrefixMapBySourcePath(t *testing.T) {
	dir := t.TempDir()
	sharedDir := filepath.Join(dir, "shared")
	require.NoError(t, os.MkdirAll(sharedDir, 0o755))
	importedPath := filepath.Join(sharedDir, "common.graphql")
	require.NoError(t, os.WriteFile(importedPath, []byte(`
fragment MenuShortFragment on MenuItem {
  id
  name
}
`), 0o644))

	schema, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: "schema.graphql", Input: sharedSchemaSrc})
	require.NoError(t, err)

	localPath := filepath.Join(dir, "local.graphql")
	specs := map[string][]importlex.Spec{
		localPath: {{From: "@shared/common.graphql", Kind: importlex.Some, Names: []string{"MenuShortFragment"}}},
	}

	bundle, err := Resolve(schema, specs, Options{
		Rules: []IncludeRule{{Name: "shared", Dir: sharedDir, Prefix: "@app/"}},
	})
	require.NoError(t, err)
	require.Len(t, bundle.LoadedImports, 1)
	assert.Equal(t, "@app/", bundle.PrefixMap[bundle.LoadedImports[0].SourcePath])
}

func TestResolveRejectsNestedImports(t *testing.T) {
	dir := t.TempDir()
	importedPath := filepath.Join(dir, "shared.graphql")
	require.NoError(t, os.WriteFile(importedPath, []byte(`
import * from "other.graphql"
fragment A on MenuItem { id }
`), 0o644))

	schema, err := validator.LoadSchema(validator.Prelude, &ast.Source{Name: "schema.graphql", Input: sharedSchemaSrc})
	require.NoError(t, err)

	localPath := filepath.Join(dir, "local.graphql")
	specs := map[string][]importlex.Spec{
		localPath: {{From: "shared.graphql", Kind: importlex.All}},
	}

	_, err = Resolve(schema, specs, Options{})
	assert.Error(t, err)
}
