package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinifyStripsCommentsAndWhitespaceAndTerminatesWithNewline(t *testing.T) {
	in := `
# a leading comment
query GetMenu($id: ID!) {
  menu(id: $id) {
    id   # trailing comment
    name
  }
}
`
	assert.Equal(t, "query GetMenu($id: ID!) { menu(id: $id) { id name } }\n", Minify(in))
}

func TestIdentifierPreservesAlreadyPascalCaseNames(t *testing.T) {
	assert.Equal(t, "GetMenuQuery", Identifier("GetMenuQuery"))
	assert.Equal(t, "MenuShort", Identifier("MenuShort"))
}

func TestTransitiveFragmentDepsWalksGraph(t *testing.T) {
	ctx := fakeContextForDeps()
	deps := TransitiveFragmentDeps(ctx, []string{"A"})
	assert.Equal(t, []string{"A", "B", "C"}, deps)
}
