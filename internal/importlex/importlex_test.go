package importlex_test

import (
	"testing"

	"github.com/jzeiders/graphql-go-gen/internal/importlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanWildcard(t *testing.T) {
	src := `import * from "@shared/fragments"

fragment Foo on Bar { id }`

	specs := importlex.Scan(src)
	require.Len(t, specs, 1)
	assert.Equal(t, importlex.All, specs[0].Kind)
	assert.Equal(t, "@shared/fragments", specs[0].From)
}

func TestScanNamedList(t *testing.T) {
	src := `import { MenuShort, Other } from "./fragments"`

	specs := importlex.Scan(src)
	require.Len(t, specs, 1)
	assert.Equal(t, importlex.Some, specs[0].Kind)
	assert.Equal(t, "./fragments", specs[0].From)
	assert.Equal(t, []string{"MenuShort", "Other"}, specs[0].Names)
}

func TestScanOrderPreserved(t *testing.T) {
	src := `
import { A } from "./one"
import * from "./two"
import { B, C } from "./three"
`
	specs := importlex.Scan(src)
	require.Len(t, specs, 3)
	assert.Equal(t, "./one", specs[0].From)
	assert.Equal(t, "./two", specs[1].From)
	assert.Equal(t, "./three", specs[2].From)
}

func TestScanIgnoresMalformed(t *testing.T) {
	src := `import from "./nowhere"
import { } from "./empty"
query Noop { __typename }`

	specs := importlex.Scan(src)
	assert.Empty(t, specs)
}

func TestScanWhitespaceFlexible(t *testing.T) {
	src := `import{ A ,  B }from"./x"`
	specs := importlex.Scan(src)
	require.Len(t, specs, 1)
	assert.Equal(t, "./x", specs[0].From)
	assert.Equal(t, []string{"A", "B"}, specs[0].Names)
}
