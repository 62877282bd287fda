package emit

import (
	"fmt"

	"github.com/jzeiders/graphql-go-gen/internal/resolve"
)

// RenderFragmentFile renders the generated source for a single local
// fragment: a single default-exported string holding the minified fragment
// definition, newline-terminated.
func RenderFragmentFile(name string, entry resolve.FragmentEntry, body string, opts Options) string {
	minified := Minify(body)
	return fmt.Sprintf("// Code generated. DO NOT EDIT.\nexport default %q;\n", minified)
}
