package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jzeiders/graphql-go-gen/internal/resolve"
	"github.com/vektah/gqlparser/v2/ast"
)

// dependency is one (origin-path, fragment-name) tuple in the transitive
// closure of an operation's fragment spreads, per spec §4.F(3).
type dependency struct {
	Name   string
	Prefix string
	Path   string
}

// TransitiveFragmentDeps walks ctx.FragmentDeps from the roots (an
// operation's direct spreads) and returns every reachable fragment name
// including the roots themselves, sorted and deduplicated.
func TransitiveFragmentDeps(ctx *resolve.Context, roots []string) []string {
	seen := make(map[string]bool)
	var walk func(string)
	walk = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		for _, dep := range ctx.FragmentDeps[name] {
			walk(dep)
		}
	}
	for _, r := range roots {
		walk(r)
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RenderOperationFile renders the generated source for a single operation:
// one bare-name import per transitively-depended fragment, a type-only
// import of the operation's meta type, and a default export equal to the
// dependency-then-operation concatenation expression cast to that meta type.
func RenderOperationFile(name string, entry resolve.OperationEntry, body string, ctx *resolve.Context, bundle *resolve.ImportBundle, localDir string, opts Options) string {
	roots := directSpreadNames(entry.AST.SelectionSet)
	deps := TransitiveFragmentDeps(ctx, roots)

	imports := make([]dependency, 0, len(deps))
	for _, dep := range deps {
		prefix, path := originOf(dep, bundle, localDir)
		imports = append(imports, dependency{Name: dep, Prefix: prefix, Path: path})
	}
	sort.Slice(imports, func(i, j int) bool {
		if imports[i].Path != imports[j].Path {
			return imports[i].Path < imports[j].Path
		}
		return imports[i].Name < imports[j].Name
	})

	minified := Minify(body)
	opIdent := Identifier(name)

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated. DO NOT EDIT.\n")
	for _, d := range imports {
		fmt.Fprintf(&b, "import %s from \"%s%s/fragments/%s%s\";\n", Identifier(d.Name), d.Prefix, d.Path, Identifier(d.Name), opts.ImportExtension())
	}
	fmt.Fprintf(&b, "import type { %sMeta } from \"../types%s\";\n\n", opIdent, opts.ImportExtension())

	var expr strings.Builder
	for _, d := range imports {
		fmt.Fprintf(&expr, "%s + ", Identifier(d.Name))
	}
	fmt.Fprintf(&expr, "%q", minified)

	fmt.Fprintf(&b, "export default (%s) as %sMeta;\n", expr.String(), opIdent)
	return b.String()
}

// directSpreadNames collects every fragment name spread anywhere within sel,
// sorted and deduplicated.
func directSpreadNames(sel ast.SelectionSet) []string {
	seen := make(map[string]bool)
	var walk func(ast.SelectionSet)
	walk = func(s ast.SelectionSet) {
		for _, selection := range s {
			switch v := selection.(type) {
			case *ast.FragmentSpread:
				seen[v.Name] = true
			case *ast.Field:
				if v.SelectionSet != nil {
					walk(v.SelectionSet)
				}
			case *ast.InlineFragment:
				if v.SelectionSet != nil {
					walk(v.SelectionSet)
				}
			}
		}
	}
	walk(sel)

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// originOf resolves a fragment dependency's (mapped-prefix, origin-path)
// pair: ".." with no prefix for a local fragment (sibling "fragments/"
// directory), or the import bundle's resolved prefix and relative directory
// for a fragment sourced through an import directive.
func originOf(fragmentName string, bundle *resolve.ImportBundle, localDir string) (prefix, path string) {
	if bundle != nil {
		if li, ok := bundle.LoadedImportsMap[fragmentName]; ok {
			return bundle.PrefixMap[li.SourcePath], relativeOrigin(li.SourcePath, localDir)
		}
	}
	return "", ".."
}
