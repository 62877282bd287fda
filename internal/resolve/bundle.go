package resolve

import "github.com/vektah/gqlparser/v2/ast"

// LoadedImport is one `(name, source-path)` pair materialized by the import
// resolver (Component D), together with the fragment AST and the full
// context of the path it came from.
type LoadedImport struct {
	Name       string
	SourcePath string
	Fragment   *ast.FragmentDefinition
	Context    *Context
}

// RawImportData is one import path's own resolution output, used for
// embed-mode merging (spec §4.D step 3 / §4.E "Embed-imports merge").
type RawImportData struct {
	UsedNamedTypes map[string]bool
	FragmentDeps   map[string][]string
	Fragments      map[string]FragmentEntry
}

// ImportBundle is the "Import resolution result" of spec §3, produced by
// Component D and consumed by Component E.
type ImportBundle struct {
	LoadedImports    []LoadedImport
	LoadedImportsMap map[string]*LoadedImport
	RawImportData    map[string]*RawImportData // keyed by source path
	PrefixMap        map[string]string         // keyed by source path, value is the owning --include rule's PREFIX
	EmbedImports     bool
}

// FindFragment looks up a fragment by name, local context first, then the
// import map — the lookup order spec §4.E specifies for fragment spreads
// inside object selections.
func (b *ImportBundle) FindFragment(name string, local map[string]FragmentEntry) (FragmentEntry, bool) {
	if e, ok := local[name]; ok {
		return e, true
	}
	if b == nil {
		return FragmentEntry{}, false
	}
	if li, ok := b.LoadedImportsMap[name]; ok {
		if e, ok := li.Context.Fragments[name]; ok {
			return e, true
		}
	}
	return FragmentEntry{}, false
}

func seedFromImports(ctx *Context, bundle *ImportBundle) {
	if bundle == nil {
		return
	}
	for _, raw := range bundle.RawImportData {
		for name := range raw.UsedNamedTypes {
			ctx.UsedNamedTypes[name] = true
		}
		for name, deps := range raw.FragmentDeps {
			ctx.FragmentDeps[name] = deps
		}
		for name, entry := range raw.Fragments {
			ctx.Fragments[name] = entry
		}
	}
}
