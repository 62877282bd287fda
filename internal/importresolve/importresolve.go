// Package importresolve implements the import-directive resolver (Component
// D): turning the raw `import * from "P"` / `import {a,b} from "P"` specs
// collected by the lexer into a fully-loaded ImportBundle, ready for
// Component E to consume when resolving the local document.
package importresolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jzeiders/graphql-go-gen/internal/docload"
	"github.com/jzeiders/graphql-go-gen/internal/importlex"
	"github.com/jzeiders/graphql-go-gen/internal/resolve"
	"github.com/vektah/gqlparser/v2/ast"
)

// IncludeRule is one "NAME=DIR=PREFIX" entry from the CLI's --include flag:
// NAME is the `@NAME` abbreviation used inside import directives, DIR is the
// directory it expands to, PREFIX is prepended to the emitted import paths
// of fragments sourced through this rule.
type IncludeRule struct {
	Name   string
	Dir    string
	Prefix string
}

// ParseIncludeRules parses the raw --include flag values.
func ParseIncludeRules(raw []string) ([]IncludeRule, error) {
	rules := make([]IncludeRule, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, "=", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --include rule %q: expected NAME=DIR=PREFIX", r)
		}
		rules = append(rules, IncludeRule{Name: parts[0], Dir: parts[1], Prefix: parts[2]})
	}
	return rules, nil
}

func findRule(rules []IncludeRule, name string) (IncludeRule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return IncludeRule{}, false
}

// resolvePath turns a spec's From string into a file path (joined onto the
// matching rule's DIR for "@NAME/..." paths, else onto sourceDir, the
// directory of the file that contains the import directive) and returns it
// with the rule's PREFIX ("" when no rule applies).
func resolvePath(from, sourceDir string, rules []IncludeRule) (string, string, error) {
	if strings.HasPrefix(from, "@") {
		rest := strings.TrimPrefix(from, "@")
		name, tail, _ := strings.Cut(rest, "/")
		rule, ok := findRule(rules, name)
		if !ok {
			return "", "", fmt.Errorf("import references unknown include name %q (no matching --include rule)", name)
		}
		return filepath.Join(rule.Dir, tail), rule.Prefix, nil
	}
	return filepath.Join(sourceDir, from), "", nil
}

// Options configures Resolve.
type Options struct {
	Rules        []IncludeRule
	ScalarMap    map[string]string
	EmbedImports bool
}

// Resolve loads and resolves every import path referenced by importsByFile
// (keyed by the local file path that contains the directive, mapping to the
// specs found in that file), producing one ImportBundle shared across the
// whole local document set.
func Resolve(schema *ast.Schema, importsByFile map[string][]importlex.Spec, opts Options) (*resolve.ImportBundle, error) {
	bundle := &resolve.ImportBundle{
		LoadedImportsMap: make(map[string]*resolve.LoadedImport),
		RawImportData:    make(map[string]*resolve.RawImportData),
		PrefixMap:        make(map[string]string),
		EmbedImports:     opts.EmbedImports,
	}

	type resolvedPath struct {
		path   string
		prefix string
		kind   importlex.Kind
		names  []string
	}

	var paths []resolvedPath
	for file, specs := range importsByFile {
		dir := filepath.Dir(file)
		for _, spec := range specs {
			path, prefix, err := resolvePath(spec.From, dir, opts.Rules)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			paths = append(paths, resolvedPath{path: path, prefix: prefix, kind: spec.Kind, names: spec.Names})
		}
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].path < paths[j].path })

	fragmentOwner := make(map[string]string)

	for _, rp := range paths {
		bundle.PrefixMap[rp.path] = rp.prefix

		if _, already := bundle.RawImportData[rp.path]; already {
			continue
		}

		raw, err := os.ReadFile(rp.path)
		if err != nil {
			return nil, fmt.Errorf("loading import %q: %w", rp.path, err)
		}
		body := string(raw)

		if len(importlex.Scan(body)) > 0 {
			return nil, fmt.Errorf("imported file %q itself contains import directives, which is not supported", rp.path)
		}

		doc, err := docload.ParseString(rp.path, body)
		if err != nil {
			return nil, err
		}

		ctx, err := resolve.Resolve(schema, doc, opts.ScalarMap, nil)
		if err != nil {
			return nil, fmt.Errorf("resolving import %q: %w", rp.path, err)
		}

		for name := range ctx.Fragments {
			if owner, ok := fragmentOwner[name]; ok && owner != rp.path {
				return nil, fmt.Errorf("fragment %q is defined in both %q and %q", name, owner, rp.path)
			}
			fragmentOwner[name] = rp.path
		}

		bundle.RawImportData[rp.path] = &resolve.RawImportData{
			UsedNamedTypes: ctx.UsedNamedTypes,
			FragmentDeps:   ctx.FragmentDeps,
			Fragments:      ctx.Fragments,
		}

		selected := rp.names
		if rp.kind == importlex.All {
			selected = selected[:0]
			for name := range ctx.Fragments {
				selected = append(selected, name)
			}
		}
		for _, name := range selected {
			frag, ok := ctx.Fragments[name]
			if !ok {
				return nil, fmt.Errorf("import %q: fragment %q not found", rp.path, name)
			}
			li := &resolve.LoadedImport{Name: name, SourcePath: rp.path, Fragment: frag.AST, Context: ctx}
			bundle.LoadedImports = append(bundle.LoadedImports, *li)
			bundle.LoadedImportsMap[name] = li
		}
	}

	sort.Slice(bundle.LoadedImports, func(i, j int) bool {
		if bundle.LoadedImports[i].SourcePath != bundle.LoadedImports[j].SourcePath {
			return bundle.LoadedImports[i].SourcePath < bundle.LoadedImports[j].SourcePath
		}
		return bundle.LoadedImports[i].Name < bundle.LoadedImports[j].Name
	})

	return bundle, nil
}
