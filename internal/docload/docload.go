// Package docload reads .graphql files from disk, applies the import-lexer
// to their raw text, parses them, and runs a customized validation rule set
// against a schema (Component B of the design).
package docload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jzeiders/graphql-go-gen/internal/importlex"
	"github.com/jzeiders/graphql-go-gen/pkg/documents"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// strippedRules are removed from gqlparser's default rule set per spec
// §4.B, to allow the cross-file duplication patterns and custom directives
// this tool's documents rely on.
var strippedRules = []string{"UniqueOperationNames", "KnownDirectives"}

var stripOnce sync.Once

func stripDefaultRules() {
	stripOnce.Do(func() {
		for _, name := range strippedRules {
			validator.RemoveRule(name)
		}
	})
}

// Options configures a Load call.
type Options struct {
	// AllowUnusedFragments, when true, additionally strips the
	// NoUnusedFragments rule (the CLI's --allow-unused-fragments flag).
	AllowUnusedFragments bool
}

var unusedFragmentsOnce sync.Once

func stripUnusedFragmentsRule() {
	unusedFragmentsOnce.Do(func() {
		validator.RemoveRule("NoUnusedFragments")
	})
}

// LoadDir reads every *.graphql and *.gql file under dir (recursively), scans each for
// import directives, parses each file's body, and returns one Document per
// file plus the import specs keyed by file path. It does not validate —
// call Validate separately once all local files (and any import bundles)
// are known.
func LoadDir(dir string) ([]*documents.Document, map[string][]importlex.Spec, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".graphql") || strings.HasSuffix(path, ".gql") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	docs := make([]*documents.Document, 0, len(paths))
	imports := make(map[string][]importlex.Spec)

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", path, err)
		}

		specs := importlex.Scan(string(raw))
		if len(specs) > 0 {
			imports[path] = specs
		}

		doc, err := parser.ParseQuery(&ast.Source{Name: path, Input: string(raw)})
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}

		docs = append(docs, &documents.Document{
			FilePath: path,
			Content:  string(raw),
			AST:      doc,
			Hash:     documents.ComputeDocumentHash(raw),
		})
	}

	return docs, imports, nil
}

// ParseString parses a single GraphQL source body, used by the import
// resolver when materializing foreign fragment files.
func ParseString(path, body string) (*ast.QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: path, Input: body})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Merge concatenates a set of parsed documents into one, rejecting
// duplicate fragment or operation names (spec §3's global-uniqueness
// invariant).
func Merge(docs []*documents.Document) (*ast.QueryDocument, error) {
	merged := &ast.QueryDocument{}
	seenFrag := make(map[string]string)
	seenOp := make(map[string]string)

	for _, doc := range docs {
		if doc.AST == nil {
			continue
		}
		for _, frag := range doc.AST.Fragments {
			if existing, ok := seenFrag[frag.Name]; ok {
				return nil, fmt.Errorf("%s: duplicate fragment %q (first defined in %s)", doc.FilePath, frag.Name, existing)
			}
			seenFrag[frag.Name] = doc.FilePath
			merged.Fragments = append(merged.Fragments, frag)
		}
		for _, op := range doc.AST.Operations {
			if op.Name != "" {
				if existing, ok := seenOp[op.Name]; ok {
					return nil, fmt.Errorf("%s: duplicate operation %q (first defined in %s)", doc.FilePath, op.Name, existing)
				}
				seenOp[op.Name] = doc.FilePath
			}
			merged.Operations = append(merged.Operations, op)
		}
	}
	return merged, nil
}

// Validate runs gqlparser's standard validation rule set (minus the two
// stripped rules, and minus NoUnusedFragments when opts.AllowUnusedFragments
// is set) plus the anonymous-operation check added by spec §4.B. Errors are
// formatted "path:line: message", one per line, and returned joined; the
// caller aborts the run on any non-nil error.
func Validate(schema *ast.Schema, doc *ast.QueryDocument, opts Options) error {
	stripDefaultRules()
	if opts.AllowUnusedFragments {
		stripUnusedFragmentsRule()
	}

	var messages []string

	for _, op := range doc.Operations {
		if op.Name == "" {
			messages = append(messages, formatLoc(op.Position)+"Script does not support anonymous operations.")
		}
	}

	if errs := validator.Validate(schema, doc); errs != nil {
		for _, e := range errs {
			messages = append(messages, formatGqlError(e))
		}
	}

	if len(messages) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(messages, "\n"))
	}
	return nil
}

func formatLoc(pos *ast.Position) string {
	if pos == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d: ", pos.Src.Name, pos.Line)
}

func formatGqlError(e *gqlerror.Error) string {
	if len(e.Locations) > 0 {
		loc := e.Locations[0]
		path, _ := e.Extensions["file"].(string)
		if path == "" {
			path = "?"
		}
		return fmt.Sprintf("%s:%d: %s", path, loc.Line, e.Message)
	}
	return e.Message
}
