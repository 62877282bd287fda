package emit

import (
	"path/filepath"
	"strings"
)

// relativeOrigin computes the relative directory specifier from baseDir to
// the directory containing sourcePath, in forward-slash import form, e.g.
// "../shared". Every import bundle entry's SourcePath is the .graphql file
// an import resolved to, whose directory doubles as that import's own
// generated output directory (the same convention the local `graphql
// <directory>` invocation follows).
func relativeOrigin(sourcePath, baseDir string) string {
	rel, err := filepath.Rel(baseDir, filepath.Dir(sourcePath))
	if err != nil {
		rel = filepath.Dir(sourcePath)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "."
	}
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}
