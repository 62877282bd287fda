// Package documents models GraphQL source documents: the fragments and
// operations loaded from a directory of .graphql files before they are
// handed to the import resolver and type resolver.
package documents

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/vektah/gqlparser/v2/ast"
)

// Document is a single loaded .graphql file: its path, its raw text, the
// parsed query document, and a hash of the raw text. Import directives
// scanned from the text are returned separately by the loader.
type Document struct {
	// FilePath is the path this document was read from, used in error
	// messages ("path:line: message").
	FilePath string

	// Content is the raw file text, exactly as read from disk.
	Content string

	// AST is the parsed document. Nil when the document has not been parsed.
	AST *ast.QueryDocument

	// Hash is the SHA-256 hex digest of Content (see ComputeDocumentHash).
	Hash string
}

// ComputeDocumentHash hashes raw document bytes.
func ComputeDocumentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CollectAllOperations gathers every operation definition (named or
// anonymous) across a set of documents, in document order.
func CollectAllOperations(docs []*Document) []*ast.OperationDefinition {
	var ops []*ast.OperationDefinition
	for _, doc := range docs {
		if doc.AST == nil {
			continue
		}
		ops = append(ops, doc.AST.Operations...)
	}
	return ops
}

// CollectAllFragments gathers every fragment definition across a set of
// documents, in document order.
func CollectAllFragments(docs []*Document) []*ast.FragmentDefinition {
	var frags []*ast.FragmentDefinition
	for _, doc := range docs {
		if doc.AST == nil {
			continue
		}
		frags = append(frags, doc.AST.Fragments...)
	}
	return frags
}
