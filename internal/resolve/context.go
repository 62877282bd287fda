// Package resolve implements the fixpoint type resolver (Component E): it
// converts a GraphQL document's operations and fragments into host types,
// accumulating the set of transitively-used named input/enum types and the
// direct fragment-dependency list of every fragment.
package resolve

import (
	"sort"

	"github.com/jzeiders/graphql-go-gen/internal/hosttype"
	"github.com/vektah/gqlparser/v2/ast"
)

// FragmentEntry is one resolved fragment.
type FragmentEntry struct {
	HostType *hosttype.Type
	AST      *ast.FragmentDefinition
}

// OperationEntry is one resolved operation.
type OperationEntry struct {
	Result    *hosttype.Type
	Variables *hosttype.Type
	AST       *ast.OperationDefinition
}

// Context is the ResolvedContext described in spec §3.
type Context struct {
	UsedNamedTypes map[string]bool
	Fragments      map[string]FragmentEntry
	FragmentDeps   map[string][]string
	Operations     map[string]OperationEntry
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{
		UsedNamedTypes: make(map[string]bool),
		Fragments:      make(map[string]FragmentEntry),
		FragmentDeps:   make(map[string][]string),
		Operations:     make(map[string]OperationEntry),
	}
}

// SortedUsedNamedTypes returns UsedNamedTypes' keys, sorted.
func (c *Context) SortedUsedNamedTypes() []string {
	names := make([]string, 0, len(c.UsedNamedTypes))
	for n := range c.UsedNamedTypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SortedFragmentNames returns Fragments' keys, sorted.
func (c *Context) SortedFragmentNames() []string {
	names := make([]string, 0, len(c.Fragments))
	for n := range c.Fragments {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SortedOperationNames returns Operations' keys, sorted.
func (c *Context) SortedOperationNames() []string {
	names := make([]string, 0, len(c.Operations))
	for n := range c.Operations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
