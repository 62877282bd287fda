package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jzeiders/graphql-go-gen/internal/hosttype"
	"github.com/vektah/gqlparser/v2/ast"
)

// builtinScalars is the fixed scalar map of spec §3.
var builtinScalars = map[string]string{
	"String":  "string",
	"Int":     "number",
	"Float":   "number",
	"Boolean": "boolean",
	"ID":      "string",
}

// ArbitraryObjectType is the opaque alias name emitted once for any scalar
// without a known or configured mapping.
const ArbitraryObjectType = "ArbitraryObjectType"

type resolver struct {
	schema    *ast.Schema
	scalarMap map[string]string
	ctx       *Context
	imports   *ImportBundle
}

// Resolve runs the fixpoint loop over doc's fragments and operations,
// producing a Context. scalarMap overrides the built-in scalar table for
// custom scalars (anything absent from both becomes ArbitraryObjectType).
// imports may be nil for a document with no import directives.
func Resolve(schema *ast.Schema, doc *ast.QueryDocument, scalarMap map[string]string, imports *ImportBundle) (*Context, error) {
	ctx := NewContext()
	seedFromImports(ctx, imports)

	res := &resolver{schema: schema, scalarMap: scalarMap, ctx: ctx, imports: imports}

	type item struct {
		name     string
		isOp     bool
		resolved bool
		lastErr  error
	}

	fragByName := make(map[string]*ast.FragmentDefinition, len(doc.Fragments))
	for _, f := range doc.Fragments {
		fragByName[f.Name] = f
	}
	opByName := make(map[string]*ast.OperationDefinition, len(doc.Operations))

	items := make([]*item, 0, len(doc.Fragments)+len(doc.Operations))
	for _, f := range doc.Fragments {
		items = append(items, &item{name: f.Name})
	}
	for _, o := range doc.Operations {
		hostName := OperationHostName(o)
		opByName[hostName] = o
		items = append(items, &item{name: hostName, isOp: true})
	}

	for {
		progressed := 0
		for _, it := range items {
			if it.resolved {
				continue
			}
			var err error
			if it.isOp {
				err = res.resolveOperation(opByName[it.name])
			} else {
				err = res.resolveFragment(fragByName[it.name])
			}
			if err != nil {
				it.lastErr = err
				continue
			}
			it.resolved = true
			progressed++
		}

		var remaining []string
		for _, it := range items {
			if !it.resolved {
				remaining = append(remaining, fmt.Sprintf("%s: %v", it.name, it.lastErr))
			}
		}
		if len(remaining) == 0 {
			break
		}
		if progressed == 0 {
			sort.Strings(remaining)
			return nil, fmt.Errorf("could not resolve all definitions:\n%s", strings.Join(remaining, "\n"))
		}
	}

	closeUsedNamedTypes(schema, ctx.UsedNamedTypes)
	return ctx, nil
}

// OperationHostName computes "<opname><Query|Mutation|Subscription>".
func OperationHostName(op *ast.OperationDefinition) string {
	suffix := "Query"
	switch op.Operation {
	case ast.Mutation:
		suffix = "Mutation"
	case ast.Subscription:
		suffix = "Subscription"
	}
	return op.Name + suffix
}

func (res *resolver) resolveOperation(op *ast.OperationDefinition) error {
	root := res.rootForOperation(op.Operation)
	if root == nil {
		return fmt.Errorf("schema has no root type for %s operations", op.Operation)
	}

	result, err := res.convertSelectionSet(root, op.SelectionSet, false)
	if err != nil {
		return err
	}
	result = forceNonNullTop(result)

	varFields := make([]hosttype.Field, 0, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		vt, err := res.convertVariableType(v.Type, false)
		if err != nil {
			return fmt.Errorf("variable $%s: %w", v.Variable, err)
		}
		varFields = append(varFields, hosttype.Field{Name: v.Variable, Type: vt})
	}
	variables := hosttype.NewObject(varFields, false)

	res.ctx.Operations[OperationHostName(op)] = OperationEntry{
		Result:    result,
		Variables: variables,
		AST:       op,
	}
	return nil
}

func (res *resolver) resolveFragment(frag *ast.FragmentDefinition) error {
	typeCond, ok := res.schema.Types[frag.TypeCondition]
	if !ok {
		return fmt.Errorf("unknown type condition %q for fragment %q", frag.TypeCondition, frag.Name)
	}

	t, err := res.convertSelectionSet(typeCond, frag.SelectionSet, false)
	if err != nil {
		return err
	}
	t = forceNonNullTop(t)

	res.ctx.Fragments[frag.Name] = FragmentEntry{HostType: t, AST: frag}
	res.ctx.FragmentDeps[frag.Name] = directFragmentDeps(frag.SelectionSet)
	return nil
}

func (res *resolver) rootForOperation(op ast.Operation) *ast.Definition {
	switch op {
	case ast.Query:
		return res.schema.Query
	case ast.Mutation:
		return res.schema.Mutation
	case ast.Subscription:
		return res.schema.Subscription
	default:
		return nil
	}
}

// forceNonNullTop applies the top-level "non-null hack" of spec §3: a
// result, variables object, or fragment body is always non-nullable
// regardless of the GraphQL wrapper.
func forceNonNullTop(t *hosttype.Type) *hosttype.Type {
	if t == nil || !t.Nullable {
		return t
	}
	clone := *t
	clone.Nullable = false
	return &clone
}

// directFragmentDeps collects every fragment name spread anywhere within
// sel (including nested sub-selections), sorted and deduplicated.
func directFragmentDeps(sel ast.SelectionSet) []string {
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
