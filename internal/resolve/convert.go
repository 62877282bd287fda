package resolve

import (
	"fmt"

	"github.com/jzeiders/graphql-go-gen/internal/hosttype"
	"github.com/vektah/gqlparser/v2/ast"
)

// wrapType handles the NonNull/List wrapping common to both variable types
// and selection field types; leaf converts the innermost named type.
func wrapType(t *ast.Type, leaf func(named *ast.Type, nullable bool) (*hosttype.Type, error)) (*hosttype.Type, error) {
	nullable := !t.NonNull
	if t.Elem != nil {
		inner, err := wrapType(t.Elem, leaf)
		if err != nil {
			return nil, err
		}
		return hosttype.NewArray(inner, nullable), nil
	}
	return leaf(t, nullable)
}

// scalarHostName maps a GraphQL scalar name to its host-language name,
// falling back to the configured scalar map and finally to
// ArbitraryObjectType.
func (res *resolver) scalarHostName(name string) string {
	if v, ok := builtinScalars[name]; ok {
		return v
	}
	if res.scalarMap != nil {
		if v, ok := res.scalarMap[name]; ok {
			return v
		}
	}
	return ArbitraryObjectType
}

// convertVariableType converts a variable (or input-object field) type
// node. expand is true only for top-level input declarations that must be
// rendered as an inline object rather than a Named reference.
func (res *resolver) convertVariableType(t *ast.Type, expand bool) (*hosttype.Type, error) {
	return wrapType(t, func(named *ast.Type, nullable bool) (*hosttype.Type, error) {
		return res.convertVariableLeaf(named.NamedType, nullable, expand)
	})
}

func (res *resolver) convertVariableLeaf(name string, nullable bool, expand bool) (*hosttype.Type, error) {
	def, ok := res.schema.Types[name]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}

	switch def.Kind {
	case ast.Enum:
		res.ctx.UsedNamedTypes[name] = true
		return hosttype.NewNamed(name, nullable), nil
	case ast.Scalar:
		return hosttype.NewNamed(res.scalarHostName(name), nullable), nil
	case ast.InputObject:
		res.ctx.UsedNamedTypes[name] = true
		if !expand {
			return hosttype.NewNamed(name, nullable), nil
		}
		fields := make([]hosttype.Field, 0, len(def.Fields))
		for _, f := range def.Fields {
			ft, err := res.convertVariableType(f.Type, false)
			if err != nil {
				return nil, fmt.Errorf("input field %s.%s: %w", name, f.Name, err)
			}
			fields = append(fields, hosttype.Field{Name: f.Name, Type: ft})
		}
		return hosttype.NewObject(fields, nullable), nil
	default:
		return nil, fmt.Errorf("type %q (kind %s) cannot be used as a variable type", name, def.Kind)
	}
}

// convertSelectionSet converts a selection set against the schema type def
// it is selecting on: §4.C/§4.E's Object/Intersection/single-spread rules.
func (res *resolver) convertSelectionSet(def *ast.Definition, sel ast.SelectionSet, nullable bool) (*hosttype.Type, error) {
	if len(sel) == 1 {
		if spread, ok := sel[0].(*ast.FragmentSpread); ok {
			if _, found := res.imports.FindFragment(spread.Name, res.ctx.Fragments); !found {
				return nil, fmt.Errorf("fragment %q is not defined locally or in any import", spread.Name)
			}
			return hosttype.NewNamed(spread.Name+"Fragment", nullable), nil
		}
	}

	var fields []hosttype.Field
	var spreadRefs []*hosttype.Type

	for _, selection := range sel {
		switch v := selection.(type) {
		case *ast.Field:
			name := v.Name
			if v.Alias != "" {
				name = v.Alias
			}
			ft, err := res.convertFieldType(def, v)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", def.Name, v.Name, err)
			}
			fields = append(fields, hosttype.Field{Name: name, Type: ft})
		case *ast.FragmentSpread:
			entry, found := res.imports.FindFragment(v.Name, res.ctx.Fragments)
			if !found {
				return nil, fmt.Errorf("fragment %q is not defined locally or in any import", v.Name)
			}
			if entry.HostType.Kind != hosttype.Object && entry.HostType.Kind != hosttype.Intersection {
				return nil, fmt.Errorf("fragment %q does not resolve to an object or intersection type", v.Name)
			}
			spreadRefs = append(spreadRefs, hosttype.NewNamed(v.Name+"Fragment", false))
		case *ast.InlineFragment:
			return nil, fmt.Errorf("inline fragment spreads are not implemented yet")
		}
	}

	local := hosttype.NewObject(fields, false)
	if len(spreadRefs) == 0 {
		local.Nullable = nullable
		return local, nil
	}

	members := append(append([]*hosttype.Type{}, spreadRefs...), local)
	return hosttype.NewIntersection(members, nullable), nil
}

// convertFieldType resolves a single selected field's type, dispatching on
// whether the schema field itself carries a selection set.
func (res *resolver) convertFieldType(parent *ast.Definition, field *ast.Field) (*hosttype.Type, error) {
	if field.Name == "__typename" {
		return hosttype.NewNamed("string", false), nil
	}

	fieldDef := findFieldDefinition(parent, field.Name, res.schema)
	if fieldDef == nil {
		return nil, fmt.Errorf("unknown field %q on type %q", field.Name, parent.Name)
	}

	return wrapType(fieldDef.Type, func(named *ast.Type, nullable bool) (*hosttype.Type, error) {
		name := named.NamedType
		def, ok := res.schema.Types[name]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", name)
		}
		switch def.Kind {
		case ast.Enum:
			res.ctx.UsedNamedTypes[name] = true
			return hosttype.NewNamed(name, nullable), nil
		case ast.Scalar:
			return hosttype.NewNamed(res.scalarHostName(name), nullable), nil
		case ast.Object, ast.Interface, ast.Union:
			return res.convertSelectionSet(def, field.SelectionSet, nullable)
		default:
			return nil, fmt.Errorf("cannot select fields on type %q (kind %s)", name, def.Kind)
		}
	})
}

// findFieldDefinition looks up a field by name on an object/interface type's
// own fields, returning nil when there is none (__typename is handled
// separately by the caller).
func findFieldDefinition(def *ast.Definition, name string, schema *ast.Schema) *ast.FieldDefinition {
	for _, f := range def.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// closeUsedNamedTypes walks the transitive input-object/enum dependency
// graph of every already-recorded used type, per spec §4.E's "Used-named-
// types closure".
func closeUsedNamedTypes(schema *ast.Schema, used map[string]bool) {
	queue := make([]string, 0, len(used))
	for name := range used {
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		def, ok := schema.Types[name]
		if !ok || def.Kind != ast.InputObject {
			continue
		}
		for _, f := range def.Fields {
			leaf := leafNamedTypeName(f.Type)
			if leaf == "" {
				continue
			}
			leafDef, ok := schema.Types[leaf]
			if !ok {
				continue
			}
			if leafDef.Kind != ast.Enum && leafDef.Kind != ast.InputObject {
				continue
			}
			if !used[leaf] {
				used[leaf] = true
				queue = append(queue, leaf)
			}
		}
	}
}

func leafNamedTypeName(t *ast.Type) string {
	for t.Elem != nil {
		t = t.Elem
	}
	return t.NamedType
}
