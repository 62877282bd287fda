// Package hosttype is the algebraic model of what the emitter writes out:
// the host-language type a GraphQL selection, variable, or named type
// resolves to. It is pure data plus rendering — the resolver (Component E)
// builds values of this type, the emitter (Component F) renders them.
package hosttype

import (
	"fmt"
	"sort"
	"strings"
)

// Kind tags the four variants of the sum.
type Kind int

const (
	// Named references a declared type by name: a scalar alias, an enum, an
	// input object, or a fragment's generated type (<Name>Fragment).
	Named Kind = iota
	// Object is a literal field set.
	Object
	// Array wraps a single element type.
	Array
	// Intersection is a sequence of members combined with "&".
	Intersection
)

// Field is one entry of an Object, in insertion order as built by the
// resolver; Render sorts by name at emission time.
type Field struct {
	Name string
	Type *Type
}

// Type is the tagged union described in spec §3. Only the fields relevant
// to Kind are populated; zero values are permissible and ignored for the
// other variants.
type Type struct {
	Kind     Kind
	Nullable bool

	// Named
	Name string

	// Object
	Fields []Field

	// Array
	Element *Type

	// Intersection. Members never carry their own Nullable — cleared at
	// construction time; nullability lives on the Intersection node.
	Members []*Type
}

// NewNamed builds a Named reference.
func NewNamed(name string, nullable bool) *Type {
	return &Type{Kind: Named, Name: name, Nullable: nullable}
}

// NewObject builds an Object from an ordered field list.
func NewObject(fields []Field, nullable bool) *Type {
	return &Type{Kind: Object, Fields: fields, Nullable: nullable}
}

// NewArray wraps an element type.
func NewArray(element *Type, nullable bool) *Type {
	return &Type{Kind: Array, Element: element, Nullable: nullable}
}

// NewIntersection builds an Intersection. Each member's own Nullable is
// cleared, per spec §4.C: "the intersection's members carry no nullable
// flag — nullability lives on the intersection itself."
func NewIntersection(members []*Type, nullable bool) *Type {
	cleared := make([]*Type, len(members))
	for i, m := range members {
		clone := *m
		clone.Nullable = false
		cleared[i] = &clone
	}
	return &Type{Kind: Intersection, Members: cleared, Nullable: nullable}
}

// IsObjectLiteral reports whether t renders starting with "{" — the single
// toggle spec §4.F uses to decide between an interface-like declaration and
// a type-alias declaration.
func (t *Type) IsObjectLiteral() bool {
	return t != nil && t.Kind == Object
}

// Render produces the host-language expression for t, including the
// trailing " | null" when Nullable. useOptionalMarker controls whether
// nested Object fields that are themselves nullable also gain a "?" marker
// (true for variables and input-object bodies; false for operation result
// fields, where nullability is the null union alone).
func (t *Type) Render(useOptionalMarker bool) string {
	if t == nil {
		return "never"
	}

	var body string
	switch t.Kind {
	case Named:
		body = t.Name
	case Object:
		body = t.renderObjectBody(useOptionalMarker)
	case Array:
		body = fmt.Sprintf("Array<%s>", t.Element.Render(useOptionalMarker))
	case Intersection:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.Render(useOptionalMarker)
		}
		body = fmt.Sprintf("(%s)", strings.Join(parts, " & "))
	default:
		body = "unknown"
	}

	if t.Nullable {
		return body + " | null"
	}
	return body
}

func (t *Type) renderObjectBody(useOptionalMarker bool) string {
	fields := make([]Field, len(t.Fields))
	copy(fields, t.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	rendered := make([]string, len(fields))
	for i, f := range fields {
		marker := ""
		if useOptionalMarker && f.Type != nil && f.Type.Nullable {
			marker = "?"
		}
		rendered[i] = fmt.Sprintf("%s%s: %s", f.Name, marker, f.Type.Render(useOptionalMarker))
	}
	return "{ " + strings.Join(rendered, "; ") + " }"
}

// RenderDeclaration renders a top-level named declaration, choosing between
// an interface-like body (when t is a literal Object) and a type alias
// (everything else), per spec §4.F's "starts with {?" rule.
func RenderDeclaration(name string, t *Type, useOptionalMarker bool) string {
	if t.IsObjectLiteral() {
		return fmt.Sprintf("interface %s %s", name, t.renderObjectBody(useOptionalMarker))
	}
	return fmt.Sprintf("type %s = %s;", name, t.Render(useOptionalMarker))
}
