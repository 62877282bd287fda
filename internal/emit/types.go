// Package emit renders a resolved Context into the generated source tree:
// a single types module, one source file per fragment, and one source file
// per operation (Component F).
package emit

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jzeiders/graphql-go-gen/internal/hosttype"
	"github.com/jzeiders/graphql-go-gen/internal/resolve"
	"github.com/vektah/gqlparser/v2/ast"
)

// Identifier normalizes a GraphQL fragment or operation name into the
// exported host-language identifier used for its declarations and imports.
// GraphQL names are already valid JS identifiers, but casing them through
// strcase guarantees PascalCase even for schemas using snake_case or
// lowerCamel operation names.
func Identifier(name string) string {
	return strcase.ToCamel(name)
}

// Options configures every render function in this package.
type Options struct {
	// JSExtension appends ".js" to relative import specifiers, for projects
	// compiling with Node's ESM resolution rules.
	JSExtension bool
	// UseOptionalMarker controls whether nullable object fields render with
	// a "?" marker in addition to the " | null" union.
	UseOptionalMarker bool
}

// ImportExtension returns ".js" when opts.JSExtension is set, else "".
func (o Options) ImportExtension() string {
	if o.JSExtension {
		return ".js"
	}
	return ""
}

// RenderTypesModule renders the single aggregate types file: sorted
// external-fragment imports, the ArbitraryObjectType escape hatch, every
// used named (enum/input) type, every local fragment/operation result and
// variables type, and a per-operation three-field meta marker. localDir is
// the directory the types file itself lives in, used to compute relative
// import specifiers for fragments sourced through the import bundle.
func RenderTypesModule(schema *ast.Schema, ctx *resolve.Context, bundle *resolve.ImportBundle, localDir string, scalarMap map[string]string, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated. DO NOT EDIT.\n\n")

	embed := bundle != nil && bundle.EmbedImports
	external := make(map[string]bool)
	if !embed && bundle != nil {
		for _, li := range bundle.LoadedImports {
			prefix := bundle.PrefixMap[li.SourcePath]
			path := relativeOrigin(li.SourcePath, localDir)
			fmt.Fprintf(&b, "import type { %sFragment } from \"%s%s/types%s\";\n", Identifier(li.Name), prefix, path, opts.ImportExtension())
			external[li.Name] = true
		}
		if len(bundle.LoadedImports) > 0 {
			b.WriteByte('\n')
		}
	}

	fmt.Fprintf(&b, "export type %s = any;\n\n", resolve.ArbitraryObjectType)

	for _, name := range ctx.SortedUsedNamedTypes() {
		def, ok := schema.Types[name]
		if !ok {
			continue
		}
		switch def.Kind {
		case ast.Enum:
			b.WriteString(renderEnum(def))
		case ast.InputObject:
			b.WriteString(renderInputObject(def, scalarMap, opts))
		}
		b.WriteByte('\n')
	}

	for _, name := range ctx.SortedFragmentNames() {
		if external[name] {
			continue
		}
		entry := ctx.Fragments[name]
		ident := Identifier(name)
		b.WriteString(hosttype.RenderDeclaration(ident+"Fragment", entry.HostType, opts.UseOptionalMarker))
		b.WriteString("\n\n")
	}

	for _, name := range ctx.SortedOperationNames() {
		entry := ctx.Operations[name]
		ident := Identifier(name)
		b.WriteString(hosttype.RenderDeclaration(ident, entry.Result, opts.UseOptionalMarker))
		b.WriteString("\n\n")
		b.WriteString(hosttype.RenderDeclaration(ident+"Variables", entry.Variables, true))
		b.WriteString("\n\n")
		b.WriteString(renderOperationMeta(ident))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// renderOperationMeta renders the three-field meta marker type for an
// operation: phantom references to its result and variables types, plus an
// opaque tag string identifying the marker's own shape.
func renderOperationMeta(name string) string {
	return fmt.Sprintf(
		"export type %sMeta = {\n  __resultType: %s;\n  __variablesType: %sVariables;\n  __apiType: \"graphql-operation\";\n};",
		name, name, name,
	)
}

func renderEnum(def *ast.Definition) string {
	values := make([]string, len(def.EnumValues))
	for i, v := range def.EnumValues {
		values[i] = fmt.Sprintf("%q", v.Name)
	}
	return fmt.Sprintf("export type %s = %s;\n", def.Name, strings.Join(values, " | "))
}

func renderInputObject(def *ast.Definition, scalarMap map[string]string, opts Options) string {
	fields := make([]hosttype.Field, 0, len(def.Fields))
	for _, f := range def.Fields {
		fields = append(fields, hosttype.Field{Name: f.Name, Type: inputFieldType(f, scalarMap)})
	}
	body := hosttype.NewObject(fields, false)
	return hosttype.RenderDeclaration(def.Name, body, true) + "\n"
}

func inputFieldType(f *ast.FieldDefinition, scalarMap map[string]string) *hosttype.Type {
	t := f.Type
	nullable := !t.NonNull
	if t.Elem != nil {
		return hosttype.NewArray(inputFieldType(&ast.FieldDefinition{Type: t.Elem}, scalarMap), nullable)
	}
	name := builtinOrCustomScalar(t.NamedType, scalarMap)
	return hosttype.NewNamed(name, nullable)
}

func builtinOrCustomScalar(name string, scalarMap map[string]string) string {
	builtins := map[string]string{"String": "string", "Int": "number", "Float": "number", "Boolean": "boolean", "ID": "string"}
	if v, ok := builtins[name]; ok {
		return v
	}
	if scalarMap != nil {
		if v, ok := scalarMap[name]; ok {
			return v
		}
	}
	return name
}
