package schemaload

import (
	"fmt"
	"sort"
	"strings"
)

// IntrospectionQuery is POSTed with descriptions:false,
// inputValueDeprecation:false to keep the response small — this tool never
// renders descriptions or deprecation reasons into generated code.
const IntrospectionQuery = `
query IntrospectionQuery($descriptions: Boolean = false, $inputValueDeprecation: Boolean = false) {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
  }
}

fragment FullType on __Type {
  kind
  name
  fields(includeDeprecated: true) {
    name
    args(includeDeprecated: $inputValueDeprecation) {
      ...InputValue
    }
    type { ...TypeRef }
    isDeprecated
  }
  inputFields(includeDeprecated: $inputValueDeprecation) {
    ...InputValue
  }
  interfaces { ...TypeRef }
  enumValues(includeDeprecated: true) {
    name
    isDeprecated
  }
  possibleTypes { ...TypeRef }
}

fragment InputValue on __InputValue {
  name
  type { ...TypeRef }
  defaultValue
}

fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType { kind name }
            }
          }
        }
      }
    }
  }
}
`

// TypeRef mirrors __Type's wrapping chain.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

// String renders the TypeRef as GraphQL type syntax, e.g. "[String!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case "NON_NULL":
		return t.OfType.String() + "!"
	case "LIST":
		return "[" + t.OfType.String() + "]"
	default:
		return t.Name
	}
}

// InputValue is an argument or input-object field.
type InputValue struct {
	Name         string   `json:"name"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

// Field is an object/interface field.
type Field struct {
	Name         string       `json:"name"`
	Args         []InputValue `json:"args"`
	Type         *TypeRef     `json:"type"`
	IsDeprecated bool         `json:"isDeprecated"`
}

// EnumValue is one member of an enum type.
type EnumValue struct {
	Name         string `json:"name"`
	IsDeprecated bool   `json:"isDeprecated"`
}

// FullType is one entry of __schema.types.
type FullType struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Fields        []Field      `json:"fields"`
	InputFields   []InputValue `json:"inputFields"`
	Interfaces    []TypeRef    `json:"interfaces"`
	EnumValues    []EnumValue  `json:"enumValues"`
	PossibleTypes []TypeRef    `json:"possibleTypes"`
}

// SchemaResult is the unwrapped __schema object.
type SchemaResult struct {
	QueryType        *TypeRef   `json:"queryType"`
	MutationType     *TypeRef   `json:"mutationType"`
	SubscriptionType *TypeRef   `json:"subscriptionType"`
	Types            []FullType `json:"types"`
}

// IntrospectionResponse is the top-level GraphQL response envelope.
type IntrospectionResponse struct {
	Data struct {
		Schema SchemaResult `json:"__schema"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// builtinScalarNames are never re-declared in the rendered SDL.
var builtinScalarNames = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
}

// introspectionMetaPrefix marks the reflection types (__Schema, __Type,
// etc.) that never belong in rendered SDL.
const introspectionMetaPrefix = "__"

// RenderSDL converts an introspected schema into SDL text gqlparser can
// parse with parser.ParseSchema.
func RenderSDL(s SchemaResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "schema {\n")
	if s.QueryType != nil {
		fmt.Fprintf(&b, "  query: %s\n", s.QueryType.Name)
	}
	if s.MutationType != nil {
		fmt.Fprintf(&b, "  mutation: %s\n", s.MutationType.Name)
	}
	if s.SubscriptionType != nil {
		fmt.Fprintf(&b, "  subscription: %s\n", s.SubscriptionType.Name)
	}
	b.WriteString("}\n\n")

	types := make([]FullType, 0, len(s.Types))
	for _, t := range s.Types {
		if strings.HasPrefix(t.Name, introspectionMetaPrefix) || builtinScalarNames[t.Name] {
			continue
		}
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })

	for _, t := range types {
		renderType(&b, t)
	}

	return b.String()
}

func renderType(b *strings.Builder, t FullType) {
	switch t.Kind {
	case "SCALAR":
		fmt.Fprintf(b, "scalar %s\n\n", t.Name)
	case "ENUM":
		fmt.Fprintf(b, "enum %s {\n", t.Name)
		for _, v := range t.EnumValues {
			fmt.Fprintf(b, "  %s\n", v.Name)
		}
		b.WriteString("}\n\n")
	case "INPUT_OBJECT":
		fmt.Fprintf(b, "input %s {\n", t.Name)
		for _, f := range t.InputFields {
			fmt.Fprintf(b, "  %s: %s%s\n", f.Name, f.Type.String(), defaultValueSuffix(f.DefaultValue))
		}
		b.WriteString("}\n\n")
	case "OBJECT":
		implements := implementsClause(t.Interfaces)
		fmt.Fprintf(b, "type %s%s {\n", t.Name, implements)
		renderFields(b, t.Fields)
		b.WriteString("}\n\n")
	case "INTERFACE":
		implements := implementsClause(t.Interfaces)
		fmt.Fprintf(b, "interface %s%s {\n", t.Name, implements)
		renderFields(b, t.Fields)
		b.WriteString("}\n\n")
	case "UNION":
		names := make([]string, len(t.PossibleTypes))
		for i, p := range t.PossibleTypes {
			names[i] = p.Name
		}
		fmt.Fprintf(b, "union %s = %s\n\n", t.Name, strings.Join(names, " | "))
	}
}

func implementsClause(interfaces []TypeRef) string {
	if len(interfaces) == 0 {
		return ""
	}
	names := make([]string, len(interfaces))
	for i, it := range interfaces {
		names[i] = it.Name
	}
	return " implements " + strings.Join(names, " & ")
}

func renderFields(b *strings.Builder, fields []Field) {
	for _, f := range fields {
		args := ""
		if len(f.Args) > 0 {
			parts := make([]string, len(f.Args))
			for i, a := range f.Args {
				parts[i] = fmt.Sprintf("%s: %s%s", a.Name, a.Type.String(), defaultValueSuffix(a.DefaultValue))
			}
			args = "(" + strings.Join(parts, ", ") + ")"
		}
		fmt.Fprintf(b, "  %s%s: %s\n", f.Name, args, f.Type.String())
	}
}

func defaultValueSuffix(v *string) string {
	if v == nil {
		return ""
	}
	return " = " + *v
}
