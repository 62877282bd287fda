package contentmodel

import (
	"fmt"
	"sort"
	"strings"
)

// runtimeHelpers are the small validator-factory functions every generated
// module carries locally, so the mapping object below can compose them into
// per-schema expressions without depending on an external runtime package.
const runtimeHelpers = `function stringValidator() {
  return (value) => {
    if (typeof value !== "string") throw new Error("expected a string");
    return value;
  };
}
function numberValidator() {
  return (value) => {
    if (typeof value !== "number") throw new Error("expected a number");
    return value;
  };
}
function booleanValidator() {
  return (value) => {
    if (typeof value !== "boolean") throw new Error("expected a boolean");
    return value;
  };
}
function enumValidator(values) {
  return (value) => {
    if (!values.includes(value)) throw new Error("expected one of " + values.join(", "));
    return value;
  };
}
function recordValidator(fields) {
  return (value) => {
    for (const key of Object.keys(fields)) {
      fields[key](value[key]);
    }
    return value;
  };
}
function requiredValidator(inner) {
  return (value) => {
    if (value === undefined || value === null) throw new Error("value is required");
    return inner(value);
  };
}
`

// RenderValidatorsModule renders a single module declaring a mapping from
// every schema's name to a runtime-validator expression: strings and
// datetimes emit a string validator (or enum validator when a string
// declares validation.enum — datetime never branches on one), numbers and
// booleans emit their primitive validators, and objects emit a record
// validator keyed by each field's declared name.
func RenderValidatorsModule(schemas []Schema) string {
	sorted := append([]Schema(nil), schemas...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated. DO NOT EDIT.\n\n")
	b.WriteString(runtimeHelpers)
	b.WriteString("\nexport const contentModelValidators = {\n")
	for _, s := range sorted {
		effType := s.Type
		if effType == "" {
			effType = TypeObject
		}
		fmt.Fprintf(&b, "  %q: %s,\n", s.Name, validatorExpr(effType, s.Validation, s.Fields, false))
	}
	b.WriteString("};\n")
	return b.String()
}

// validatorExpr renders the runtime-validator expression for one closed
// type/validation/fields triple, shared between top-level schemas and
// nested object fields.
func validatorExpr(t FieldType, validation Validation, fields []Field, required bool) string {
	var expr string
	switch t {
	case TypeString:
		if len(validation.Enum) > 0 {
			expr = fmt.Sprintf("enumValidator([%s])", quoteList(validation.Enum))
		} else {
			expr = "stringValidator()"
		}
	case TypeDatetime:
		// Always a string validator: a datetime field never branches on a
		// declared enum, even if one is present in the schema.
		expr = "stringValidator()"
	case TypeNumber:
		expr = "numberValidator()"
	case TypeBoolean:
		expr = "booleanValidator()"
	case TypeObject:
		expr = recordValidatorExpr(fields)
	default:
		expr = "stringValidator()"
	}
	if required {
		return fmt.Sprintf("requiredValidator(%s)", expr)
	}
	return expr
}

func recordValidatorExpr(fields []Field) string {
	var b strings.Builder
	b.WriteString("recordValidator({\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "    %q: %s,\n", f.Name, validatorExpr(f.Type, f.Validation, f.Fields, f.Required))
	}
	b.WriteString("  })")
	return b.String()
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
