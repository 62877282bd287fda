package contentmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchemas(t *testing.T) {
	raw := `[{"name":"Article","fields":[{"name":"title","type":"string","required":true}]}]`
	schemas, err := ParseSchemas([]byte(raw))
	require.NoError(t, err)
	require.Len(t, schemas, 1)
	assert.Equal(t, "Article", schemas[0].Name)
	assert.True(t, schemas[0].Fields[0].Required)
}

func TestRenderValidatorsModuleDatetimeAlwaysString(t *testing.T) {
	s := Schema{
		Name: "Event",
		Fields: []Field{
			{Name: "startsAt", Type: TypeDatetime, Validation: Validation{Enum: []string{"should-be-ignored"}}},
		},
	}
	out := RenderValidatorsModule([]Schema{s})
	assert.Contains(t, out, `"startsAt": stringValidator()`)
	assert.NotContains(t, out, "should-be-ignored")
}

func TestRenderValidatorsModuleStringEnum(t *testing.T) {
	s := Schema{
		Name: "Color",
		Type: TypeString,
		Validation: Validation{
			Enum: []string{"red", "blue"},
		},
	}
	out := RenderValidatorsModule([]Schema{s})
	assert.Contains(t, out, `"Color": enumValidator(["red", "blue"])`)
}

func TestRenderValidatorsModuleNestedObject(t *testing.T) {
	s := Schema{
		Name: "Article",
		Fields: []Field{
			{Name: "author", Type: TypeObject, Fields: []Field{
				{Name: "name", Type: TypeString, Required: true},
			}},
		},
	}
	out := RenderValidatorsModule([]Schema{s})
	assert.Contains(t, out, `"author": recordValidator({`)
	assert.Contains(t, out, `"name": requiredValidator(stringValidator())`)
}

func TestRenderValidatorsModuleSortsByName(t *testing.T) {
	out := RenderValidatorsModule([]Schema{
		{Name: "Zebra", Type: TypeString},
		{Name: "Apple", Type: TypeString},
	})
	assert.True(t, strings.Index(out, `"Apple"`) < strings.Index(out, `"Zebra"`))
}
