// Package contentmodel implements the content-model sub-generator
// (Component G): parsing a fixed-shape JSON schema description into runtime
// validator source, independent of any GraphQL schema or document.
package contentmodel

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FieldType is one of the content-model's fixed leaf kinds.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeDatetime FieldType = "datetime"
	TypeObject   FieldType = "object"
)

// Validation carries the optional closed-enum constraint a string field may
// declare.
type Validation struct {
	Enum []string `json:"enum,omitempty"`
}

// Field is one property of a content-model schema.
type Field struct {
	Name       string     `json:"name"`
	Type       FieldType  `json:"type"`
	Validation Validation `json:"validation,omitempty"`
	Fields     []Field    `json:"fields,omitempty"` // only populated when Type == TypeObject
	Required   bool       `json:"required,omitempty"`
}

// Schema is one named, top-level content-model entry. Its own shape is the
// same closed type union a nested Field carries: a schema can itself be a
// leaf (e.g. a named enum of strings) or an object with Fields. Fields is
// only meaningful when Type is TypeObject or left unset (the common case,
// defaulted to TypeObject for schemas that never declare one explicitly).
type Schema struct {
	Name       string     `json:"name"`
	Label      string     `json:"label,omitempty"`
	Type       FieldType  `json:"type,omitempty"`
	Validation Validation `json:"validation,omitempty"`
	Fields     []Field    `json:"fields,omitempty"`
}

// ParseSchemas decodes a batch of schemas from raw JSON.
func ParseSchemas(raw []byte) ([]Schema, error) {
	var schemas []Schema
	if err := json.Unmarshal(raw, &schemas); err != nil {
		return nil, fmt.Errorf("parsing content model schemas: %w", err)
	}
	return schemas, nil
}
