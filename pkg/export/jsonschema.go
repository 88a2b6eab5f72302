// Package export projects an extraction result onto interop formats. The only
// projection today is a JSON Schema rendered through kin-openapi's schema
// types, which downstream tooling already understands.
package export

import (
	"errors"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formscan/pkg/schema"
)

// JSONSchema builds an object schema describing the extracted fields. Field
// ids become property names, constraints map onto the standard keywords, and
// possible values surface as enums. Multi-valued fields render as arrays.
// The projection is in-memory only; serialization is the caller's business.
func JSONSchema(result *schema.ExtractionResult) (*openapi3.Schema, error) {
	if result == nil {
		return nil, errors.New("export: result is required")
	}

	root := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: make(openapi3.Schemas, len(result.Fields)),
	}

	sorted := append([]schema.FieldDescriptor(nil), result.Fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, field := range sorted {
		root.Properties[field.ID] = openapi3.NewSchemaRef("", property(field))
		if field.Required {
			root.Required = append(root.Required, field.ID)
		}
	}
	return root, nil
}

func property(field schema.FieldDescriptor) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:     &openapi3.Types{scalarType(field.ControlType)},
		Title:    field.Label,
		Nullable: field.Constraints.Nillable,
		Pattern:  field.Constraints.Pattern,
		Default:  field.Constraints.DefaultValue,
		Min:      field.Constraints.Min,
		Max:      field.Constraints.Max,
	}
	if field.Constraints.MinLength != nil && *field.Constraints.MinLength > 0 {
		out.MinLength = uint64(*field.Constraints.MinLength)
	}
	if field.Constraints.MaxLength != nil && *field.Constraints.MaxLength >= 0 {
		max := uint64(*field.Constraints.MaxLength)
		out.MaxLength = &max
	}
	for _, value := range field.PossibleValues {
		out.Enum = append(out.Enum, value.Value)
	}

	if field.Constraints.MaxOccurs == schema.MaxOccursUnbounded {
		return &openapi3.Schema{
			Type:  &openapi3.Types{openapi3.TypeArray},
			Title: field.Label,
			Items: openapi3.NewSchemaRef("", out),
		}
	}
	return out
}

func scalarType(controlType string) string {
	lowered := strings.ToLower(controlType)
	switch {
	case strings.Contains(lowered, "number"), strings.Contains(lowered, "numeric"), strings.Contains(lowered, "decimal"):
		return openapi3.TypeNumber
	case strings.Contains(lowered, "check"), strings.Contains(lowered, "bool"), strings.Contains(lowered, "toggle"):
		return openapi3.TypeBoolean
	default:
		return openapi3.TypeString
	}
}
