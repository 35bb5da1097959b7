package command

import (
	"reflect"

	"github.com/ggoodman/discord-interactions-go/discord"
	"github.com/invopop/jsonschema"
)

// PayloadSchema reflects a JSON Schema describing one element of the bulk
// registration payload from the encoder's wire types. It documents the shape
// for tooling; the module itself does not validate against it.
func PayloadSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
		Mapper:                     mapScalarTypes,
	}
	s := r.Reflect(&commandWire{})
	s.Title = "Application command"
	return s
}

var (
	scalarValueType  = reflect.TypeOf(discord.ScalarValue{})
	numericBoundType = reflect.TypeOf(numericBound{})
)

// mapScalarTypes describes choice values as a number or a bounded string,
// and min/max bounds as a number. JSON integers are numbers.
func mapScalarTypes(t reflect.Type) *jsonschema.Schema {
	switch t {
	case scalarValueType:
		return &jsonschema.Schema{
			OneOf: []*jsonschema.Schema{
				{Type: "number"},
				{Type: "string", MaxLength: ptrUint64(MaxChoiceValueLength)},
			},
		}
	case numericBoundType:
		return &jsonschema.Schema{Type: "number"}
	default:
		return nil
	}
}

func ptrUint64(v uint64) *uint64 { return &v }
