package command

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// MaxChoiceValueLength caps string choice values, in characters.
const MaxChoiceValueLength = 100

var choiceKinds = []discord.ScalarKind{discord.ScalarInt, discord.ScalarFloat, discord.ScalarString}

// Choice is a predefined value a user may pick for an option.
type Choice struct {
	name  string
	value discord.ScalarValue
}

// NewChoice validates and returns a Choice. The value must be an Int, Float
// or String; strings are limited to MaxChoiceValueLength characters.
func NewChoice(name string, value discord.ScalarValue) (Choice, error) {
	if name == "" {
		return Choice{}, &discord.MissingFieldError{Field: "name"}
	}
	if value.IsZero() {
		return Choice{}, &discord.MissingFieldError{Field: "value"}
	}
	if err := checkChoiceValue("value", value); err != nil {
		return Choice{}, err
	}
	return Choice{name: name, value: value}, nil
}

// MustChoice is like NewChoice but panics on error. It is intended for
// statically known definitions.
func MustChoice(name string, value discord.ScalarValue) Choice {
	c, err := NewChoice(name, value)
	if err != nil {
		panic("command: " + err.Error())
	}
	return c
}

func (c Choice) Name() string                { return c.name }
func (c Choice) Value() discord.ScalarValue { return c.value }

type choiceWire struct {
	Name  string              `json:"name" jsonschema:"required"`
	Value discord.ScalarValue `json:"value" jsonschema:"required"`
}

func (c Choice) wire() (choiceWire, error) {
	if err := checkChoiceValue("value", c.value); err != nil {
		return choiceWire{}, err
	}
	return choiceWire{Name: c.name, Value: c.value}, nil
}

// MarshalJSON implements json.Marshaler.
func (c Choice) MarshalJSON() ([]byte, error) {
	w, err := c.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func checkChoiceValue(field string, v discord.ScalarValue) error {
	switch v.Kind() {
	case discord.ScalarInt, discord.ScalarFloat:
		return nil
	case discord.ScalarString:
		s, _ := v.AsString()
		if utf8.RuneCountInString(s) > MaxChoiceValueLength {
			return &discord.ValueTooLongError{Field: field, Max: MaxChoiceValueLength}
		}
		return nil
	default:
		return &discord.TypeMismatchError{Field: field, Expected: choiceKinds, Actual: v.Kind().String()}
	}
}
