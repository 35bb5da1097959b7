package command

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// Length bounds for string options.
const (
	MinLengthFloor = 0
	MaxLengthFloor = 1
	LengthCeiling  = 6000
)

var numericKinds = []discord.ScalarKind{discord.ScalarInt, discord.ScalarFloat}

// OptionConfig is the input to NewOption. Kind, Name and Description are
// required; every other field is optional and omitted from the encoded
// payload when left at its zero value.
//
// Choices and nested Options are accepted on any kind. The platform only
// honours nested options on sub-commands and groups and rejects illegal
// combinations at registration time.
type OptionConfig struct {
	Kind        discord.OptionKind
	Name        string
	Description string
	Required    bool

	Choices []Choice
	Options []Option

	// MinValue and MaxValue must hold an Int or Float.
	MinValue *discord.ScalarValue
	MaxValue *discord.ScalarValue

	// MinLength must be within [0, 6000] and MaxLength within [1, 6000].
	MinLength *int
	MaxLength *int

	Autocomplete bool
}

// Option is one node of a command's option tree. It is immutable once
// constructed.
type Option struct {
	kind         discord.OptionKind
	name         string
	description  string
	required     bool
	choices      []Choice
	options      []Option
	minValue     *numericBound
	maxValue     *numericBound
	minLength    *int
	maxLength    *int
	autocomplete bool
}

// NewOption validates cfg and returns the resulting Option.
func NewOption(cfg OptionConfig) (Option, error) {
	if cfg.Kind == 0 {
		return Option{}, &discord.MissingFieldError{Field: "type"}
	}
	if cfg.Name == "" {
		return Option{}, &discord.MissingFieldError{Field: "name"}
	}
	if cfg.Description == "" {
		return Option{}, &discord.MissingFieldError{Field: "description"}
	}
	if !cfg.Kind.Valid() {
		return Option{}, &discord.UnknownDiscriminantError{Category: "option kind", Value: int64(cfg.Kind)}
	}

	if err := checkChildren(cfg.Options); err != nil {
		return Option{}, err
	}
	for i, c := range cfg.Choices {
		if c.value.IsZero() {
			return Option{}, &discord.MissingFieldError{Field: fmt.Sprintf("choices[%d]", i)}
		}
	}

	if err := checkNumericBound("min_value", cfg.MinValue); err != nil {
		return Option{}, err
	}
	if err := checkNumericBound("max_value", cfg.MaxValue); err != nil {
		return Option{}, err
	}

	if err := checkLength("min_length", cfg.MinLength, MinLengthFloor); err != nil {
		return Option{}, err
	}
	if err := checkLength("max_length", cfg.MaxLength, MaxLengthFloor); err != nil {
		return Option{}, err
	}

	return Option{
		kind:         cfg.Kind,
		name:         cfg.Name,
		description:  cfg.Description,
		required:     cfg.Required,
		choices:      slices.Clone(cfg.Choices),
		options:      slices.Clone(cfg.Options),
		minValue:     boundPtr(cfg.MinValue),
		maxValue:     boundPtr(cfg.MaxValue),
		minLength:    clonePtr(cfg.MinLength),
		maxLength:    clonePtr(cfg.MaxLength),
		autocomplete: cfg.Autocomplete,
	}, nil
}

// MustOption is like NewOption but panics on error.
func MustOption(cfg OptionConfig) Option {
	o, err := NewOption(cfg)
	if err != nil {
		panic("command: option " + cfg.Name + ": " + err.Error())
	}
	return o
}

func (o Option) Kind() discord.OptionKind { return o.kind }
func (o Option) Name() string             { return o.name }
func (o Option) Description() string      { return o.description }
func (o Option) Required() bool           { return o.required }
func (o Option) Autocomplete() bool       { return o.autocomplete }

// Choices returns a copy of the option's choices; nil when none were set.
func (o Option) Choices() []Choice { return slices.Clone(o.choices) }

// Options returns a copy of the nested options; nil when none were set.
func (o Option) Options() []Option { return slices.Clone(o.options) }

func (o Option) MinValue() (discord.ScalarValue, bool) { return o.minValue.value() }
func (o Option) MaxValue() (discord.ScalarValue, bool) { return o.maxValue.value() }
func (o Option) MinLength() (int, bool)                { return deref(o.minLength) }
func (o Option) MaxLength() (int, bool)                { return deref(o.maxLength) }

type optionWire struct {
	Type         discord.OptionKind   `json:"type" jsonschema:"required,minimum=1,maximum=11"`
	Name         string               `json:"name" jsonschema:"required"`
	Description  string               `json:"description" jsonschema:"required"`
	Required     bool                 `json:"required,omitzero"`
	Choices      []choiceWire         `json:"choices,omitzero"`
	Options      []optionWire         `json:"options,omitzero"`
	MinValue     *numericBound        `json:"min_value,omitempty"`
	MaxValue     *numericBound        `json:"max_value,omitempty"`
	MinLength    *int                 `json:"min_length,omitempty" jsonschema:"minimum=0,maximum=6000"`
	MaxLength    *int                 `json:"max_length,omitempty" jsonschema:"minimum=1,maximum=6000"`
	Autocomplete bool                 `json:"autocomplete,omitzero"`
}

func (o Option) wire() (optionWire, error) {
	if o.kind == 0 {
		return optionWire{}, &discord.MissingFieldError{Field: "type"}
	}
	w := optionWire{
		Type:         o.kind,
		Name:         o.name,
		Description:  o.description,
		Required:     o.required,
		MinValue:     o.minValue,
		MaxValue:     o.maxValue,
		MinLength:    o.minLength,
		MaxLength:    o.maxLength,
		Autocomplete: o.autocomplete,
	}
	if o.choices != nil {
		w.Choices = make([]choiceWire, len(o.choices))
		for i, c := range o.choices {
			cw, err := c.wire()
			if err != nil {
				return optionWire{}, err
			}
			w.Choices[i] = cw
		}
	}
	if o.options != nil {
		w.Options = make([]optionWire, len(o.options))
		for i, child := range o.options {
			cw, err := child.wire()
			if err != nil {
				return optionWire{}, err
			}
			w.Options[i] = cw
		}
	}
	return w, nil
}

// MarshalJSON implements json.Marshaler.
func (o Option) MarshalJSON() ([]byte, error) {
	w, err := o.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

func checkNumericBound(field string, v *discord.ScalarValue) error {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case discord.ScalarInt, discord.ScalarFloat:
		return nil
	default:
		return &discord.TypeMismatchError{Field: field, Expected: numericKinds, Actual: v.Kind().String()}
	}
}

// numericBound is an Int or Float min_value/max_value.
type numericBound struct{ discord.ScalarValue }

func boundPtr(v *discord.ScalarValue) *numericBound {
	if v == nil {
		return nil
	}
	return &numericBound{*v}
}

func (b *numericBound) value() (discord.ScalarValue, bool) {
	if b == nil {
		return discord.ScalarValue{}, false
	}
	return b.ScalarValue, true
}

// checkChildren rejects zero Option values, which were never built by
// NewOption.
func checkChildren(opts []Option) error {
	for i, o := range opts {
		if o.kind == 0 {
			return &discord.MissingFieldError{Field: fmt.Sprintf("options[%d]", i)}
		}
	}
	return nil
}

func checkLength(field string, v *int, floor int) error {
	if v == nil {
		return nil
	}
	if *v < floor || *v > LengthCeiling {
		return &discord.RangeError{Field: field, Value: int64(*v), Min: int64(floor), Max: LengthCeiling}
	}
	return nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
