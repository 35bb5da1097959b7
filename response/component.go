package response

import (
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// Component is a message component. The set of implementations is closed:
// ActionRow, Button, StringSelect, UserSelect, RoleSelect, MentionableSelect,
// ChannelSelect and TextInput.
type Component interface {
	json.Marshaler
	ComponentType() discord.ComponentType
	isComponent()
}

// ActionRow is a container for other components.
type ActionRow struct {
	components []Component
}

// NewActionRow returns a row holding components in order.
func NewActionRow(components ...Component) ActionRow {
	if components == nil {
		components = []Component{}
	}
	return ActionRow{components: slices.Clone(components)}
}

// Components returns a copy of the row's children.
func (r ActionRow) Components() []Component { return slices.Clone(r.components) }

func (ActionRow) ComponentType() discord.ComponentType { return discord.ComponentTypeActionRow }
func (ActionRow) isComponent()                         {}

// MarshalJSON implements json.Marshaler. components is always present.
func (r ActionRow) MarshalJSON() ([]byte, error) {
	children := r.components
	if children == nil {
		children = []Component{}
	}
	if err := checkComponents(children); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type       discord.ComponentType `json:"type"`
		Components []Component           `json:"components"`
	}{discord.ComponentTypeActionRow, children})
}

// ButtonConfig is the input to NewButton. Style is required.
type ButtonConfig struct {
	Style    discord.ButtonStyle
	Label    string
	CustomID string
	URL      string
	Disabled bool
}

// Button is a clickable component.
type Button struct {
	cfg ButtonConfig
}

// NewButton validates cfg and returns a Button.
func NewButton(cfg ButtonConfig) (Button, error) {
	if cfg.Style == 0 {
		return Button{}, &discord.MissingFieldError{Field: "style"}
	}
	if !cfg.Style.Valid() {
		return Button{}, &discord.UnknownDiscriminantError{Category: "button style", Value: int64(cfg.Style)}
	}
	return Button{cfg: cfg}, nil
}

// MustButton is like NewButton but panics on error.
func MustButton(cfg ButtonConfig) Button {
	b, err := NewButton(cfg)
	if err != nil {
		panic("response: " + err.Error())
	}
	return b
}

func (b Button) Style() discord.ButtonStyle { return b.cfg.Style }
func (b Button) Label() string              { return b.cfg.Label }
func (b Button) CustomID() string           { return b.cfg.CustomID }
func (b Button) URL() string                { return b.cfg.URL }
func (b Button) Disabled() bool             { return b.cfg.Disabled }

func (Button) ComponentType() discord.ComponentType { return discord.ComponentTypeButton }
func (Button) isComponent()                         {}

// MarshalJSON implements json.Marshaler.
func (b Button) MarshalJSON() ([]byte, error) {
	if b.cfg.Style == 0 {
		return nil, &discord.MissingFieldError{Field: "style"}
	}
	return json.Marshal(struct {
		Type     discord.ComponentType `json:"type"`
		Style    discord.ButtonStyle   `json:"style"`
		Label    string                `json:"label,omitzero"`
		CustomID string                `json:"custom_id,omitzero"`
		URL      string                `json:"url,omitzero"`
		Disabled bool                  `json:"disabled,omitzero"`
	}{discord.ComponentTypeButton, b.cfg.Style, b.cfg.Label, b.cfg.CustomID, b.cfg.URL, b.cfg.Disabled})
}

// TextInput limits.
const (
	MaxTextInputLabel  = 45
	TextInputMaxLength = 4000
)

// TextInputConfig is the input to NewTextInput. CustomID, Style and Label
// are required.
type TextInputConfig struct {
	CustomID string
	Style    discord.TextInputStyle
	Label    string

	// MinLength must be within [0, 4000] and MaxLength within [1, 4000].
	MinLength *int
	MaxLength *int

	Required    bool
	Value       string
	Placeholder string
}

// TextInput is a free-form text field, only valid inside modals.
type TextInput struct {
	cfg TextInputConfig
}

// NewTextInput validates cfg and returns a TextInput.
func NewTextInput(cfg TextInputConfig) (TextInput, error) {
	switch {
	case cfg.CustomID == "":
		return TextInput{}, &discord.MissingFieldError{Field: "custom_id"}
	case cfg.Style == 0:
		return TextInput{}, &discord.MissingFieldError{Field: "style"}
	case cfg.Label == "":
		return TextInput{}, &discord.MissingFieldError{Field: "label"}
	}
	if !cfg.Style.Valid() {
		return TextInput{}, &discord.UnknownDiscriminantError{Category: "text input style", Value: int64(cfg.Style)}
	}
	if utf8.RuneCountInString(cfg.Label) > MaxTextInputLabel {
		return TextInput{}, &discord.ValueTooLongError{Field: "label", Max: MaxTextInputLabel}
	}
	if cfg.MinLength != nil && (*cfg.MinLength < 0 || *cfg.MinLength > TextInputMaxLength) {
		return TextInput{}, &discord.RangeError{Field: "min_length", Value: int64(*cfg.MinLength), Min: 0, Max: TextInputMaxLength}
	}
	if cfg.MaxLength != nil && (*cfg.MaxLength < 1 || *cfg.MaxLength > TextInputMaxLength) {
		return TextInput{}, &discord.RangeError{Field: "max_length", Value: int64(*cfg.MaxLength), Min: 1, Max: TextInputMaxLength}
	}
	cfg.MinLength = clonePtr(cfg.MinLength)
	cfg.MaxLength = clonePtr(cfg.MaxLength)
	return TextInput{cfg: cfg}, nil
}

// MustTextInput is like NewTextInput but panics on error.
func MustTextInput(cfg TextInputConfig) TextInput {
	ti, err := NewTextInput(cfg)
	if err != nil {
		panic("response: " + err.Error())
	}
	return ti
}

func (ti TextInput) CustomID() string              { return ti.cfg.CustomID }
func (ti TextInput) Style() discord.TextInputStyle { return ti.cfg.Style }
func (ti TextInput) Label() string                 { return ti.cfg.Label }

func (TextInput) ComponentType() discord.ComponentType { return discord.ComponentTypeTextInput }
func (TextInput) isComponent()                         {}

// MarshalJSON implements json.Marshaler.
func (ti TextInput) MarshalJSON() ([]byte, error) {
	if ti.cfg.CustomID == "" {
		return nil, &discord.MissingFieldError{Field: "custom_id"}
	}
	return json.Marshal(struct {
		Type        discord.ComponentType  `json:"type"`
		CustomID    string                 `json:"custom_id"`
		Style       discord.TextInputStyle `json:"style"`
		Label       string                 `json:"label"`
		MinLength   *int                   `json:"min_length,omitempty"`
		MaxLength   *int                   `json:"max_length,omitempty"`
		Required    bool                   `json:"required,omitzero"`
		Value       string                 `json:"value,omitzero"`
		Placeholder string                 `json:"placeholder,omitzero"`
	}{
		Type:        discord.ComponentTypeTextInput,
		CustomID:    ti.cfg.CustomID,
		Style:       ti.cfg.Style,
		Label:       ti.cfg.Label,
		MinLength:   ti.cfg.MinLength,
		MaxLength:   ti.cfg.MaxLength,
		Required:    ti.cfg.Required,
		Value:       ti.cfg.Value,
		Placeholder: ti.cfg.Placeholder,
	})
}

// checkComponents rejects nil entries, which would encode as null.
func checkComponents(cs []Component) error {
	for i, c := range cs {
		if c == nil {
			return &discord.MissingFieldError{Field: fmt.Sprintf("components[%d]", i)}
		}
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
