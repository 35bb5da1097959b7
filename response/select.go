package response

import (
	"encoding/json"
	"slices"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// SelectMenuOptionConfig is the input to NewSelectMenuOption. Label and
// Value are required.
type SelectMenuOptionConfig struct {
	Label       string
	Value       string
	Description string
	Default     bool
}

// SelectMenuOption is one entry of a string select.
type SelectMenuOption struct {
	cfg SelectMenuOptionConfig
}

// NewSelectMenuOption validates cfg and returns a SelectMenuOption.
func NewSelectMenuOption(cfg SelectMenuOptionConfig) (SelectMenuOption, error) {
	if cfg.Label == "" {
		return SelectMenuOption{}, &discord.MissingFieldError{Field: "label"}
	}
	if cfg.Value == "" {
		return SelectMenuOption{}, &discord.MissingFieldError{Field: "value"}
	}
	return SelectMenuOption{cfg: cfg}, nil
}

// MustSelectMenuOption is like NewSelectMenuOption but panics on error.
func MustSelectMenuOption(cfg SelectMenuOptionConfig) SelectMenuOption {
	o, err := NewSelectMenuOption(cfg)
	if err != nil {
		panic("response: " + err.Error())
	}
	return o
}

func (o SelectMenuOption) Label() string { return o.cfg.Label }
func (o SelectMenuOption) Value() string { return o.cfg.Value }

// MarshalJSON implements json.Marshaler.
func (o SelectMenuOption) MarshalJSON() ([]byte, error) {
	if o.cfg.Label == "" || o.cfg.Value == "" {
		return nil, &discord.MissingFieldError{Field: "label"}
	}
	return json.Marshal(struct {
		Label       string `json:"label"`
		Value       string `json:"value"`
		Description string `json:"description,omitzero"`
		Default     bool   `json:"default,omitzero"`
	}{o.cfg.Label, o.cfg.Value, o.cfg.Description, o.cfg.Default})
}

// SelectMenuConfig is the input to NewSelectMenu. CustomID is required.
type SelectMenuConfig struct {
	CustomID    string
	Options     []SelectMenuOption
	Placeholder string
	Disabled    bool
}

// SelectMenu is the shape shared by the five select components. Wrap it in
// StringSelect, UserSelect, RoleSelect, MentionableSelect or ChannelSelect
// to pick the discriminant.
type SelectMenu struct {
	customID    string
	options     []SelectMenuOption
	placeholder string
	disabled    bool
}

// NewSelectMenu validates cfg and returns a SelectMenu.
func NewSelectMenu(cfg SelectMenuConfig) (SelectMenu, error) {
	if cfg.CustomID == "" {
		return SelectMenu{}, &discord.MissingFieldError{Field: "custom_id"}
	}
	return SelectMenu{
		customID:    cfg.CustomID,
		options:     slices.Clone(cfg.Options),
		placeholder: cfg.Placeholder,
		disabled:    cfg.Disabled,
	}, nil
}

// MustSelectMenu is like NewSelectMenu but panics on error.
func MustSelectMenu(cfg SelectMenuConfig) SelectMenu {
	m, err := NewSelectMenu(cfg)
	if err != nil {
		panic("response: " + err.Error())
	}
	return m
}

func (m SelectMenu) CustomID() string            { return m.customID }
func (m SelectMenu) Options() []SelectMenuOption { return slices.Clone(m.options) }
func (m SelectMenu) Placeholder() string         { return m.placeholder }
func (m SelectMenu) Disabled() bool              { return m.disabled }

// StringSelect offers developer-defined options.
type StringSelect struct{ Menu SelectMenu }

// UserSelect offers the guild's users.
type UserSelect struct{ Menu SelectMenu }

// RoleSelect offers the guild's roles.
type RoleSelect struct{ Menu SelectMenu }

// MentionableSelect offers users and roles.
type MentionableSelect struct{ Menu SelectMenu }

// ChannelSelect offers the guild's channels.
type ChannelSelect struct{ Menu SelectMenu }

func (StringSelect) ComponentType() discord.ComponentType { return discord.ComponentTypeStringSelect }
func (UserSelect) ComponentType() discord.ComponentType   { return discord.ComponentTypeUserSelect }
func (RoleSelect) ComponentType() discord.ComponentType   { return discord.ComponentTypeRoleSelect }
func (MentionableSelect) ComponentType() discord.ComponentType {
	return discord.ComponentTypeMentionableSelect
}
func (ChannelSelect) ComponentType() discord.ComponentType { return discord.ComponentTypeChannelSelect }

func (StringSelect) isComponent()      {}
func (UserSelect) isComponent()        {}
func (RoleSelect) isComponent()        {}
func (MentionableSelect) isComponent() {}
func (ChannelSelect) isComponent()     {}

func (s StringSelect) MarshalJSON() ([]byte, error) {
	return encodeSelect(discord.ComponentTypeStringSelect, s.Menu)
}

func (s UserSelect) MarshalJSON() ([]byte, error) {
	return encodeSelect(discord.ComponentTypeUserSelect, s.Menu)
}

func (s RoleSelect) MarshalJSON() ([]byte, error) {
	return encodeSelect(discord.ComponentTypeRoleSelect, s.Menu)
}

func (s MentionableSelect) MarshalJSON() ([]byte, error) {
	return encodeSelect(discord.ComponentTypeMentionableSelect, s.Menu)
}

func (s ChannelSelect) MarshalJSON() ([]byte, error) {
	return encodeSelect(discord.ComponentTypeChannelSelect, s.Menu)
}

func encodeSelect(t discord.ComponentType, m SelectMenu) ([]byte, error) {
	if m.customID == "" {
		return nil, &discord.MissingFieldError{Field: "custom_id"}
	}
	return json.Marshal(struct {
		Type        discord.ComponentType `json:"type"`
		CustomID    string                `json:"custom_id"`
		Options     []SelectMenuOption    `json:"options,omitzero"`
		Placeholder string                `json:"placeholder,omitzero"`
		Disabled    bool                  `json:"disabled,omitzero"`
	}{t, m.customID, m.options, m.placeholder, m.disabled})
}
