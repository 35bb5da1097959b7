package interaction

import (
	"encoding/json"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// CommandData is the top of a decoded command invocation.
type CommandData struct {
	ID       discord.Snowflake
	Name     string
	Type     discord.CommandKind
	Options  []DataOption
	GuildID  *discord.Snowflake
	TargetID *discord.Snowflake
}

// DataOption is one node of the invocation tree. Leaf options carry Value;
// sub-commands and groups carry Options. Neither is enforced here.
type DataOption struct {
	Name    string
	Type    discord.OptionKind
	Value   *discord.ScalarValue
	Options []DataOption
	Focused *bool
}

// Option returns the first top-level option named name.
func (d *CommandData) Option(name string) (*DataOption, bool) {
	return findOption(d.Options, name)
}

// Focused returns the option the user is currently typing into during
// autocomplete, searching the whole tree.
func (d *CommandData) Focused() (*DataOption, bool) {
	return findFocused(d.Options)
}

// Option returns the first child option named name.
func (o *DataOption) Option(name string) (*DataOption, bool) {
	return findOption(o.Options, name)
}

// IsFocused reports whether the platform marked this option as focused.
func (o *DataOption) IsFocused() bool {
	return o.Focused != nil && *o.Focused
}

// StringValue returns the value when it is a String.
func (o *DataOption) StringValue() (string, bool) {
	if o.Value == nil {
		return "", false
	}
	return o.Value.AsString()
}

// IntValue returns the value when it is an Int.
func (o *DataOption) IntValue() (int64, bool) {
	if o.Value == nil {
		return 0, false
	}
	return o.Value.AsInt()
}

// NumberValue returns Int or Float values as float64.
func (o *DataOption) NumberValue() (float64, bool) {
	if o.Value == nil {
		return 0, false
	}
	return o.Value.Number()
}

// BoolValue returns the value when it is a Bool.
func (o *DataOption) BoolValue() (bool, bool) {
	if o.Value == nil {
		return false, false
	}
	return o.Value.AsBool()
}

// findOption is a linear scan; names are not guaranteed unique so the first
// match in document order wins.
func findOption(opts []DataOption, name string) (*DataOption, bool) {
	for i := range opts {
		if opts[i].Name == name {
			return &opts[i], true
		}
	}
	return nil, false
}

func findFocused(opts []DataOption) (*DataOption, bool) {
	for i := range opts {
		if opts[i].IsFocused() {
			return &opts[i], true
		}
		if o, ok := findFocused(opts[i].Options); ok {
			return o, true
		}
	}
	return nil, false
}

type rawCommandData struct {
	ID       *discord.Snowflake   `json:"id"`
	Name     *string              `json:"name"`
	Type     *discord.CommandKind `json:"type"`
	Options  []DataOption         `json:"options"`
	GuildID  *discord.Snowflake   `json:"guild_id"`
	TargetID *discord.Snowflake   `json:"target_id"`
}

// UnmarshalJSON implements json.Unmarshaler. id, name and type are required.
func (d *CommandData) UnmarshalJSON(data []byte) error {
	var raw rawCommandData
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.ID == nil:
		return &discord.MissingFieldError{Field: "id"}
	case raw.Name == nil:
		return &discord.MissingFieldError{Field: "name"}
	case raw.Type == nil:
		return &discord.MissingFieldError{Field: "type"}
	}
	*d = CommandData{
		ID:       *raw.ID,
		Name:     *raw.Name,
		Type:     *raw.Type,
		Options:  raw.Options,
		GuildID:  raw.GuildID,
		TargetID: raw.TargetID,
	}
	return nil
}

type rawDataOption struct {
	Name    *string              `json:"name"`
	Type    *discord.OptionKind  `json:"type"`
	Value   *discord.ScalarValue `json:"value"`
	Options []DataOption         `json:"options"`
	Focused *bool                `json:"focused"`
}

// UnmarshalJSON implements json.Unmarshaler. name and type are required.
func (o *DataOption) UnmarshalJSON(data []byte) error {
	var raw rawDataOption
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == nil {
		return &discord.MissingFieldError{Field: "name"}
	}
	if raw.Type == nil {
		return &discord.MissingFieldError{Field: "type"}
	}
	*o = DataOption{
		Name:    *raw.Name,
		Type:    *raw.Type,
		Value:   raw.Value,
		Options: raw.Options,
		Focused: raw.Focused,
	}
	return nil
}
