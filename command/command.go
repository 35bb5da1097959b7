package command

import (
	"encoding/json"
	"slices"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// CommandConfig is the input to NewCommand. Name and Kind are required;
// Description defaults to the empty string.
type CommandConfig struct {
	Name        string
	Kind        discord.CommandKind
	Description string
	Options     []Option
}

// Command is a registrable application command.
type Command struct {
	name        string
	kind        discord.CommandKind
	description string
	options     []Option
}

// NewCommand validates cfg and returns the resulting Command.
func NewCommand(cfg CommandConfig) (Command, error) {
	if cfg.Name == "" {
		return Command{}, &discord.MissingFieldError{Field: "name"}
	}
	if cfg.Kind == 0 {
		return Command{}, &discord.MissingFieldError{Field: "type"}
	}
	if !cfg.Kind.Valid() {
		return Command{}, &discord.UnknownDiscriminantError{Category: "command kind", Value: int64(cfg.Kind)}
	}
	if err := checkChildren(cfg.Options); err != nil {
		return Command{}, err
	}

	return Command{
		name:        cfg.Name,
		kind:        cfg.Kind,
		description: cfg.Description,
		options:     slices.Clone(cfg.Options),
	}, nil
}

// MustCommand is like NewCommand but panics on error.
func MustCommand(cfg CommandConfig) Command {
	c, err := NewCommand(cfg)
	if err != nil {
		panic("command: " + cfg.Name + ": " + err.Error())
	}
	return c
}

func (c Command) Name() string              { return c.name }
func (c Command) Kind() discord.CommandKind { return c.kind }
func (c Command) Description() string       { return c.description }

// Options returns a copy of the top-level options; nil when none were set.
func (c Command) Options() []Option { return slices.Clone(c.options) }

type commandWire struct {
	Name        string              `json:"name" jsonschema:"required"`
	Type        discord.CommandKind `json:"type" jsonschema:"required,minimum=1,maximum=4"`
	Description string              `json:"description" jsonschema:"required"`
	Options     []optionWire        `json:"options,omitzero"`
}

func (c Command) wire() (commandWire, error) {
	w := commandWire{
		Name:        c.name,
		Type:        c.kind,
		Description: c.description,
	}
	if c.options != nil {
		w.Options = make([]optionWire, len(c.options))
		for i, o := range c.options {
			ow, err := o.wire()
			if err != nil {
				return commandWire{}, err
			}
			w.Options[i] = ow
		}
	}
	return w, nil
}

// MarshalJSON implements json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	w, err := c.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// EncodeList encodes cmds as the JSON array expected by the bulk-overwrite
// registration endpoint. A nil slice encodes as [] so that an empty
// registration clears every command.
func EncodeList(cmds []Command) ([]byte, error) {
	if cmds == nil {
		cmds = []Command{}
	}
	return json.Marshal(cmds)
}
