// Package manifest reads command definitions from YAML documents and builds
// them through the command package's validating constructors.
//
//	commands:
//	  - name: color
//	    description: Pick a color
//	    options:
//	      - type: string
//	        name: value
//	        description: The color
//	        required: true
//	        choices:
//	          - {name: Red, value: red}
//	          - {name: Blue, value: blue}
//
// type accepts either the snake_case kind name or its wire integer. A
// command's type defaults to chat_input.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ggoodman/discord-interactions-go/command"
	"github.com/ggoodman/discord-interactions-go/discord"
	"gopkg.in/yaml.v3"
)

// Document is the top-level YAML shape.
type Document struct {
	Commands []CommandDef `yaml:"commands"`
}

// CommandDef is one command as written in YAML.
type CommandDef struct {
	Name        string      `yaml:"name"`
	Type        Kind        `yaml:"type"`
	Description string      `yaml:"description"`
	Options     []OptionDef `yaml:"options"`
}

// OptionDef is one option as written in YAML.
type OptionDef struct {
	Type         Kind        `yaml:"type"`
	Name         string      `yaml:"name"`
	Description  string      `yaml:"description"`
	Required     bool        `yaml:"required"`
	Autocomplete bool        `yaml:"autocomplete"`
	Choices      []ChoiceDef `yaml:"choices"`
	Options      []OptionDef `yaml:"options"`
	MinValue     any         `yaml:"min_value"`
	MaxValue     any         `yaml:"max_value"`
	MinLength    *int        `yaml:"min_length"`
	MaxLength    *int        `yaml:"max_length"`
}

// ChoiceDef is one choice as written in YAML.
type ChoiceDef struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
}

// Kind is a kind discriminant written either by name or by number.
type Kind struct {
	Name   string
	Number int64
	Set    bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: type must be a name or a number", n.Line)
	}
	*k = Kind{Set: true}
	if n.Tag == "!!int" {
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		k.Number = i
		return nil
	}
	k.Name = n.Value
	return nil
}

func (k Kind) optionKind() (discord.OptionKind, error) {
	if !k.Set {
		return 0, nil
	}
	if k.Name == "" {
		return discord.OptionKind(clampKind(k.Number)), nil
	}
	kind, ok := discord.ParseOptionKind(k.Name)
	if !ok {
		return 0, fmt.Errorf("unknown option type %q", k.Name)
	}
	return kind, nil
}

func (k Kind) commandKind() (discord.CommandKind, error) {
	if !k.Set {
		return discord.CommandKindChatInput, nil
	}
	if k.Name == "" {
		return discord.CommandKind(clampKind(k.Number)), nil
	}
	kind, ok := discord.ParseCommandKind(k.Name)
	if !ok {
		return 0, fmt.Errorf("unknown command type %q", k.Name)
	}
	return kind, nil
}

// clampKind maps out-of-range numbers to 255 so the constructors reject
// them as unknown rather than wrapping into a valid kind.
func clampKind(n int64) uint8 {
	if n < 1 || n > 254 {
		return 255
	}
	return uint8(n)
}

// Load decodes one YAML document from r and builds its commands. Unknown
// keys are rejected.
func Load(r io.Reader) ([]command.Command, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []command.Command{}, nil
		}
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return doc.Build()
}

// LoadFile is Load on the file at path.
func LoadFile(path string) ([]command.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Build converts the document into commands, failing on the first invalid
// definition. Command names must be unique per kind.
func (d Document) Build() ([]command.Command, error) {
	cmds := make([]command.Command, 0, len(d.Commands))
	seen := make(map[string]bool, len(d.Commands))
	for i, def := range d.Commands {
		path := fmt.Sprintf("commands[%d]", i)
		cmd, err := def.build(path)
		if err != nil {
			return nil, err
		}
		key := cmd.Kind().String() + "/" + cmd.Name()
		if seen[key] {
			return nil, fmt.Errorf("manifest: %s: duplicate %s command %q", path, cmd.Kind(), cmd.Name())
		}
		seen[key] = true
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (def CommandDef) build(path string) (command.Command, error) {
	kind, err := def.Type.commandKind()
	if err != nil {
		return command.Command{}, fmt.Errorf("manifest: %s: %w", path, err)
	}
	opts, err := buildOptions(path, def.Options)
	if err != nil {
		return command.Command{}, err
	}
	cmd, err := command.NewCommand(command.CommandConfig{
		Name:        def.Name,
		Kind:        kind,
		Description: def.Description,
		Options:     opts,
	})
	if err != nil {
		return command.Command{}, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return cmd, nil
}

func buildOptions(parent string, defs []OptionDef) ([]command.Option, error) {
	if defs == nil {
		return nil, nil
	}
	out := make([]command.Option, len(defs))
	for i, def := range defs {
		opt, err := def.build(fmt.Sprintf("%s.options[%d]", parent, i))
		if err != nil {
			return nil, err
		}
		out[i] = opt
	}
	return out, nil
}

func (def OptionDef) build(path string) (command.Option, error) {
	fail := func(err error) (command.Option, error) {
		return command.Option{}, fmt.Errorf("manifest: %s: %w", path, err)
	}

	kind, err := def.Type.optionKind()
	if err != nil {
		return fail(err)
	}

	var choices []command.Choice
	if def.Choices != nil {
		choices = make([]command.Choice, len(def.Choices))
		for i, cd := range def.Choices {
			v, err := discord.ScalarFrom(cd.Value)
			if err != nil {
				return command.Option{}, fmt.Errorf("manifest: %s.choices[%d]: %w", path, i, err)
			}
			c, err := command.NewChoice(cd.Name, v)
			if err != nil {
				return command.Option{}, fmt.Errorf("manifest: %s.choices[%d]: %w", path, i, err)
			}
			choices[i] = c
		}
	}

	children, err := buildOptions(path, def.Options)
	if err != nil {
		return command.Option{}, err
	}

	minValue, err := optionalScalar(def.MinValue)
	if err != nil {
		return fail(fmt.Errorf("min_value: %w", err))
	}
	maxValue, err := optionalScalar(def.MaxValue)
	if err != nil {
		return fail(fmt.Errorf("max_value: %w", err))
	}

	opt, err := command.NewOption(command.OptionConfig{
		Kind:         kind,
		Name:         def.Name,
		Description:  def.Description,
		Required:     def.Required,
		Choices:      choices,
		Options:      children,
		MinValue:     minValue,
		MaxValue:     maxValue,
		MinLength:    def.MinLength,
		MaxLength:    def.MaxLength,
		Autocomplete: def.Autocomplete,
	})
	if err != nil {
		return fail(err)
	}
	return opt, nil
}

func optionalScalar(x any) (*discord.ScalarValue, error) {
	if x == nil {
		return nil, nil
	}
	v, err := discord.ScalarFrom(x)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
