package interaction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// Interaction is the decoded variant of an envelope. The set of
// implementations is closed: Ping, *ApplicationCommand, MessageComponent,
// Autocomplete and ModalSubmit.
type Interaction interface {
	Type() discord.InteractionType
	isInteraction()
}

// Ping is the platform's endpoint health check.
type Ping struct{}

// ApplicationCommand is an invocation of a registered command.
type ApplicationCommand struct {
	Data CommandData
}

// MessageComponent is recognized but its payload is not decoded.
type MessageComponent struct{}

// Autocomplete is recognized but its payload is not decoded.
type Autocomplete struct{}

// ModalSubmit is recognized but its payload is not decoded.
type ModalSubmit struct{}

func (Ping) Type() discord.InteractionType { return discord.InteractionTypePing }
func (*ApplicationCommand) Type() discord.InteractionType {
	return discord.InteractionTypeApplicationCommand
}
func (MessageComponent) Type() discord.InteractionType { return discord.InteractionTypeMessageComponent }
func (Autocomplete) Type() discord.InteractionType {
	return discord.InteractionTypeApplicationCommandAutocomplete
}
func (ModalSubmit) Type() discord.InteractionType { return discord.InteractionTypeModalSubmit }

func (Ping) isInteraction()                {}
func (*ApplicationCommand) isInteraction() {}
func (MessageComponent) isInteraction()    {}
func (Autocomplete) isInteraction()        {}
func (ModalSubmit) isInteraction()         {}

// Envelope is one inbound interaction event. Metadata fields are optional at
// this layer and left at their zero value when absent.
type Envelope struct {
	ID            discord.Snowflake
	ApplicationID discord.Snowflake
	Token         string
	Version       int
	GuildID       *discord.Snowflake
	ChannelID     *discord.Snowflake
	Locale        string

	Interaction Interaction
}

// Type returns the discriminant of the decoded variant.
func (e *Envelope) Type() discord.InteractionType {
	if e == nil || e.Interaction == nil {
		return 0
	}
	return e.Interaction.Type()
}

// Command returns the command payload when the envelope is an application
// command invocation.
func (e *Envelope) Command() (*CommandData, bool) {
	if e == nil {
		return nil, false
	}
	cmd, ok := e.Interaction.(*ApplicationCommand)
	if !ok {
		return nil, false
	}
	return &cmd.Data, true
}

// Decode parses a JSON interaction envelope.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

type rawDiscriminant struct {
	Type *int64          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type rawMetadata struct {
	ID            discord.Snowflake  `json:"id"`
	ApplicationID discord.Snowflake  `json:"application_id"`
	Token         string             `json:"token"`
	Version       int                `json:"version"`
	GuildID       *discord.Snowflake `json:"guild_id"`
	ChannelID     *discord.Snowflake `json:"channel_id"`
	Locale        string             `json:"locale"`
}

// UnmarshalJSON implements json.Unmarshaler. The discriminant is resolved
// before the payload and metadata are looked at; a malformed field of a known
// interaction type yields a PayloadMalformedError.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw rawDiscriminant
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid interaction envelope: %w", err)
	}
	if raw.Type == nil {
		return &discord.MissingFieldError{Field: "type"}
	}

	if *raw.Type < int64(discord.InteractionTypePing) || *raw.Type > int64(discord.InteractionTypeModalSubmit) {
		return &discord.UnknownDiscriminantError{Category: "interaction type", Value: *raw.Type}
	}

	var variant Interaction
	switch t := discord.InteractionType(*raw.Type); t {
	case discord.InteractionTypePing:
		variant = Ping{}
	case discord.InteractionTypeApplicationCommand:
		if isAbsent(raw.Data) {
			return &discord.PayloadMissingError{Type: t}
		}
		cmd := &ApplicationCommand{}
		if err := json.Unmarshal(raw.Data, &cmd.Data); err != nil {
			return &discord.PayloadMalformedError{Type: t, Err: err}
		}
		variant = cmd
	case discord.InteractionTypeMessageComponent:
		variant = MessageComponent{}
	case discord.InteractionTypeApplicationCommandAutocomplete:
		variant = Autocomplete{}
	case discord.InteractionTypeModalSubmit:
		variant = ModalSubmit{}
	}

	var meta rawMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return &discord.PayloadMalformedError{Type: variant.Type(), Err: err}
	}

	*e = Envelope{
		ID:            meta.ID,
		ApplicationID: meta.ApplicationID,
		Token:         meta.Token,
		Version:       meta.Version,
		GuildID:       meta.GuildID,
		ChannelID:     meta.ChannelID,
		Locale:        meta.Locale,
		Interaction:   variant,
	}
	return nil
}

func isAbsent(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
