package response

import (
	"encoding/json"
	"slices"
	"unicode/utf8"

	"github.com/ggoodman/discord-interactions-go/command"
	"github.com/ggoodman/discord-interactions-go/discord"
)

// Response is an interaction response. The set of implementations is closed:
// Pong, ChannelMessage, DeferredChannelMessage, DeferredUpdateMessage,
// UpdateMessage, AutocompleteResult and ModalResponse.
type Response interface {
	json.Marshaler
	ResponseType() discord.ResponseType
	isResponse()
}

// Pong acknowledges a Ping.
type Pong struct{}

// ChannelMessage replies with a message.
type ChannelMessage struct{ Message Message }

// DeferredChannelMessage acknowledges now and shows a loading state until a
// followup message is sent.
type DeferredChannelMessage struct{}

// DeferredUpdateMessage acknowledges a component interaction and edits the
// original message later.
type DeferredUpdateMessage struct{ Message Message }

// UpdateMessage edits the message a component was attached to.
type UpdateMessage struct{ Message Message }

// AutocompleteResult answers an autocomplete interaction.
type AutocompleteResult struct{ Autocomplete Autocomplete }

// ModalResponse opens a modal dialog.
type ModalResponse struct{ Modal Modal }

func (Pong) ResponseType() discord.ResponseType { return discord.ResponseTypePong }
func (ChannelMessage) ResponseType() discord.ResponseType {
	return discord.ResponseTypeChannelMessageWithSource
}
func (DeferredChannelMessage) ResponseType() discord.ResponseType {
	return discord.ResponseTypeDeferredChannelMessageWithSource
}
func (DeferredUpdateMessage) ResponseType() discord.ResponseType {
	return discord.ResponseTypeDeferredUpdateMessage
}
func (UpdateMessage) ResponseType() discord.ResponseType { return discord.ResponseTypeUpdateMessage }
func (AutocompleteResult) ResponseType() discord.ResponseType {
	return discord.ResponseTypeAutocompleteResult
}
func (ModalResponse) ResponseType() discord.ResponseType { return discord.ResponseTypeModal }

func (Pong) isResponse()                   {}
func (ChannelMessage) isResponse()         {}
func (DeferredChannelMessage) isResponse() {}
func (DeferredUpdateMessage) isResponse()  {}
func (UpdateMessage) isResponse()          {}
func (AutocompleteResult) isResponse()     {}
func (ModalResponse) isResponse()          {}

func (Pong) MarshalJSON() ([]byte, error) {
	return encodeBare(discord.ResponseTypePong)
}

func (r ChannelMessage) MarshalJSON() ([]byte, error) {
	return encodeWithData(discord.ResponseTypeChannelMessageWithSource, r.Message)
}

func (DeferredChannelMessage) MarshalJSON() ([]byte, error) {
	return encodeBare(discord.ResponseTypeDeferredChannelMessageWithSource)
}

func (r DeferredUpdateMessage) MarshalJSON() ([]byte, error) {
	return encodeWithData(discord.ResponseTypeDeferredUpdateMessage, r.Message)
}

func (r UpdateMessage) MarshalJSON() ([]byte, error) {
	return encodeWithData(discord.ResponseTypeUpdateMessage, r.Message)
}

func (r AutocompleteResult) MarshalJSON() ([]byte, error) {
	return encodeWithData(discord.ResponseTypeAutocompleteResult, r.Autocomplete)
}

func (r ModalResponse) MarshalJSON() ([]byte, error) {
	if r.Modal.customID == "" {
		return nil, &discord.MissingFieldError{Field: "custom_id"}
	}
	return encodeWithData(discord.ResponseTypeModal, r.Modal)
}

func encodeBare(t discord.ResponseType) ([]byte, error) {
	return json.Marshal(struct {
		Type discord.ResponseType `json:"type"`
	}{t})
}

func encodeWithData(t discord.ResponseType, data any) ([]byte, error) {
	return json.Marshal(struct {
		Type discord.ResponseType `json:"type"`
		Data any                  `json:"data"`
	}{t, data})
}

// MaxAutocompleteChoices bounds the suggestions in one autocomplete result.
const MaxAutocompleteChoices = 25

// Autocomplete carries suggestions for the focused option.
type Autocomplete struct {
	choices []command.Choice
}

// NewAutocomplete returns a result holding choices in order.
func NewAutocomplete(choices ...command.Choice) (Autocomplete, error) {
	if len(choices) > MaxAutocompleteChoices {
		return Autocomplete{}, &discord.RangeError{
			Field: "choices",
			Value: int64(len(choices)),
			Min:   0,
			Max:   MaxAutocompleteChoices,
		}
	}
	return Autocomplete{choices: slices.Clone(choices)}, nil
}

// Choices returns a copy of the suggestions.
func (a Autocomplete) Choices() []command.Choice { return slices.Clone(a.choices) }

// MarshalJSON implements json.Marshaler. choices is always present.
func (a Autocomplete) MarshalJSON() ([]byte, error) {
	choices := a.choices
	if choices == nil {
		choices = []command.Choice{}
	}
	return json.Marshal(struct {
		Choices []command.Choice `json:"choices"`
	}{choices})
}

// Modal limits.
const (
	MaxModalTitle = 45
	MaxModalRows  = 5
)

// ModalConfig is the input to NewModal. CustomID and Title are required and
// Components must hold between one and five rows.
type ModalConfig struct {
	CustomID   string
	Title      string
	Components []ActionRow
}

// Modal is a popup form.
type Modal struct {
	customID   string
	title      string
	components []ActionRow
}

// NewModal validates cfg and returns a Modal.
func NewModal(cfg ModalConfig) (Modal, error) {
	switch {
	case cfg.CustomID == "":
		return Modal{}, &discord.MissingFieldError{Field: "custom_id"}
	case cfg.Title == "":
		return Modal{}, &discord.MissingFieldError{Field: "title"}
	case len(cfg.Components) == 0:
		return Modal{}, &discord.MissingFieldError{Field: "components"}
	}
	if utf8.RuneCountInString(cfg.Title) > MaxModalTitle {
		return Modal{}, &discord.ValueTooLongError{Field: "title", Max: MaxModalTitle}
	}
	if len(cfg.Components) > MaxModalRows {
		return Modal{}, &discord.RangeError{
			Field: "components",
			Value: int64(len(cfg.Components)),
			Min:   1,
			Max:   MaxModalRows,
		}
	}
	return Modal{
		customID:   cfg.CustomID,
		title:      cfg.Title,
		components: slices.Clone(cfg.Components),
	}, nil
}

// MustModal is like NewModal but panics on error.
func MustModal(cfg ModalConfig) Modal {
	m, err := NewModal(cfg)
	if err != nil {
		panic("response: " + err.Error())
	}
	return m
}

func (m Modal) CustomID() string        { return m.customID }
func (m Modal) Title() string           { return m.title }
func (m Modal) Components() []ActionRow { return slices.Clone(m.components) }

// MarshalJSON implements json.Marshaler.
func (m Modal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CustomID   string      `json:"custom_id"`
		Title      string      `json:"title"`
		Components []ActionRow `json:"components"`
	}{m.customID, m.title, m.components})
}
