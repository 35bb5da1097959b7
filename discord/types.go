package discord

import "fmt"

// InteractionType is the discriminant of an inbound interaction envelope.
type InteractionType uint8

const (
	InteractionTypePing                           InteractionType = 1
	InteractionTypeApplicationCommand             InteractionType = 2
	InteractionTypeMessageComponent               InteractionType = 3
	InteractionTypeApplicationCommandAutocomplete InteractionType = 4
	InteractionTypeModalSubmit                    InteractionType = 5
)

func (t InteractionType) String() string {
	switch t {
	case InteractionTypePing:
		return "ping"
	case InteractionTypeApplicationCommand:
		return "application_command"
	case InteractionTypeMessageComponent:
		return "message_component"
	case InteractionTypeApplicationCommandAutocomplete:
		return "application_command_autocomplete"
	case InteractionTypeModalSubmit:
		return "modal_submit"
	default:
		return fmt.Sprintf("interaction_type(%d)", uint8(t))
	}
}

// CommandKind identifies where a registered command surfaces in the client.
type CommandKind uint8

const (
	// CommandKindChatInput is a slash command typed into the chat box.
	CommandKindChatInput CommandKind = 1
	// CommandKindUser is a context-menu command on a user.
	CommandKindUser CommandKind = 2
	// CommandKindMessage is a context-menu command on a message.
	CommandKindMessage CommandKind = 3
	// CommandKindPrimaryEntryPoint launches an activity.
	CommandKindPrimaryEntryPoint CommandKind = 4
)

// Valid reports whether k is one of the platform-defined command kinds.
func (k CommandKind) Valid() bool {
	return k >= CommandKindChatInput && k <= CommandKindPrimaryEntryPoint
}

func (k CommandKind) String() string {
	switch k {
	case CommandKindChatInput:
		return "chat_input"
	case CommandKindUser:
		return "user"
	case CommandKindMessage:
		return "message"
	case CommandKindPrimaryEntryPoint:
		return "primary_entry_point"
	default:
		return fmt.Sprintf("command_kind(%d)", uint8(k))
	}
}

// OptionKind is the type of a command option, shared by the registration
// schema and decoded invocation data.
type OptionKind uint8

const (
	OptionKindSubCommand      OptionKind = 1
	OptionKindSubCommandGroup OptionKind = 2
	OptionKindString          OptionKind = 3
	OptionKindInteger         OptionKind = 4
	OptionKindBoolean         OptionKind = 5
	OptionKindUser            OptionKind = 6
	OptionKindChannel         OptionKind = 7
	OptionKindRole            OptionKind = 8
	OptionKindMentionable     OptionKind = 9
	OptionKindNumber          OptionKind = 10
	OptionKindAttachment      OptionKind = 11
)

var optionKindNames = [...]string{
	OptionKindSubCommand:      "sub_command",
	OptionKindSubCommandGroup: "sub_command_group",
	OptionKindString:          "string",
	OptionKindInteger:         "integer",
	OptionKindBoolean:         "boolean",
	OptionKindUser:            "user",
	OptionKindChannel:         "channel",
	OptionKindRole:            "role",
	OptionKindMentionable:     "mentionable",
	OptionKindNumber:          "number",
	OptionKindAttachment:      "attachment",
}

// Valid reports whether k is one of the eleven platform-defined option kinds.
func (k OptionKind) Valid() bool {
	return k >= OptionKindSubCommand && k <= OptionKindAttachment
}

func (k OptionKind) String() string {
	if k.Valid() {
		return optionKindNames[k]
	}
	return fmt.Sprintf("option_kind(%d)", uint8(k))
}

// ParseOptionKind resolves the snake_case name returned by String.
func ParseOptionKind(name string) (OptionKind, bool) {
	for k := OptionKindSubCommand; k <= OptionKindAttachment; k++ {
		if optionKindNames[k] == name {
			return k, true
		}
	}
	return 0, false
}

// ParseCommandKind resolves the snake_case name returned by String.
func ParseCommandKind(name string) (CommandKind, bool) {
	for k := CommandKindChatInput; k <= CommandKindPrimaryEntryPoint; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// ComponentType is the discriminant of a message component.
type ComponentType uint8

const (
	ComponentTypeActionRow         ComponentType = 1
	ComponentTypeButton            ComponentType = 2
	ComponentTypeStringSelect      ComponentType = 3
	ComponentTypeTextInput         ComponentType = 4
	ComponentTypeUserSelect        ComponentType = 5
	ComponentTypeRoleSelect        ComponentType = 6
	ComponentTypeMentionableSelect ComponentType = 7
	ComponentTypeChannelSelect     ComponentType = 8
)

// ButtonStyle controls the color and behavior of a button.
type ButtonStyle uint8

const (
	ButtonStylePrimary   ButtonStyle = 1
	ButtonStyleSecondary ButtonStyle = 2
	ButtonStyleSuccess   ButtonStyle = 3
	ButtonStyleDanger    ButtonStyle = 4
	ButtonStyleLink      ButtonStyle = 5
	ButtonStylePremium   ButtonStyle = 6
)

// Valid reports whether s is a known button style.
func (s ButtonStyle) Valid() bool {
	return s >= ButtonStylePrimary && s <= ButtonStylePremium
}

// TextInputStyle selects single-line or multi-line text inputs.
type TextInputStyle uint8

const (
	TextInputStyleShort     TextInputStyle = 1
	TextInputStyleParagraph TextInputStyle = 2
)

// Valid reports whether s is a known text input style.
func (s TextInputStyle) Valid() bool {
	return s == TextInputStyleShort || s == TextInputStyleParagraph
}

// ResponseType is the discriminant of an interaction response. Values 2 and
// 3 are reserved by the platform.
type ResponseType uint8

const (
	ResponseTypePong                             ResponseType = 1
	ResponseTypeChannelMessageWithSource         ResponseType = 4
	ResponseTypeDeferredChannelMessageWithSource ResponseType = 5
	ResponseTypeDeferredUpdateMessage            ResponseType = 6
	ResponseTypeUpdateMessage                    ResponseType = 7
	ResponseTypeAutocompleteResult               ResponseType = 8
	ResponseTypeModal                            ResponseType = 9
)

// Ptr returns a pointer to v. It is convenient for the optional fields of
// config structs.
func Ptr[T any](v T) *T { return &v }
