package response

import (
	"encoding/json"
	"strings"
)

// MessageFlags is the 32-bit message flag bitmask.
type MessageFlags uint32

const (
	FlagCrossposted                      MessageFlags = 1 << 0
	FlagIsCrosspost                      MessageFlags = 1 << 1
	FlagSuppressEmbeds                   MessageFlags = 1 << 2
	FlagSourceMessageDeleted             MessageFlags = 1 << 3
	FlagUrgent                           MessageFlags = 1 << 4
	FlagHasThread                        MessageFlags = 1 << 5
	FlagEphemeral                        MessageFlags = 1 << 6
	FlagLoading                          MessageFlags = 1 << 7
	FlagFailedToMentionSomeRolesInThread MessageFlags = 1 << 8
	FlagSuppressNotifications            MessageFlags = 1 << 12
	FlagIsVoiceMessage                   MessageFlags = 1 << 13
)

var flagNames = []struct {
	flag MessageFlags
	name string
}{
	{FlagCrossposted, "CROSSPOSTED"},
	{FlagIsCrosspost, "IS_CROSSPOST"},
	{FlagSuppressEmbeds, "SUPPRESS_EMBEDS"},
	{FlagSourceMessageDeleted, "SOURCE_MESSAGE_DELETED"},
	{FlagUrgent, "URGENT"},
	{FlagHasThread, "HAS_THREAD"},
	{FlagEphemeral, "EPHEMERAL"},
	{FlagLoading, "LOADING"},
	{FlagFailedToMentionSomeRolesInThread, "FAILED_TO_MENTION_SOME_ROLES_IN_THREAD"},
	{FlagSuppressNotifications, "SUPPRESS_NOTIFICATIONS"},
	{FlagIsVoiceMessage, "IS_VOICE_MESSAGE"},
}

// Has reports whether every bit of flag is set in f.
func (f MessageFlags) Has(flag MessageFlags) bool { return f&flag == flag }

// String renders the set flags joined by "|". Unnamed bits are dropped.
func (f MessageFlags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}

// Message is the payload of message-bearing responses. The zero value is an
// empty message; every field is omitted from the wire when unset. A nil
// Components slice is omitted while an empty one encodes as [].
type Message struct {
	TTS        bool
	Content    string
	Flags      MessageFlags
	Components []Component
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	if err := checkComponents(m.Components); err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		TTS        bool         `json:"tts,omitzero"`
		Content    string       `json:"content,omitzero"`
		Flags      MessageFlags `json:"flags,omitzero"`
		Components []Component  `json:"components,omitzero"`
	}{m.TTS, m.Content, m.Flags, m.Components})
}
