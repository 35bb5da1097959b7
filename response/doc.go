// Package response encodes outbound interaction responses and the messages
// and components they carry.
//
// Both Component and Response are closed tagged unions. Every variant has
// its own MarshalJSON producing only the fields that variant defines, headed
// by its "type" discriminant. Optional fields that were never set are
// omitted rather than encoded as null, and payload-less responses (Pong,
// DeferredChannelMessage) omit the "data" key entirely.
//
//	row := response.NewActionRow(
//	    response.MustButton(response.ButtonConfig{
//	        Style:    discord.ButtonStylePrimary,
//	        Label:    "Again",
//	        CustomID: "again",
//	    }),
//	)
//	res := response.ChannelMessage{Message: response.Message{
//	    Content:    "pong",
//	    Flags:      response.FlagEphemeral,
//	    Components: []response.Component{row},
//	}}
//	body, err := json.Marshal(res)
package response
