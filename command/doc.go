// Package command builds the application-command registration payload.
//
// Values are produced only through validating constructors (NewCommand,
// NewOption, NewChoice) that take a plain config struct and return either an
// immutable value or the first violated rule:
//
//	msg := command.MustOption(command.OptionConfig{
//	    Kind:        discord.OptionKindString,
//	    Name:        "msg",
//	    Description: "What to echo back",
//	    Required:    true,
//	    MinLength:   discord.Ptr(0),
//	    MaxLength:   discord.Ptr(100),
//	})
//	ping, err := command.NewCommand(command.CommandConfig{
//	    Name:    "ping",
//	    Kind:    discord.CommandKindChatInput,
//	    Options: []command.Option{msg},
//	})
//
// Validation runs in a fixed order: presence checks, then type checks, then
// range checks. No errors are accumulated; the first failure is returned as
// one of the discord package error types.
//
// Encoding omits every optional key that was never set. Slices follow the
// same rule: a nil Choices or Options slice is omitted while an empty,
// non-nil slice encodes as [].
package command
