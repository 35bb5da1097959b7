// Package discord contains the wire-level vocabulary shared by the command,
// interaction and response packages: the integer discriminant tables used by
// the platform's interaction protocol, the Snowflake identifier type, the
// polymorphic ScalarValue leaf and the error taxonomy returned by every
// constructor and decoder in this module.
//
// The package is intentionally free of transport logic. Higher-level packages
// build validated values (command.Option, response.Button, ...) out of these
// types and the root package wires them to HTTP.
//
// # Discriminants
//
// Every tagged union on the wire selects its variant with a small integer
// stored under the "type" key. Each table is exposed as a typed constant set
// (InteractionType, CommandKind, OptionKind, ComponentType, ButtonStyle,
// TextInputStyle, ResponseType). The numeric values are fixed by the platform
// and must never be renumbered.
//
// # Scalar values
//
// ScalarValue is a closed union of Int, Float, String and Bool. Decoding
// follows a fixed coercion order (see ScalarValue.UnmarshalJSON); in
// particular unsigned integers above math.MaxInt64 decode as Float rather than
// failing so that decoding stays total over numeric literals.
//
// # Errors
//
// Constructors fail fast on the first violated rule and decoders return
// recoverable errors. All of them use the concrete error types declared in
// errors.go so callers can branch with errors.As:
//
//	var unknown *discord.UnknownDiscriminantError
//	if errors.As(err, &unknown) {
//	    // acknowledge gracefully, the platform added a new kind
//	}
package discord
