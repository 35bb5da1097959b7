// Package interaction decodes inbound interaction events.
//
// Decoding reads the numeric "type" discriminant first and dispatches on it:
//
//	1  Ping                 no payload
//	2  ApplicationCommand   "data" required, decoded into CommandData
//	3  MessageComponent     recognized, payload ignored
//	4  Autocomplete         recognized, payload ignored
//	5  ModalSubmit          recognized, payload ignored
//
// Any other value fails with *discord.UnknownDiscriminantError. A command
// interaction without "data" fails with *discord.PayloadMissingError and a
// structurally invalid one with *discord.PayloadMalformedError, so callers can
// tell a newer platform apart from a broken payload.
//
// The decoded option tree is not validated against the registered schema; it
// mirrors whatever the platform sent.
package interaction
