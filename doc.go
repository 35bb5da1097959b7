// Package interactions serves a Discord interactions endpoint over HTTP.
//
// A Handler verifies the Ed25519 signature the platform attaches to every
// request, decodes the interaction envelope, answers Ping with Pong and
// routes application commands by name to a CommandFunc. Whatever the
// CommandFunc returns is encoded as the HTTP response body.
//
//	pub, _ := interactions.ParsePublicKey(os.Getenv("DISCORD_PUBLIC_KEY"))
//	h, err := interactions.NewHandler(interactions.HandlerConfig{
//	    PublicKey: pub,
//	    Commands: map[string]interactions.CommandFunc{
//	        "ping": func(ctx context.Context, env *interaction.Envelope, data *interaction.CommandData) (response.Response, error) {
//	            return response.ChannelMessage{Message: response.Message{Content: "pong"}}, nil
//	        },
//	    },
//	    LogHandler: slog.NewJSONHandler(os.Stderr, nil),
//	})
//	http.Handle("POST /interactions", h)
//
// Decode failures are answered 400. An unknown interaction type is logged
// at warn level, a malformed payload for a known type at error level, so
// that platform additions and genuine bugs are easy to tell apart.
package interactions
