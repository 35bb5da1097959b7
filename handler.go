package interactions

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/elnormous/contenttype"
	"github.com/ggoodman/discord-interactions-go/discord"
	"github.com/ggoodman/discord-interactions-go/interaction"
	"github.com/ggoodman/discord-interactions-go/internal/logctx"
	"github.com/ggoodman/discord-interactions-go/response"
	"github.com/google/uuid"
)

var _ http.Handler = (*Handler)(nil)

var (
	// ErrUnknownCommand is logged when an application command has no
	// registered CommandFunc and no Fallback is configured.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNilResponse is logged when a CommandFunc or Fallback returns
	// neither a response nor an error.
	ErrNilResponse = errors.New("handler returned a nil response")
)

var jsonMediaType = contenttype.NewMediaType("application/json")

const (
	signatureHeader    = "X-Signature-Ed25519"
	timestampHeader    = "X-Signature-Timestamp"
	requestIDHeader    = "X-Request-Id"
	defaultMaxBodySize = 1 << 20
)

// CommandFunc answers one application command invocation.
type CommandFunc func(ctx context.Context, env *interaction.Envelope, data *interaction.CommandData) (response.Response, error)

// FallbackFunc answers interactions that no CommandFunc handles: message
// components, autocomplete, modal submissions and unregistered commands.
type FallbackFunc func(ctx context.Context, env *interaction.Envelope) (response.Response, error)

// HandlerConfig configures NewHandler.
type HandlerConfig struct {
	// PublicKey is the application's Ed25519 public key. Required. Every
	// request must carry a valid signature from the matching private key.
	PublicKey ed25519.PublicKey

	// Commands maps command names to their implementations.
	Commands map[string]CommandFunc

	// Fallback is optional. Without it, interaction kinds other than Ping
	// and registered commands are answered 501 Not Implemented and unknown
	// command names 404 Not Found.
	Fallback FallbackFunc

	// MaxBodyBytes caps the request body. Default 1 MiB.
	MaxBodyBytes int64

	// LogHandler is an optional slog.Handler for logging within the handler. If nil, logging is discarded.
	LogHandler slog.Handler
}

// Handler is the HTTP endpoint the platform delivers interactions to.
type Handler struct {
	publicKey ed25519.PublicKey
	commands  map[string]CommandFunc
	fallback  FallbackFunc
	maxBody   int64
	log       *slog.Logger
}

// NewHandler validates cfg and returns a Handler.
func NewHandler(cfg HandlerConfig) (*Handler, error) {
	if len(cfg.PublicKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(cfg.PublicKey))
	}

	commands := make(map[string]CommandFunc, len(cfg.Commands))
	for name, fn := range cfg.Commands {
		if fn == nil {
			return nil, fmt.Errorf("command %q has a nil handler", name)
		}
		commands[name] = fn
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}

	logHandler := slog.DiscardHandler
	if cfg.LogHandler != nil {
		logHandler = cfg.LogHandler
	}

	return &Handler{
		publicKey: cfg.PublicKey,
		commands:  commands,
		fallback:  cfg.Fallback,
		maxBody:   maxBody,
		log:       slog.New(logctx.Handler{Handler: logHandler}),
	}, nil
}

// ParsePublicKey decodes the hex-encoded public key shown in the developer
// portal.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(b))
	}
	return ed25519.PublicKey(b), nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	ctx := logctx.WithRequestData(r.Context(), &logctx.RequestData{
		RequestID:  reqID,
		Method:     r.Method,
		Path:       r.URL.Path,
		RemoteAddr: r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	})
	w.Header().Set(requestIDHeader, reqID)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		h.log.DebugContext(ctx, "interaction.reject.content_type", slog.String("content_type", r.Header.Get("Content-Type")))
		w.WriteHeader(http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		h.log.WarnContext(ctx, "interaction.read_body.failed", slog.String("err", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !h.verify(r.Header.Get(signatureHeader), r.Header.Get(timestampHeader), body) {
		h.log.InfoContext(ctx, "interaction.reject.signature")
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	env, err := interaction.Decode(body)
	if err != nil {
		var unknown *discord.UnknownDiscriminantError
		if errors.As(err, &unknown) {
			h.log.WarnContext(ctx, "interaction.decode.unknown_type", slog.Int64("type", unknown.Value))
		} else {
			h.log.ErrorContext(ctx, "interaction.decode.failed", slog.String("err", err.Error()))
		}
		http.Error(w, "invalid interaction", http.StatusBadRequest)
		return
	}

	ctx = logctx.WithInteractionData(ctx, interactionData(env))

	res, status, err := h.dispatch(ctx, env)
	if err != nil {
		if status >= http.StatusInternalServerError {
			h.log.ErrorContext(ctx, "interaction.dispatch.failed", slog.String("err", err.Error()))
		} else {
			h.log.WarnContext(ctx, "interaction.dispatch.unhandled", slog.String("err", err.Error()))
		}
		w.WriteHeader(status)
		return
	}

	out, err := json.Marshal(res)
	if err != nil {
		h.log.ErrorContext(ctx, "interaction.encode.failed", slog.String("err", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.DebugContext(ctx, "interaction.respond", slog.Int("response_type", int(res.ResponseType())))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// verify checks an Ed25519 signature over timestamp || body.
func (h *Handler) verify(sigHex, timestamp string, body []byte) bool {
	if sigHex == "" || timestamp == "" {
		return false
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(h.publicKey, msg, sig)
}

// dispatch routes env to its implementation. A non-nil error comes with the
// HTTP status to answer.
func (h *Handler) dispatch(ctx context.Context, env *interaction.Envelope) (response.Response, int, error) {
	var (
		res response.Response
		err error
	)
	switch in := env.Interaction.(type) {
	case interaction.Ping:
		return response.Pong{}, http.StatusOK, nil
	case *interaction.ApplicationCommand:
		fn, ok := h.commands[in.Data.Name]
		switch {
		case ok:
			res, err = fn(ctx, env, &in.Data)
		case h.fallback != nil:
			res, err = h.fallback(ctx, env)
		default:
			return nil, http.StatusNotFound, fmt.Errorf("%w: %q", ErrUnknownCommand, in.Data.Name)
		}
	default:
		if h.fallback == nil {
			return nil, http.StatusNotImplemented, fmt.Errorf("no handler for %s interactions", env.Type())
		}
		res, err = h.fallback(ctx, env)
	}
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if res == nil {
		return nil, http.StatusInternalServerError, ErrNilResponse
	}
	return res, http.StatusOK, nil
}

func interactionData(env *interaction.Envelope) *logctx.InteractionData {
	d := &logctx.InteractionData{
		InteractionID: env.ID.String(),
		Type:          env.Type().String(),
	}
	if cmd, ok := env.Command(); ok {
		d.Command = cmd.Name
	}
	if env.GuildID != nil {
		d.GuildID = env.GuildID.String()
	}
	return d
}
