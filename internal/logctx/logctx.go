// Package logctx carries request and interaction attributes on a context
// and adds them to every slog record logged with that context.
package logctx

import (
	"context"
	"log/slog"
)

// Handler wraps another slog.Handler and appends the "req" and
// "interaction" groups found on the record's context.
type Handler struct {
	slog.Handler
}

// Handle implements slog.Handler.
func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		r.AddAttrs(slog.Group("req",
			slog.String("id", rd.RequestID),
			slog.String("method", rd.Method),
			slog.String("path", rd.Path),
			slog.String("remote_addr", rd.RemoteAddr),
			slog.String("user_agent", rd.UserAgent),
		))
	}

	if id, ok := ctx.Value(interactionDataKey{}).(*InteractionData); ok {
		attrs := []any{
			slog.String("id", id.InteractionID),
			slog.String("type", id.Type),
		}
		if id.Command != "" {
			attrs = append(attrs, slog.String("command", id.Command))
		}
		if id.GuildID != "" {
			attrs = append(attrs, slog.String("guild_id", id.GuildID))
		}
		r.AddAttrs(slog.Group("interaction", attrs...))
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{h.Handler.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{h.Handler.WithGroup(name)}
}

type requestDataKey struct{}

// RequestData describes the inbound HTTP request.
type RequestData struct {
	RequestID  string
	Method     string
	Path       string
	RemoteAddr string
	UserAgent  string
}

// WithRequestData returns a context carrying data.
func WithRequestData(ctx context.Context, data *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, data)
}

type interactionDataKey struct{}

// InteractionData describes the decoded interaction being handled.
type InteractionData struct {
	InteractionID string
	Type          string
	Command       string
	GuildID       string
}

// WithInteractionData returns a context carrying data.
func WithInteractionData(ctx context.Context, data *InteractionData) context.Context {
	return context.WithValue(ctx, interactionDataKey{}, data)
}
