package logctx

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestHandler_AddsGroups(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(Handler{slog.NewJSONHandler(&buf, nil)}).With(slog.String("component", "test"))

	ctx := WithRequestData(context.Background(), &RequestData{RequestID: "r1", Method: "POST", Path: "/interactions"})
	ctx = WithInteractionData(ctx, &InteractionData{InteractionID: "9", Type: "APPLICATION_COMMAND", Command: "ping"})
	log.InfoContext(ctx, "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if rec["component"] != "test" {
		t.Errorf("attrs added via With were lost: %v", rec)
	}
	req, _ := rec["req"].(map[string]any)
	if req["id"] != "r1" || req["method"] != "POST" || req["path"] != "/interactions" {
		t.Errorf("unexpected req group %v", req)
	}
	in, _ := rec["interaction"].(map[string]any)
	if in["command"] != "ping" || in["type"] != "APPLICATION_COMMAND" {
		t.Errorf("unexpected interaction group %v", in)
	}
	if _, ok := in["guild_id"]; ok {
		t.Errorf("empty guild id should be omitted")
	}
}

func TestHandler_NoContextData(t *testing.T) {
	var buf bytes.Buffer
	slog.New(Handler{slog.NewJSONHandler(&buf, nil)}).Info("plain")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := rec["req"]; ok {
		t.Errorf("req group should be absent without request data")
	}
}
