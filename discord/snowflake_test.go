package discord

import (
	"encoding/json"
	"testing"
)

func TestSnowflake_JSON(t *testing.T) {
	var fromString Snowflake
	if err := json.Unmarshal([]byte(`"1234567890123456789"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromString != 1234567890123456789 {
		t.Errorf("want 1234567890123456789, got %d", fromString)
	}

	var fromNumber Snowflake
	if err := json.Unmarshal([]byte(`42`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromNumber != 42 {
		t.Errorf("want 42, got %d", fromNumber)
	}

	b, err := json.Marshal(fromString)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"1234567890123456789"` {
		t.Errorf("snowflakes encode as strings, got %s", b)
	}

	var bad Snowflake
	for _, input := range []string{`"abc"`, `-1`, `true`} {
		if err := json.Unmarshal([]byte(input), &bad); err == nil {
			t.Errorf("expected error decoding %s", input)
		}
	}
}

func TestKindTables(t *testing.T) {
	if !OptionKindAttachment.Valid() || OptionKind(12).Valid() || OptionKind(0).Valid() {
		t.Fatalf("option kind validity is off")
	}
	if k, ok := ParseOptionKind("sub_command_group"); !ok || k != OptionKindSubCommandGroup {
		t.Errorf("ParseOptionKind: got %d %v", k, ok)
	}
	if k, ok := ParseCommandKind("message"); !ok || k != CommandKindMessage {
		t.Errorf("ParseCommandKind: got %d %v", k, ok)
	}
	if _, ok := ParseCommandKind("slash"); ok {
		t.Errorf("unexpected match for unknown command kind")
	}
	if CommandKind(5).Valid() {
		t.Errorf("command kind 5 should be invalid")
	}
}
