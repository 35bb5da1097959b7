package command

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ggoodman/discord-interactions-go/discord"
)

// decode re-reads an encoded payload as a generic map for key-presence checks.
func decode(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestNewOption_MinimalPayload(t *testing.T) {
	for k := discord.OptionKindSubCommand; k <= discord.OptionKindAttachment; k++ {
		t.Run(k.String(), func(t *testing.T) {
			opt, err := NewOption(OptionConfig{Kind: k, Name: "n", Description: "d"})
			if err != nil {
				t.Fatalf("NewOption: %v", err)
			}
			m := decode(t, opt)
			if len(m) != 3 {
				t.Fatalf("expected only type/name/description, got keys %v", keys(m))
			}
			if m["type"] != float64(k) || m["name"] != "n" || m["description"] != "d" {
				t.Errorf("unexpected payload %v", m)
			}
		})
	}
}

func TestNewOption_PresenceChecks(t *testing.T) {
	tests := []struct {
		name  string
		cfg   OptionConfig
		field string
	}{
		{"kind", OptionConfig{Name: "n", Description: "d"}, "type"},
		{"name", OptionConfig{Kind: discord.OptionKindString, Description: "d"}, "name"},
		{"description", OptionConfig{Kind: discord.OptionKindString, Name: "n"}, "description"},
		{"kind wins over name", OptionConfig{}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOption(tt.cfg)
			var missing *discord.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tt.field {
				t.Errorf("want field %q, got %q", tt.field, missing.Field)
			}
		})
	}
}

func TestNewOption_UnknownKind(t *testing.T) {
	_, err := NewOption(OptionConfig{Kind: 12, Name: "n", Description: "d"})
	var unknown *discord.UnknownDiscriminantError
	if !errors.As(err, &unknown) || unknown.Value != 12 {
		t.Fatalf("expected UnknownDiscriminantError(12), got %v", err)
	}
}

func TestNewOption_ValueBoundsRejectNonNumeric(t *testing.T) {
	base := func() OptionConfig {
		return OptionConfig{Kind: discord.OptionKindNumber, Name: "n", Description: "d"}
	}

	cfg := base()
	cfg.MinValue = discord.Ptr(discord.String("1"))
	_, err := NewOption(cfg)
	var mismatch *discord.TypeMismatchError
	if !errors.As(err, &mismatch) || mismatch.Field != "min_value" {
		t.Fatalf("expected min_value TypeMismatchError, got %v", err)
	}

	cfg = base()
	cfg.MaxValue = discord.Ptr(discord.Bool(true))
	_, err = NewOption(cfg)
	if !errors.As(err, &mismatch) || mismatch.Field != "max_value" {
		t.Fatalf("expected max_value TypeMismatchError, got %v", err)
	}

	cfg = base()
	cfg.MinValue = discord.Ptr(discord.Int(-5))
	cfg.MaxValue = discord.Ptr(discord.Float(9.5))
	opt, err := NewOption(cfg)
	if err != nil {
		t.Fatalf("numeric bounds should be accepted: %v", err)
	}
	m := decode(t, opt)
	if m["min_value"] != float64(-5) || m["max_value"] != 9.5 {
		t.Errorf("unexpected bounds in %v", m)
	}
}

func TestNewOption_LengthRanges(t *testing.T) {
	tests := []struct {
		name    string
		min     *int
		max     *int
		wantErr string
	}{
		{"min 0", discord.Ptr(0), nil, ""},
		{"min 6000", discord.Ptr(6000), nil, ""},
		{"min 6001", discord.Ptr(6001), nil, "min_length"},
		{"min -1", discord.Ptr(-1), nil, "min_length"},
		{"max 1", nil, discord.Ptr(1), ""},
		{"max 6000", nil, discord.Ptr(6000), ""},
		{"max 0", nil, discord.Ptr(0), "max_length"},
		{"max 6001", nil, discord.Ptr(6001), "max_length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOption(OptionConfig{
				Kind:        discord.OptionKindString,
				Name:        "n",
				Description: "d",
				MinLength:   tt.min,
				MaxLength:   tt.max,
			})
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var rng *discord.RangeError
			if !errors.As(err, &rng) {
				t.Fatalf("expected RangeError, got %v", err)
			}
			if rng.Field != tt.wantErr {
				t.Errorf("want field %q, got %q", tt.wantErr, rng.Field)
			}
		})
	}
}

func TestNewOption_TypeChecksPrecedeRangeChecks(t *testing.T) {
	_, err := NewOption(OptionConfig{
		Kind:        discord.OptionKindString,
		Name:        "n",
		Description: "d",
		MaxValue:    discord.Ptr(discord.String("x")),
		MinLength:   discord.Ptr(9000),
	})
	var mismatch *discord.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected the type check to fail first, got %v", err)
	}
}

func TestNewOption_IsolatedFromConfig(t *testing.T) {
	choices := []Choice{MustChoice("a", discord.Int(1))}
	min := 3
	cfg := OptionConfig{
		Kind:        discord.OptionKindInteger,
		Name:        "n",
		Description: "d",
		Choices:     choices,
		MinLength:   &min,
	}
	opt := MustOption(cfg)

	choices[0] = MustChoice("b", discord.Int(2))
	min = 99

	if got := opt.Choices()[0].Name(); got != "a" {
		t.Errorf("choices leaked from config: %q", got)
	}
	if got, _ := opt.MinLength(); got != 3 {
		t.Errorf("min_length leaked from config: %d", got)
	}
}

func TestOption_AbsentVersusEmptyLists(t *testing.T) {
	absent := MustOption(OptionConfig{Kind: discord.OptionKindSubCommand, Name: "n", Description: "d"})
	if absent.Options() != nil || absent.Choices() != nil {
		t.Fatalf("unset lists should be nil")
	}

	empty := MustOption(OptionConfig{
		Kind:        discord.OptionKindSubCommand,
		Name:        "n",
		Description: "d",
		Options:     []Option{},
	})
	m := decode(t, empty)
	opts, ok := m["options"].([]any)
	if !ok || len(opts) != 0 {
		t.Fatalf("explicitly empty options should encode as [], got %v", m["options"])
	}
	if _, ok := m["choices"]; ok {
		t.Errorf("choices should be omitted")
	}
}

func TestOption_NestedTree(t *testing.T) {
	leaf := MustOption(OptionConfig{
		Kind:        discord.OptionKindString,
		Name:        "color",
		Description: "Pick one",
		Choices: []Choice{
			MustChoice("Red", discord.String("red")),
			MustChoice("Blue", discord.String("blue")),
		},
	})
	sub := MustOption(OptionConfig{
		Kind:        discord.OptionKindSubCommand,
		Name:        "set",
		Description: "Set the color",
		Options:     []Option{leaf},
	})
	group := MustOption(OptionConfig{
		Kind:        discord.OptionKindSubCommandGroup,
		Name:        "color",
		Description: "Color settings",
		Options:     []Option{sub},
	})

	b, err := json.Marshal(group)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":2,"name":"color","description":"Color settings","options":[` +
		`{"type":1,"name":"set","description":"Set the color","options":[` +
		`{"type":3,"name":"color","description":"Pick one","choices":[{"name":"Red","value":"red"},{"name":"Blue","value":"blue"}]}]}]}`
	if string(b) != want {
		t.Errorf("unexpected encoding\nwant %s\ngot  %s", want, b)
	}
}

func TestChoice(t *testing.T) {
	hundred := strings.Repeat("x", 100)
	if _, err := NewChoice("ok", discord.String(hundred)); err != nil {
		t.Fatalf("100 characters should be accepted: %v", err)
	}
	b, err := json.Marshal(MustChoice("ok", discord.String(hundred)))
	if err != nil {
		t.Fatalf("100 characters should serialize: %v", err)
	}
	if !strings.Contains(string(b), hundred) {
		t.Errorf("value missing from %s", b)
	}

	_, err = NewChoice("long", discord.String(hundred+"x"))
	var tooLong *discord.ValueTooLongError
	if !errors.As(err, &tooLong) || tooLong.Max != 100 {
		t.Fatalf("expected ValueTooLongError(100), got %v", err)
	}

	// Characters, not bytes.
	if _, err := NewChoice("runes", discord.String(strings.Repeat("é", 100))); err != nil {
		t.Errorf("100 multi-byte characters should be accepted: %v", err)
	}

	// A hand-assembled choice still fails at encode time.
	if _, err := json.Marshal(Choice{name: "raw", value: discord.String(hundred + "x")}); err == nil {
		t.Errorf("expected encode failure for 101 characters")
	}

	_, err = NewChoice("flag", discord.Bool(true))
	var mismatch *discord.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected TypeMismatchError for bool choice, got %v", err)
	}

	var missing *discord.MissingFieldError
	if _, err := NewChoice("", discord.Int(1)); !errors.As(err, &missing) || missing.Field != "name" {
		t.Errorf("expected missing name, got %v", err)
	}
	if _, err := NewChoice("x", discord.ScalarValue{}); !errors.As(err, &missing) || missing.Field != "value" {
		t.Errorf("expected missing value, got %v", err)
	}
}

func TestNewCommand(t *testing.T) {
	var missing *discord.MissingFieldError
	if _, err := NewCommand(CommandConfig{Kind: discord.CommandKindChatInput}); !errors.As(err, &missing) || missing.Field != "name" {
		t.Fatalf("expected missing name, got %v", err)
	}
	if _, err := NewCommand(CommandConfig{Name: "x"}); !errors.As(err, &missing) || missing.Field != "type" {
		t.Fatalf("expected missing type, got %v", err)
	}
	var unknown *discord.UnknownDiscriminantError
	if _, err := NewCommand(CommandConfig{Name: "x", Kind: 9}); !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownDiscriminantError, got %v", err)
	}

	for k := discord.CommandKindChatInput; k <= discord.CommandKindPrimaryEntryPoint; k++ {
		cmd, err := NewCommand(CommandConfig{Name: "x", Kind: k})
		if err != nil {
			t.Fatalf("kind %s: %v", k, err)
		}
		m := decode(t, cmd)
		if m["type"] != float64(k) {
			t.Errorf("kind %s encoded as %v", k, m["type"])
		}
		if m["description"] != "" {
			t.Errorf("description should default to empty, got %v", m["description"])
		}
		if _, ok := m["options"]; ok {
			t.Errorf("options should be omitted when never set")
		}
	}
}

func TestNewCommand_PingScenario(t *testing.T) {
	msg, err := NewOption(OptionConfig{
		Kind:        discord.OptionKindString,
		Name:        "msg",
		Description: "...",
		Required:    true,
		MinLength:   discord.Ptr(0),
		MaxLength:   discord.Ptr(100),
	})
	if err != nil {
		t.Fatalf("NewOption: %v", err)
	}
	ping, err := NewCommand(CommandConfig{
		Name:    "ping",
		Kind:    discord.CommandKindChatInput,
		Options: []Option{msg},
	})
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}

	got := decode(t, ping)
	var want map[string]any
	if err := json.Unmarshal([]byte(`{"name":"ping","type":1,"description":"","options":[{"type":3,"name":"msg","description":"...","required":true,"min_length":0,"max_length":100}]}`), &want); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("payload mismatch\nwant %v\ngot  %v", want, got)
	}
}

func TestEncodeList(t *testing.T) {
	b, err := EncodeList(nil)
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	if string(b) != "[]" {
		t.Errorf("nil list should encode as [], got %s", b)
	}

	b, err = EncodeList([]Command{
		MustCommand(CommandConfig{Name: "a", Kind: discord.CommandKindUser}),
		MustCommand(CommandConfig{Name: "b", Kind: discord.CommandKindMessage}),
	})
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	want := `[{"name":"a","type":2,"description":""},{"name":"b","type":3,"description":""}]`
	if string(b) != want {
		t.Errorf("want %s, got %s", want, b)
	}
}

func TestMustOptionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustOption(OptionConfig{Name: "broken"})
}

func TestPayloadSchema(t *testing.T) {
	s := PayloadSchema()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}
	defs, ok := doc["$defs"].(map[string]any)
	if !ok {
		t.Fatalf("expected $defs in %s", b)
	}
	cmd, ok := defs["commandWire"].(map[string]any)
	if !ok {
		t.Fatalf("expected commandWire definition, got keys %v", keys(defs))
	}
	req, _ := cmd["required"].([]any)
	if len(req) != 3 {
		t.Errorf("expected name/type/description required, got %v", req)
	}
	if _, ok := defs["optionWire"]; !ok {
		t.Errorf("expected optionWire definition")
	}
}

func TestZeroChildOptionRejected(t *testing.T) {
	valid := MustOption(OptionConfig{Kind: discord.OptionKindString, Name: "s", Description: "d"})

	_, err := NewCommand(CommandConfig{Name: "x", Kind: discord.CommandKindChatInput, Options: []Option{valid, {}}})
	var missing *discord.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "options[1]" {
		t.Fatalf("command: expected options[1] MissingFieldError, got %v", err)
	}

	_, err = NewOption(OptionConfig{Kind: discord.OptionKindSubCommand, Name: "sub", Description: "d", Options: []Option{{}}})
	if !errors.As(err, &missing) || missing.Field != "options[0]" {
		t.Fatalf("option: expected options[0] MissingFieldError, got %v", err)
	}

	_, err = NewOption(OptionConfig{Kind: discord.OptionKindString, Name: "s", Description: "d", Choices: []Choice{{}}})
	if !errors.As(err, &missing) || missing.Field != "choices[0]" {
		t.Fatalf("option: expected choices[0] MissingFieldError, got %v", err)
	}
}

func TestZeroOptionFailsToEncode(t *testing.T) {
	if _, err := json.Marshal(Option{}); err == nil {
		t.Fatal("expected zero Option to fail encoding")
	}
	if _, err := json.Marshal(Command{name: "x", kind: discord.CommandKindChatInput, options: []Option{{}}}); err == nil {
		t.Fatal("expected command with a zero option to fail encoding")
	}
}

func TestPayloadSchema_ScalarShapes(t *testing.T) {
	b, err := json.Marshal(PayloadSchema())
	if err != nil {
		t.Fatalf("marshal schema: %v", err)
	}
	var doc struct {
		Defs map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal schema: %v", err)
	}

	var value struct {
		OneOf []map[string]any `json:"oneOf"`
	}
	if err := json.Unmarshal(doc.Defs["choiceWire"].Properties["value"], &value); err != nil {
		t.Fatalf("choice value schema: %v", err)
	}
	var types []any
	for _, s := range value.OneOf {
		types = append(types, s["type"])
	}
	if !reflect.DeepEqual(types, []any{"number", "string"}) {
		t.Errorf("choice value branches must be disjoint, got %v", types)
	}

	for _, field := range []string{"min_value", "max_value"} {
		var bound map[string]any
		if err := json.Unmarshal(doc.Defs["optionWire"].Properties[field], &bound); err != nil {
			t.Fatalf("%s schema: %v", field, err)
		}
		if !reflect.DeepEqual(bound, map[string]any{"type": "number"}) {
			t.Errorf("%s: want numeric-only schema, got %v", field, bound)
		}
	}
}
