package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

const manifestYAML = `
commands:
  - name: ping
    description: Replies with pong
    options:
      - {type: boolean, name: loud, description: Shout it, required: true}
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.yaml")
	if err := os.WriteFile(path, []byte(manifestYAML), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	registerGuild, registerForce, registerWatch, registerTTL = "", false, false, 0
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", "-f", writeManifest(t))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, want := range []string{"ping (chat_input)", "loud: boolean [required]", "1 command(s) valid"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("commands:\n  - description: no name\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := run(t, "validate", "-f", path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if doc["title"] != "Application command" {
		t.Errorf("unexpected schema title %v", doc["title"])
	}
}

func TestRegister(t *testing.T) {
	var puts atomic.Int32
	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		puts.Add(1)
		gotPath.Store(r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "[]")
	}))
	defer srv.Close()

	t.Setenv("DISCORD_APPLICATION_ID", "42")
	t.Setenv("DISCORD_BOT_TOKEN", "tok")
	t.Setenv("DISCORD_API_BASE_URL", srv.URL)
	t.Setenv("DISCORD_GUILD_ID", "")
	t.Setenv("REDIS_ADDR", "")

	out, err := run(t, "register", "-f", writeManifest(t), "--guild", "7")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(out, "registered 1 command(s) to guild 7") {
		t.Errorf("unexpected output %q", out)
	}
	if puts.Load() != 1 {
		t.Errorf("want 1 PUT, got %d", puts.Load())
	}
	if p, _ := gotPath.Load().(string); p != "/applications/42/guilds/7/commands" {
		t.Errorf("unexpected path %q", p)
	}
}

func TestRegister_MissingEnv(t *testing.T) {
	t.Setenv("DISCORD_APPLICATION_ID", "")
	t.Setenv("DISCORD_BOT_TOKEN", "")
	os.Unsetenv("DISCORD_APPLICATION_ID")
	os.Unsetenv("DISCORD_BOT_TOKEN")
	if _, err := run(t, "register", "-f", writeManifest(t)); err == nil {
		t.Fatal("expected error without credentials")
	}
}
