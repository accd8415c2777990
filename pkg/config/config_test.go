package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// TestConfigValidate_AppliesDefaults verifies that Validate fills endpoints,
// broadcast limit and timeouts when they are not set.
func TestConfigValidate_AppliesDefaults(t *testing.T) {
	cfg := &Config{}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}

	if !reflect.DeepEqual(cfg.Endpoints, DefaultEndpoints) {
		t.Fatalf("unexpected endpoints: %v", cfg.Endpoints)
	}
	if cfg.BroadcastLimit != 32 {
		t.Fatalf("unexpected broadcast limit: %d", cfg.BroadcastLimit)
	}
	if cfg.Timeouts.Request != 30*time.Second || cfg.Timeouts.Poll != 2*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg.Timeouts)
	}

	cfg.Endpoints[0] = "changed"
	if DefaultEndpoints[0] == "changed" {
		t.Fatal("Validate shares the default endpoint slice")
	}
}

func TestConfigValidate_KeepsValues(t *testing.T) {
	cfg := &Config{
		Endpoints:      []string{"https://a.example"},
		BroadcastLimit: 4,
		Timeouts:       Timeouts{Request: time.Second},
		Submit:         Submit{MaxResends: 3},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(cfg.Endpoints) != 1 || cfg.BroadcastLimit != 4 || cfg.Timeouts.Request != time.Second || cfg.Submit.MaxResends != 3 {
		t.Fatalf("values overwritten: %+v", cfg)
	}
	if cfg.Timeouts.Poll != 2*time.Second {
		t.Fatalf("poll default missing: %v", cfg.Timeouts.Poll)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"blank endpoint", Config{Endpoints: []string{"https://a.example", " "}}},
		{"negative limit", Config{BroadcastLimit: -1}},
		{"negative timeout", Config{Timeouts: Timeouts{Request: -time.Second}}},
		{"negative poll", Config{Timeouts: Timeouts{Poll: -time.Second}}},
		{"negative resends", Config{Submit: Submit{MaxResends: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

// TestTimeoutsWithDefaults verifies that WithDefaults preserves explicitly set
// values and fills in defaults for zero values.
func TestTimeoutsWithDefaults(t *testing.T) {
	out := Timeouts{Poll: 500 * time.Millisecond}.WithDefaults()

	if out.Poll != 500*time.Millisecond {
		t.Fatalf("Poll overwritten: got %v", out.Poll)
	}
	if out.Request != 30*time.Second {
		t.Fatalf("Request default mismatch: %v", out.Request)
	}
}

func TestConfigWithOverridesDoesNotMutate(t *testing.T) {
	base := Config{
		Endpoints: []string{"https://a.example"},
		Headers:   map[string]string{"X-Key": "1"},
	}

	next := base.WithEndpoints("https://b.example", "https://c.example").
		WithTimeout(time.Second).
		WithHeaders(map[string]string{"X-Key": "2"}).
		WithBroadcastLimit(8)

	if base.Endpoints[0] != "https://a.example" || base.Headers["X-Key"] != "1" {
		t.Fatalf("receiver mutated: %+v", base)
	}
	if base.Timeouts.Request != 0 || base.BroadcastLimit != 0 {
		t.Fatalf("receiver mutated: %+v", base)
	}
	if len(next.Endpoints) != 2 || next.Headers["X-Key"] != "2" || next.Timeouts.Request != time.Second || next.BroadcastLimit != 8 {
		t.Fatalf("overrides not applied: %+v", next)
	}

	clone := next.Clone()
	clone.Endpoints[0] = "x"
	clone.Headers["X-Key"] = "x"
	if next.Endpoints[0] == "x" || next.Headers["X-Key"] == "x" {
		t.Fatal("Clone shares storage")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xphere.yaml")
	data := []byte(`endpoints:
  - https://mello.zigap.io
headers:
  X-Api-Key: secret
broadcast_limit: 16
timeouts:
  request: 10s
submit:
  max_resends: 5
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Endpoints) != 1 || cfg.Endpoints[0] != "https://mello.zigap.io" {
		t.Fatalf("endpoints: %v", cfg.Endpoints)
	}
	if cfg.Headers["X-Api-Key"] != "secret" || cfg.BroadcastLimit != 16 || cfg.Submit.MaxResends != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeouts.Request != 10*time.Second || cfg.Timeouts.Poll != 2*time.Second {
		t.Fatalf("timeouts: %+v", cfg.Timeouts)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("broadcast_limit: -3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}
}
