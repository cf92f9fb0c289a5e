package config_test

import (
	"testing"

	"github.com/amimitra/mitra/internal/config"
)

func TestLoadDefaultAddr(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
}

func TestLoadPortVariants(t *testing.T) {
	cases := map[string]string{
		"9090":           ":9090",
		":9091":          ":9091",
		"127.0.0.1:9092": "127.0.0.1:9092",
	}

	for port, want := range cases {
		t.Setenv("PORT", port)
		cfg, err := config.Load()
		if err != nil {
			t.Fatalf("Load(%q) err: %v", port, err)
		}
		if cfg.Server.Addr != want {
			t.Fatalf("PORT=%q: expected %s, got %s", port, want, cfg.Server.Addr)
		}
	}
}

func TestLoadRejectsMalformedPort(t *testing.T) {
	t.Setenv("PORT", "90 90")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for malformed PORT")
	}
}

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("MITRA_SERVER_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Client.ServerURL != "ws://localhost:8080/ws" {
		t.Fatalf("unexpected default server URL: %s", cfg.Client.ServerURL)
	}

	t.Setenv("MITRA_SERVER_URL", "ws://example.com/chat")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Client.ServerURL != "ws://example.com/chat" {
		t.Fatalf("override ignored: %s", cfg.Client.ServerURL)
	}
}

func TestAIConfigEnabled(t *testing.T) {
	t.Setenv("ARK_API_KEY", "key")
	t.Setenv("ARK_MODEL", "model-id")
	t.Setenv("ARK_ACCESS_KEY", "")
	t.Setenv("ARK_SECRET_KEY", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if !cfg.AI.Enabled() {
		t.Fatal("expected AI enabled with api key + model")
	}

	t.Setenv("ARK_API_KEY", "")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.Enabled() {
		t.Fatal("expected AI disabled without credentials")
	}
}

func TestAIConfigOptionalNumbers(t *testing.T) {
	t.Setenv("ARK_TEMPERATURE", "0.7")
	t.Setenv("ARK_MAX_TOKENS", "256")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.Temperature == nil || *cfg.AI.Temperature != 0.7 {
		t.Fatalf("unexpected temperature: %v", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens == nil || *cfg.AI.MaxTokens != 256 {
		t.Fatalf("unexpected max tokens: %v", cfg.AI.MaxTokens)
	}

	t.Setenv("ARK_TEMPERATURE", "warm")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for malformed ARK_TEMPERATURE")
	}
}
