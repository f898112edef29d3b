package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}

	addr, err := cfg.Server.Addr()
	if err != nil {
		t.Fatalf("Addr err: %v", err)
	}
	if addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", addr)
	}
	if cfg.Bot.ReplyDelay() != time.Second {
		t.Fatalf("expected default reply delay 1s, got %s", cfg.Bot.ReplyDelay())
	}
	if cfg.Bot.SessionTTL() != 30*time.Minute {
		t.Fatalf("expected default session ttl 30m, got %s", cfg.Bot.SessionTTL())
	}
}

func TestAddrAcceptsColonForms(t *testing.T) {
	for _, port := range []string{":9090", "127.0.0.1:9090"} {
		addr, err := ServerConfig{Port: port}.Addr()
		if err != nil {
			t.Fatalf("Addr(%q) err: %v", port, err)
		}
		if addr != port {
			t.Fatalf("expected %q passed through, got %q", port, addr)
		}
	}
}

func TestAddrRejectsWhitespace(t *testing.T) {
	if _, err := (ServerConfig{Port: "80 80"}).Addr(); err == nil {
		t.Fatal("expected error for PORT with whitespace")
	}
}

func TestLoadRejectsNegativeDelay(t *testing.T) {
	t.Setenv("REPLY_DELAY_MS", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative REPLY_DELAY_MS")
	}
}
