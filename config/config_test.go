package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AppPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.AppPort)
	}
	if cfg.StoreDriver != "memory" {
		t.Errorf("expected default store driver memory, got %s", cfg.StoreDriver)
	}
	if cfg.PaymentDelayMS != 2500 {
		t.Errorf("expected default payment delay 2500, got %d", cfg.PaymentDelayMS)
	}
	if cfg.PaymentGateway != "simulated" {
		t.Errorf("expected simulated gateway, got %s", cfg.PaymentGateway)
	}
	if cfg.AdviceCacheTTL != time.Hour {
		t.Errorf("expected advice cache ttl 1h, got %s", cfg.AdviceCacheTTL)
	}
	if cfg.BookingIDScheme != "uuid" {
		t.Errorf("expected uuid booking ids, got %q", cfg.BookingIDScheme)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	os.Setenv("STORE_DRIVER", "redis")
	defer os.Unsetenv("STORE_DRIVER")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != "redis" {
		t.Errorf("expected STORE_DRIVER from env, got %s", cfg.StoreDriver)
	}
}

func TestIsProduction(t *testing.T) {
	AppConfig = Config{Env: "production"}
	defer func() { AppConfig = Config{} }()

	if !IsProduction() {
		t.Error("expected IsProduction() to return true for production")
	}
	AppConfig.Env = "development"
	if IsProduction() {
		t.Error("expected IsProduction() to return false for development")
	}
}

func TestAllowedOrigins(t *testing.T) {
	c := Config{CORSOrigins: "http://a.test, http://b.test,"}
	got := c.AllowedOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", got)
	}

	c.CORSOrigins = ""
	if got := c.AllowedOrigins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("expected wildcard fallback, got %v", got)
	}
}
