package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("CREDENTIALS_FILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30 {
		t.Errorf("RequestTimeout = %d, want 30", cfg.RequestTimeout)
	}
	if cfg.CredentialsFile == "" {
		t.Error("CredentialsFile not resolved")
	}
	if !strings.HasSuffix(cfg.CredentialsFile, "credentials.json") {
		t.Errorf("CredentialsFile = %q", cfg.CredentialsFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.falcon.example.com")
	t.Setenv("REQUEST_TIMEOUT", "10")
	t.Setenv("CREDENTIALS_FILE", "/tmp/creds.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.falcon.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Timeout().Seconds() != 10 {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout())
	}
	if cfg.CredentialsFile != "/tmp/creds.json" {
		t.Errorf("CredentialsFile = %q", cfg.CredentialsFile)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	cfg := &Config{APIBaseURL: "ftp://nope", RequestTimeout: 30}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestValidateRejectsZeroTimeout(t *testing.T) {
	cfg := &Config{APIBaseURL: "http://localhost:8000", RequestTimeout: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero timeout")
	}
}
