package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeEnvFile(t *testing.T, dir, env, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, env+".yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, "qa", `
base_url: https://practice.example.com
login_url: https://practice.example.com/login
register_url: https://practice.example.com/register
web_inputs_url: https://practice.example.com/inputs
default_timeout: 10s
headless: true
`)
	t.Setenv("UIHARNESS_ENV", "qa")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://practice.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DefaultTimeout != Duration(10*time.Second) {
		t.Errorf("DefaultTimeout = %v", cfg.DefaultTimeout)
	}
	if cfg.Environment != "qa" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
}

func TestEnvVarsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, "dev", `
base_url: https://file.example.com
`)
	t.Setenv("UIHARNESS_ENV", "dev")
	t.Setenv("UIHARNESS_BASE_URL", "https://env.example.com")
	t.Setenv("UIHARNESS_TIMEOUT", "3s")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, env var should win", cfg.BaseURL)
	}
	if cfg.DefaultTimeout != Duration(3*time.Second) {
		t.Errorf("DefaultTimeout = %v", cfg.DefaultTimeout)
	}
}

func TestValidationAggregatesProblems(t *testing.T) {
	t.Setenv("UIHARNESS_ENV", "qa")
	t.Setenv("UIHARNESS_BASE_URL", "")

	cfg := defaults()
	cfg.BaseURL = ""
	cfg.Trello.Enabled = true
	cfg.DefaultTimeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type %T, want *ValidationError", err)
	}
	if len(verr.Errors) < 3 {
		t.Errorf("expected at least 3 aggregated problems, got %d: %v", len(verr.Errors), verr.Errors)
	}
	if !strings.Contains(err.Error(), "base_url is required") {
		t.Errorf("missing base_url problem in %q", err.Error())
	}
}

func TestValidationRejectsRelativeURLs(t *testing.T) {
	cfg := defaults()
	cfg.BaseURL = "practice.example.com"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() accepted a non-absolute URL")
	}
}

func TestURLForFallsBackToBaseURL(t *testing.T) {
	cfg := defaults()
	cfg.BaseURL = "https://site.example.com/"

	if got := cfg.URLFor("login"); got != "https://site.example.com/login" {
		t.Errorf("URLFor(login) = %q", got)
	}
	cfg.LoginURL = "https://site.example.com/auth/login"
	if got := cfg.URLFor("login"); got != "https://site.example.com/auth/login" {
		t.Errorf("URLFor(login) with explicit URL = %q", got)
	}
}

func TestMissingEnvFileIsNotAnError(t *testing.T) {
	t.Setenv("UIHARNESS_ENV", "nonexistent")
	t.Setenv("UIHARNESS_BASE_URL", "https://env-only.example.com")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env-only.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestTimeoutMillis(t *testing.T) {
	cfg := defaults()
	cfg.DefaultTimeout = Duration(2500 * time.Millisecond)
	if got := cfg.TimeoutMillis(); got != 2500 {
		t.Errorf("TimeoutMillis = %v", got)
	}
}
