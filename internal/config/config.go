// Package config provides centralized configuration for the harness.
// Settings come from a per-environment YAML file (environments/<env>.yaml,
// selected by UIHARNESS_ENV, default "qa") with environment variables taking
// precedence, so CI can override any field without editing files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultEnvironment is used when UIHARNESS_ENV is unset.
	DefaultEnvironment = "qa"

	defaultTimeout = 15 * time.Second
)

// Config holds all harness configuration.
type Config struct {
	// Environment name the config was resolved for (qa, dev, ...).
	Environment string `yaml:"-"`

	// Target site URLs.
	BaseURL          string `yaml:"base_url"`
	LoginURL         string `yaml:"login_url"`
	RegisterURL      string `yaml:"register_url"`
	WebInputsURL     string `yaml:"web_inputs_url"`
	DynamicTableURL  string `yaml:"dynamic_table_url"`
	UserDashboardURL string `yaml:"user_dashboard_url"`

	// Browser settings.
	Headless       bool     `yaml:"headless"`
	SlowMo         Duration `yaml:"slow_mo"`
	DefaultTimeout Duration `yaml:"default_timeout"`

	// Evidence layout. All artifacts live under ReportsDir.
	ReportsDir   string `yaml:"reports_dir"`
	UploadDir    string `yaml:"upload_dir"`
	DownloadDir  string `yaml:"download_dir"`
	RecordVideo  bool   `yaml:"record_video"`
	CaptureTrace bool   `yaml:"capture_trace"`

	// Failure reporting integrations, disabled unless configured.
	Trello TrelloConfig `yaml:"trello"`
	Jira   JiraConfig   `yaml:"jira"`
}

// TrelloConfig configures the Trello failure-card integration.
type TrelloConfig struct {
	Enabled    bool   `yaml:"enabled"`
	APIKey     string `yaml:"api_key"`
	APIToken   string `yaml:"api_token"`
	FailListID string `yaml:"fail_list_id"`
	DoneListID string `yaml:"done_list_id"`
}

// JiraConfig configures the Jira failure-issue integration.
type JiraConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"base_url"`
	User       string `yaml:"user"`
	APIToken   string `yaml:"api_token"`
	ProjectKey string `yaml:"project_key"`
	IssueType  string `yaml:"issue_type"`
}

// Duration is a time.Duration that YAML-round-trips in the "15s" notation.
type Duration time.Duration

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// ValidationError aggregates every configuration problem found in one pass.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Load resolves configuration for the environment named by UIHARNESS_ENV.
// envDir is the directory holding <env>.yaml files; pass "" to rely on
// environment variables alone.
func Load(envDir string) (*Config, error) {
	env := strings.TrimSpace(os.Getenv("UIHARNESS_ENV"))
	if env == "" {
		env = DefaultEnvironment
	}

	cfg := defaults()
	cfg.Environment = env

	if envDir != "" {
		if err := cfg.loadFile(filepath.Join(envDir, env+".yaml")); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Headless:       true,
		DefaultTimeout: Duration(defaultTimeout),
		ReportsDir:     "reports",
		Jira:           JiraConfig{IssueType: "Bug"},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read environment file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse environment file %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	setString(&c.BaseURL, "UIHARNESS_BASE_URL")
	setString(&c.LoginURL, "UIHARNESS_LOGIN_URL")
	setString(&c.RegisterURL, "UIHARNESS_REGISTER_URL")
	setString(&c.WebInputsURL, "UIHARNESS_WEB_INPUTS_URL")
	setString(&c.DynamicTableURL, "UIHARNESS_DYNAMIC_TABLE_URL")
	setString(&c.UserDashboardURL, "UIHARNESS_USER_DASHBOARD_URL")
	setString(&c.ReportsDir, "UIHARNESS_REPORTS_DIR")
	setString(&c.UploadDir, "UIHARNESS_UPLOAD_DIR")
	setString(&c.DownloadDir, "UIHARNESS_DOWNLOAD_DIR")

	setBool(&c.Headless, "HEADLESS")
	setBool(&c.RecordVideo, "UIHARNESS_RECORD_VIDEO")
	setBool(&c.CaptureTrace, "UIHARNESS_CAPTURE_TRACE")
	setDuration(&c.SlowMo, "UIHARNESS_SLOW_MO")
	setDuration(&c.DefaultTimeout, "UIHARNESS_TIMEOUT")

	setBool(&c.Trello.Enabled, "TRELLO_REPORTING_ENABLED")
	setString(&c.Trello.APIKey, "TRELLO_API_KEY")
	setString(&c.Trello.APIToken, "TRELLO_API_TOKEN")
	setString(&c.Trello.FailListID, "TRELLO_FAIL_LIST_ID")
	setString(&c.Trello.DoneListID, "TRELLO_DONE_LIST_ID")

	setBool(&c.Jira.Enabled, "JIRA_REPORTING_ENABLED")
	setString(&c.Jira.BaseURL, "JIRA_URL")
	setString(&c.Jira.User, "JIRA_API_USER")
	setString(&c.Jira.APIToken, "JIRA_API_TOKEN")
	setString(&c.Jira.ProjectKey, "JIRA_PROJECT_KEY")
	setString(&c.Jira.IssueType, "JIRA_ISSUE_TYPE")
}

// Validate checks every required field and aggregates all problems so a
// misconfigured run reports the full list at once.
func (c *Config) Validate() error {
	var problems []string

	if c.BaseURL == "" {
		problems = append(problems, "base_url is required (UIHARNESS_BASE_URL)")
	}
	for name, value := range map[string]string{
		"base_url":       c.BaseURL,
		"login_url":      c.LoginURL,
		"register_url":   c.RegisterURL,
		"web_inputs_url": c.WebInputsURL,
	} {
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			problems = append(problems, fmt.Sprintf("%s must be an absolute http(s) URL, got %q", name, value))
		}
	}
	if c.DefaultTimeout <= 0 {
		problems = append(problems, "default_timeout must be positive")
	}
	if c.Trello.Enabled {
		if c.Trello.APIKey == "" || c.Trello.APIToken == "" {
			problems = append(problems, "trello reporting enabled but api_key/api_token missing")
		}
		if c.Trello.FailListID == "" {
			problems = append(problems, "trello reporting enabled but fail_list_id missing")
		}
	}
	if c.Jira.Enabled {
		if c.Jira.BaseURL == "" || c.Jira.User == "" || c.Jira.APIToken == "" {
			problems = append(problems, "jira reporting enabled but base_url/user/api_token missing")
		}
		if c.Jira.ProjectKey == "" {
			problems = append(problems, "jira reporting enabled but project_key missing")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// URLFor returns the configured URL for a named page, falling back to a path
// joined onto BaseURL.
func (c *Config) URLFor(page string) string {
	switch page {
	case "login":
		if c.LoginURL != "" {
			return c.LoginURL
		}
		return c.join("/login")
	case "register":
		if c.RegisterURL != "" {
			return c.RegisterURL
		}
		return c.join("/register")
	case "web-inputs":
		if c.WebInputsURL != "" {
			return c.WebInputsURL
		}
		return c.join("/inputs")
	case "dynamic-table":
		if c.DynamicTableURL != "" {
			return c.DynamicTableURL
		}
		return c.join("/dynamic-table")
	case "dashboard":
		if c.UserDashboardURL != "" {
			return c.UserDashboardURL
		}
		return c.join("/secure")
	}
	return c.BaseURL
}

func (c *Config) join(path string) string {
	return strings.TrimRight(c.BaseURL, "/") + path
}

// TimeoutMillis returns the default timeout as Playwright's float milliseconds.
func (c *Config) TimeoutMillis() float64 {
	return float64(time.Duration(c.DefaultTimeout).Milliseconds())
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return
	}
	*dst = parsed
}

func setDuration(dst *Duration, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if parsed, err := time.ParseDuration(v); err == nil {
		*dst = Duration(parsed)
	}
}
