package openai

import (
	"fmt"
	"net/url"
	"time"
)

// Defaults for the Responses API.
const (
	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultModel           = "gpt-4.1-mini"
	DefaultMaxOutputTokens = 512
	DefaultTimeoutSeconds  = 15
)

// Config configures the remote plan client. APIKey is normally filled from
// OPENAI_API_KEY by the config loader.
type Config struct {
	Disabled        bool   `json:"disabled"`
	BaseURL         string `json:"base_url"`
	Model           string `json:"model"`
	MaxOutputTokens int    `json:"max_output_tokens"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	APIKey          string `json:"api_key"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxOutputTokens == 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Validate checks the settings. A missing API key is not an error here; it
// surfaces per request as a missing credential.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("remote: invalid base_url %q", c.BaseURL)
	}
	if c.Model == "" {
		return fmt.Errorf("remote: model is required")
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("remote: max_output_tokens must not be negative")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("remote: timeout_seconds must not be negative")
	}
	return nil
}

// Timeout is the ceiling applied to one remote request.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
