package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	corelogger "github.com/kilianp07/studyplan/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger discards everything.
type NopLogger = corelogger.NopLogger

// Config selects the level and output format of every logger built by New.
type Config struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// SetDefaults fills empty fields.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks the level and format names.
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Format)
	}
	return nil
}

var (
	mu      sync.RWMutex
	current = Config{Level: "info", Format: "json"}
	output  io.Writer = os.Stdout
)

// Configure sets the process wide logging configuration used by New.
// APP_ENV=dev forces console output regardless of cfg.Format.
func Configure(cfg Config) error {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		cfg.Format = "console"
	}
	mu.Lock()
	current = cfg
	mu.Unlock()
	return nil
}

// SetOutput redirects loggers created afterwards. nil restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	mu.Lock()
	output = w
	mu.Unlock()
}

// New returns a Logger tagged with the given component.
func New(component string) Logger {
	mu.RLock()
	cfg, w := current, output
	mu.RUnlock()
	return NewZerologLogger(component, cfg, w)
}
