package config

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultPort is the HTTP listen port when neither the file nor PORT set one.
const DefaultPort = 10000

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port                     int    `json:"port"`
	StaticDir                string `json:"static_dir"`
	ReadHeaderTimeoutSeconds int    `json:"read_header_timeout_seconds"`
	RequestTimeoutSeconds    int    `json:"request_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.ReadHeaderTimeoutSeconds == 0 {
		c.ReadHeaderTimeoutSeconds = 15
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 30
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("server: invalid port %d", c.Port)
	}
	if c.ReadHeaderTimeoutSeconds < 0 || c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("server: timeouts must not be negative")
	}
	return nil
}

// Addr is the listen address.
func (c ServerConfig) Addr() string { return ":" + strconv.Itoa(c.Port) }

// ReadHeaderTimeout returns the header read deadline.
func (c ServerConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.ReadHeaderTimeoutSeconds) * time.Second
}

// RequestTimeout bounds the handling of one request.
func (c ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
