package types

import "time"

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServerConfig holds settings for the HTTP extraction service.
type ServerConfig struct {
	// Addr is the listen address (default ":8001").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// CORSAllowedOrigins restricts cross-origin callers. Empty allows all.
	CORSAllowedOrigins []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" mapstructure:"cors_allowed_origins"`

	// MaxBodyBytes caps the request body size (default 5 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes"`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
}

// HistoryConfig holds settings for the attempt history store.
type HistoryConfig struct {
	// DBPath is the sqlite file (default "data/history.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default number of rows listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ClientConfig holds settings for calling a remote extraction service.
type ClientConfig struct {
	// BaseURL is the service root, e.g. "http://localhost:8001".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// UserAgent is sent with each request (e.g. "reservation-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Config groups all component configurations.
type Config struct {
	Log     LoggingConfig `json:"log" yaml:"log" mapstructure:"log"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Client  ClientConfig  `json:"client" yaml:"client" mapstructure:"client"`
}
