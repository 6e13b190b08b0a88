package config

import "time"

// CollectorConfig is the root configuration for a collector instance.
type CollectorConfig struct {
	Instance    InstanceConfig    `yaml:"instance"`
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Connections ConnectionsConfig `yaml:"connections"`
	Writers     WritersConfig     `yaml:"writers"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// InstanceConfig identifies this collector.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// ServerConfig holds the HTTP listener and the event channel settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	Namespace    string        `yaml:"namespace"`    // Path of the event channel, e.g. /ws
	TemplateDir  string        `yaml:"template_dir"` // Directory holding index.html
	StaticDir    string        `yaml:"static_dir"`   // Served under /static/
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects the storage engine for coordinate rows.
type DatabaseConfig struct {
	Driver        string       `yaml:"driver"` // "postgres" or "sqlite"
	Postgres      DBConfig     `yaml:"postgres"`
	SQLite        SQLiteConfig `yaml:"sqlite"`
	SkipProvision bool         `yaml:"skip_provision"`
}

// DBConfig holds a single PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SQLiteConfig holds an embedded database file.
type SQLiteConfig struct {
	Path     string `yaml:"path"`
	MaxConns int    `yaml:"max_conns"`
}

// ConnectionsConfig holds per-session WebSocket settings.
type ConnectionsConfig struct {
	PingInterval    time.Duration `yaml:"ping_interval"`
	PongTimeout     time.Duration `yaml:"pong_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	MaxMessageBytes int64         `yaml:"max_message_bytes"`
}

// WritersConfig holds persistence writer settings.
type WritersConfig struct {
	Concurrency  int           `yaml:"concurrency"`
	WriteTimeout time.Duration `yaml:"write_timeout"` // Negative disables the timeout
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
