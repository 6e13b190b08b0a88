package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultServerAddr         = ":8080"
	DefaultNamespace          = "/ws"
	DefaultTemplateDir        = "web/templates"
	DefaultStaticDir          = "web/static"
	DefaultServerReadTimeout  = 15 * time.Second
	DefaultServerWriteTimeout = 15 * time.Second
	DefaultDriver             = DriverPostgres
	DefaultDBPort             = 5432
	DefaultDBSSLMode          = "prefer"
	DefaultMaxConns           = 10
	DefaultMinConns           = 2
	DefaultSQLitePath         = "cursorlog.db"
	DefaultSQLiteMaxConns     = 1
	DefaultPingInterval       = 25 * time.Second
	DefaultPongTimeout        = 60 * time.Second
	DefaultWSWriteTimeout     = 5 * time.Second
	DefaultMaxMessageBytes    = 4096
	DefaultWriterConcurrency  = 10
	DefaultWriterTimeout      = 10 * time.Second
	DefaultMetricsPort        = 9090
	DefaultMetricsPath        = "/metrics"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func (c *CollectorConfig) applyDefaults() {
	// Server defaults
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Server.Namespace == "" {
		c.Server.Namespace = DefaultNamespace
	}
	if c.Server.TemplateDir == "" {
		c.Server.TemplateDir = DefaultTemplateDir
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = DefaultStaticDir
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = DefaultServerWriteTimeout
	}

	// Database defaults
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDriver
	}
	applyDBDefaults(&c.Database.Postgres)
	if c.Database.SQLite.Path == "" {
		c.Database.SQLite.Path = DefaultSQLitePath
	}
	if c.Database.SQLite.MaxConns == 0 {
		c.Database.SQLite.MaxConns = DefaultSQLiteMaxConns
	}

	// Connections defaults
	if c.Connections.PingInterval == 0 {
		c.Connections.PingInterval = DefaultPingInterval
	}
	if c.Connections.PongTimeout == 0 {
		c.Connections.PongTimeout = DefaultPongTimeout
	}
	if c.Connections.WriteTimeout == 0 {
		c.Connections.WriteTimeout = DefaultWSWriteTimeout
	}
	if c.Connections.MaxMessageBytes == 0 {
		c.Connections.MaxMessageBytes = DefaultMaxMessageBytes
	}

	// Writers defaults
	if c.Writers.Concurrency == 0 {
		c.Writers.Concurrency = DefaultWriterConcurrency
	}
	if c.Writers.WriteTimeout == 0 {
		c.Writers.WriteTimeout = DefaultWriterTimeout
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
