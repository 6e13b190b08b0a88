package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *CollectorConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if !strings.HasPrefix(c.Server.Namespace, "/") || c.Server.Namespace == "/" {
		return fmt.Errorf("server.namespace must be a path other than \"/\", got %q", c.Server.Namespace)
	}
	if strings.HasPrefix(c.Server.Namespace, "/static/") || c.Server.Namespace == "/health" {
		return fmt.Errorf("server.namespace %q collides with a built-in route", c.Server.Namespace)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	case DriverSQLite:
		if c.Database.SQLite.Path == "" {
			return errors.New("database.sqlite.path is required")
		}
		if c.Database.SQLite.MaxConns < 1 {
			return errors.New("database.sqlite.max_conns must be >= 1")
		}
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if c.Connections.PingInterval <= 0 {
		return errors.New("connections.ping_interval must be > 0")
	}
	if c.Connections.PongTimeout <= c.Connections.PingInterval {
		return fmt.Errorf("connections.pong_timeout (%s) must exceed ping_interval (%s)",
			c.Connections.PongTimeout, c.Connections.PingInterval)
	}
	if c.Connections.WriteTimeout <= 0 {
		return fmt.Errorf("connections.write_timeout must be > 0, got %s", c.Connections.WriteTimeout)
	}
	if c.Connections.MaxMessageBytes < 1 {
		return errors.New("connections.max_message_bytes must be >= 1")
	}

	if c.Writers.Concurrency < 1 {
		return errors.New("writers.concurrency must be >= 1")
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
