package database

import (
	"fmt"
	"net/url"

	"github.com/rickgao/cursorlog/internal/config"
)

// applicationName tags our sessions in pg_stat_activity.
const applicationName = "cursorlog"

// BuildConnString builds a PostgreSQL connection URL from config. User and password are
// escaped, so they may contain @, : or /.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = config.DefaultDBSSLMode
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	query.Set("application_name", applicationName)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: query.Encode(),
	}
	return u.String()
}
