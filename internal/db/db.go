package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/chapterhq/portal-server/internal/config"
)

// DB wraps *sql.DB with the driver name so repositories can adapt
// placeholder syntax.
type DB struct {
	*sql.DB
	Driver string
}

// Open returns a DB based on the configured driver.
func Open(cfg config.StoreConfig) (*DB, error) {
	driver := cfg.GetDBDriver()
	switch driver {
	case "sqlite":
		sqldb, err := openSQLite(cfg.GetDBPath())
		if err != nil {
			return nil, err
		}
		return &DB{DB: sqldb, Driver: driver}, nil
	case "postgres":
		sqldb, err := openPostgres(cfg.GetDBUrl())
		if err != nil {
			return nil, err
		}
		return &DB{DB: sqldb, Driver: driver}, nil
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}
}

// Rebind converts `?` placeholders to the `$n` form when running against
// postgres. Queries are written with `?` (the sqlite form).
func (d *DB) Rebind(query string) string {
	if d.Driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
