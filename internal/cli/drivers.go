package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// checkDSN catches malformed data source names before a connection is attempted.
func checkDSN(driver, dsn string) error {
	switch driver {
	case "mysql":
		if _, err := mysql.ParseDSN(dsn); err != nil {
			return fmt.Errorf("mysql dsn: %w", err)
		}
	case "postgres":
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			if _, err := pq.ParseURL(dsn); err != nil {
				return fmt.Errorf("postgres dsn: %w", err)
			}
		}
	}
	return nil
}

func registered(driver string) bool {
	for _, name := range sql.Drivers() {
		if name == driver {
			return true
		}
	}
	return false
}
