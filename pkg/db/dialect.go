package db

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/smallbiznis/khata/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Dialect opens the gorm dialector for the configured driver.
func Dialect(cfg config.Config) (gorm.Dialector, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return sqlite.Open(dsn), nil
	}
}

// DSN resolves the driver name and connection string. DATABASE_URL wins over
// the individual settings when set; all sessions run in UTC so numbering
// month windows line up across drivers.
func DSN(cfg config.Config) (string, string, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.DBType))
	if driver == "" {
		driver = DriverPostgres
	}

	switch driver {
	case DriverPostgres, "postgresql":
		if cfg.DBURL != "" {
			return DriverPostgres, cfg.DBURL, nil
		}
		return DriverPostgres, fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
		), nil
	case DriverMySQL:
		if cfg.DBURL != "" {
			return DriverMySQL, cfg.DBURL, nil
		}
		return DriverMySQL, fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, url.PathEscape(cfg.DBName),
		), nil
	case DriverSQLite:
		if cfg.DBURL != "" {
			return DriverSQLite, cfg.DBURL, nil
		}
		name := strings.TrimSpace(cfg.DBName)
		if name == "" {
			name = "khata"
		}
		return DriverSQLite, name + ".db", nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}
