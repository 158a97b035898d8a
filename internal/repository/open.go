package repository

import (
	"context"
	"database/sql"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"kara/internal/config"
	"kara/internal/errors"
)

const sqliteBusyTimeout = "_pragma=busy_timeout(5000)"

// Open connects to the configured database and pings it. A failure here is the
// one error Kara cannot carry on from.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", errors.NewInvalidInputError("database.driver", cfg.Driver, err.Error())
	}

	var db *sql.DB
	switch dialect {
	case Postgres:
		connCfg, err := postgresConfig(cfg)
		if err != nil {
			return nil, "", errors.NewDatabaseError("parse postgres dsn", err)
		}
		db = stdlib.OpenDB(*connCfg)
	case MySQL:
		db, err = sql.Open(dialect.DriverName(), mysqlDSN(cfg))
	default:
		dsn, dirErr := sqliteDSN(cfg)
		if dirErr != nil {
			return nil, "", errors.NewDatabaseError("create database directory", dirErr)
		}
		db, err = sql.Open(dialect.DriverName(), dsn)
	}
	if err != nil {
		return nil, "", errors.NewDatabaseError("open database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", errors.NewDatabaseError("connect", err)
	}

	return db, dialect, nil
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}

	port := cfg.Port
	if port == 0 {
		port = MySQL.DefaultPort()
	}

	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	return mc.FormatDSN()
}

func postgresConfig(cfg config.DatabaseConfig) (*pgx.ConnConfig, error) {
	if cfg.DSN != "" {
		return pgx.ParseConfig(cfg.DSN)
	}

	connCfg, err := pgx.ParseConfig("")
	if err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = Postgres.DefaultPort()
	}

	connCfg.Host = cfg.Host
	connCfg.Port = uint16(port)
	connCfg.User = cfg.User
	connCfg.Password = cfg.Password
	connCfg.Database = cfg.Name
	connCfg.Fallbacks = nil
	return connCfg, nil
}

// sqliteDSN creates the parent directory of a file database and sets a busy timeout.
func sqliteDSN(cfg config.DatabaseConfig) (string, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = cfg.Path
		if dir := filepath.Dir(dsn); dir != "." && dsn != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", err
			}
		}
	}

	if strings.Contains(dsn, "_pragma=busy_timeout") {
		return dsn, nil
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteBusyTimeout, nil
	}
	return dsn + "?" + sqliteBusyTimeout, nil
}
