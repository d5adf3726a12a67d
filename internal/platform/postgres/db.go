package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Pool settings.
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// DBTX is implemented by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to dbURL, configures the pool and verifies connectivity.
func Open(ctx context.Context, dbURL string, logger *slog.Logger) (*sql.DB, error) {
	if dbURL == "" {
		return nil, errors.New("database URL is empty: check your configuration")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open(DriverName, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	start := time.Now()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, pingError(err)
	}

	logger.Info("database connection verified",
		"url", MaskURL(dbURL),
		"duration_ms", time.Since(start).Milliseconds())
	return db, nil
}

func pingError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("database ping timed out after %s: %w", pingTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("network error connecting to database: %w", err)
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}

// MaskURL hides the password of a database URL for logging.
func MaskURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}
	if parsed.User != nil {
		if _, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(parsed.User.Username(), "****")
		}
	}
	return parsed.String()
}
