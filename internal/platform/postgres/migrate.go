package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// ErrUnknownMigrateCommand is returned for commands other than the Migrate* constants.
var ErrUnknownMigrateCommand = errors.New("unknown migrate command")

// MigrationsFS returns the embedded SQL migrations.
func MigrationsFS() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return sub
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at error level without exiting so callers can handle the failure.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// NewMigrator creates a goose provider over the embedded migrations.
func NewMigrator(db *sql.DB, logger *slog.Logger) (*goose.Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, MigrationsFS(),
		goose.WithLogger(&slogGooseLogger{logger: logger.With("component", "migrations")}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// MigrationReport describes the outcome of a Migrate call.
type MigrationReport struct {
	Command string
	Version int64
	Applied []*goose.MigrationResult
	Status  []*goose.MigrationStatus
}

// Migrate runs command against db.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) (*MigrationReport, error) {
	switch command {
	case MigrateUp, MigrateDown, MigrateStatus, MigrateVersion:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMigrateCommand, command)
	}

	provider, err := NewMigrator(db, logger)
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{Command: command}
	switch command {
	case MigrateUp:
		report.Applied, err = provider.Up(ctx)
	case MigrateDown:
		var res *goose.MigrationResult
		res, err = provider.Down(ctx)
		if res != nil {
			report.Applied = []*goose.MigrationResult{res}
		}
	case MigrateStatus:
		report.Status, err = provider.Status(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", command, err)
	}

	if report.Version, err = provider.GetDBVersion(ctx); err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	return report, nil
}
