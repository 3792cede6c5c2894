package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/irontracker/internal/models"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// lastSeenRecordsKey is the settings key holding the last time the user
// acknowledged new personal records.
const lastSeenRecordsKey = "last_seen_records"

// Store persists the workout history, the exercise library and user settings.
type Store interface {
	// LoadHistory returns every session, newest first.
	LoadHistory(ctx context.Context) ([]models.WorkoutSession, error)
	// SaveSession inserts or replaces a session by id.
	SaveSession(ctx context.Context, s models.WorkoutSession) error
	DeleteSession(ctx context.Context, id int64) error
	LoadLibrary(ctx context.Context) ([]models.LibraryExercise, error)
	// SaveExercise inserts or replaces a library exercise by id.
	SaveExercise(ctx context.Context, ex models.LibraryExercise) error
	// LastSeenRecords returns nil when records were never acknowledged.
	LastSeenRecords(ctx context.Context) (*time.Time, error)
	SetLastSeenRecords(ctx context.Context, t time.Time) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Options selects and configures a backend.
type Options struct {
	Driver string
	// DSN is the PostgreSQL connection string.
	DSN string
	// MigrationsPath is the directory holding PostgreSQL migrations.
	MigrationsPath string
	// Path is the SQLite database file.
	Path string
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, opts Options, log *slog.Logger) (Store, error) {
	switch opts.Driver {
	case DriverPostgres, "":
		if err := RunMigrations(opts.DSN, opts.MigrationsPath); err != nil {
			return nil, err
		}
		log.Info("migrations applied", "path", opts.MigrationsPath)
		return NewPostgres(ctx, opts.DSN)
	case DriverSQLite:
		log.Info("opening sqlite store", "path", opts.Path)
		return OpenSQLite(opts.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", opts.Driver)
	}
}
