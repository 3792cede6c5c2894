package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claude/irontracker/internal/models"
)

// SQLite is the single-file Store used for local installs.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           INTEGER PRIMARY KEY,
	program_name TEXT NOT NULL DEFAULT '',
	session_name TEXT NOT NULL DEFAULT '',
	start_time   TEXT NOT NULL,
	end_time     TEXT,
	body_weight  TEXT NOT NULL DEFAULT '',
	fatigue      TEXT NOT NULL DEFAULT '',
	mode         TEXT NOT NULL DEFAULT 'log',
	exercises    TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS sessions_start_time_idx ON sessions (start_time DESC);
CREATE TABLE IF NOT EXISTS library_exercises (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL,
	type      TEXT NOT NULL DEFAULT '',
	muscle    TEXT NOT NULL DEFAULT '',
	equipment TEXT NOT NULL DEFAULT '',
	favorite  INTEGER NOT NULL DEFAULT 0,
	archived  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection keeps writers serialized at the driver level.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// LoadHistory returns every session, newest first.
func (s *SQLite) LoadHistory(ctx context.Context) ([]models.WorkoutSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, program_name, session_name, start_time, end_time,
		 body_weight, fatigue, mode, exercises
		 FROM sessions`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var (
			ws        models.WorkoutSession
			start, ex string
			end       sql.NullString
			mode      string
		)
		if err := rows.Scan(&ws.ID, &ws.ProgramName, &ws.SessionName, &start, &end,
			&ws.BodyWeight, &ws.Fatigue, &mode, &ex); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if ws.StartTime, err = time.Parse(time.RFC3339Nano, start); err != nil {
			return nil, fmt.Errorf("parsing start of session %d: %w", ws.ID, err)
		}
		if end.Valid {
			t, err := time.Parse(time.RFC3339Nano, end.String)
			if err != nil {
				return nil, fmt.Errorf("parsing end of session %d: %w", ws.ID, err)
			}
			ws.EndTime = &t
		}
		ws.Mode = models.SessionMode(mode)
		if err := json.Unmarshal([]byte(ex), &ws.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises of session %d: %w", ws.ID, err)
		}
		result = append(result, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	models.SortHistory(result)
	return result, nil
}

// SaveSession inserts or replaces a session.
func (s *SQLite) SaveSession(ctx context.Context, ws models.WorkoutSession) error {
	exercises, err := encodeExercises(ws.Exercises)
	if err != nil {
		return err
	}
	var end sql.NullString
	if ws.EndTime != nil {
		end = sql.NullString{String: ws.EndTime.UTC().Format(time.RFC3339Nano), Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, program_name, session_name, start_time, end_time,
		 body_weight, fatigue, mode, exercises)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ws.ID, ws.ProgramName, ws.SessionName, ws.StartTime.UTC().Format(time.RFC3339Nano), end,
		ws.BodyWeight, ws.Fatigue, string(ws.Mode), string(exercises))
	if err != nil {
		return fmt.Errorf("saving session %d: %w", ws.ID, err)
	}
	return nil
}

// DeleteSession removes a session, returning ErrNotFound for unknown ids.
func (s *SQLite) DeleteSession(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}

// LoadLibrary returns the exercise catalog ordered by id.
func (s *SQLite) LoadLibrary(ctx context.Context) ([]models.LibraryExercise, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, muscle, equipment, favorite, archived
		 FROM library_exercises ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var result []models.LibraryExercise
	for rows.Next() {
		var (
			ex          models.LibraryExercise
			typ, muscle string
		)
		if err := rows.Scan(&ex.ID, &ex.Name, &typ, &muscle, &ex.Equipment, &ex.Favorite, &ex.Archived); err != nil {
			return nil, fmt.Errorf("scanning library exercise: %w", err)
		}
		ex.Type = models.ExerciseType(typ)
		ex.Muscle = models.Muscle(muscle)
		result = append(result, ex)
	}
	return result, rows.Err()
}

// SaveExercise inserts or replaces a library exercise.
func (s *SQLite) SaveExercise(ctx context.Context, ex models.LibraryExercise) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO library_exercises (id, name, type, muscle, equipment, favorite, archived)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ex.ID, ex.Name, string(ex.Type), string(ex.Muscle), ex.Equipment, ex.Favorite, ex.Archived)
	if err != nil {
		return fmt.Errorf("saving exercise %d: %w", ex.ID, err)
	}
	return nil
}

// LastSeenRecords returns the stored acknowledgement time, or nil.
func (s *SQLite) LastSeenRecords(ctx context.Context) (*time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, lastSeenRecordsKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", lastSeenRecordsKey, err)
	}
	return parseSettingTime(value)
}

// SetLastSeenRecords stores the acknowledgement time.
func (s *SQLite) SetLastSeenRecords(ctx context.Context, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		lastSeenRecordsKey, formatSettingTime(t))
	if err != nil {
		return fmt.Errorf("saving %s: %w", lastSeenRecordsKey, err)
	}
	return nil
}
