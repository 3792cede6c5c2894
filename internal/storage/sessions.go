package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/irontracker/internal/models"
)

// LoadHistory returns every session, newest first.
func (db *Postgres) LoadHistory(ctx context.Context) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_name, session_name, start_time, end_time,
		 body_weight, fatigue, mode, exercises
		 FROM sessions
		 ORDER BY start_time DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSession
	for rows.Next() {
		var (
			s         models.WorkoutSession
			mode      string
			exercises []byte
		)
		if err := rows.Scan(&s.ID, &s.ProgramName, &s.SessionName, &s.StartTime, &s.EndTime,
			&s.BodyWeight, &s.Fatigue, &mode, &exercises); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		s.Mode = models.SessionMode(mode)
		if err := json.Unmarshal(exercises, &s.Exercises); err != nil {
			return nil, fmt.Errorf("decoding exercises of session %d: %w", s.ID, err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SaveSession inserts or replaces a session.
func (db *Postgres) SaveSession(ctx context.Context, s models.WorkoutSession) error {
	exercises, err := encodeExercises(s.Exercises)
	if err != nil {
		return err
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, program_name, session_name, start_time, end_time,
		 body_weight, fatigue, mode, exercises)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   program_name = EXCLUDED.program_name,
		   session_name = EXCLUDED.session_name,
		   start_time = EXCLUDED.start_time,
		   end_time = EXCLUDED.end_time,
		   body_weight = EXCLUDED.body_weight,
		   fatigue = EXCLUDED.fatigue,
		   mode = EXCLUDED.mode,
		   exercises = EXCLUDED.exercises`,
		s.ID, s.ProgramName, s.SessionName, s.StartTime, s.EndTime,
		s.BodyWeight, s.Fatigue, string(s.Mode), exercises)
	if err != nil {
		return fmt.Errorf("saving session %d: %w", s.ID, err)
	}
	return nil
}

// DeleteSession removes a session, returning ErrNotFound for unknown ids.
func (db *Postgres) DeleteSession(ctx context.Context, id int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("session %d: %w", id, ErrNotFound)
	}
	return nil
}

// LoadLibrary returns the exercise catalog ordered by id.
func (db *Postgres) LoadLibrary(ctx context.Context) ([]models.LibraryExercise, error) {
	rows, err := db.Pool.Query(ctx,
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
func (db *Postgres) SaveExercise(ctx context.Context, ex models.LibraryExercise) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO library_exercises (id, name, type, muscle, equipment, favorite, archived)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   type = EXCLUDED.type,
		   muscle = EXCLUDED.muscle,
		   equipment = EXCLUDED.equipment,
		   favorite = EXCLUDED.favorite,
		   archived = EXCLUDED.archived`,
		ex.ID, ex.Name, string(ex.Type), string(ex.Muscle), ex.Equipment, ex.Favorite, ex.Archived)
	if err != nil {
		return fmt.Errorf("saving exercise %d: %w", ex.ID, err)
	}
	return nil
}

// LastSeenRecords returns the stored acknowledgement time, or nil.
func (db *Postgres) LastSeenRecords(ctx context.Context) (*time.Time, error) {
	var value string
	err := db.Pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, lastSeenRecordsKey).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying %s: %w", lastSeenRecordsKey, err)
	}
	return parseSettingTime(value)
}

// SetLastSeenRecords stores the acknowledgement time.
func (db *Postgres) SetLastSeenRecords(ctx context.Context, t time.Time) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		lastSeenRecordsKey, formatSettingTime(t))
	if err != nil {
		return fmt.Errorf("saving %s: %w", lastSeenRecordsKey, err)
	}
	return nil
}
