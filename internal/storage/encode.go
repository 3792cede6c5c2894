package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/claude/irontracker/internal/models"
)

func encodeExercises(exercises []models.ExerciseInstance) ([]byte, error) {
	if exercises == nil {
		exercises = []models.ExerciseInstance{}
	}
	b, err := json.Marshal(exercises)
	if err != nil {
		return nil, fmt.Errorf("encoding exercises: %w", err)
	}
	return b, nil
}

func formatSettingTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseSettingTime(value string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", lastSeenRecordsKey, err)
	}
	return &t, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
