package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	ConfigTrainingDays       = "training_days"
	ConfigAdherenceTolerance = "adherence_tolerance"
	ConfigTimezone           = "timezone"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	switch key {
	case ConfigTrainingDays:
		if _, err := ParseWeekdays(value); err != nil {
			return err
		}
	case ConfigAdherenceTolerance:
		if _, err := parseTolerance(value); err != nil {
			return err
		}
	case ConfigTimezone:
		if _, err := time.LoadLocation(value); err != nil {
			return fmt.Errorf("invalid timezone %q", value)
		}
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ParseWeekdays reads a comma-separated list such as "mon,wed,fri". An empty
// list means no training days.
func ParseWeekdays(v string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0)
	seen := map[time.Weekday]bool{}
	for _, part := range strings.Split(v, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", strings.TrimSpace(part))
		}
		if !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	return out, nil
}

// parseWeekday accepts a three-letter abbreviation or the full English name.
func parseWeekday(name string) (time.Weekday, bool) {
	if day, ok := weekdayNames[name]; ok {
		return day, true
	}
	if len(name) > 3 {
		if day, ok := weekdayNames[name[:3]]; ok && strings.ToLower(day.String()) == name {
			return day, true
		}
	}
	return 0, false
}

func TrainingDays(db *sql.DB) ([]time.Weekday, error) {
	v, ok, err := GetConfig(db, ConfigTrainingDays)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}, nil
	}
	return ParseWeekdays(v)
}

func AdherenceTolerance(db *sql.DB) (float64, error) {
	v, ok, err := GetConfig(db, ConfigAdherenceTolerance)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0.10, nil
	}
	return parseTolerance(v)
}

func parseTolerance(v string) (float64, error) {
	tol, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || tol < 0 || tol > 1 {
		return 0, fmt.Errorf("invalid adherence tolerance %q (expected 0..1)", v)
	}
	return tol, nil
}
