package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Rruubeenn23/WebCursor/internal/model"
)

type CheckinInput struct {
	WeekStart string
	WeightKg  *float64
	WaistCm   *float64
	SleepH    *float64
	Hunger    *int
	Energy    *int
	Stress    *int
	Notes     string
}

func validateCheckin(in CheckinInput) error {
	var err error
	if _, perr := parseDate("week start", in.WeekStart); perr != nil {
		err = multierr.Append(err, perr)
	}
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		err = multierr.Append(err, fmt.Errorf("weight must be > 0"))
	}
	if in.WaistCm != nil && *in.WaistCm <= 0 {
		err = multierr.Append(err, fmt.Errorf("waist must be > 0"))
	}
	if in.SleepH != nil {
		err = multierr.Append(err, validateRange("sleep hours", *in.SleepH, 0, 24))
	}
	scales := []struct {
		name  string
		value *int
	}{{"hunger", in.Hunger}, {"energy", in.Energy}, {"stress", in.Stress}}
	for _, sc := range scales {
		if sc.value != nil && (*sc.value < 1 || *sc.value > 5) {
			err = multierr.Append(err, fmt.Errorf("%s must be between 1 and 5", sc.name))
		}
	}
	return err
}

func CreateCheckin(db *sql.DB, userID string, in CheckinInput) (string, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return "", err
	}
	in.WeekStart = strings.TrimSpace(in.WeekStart)
	if err := validateCheckin(in); err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = db.Exec(`
INSERT INTO checkins(id, user_id, week_start, weight_kg, waist_cm, sleep_h, hunger_1_5, energy_1_5, stress_1_5, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, userID, in.WeekStart, in.WeightKg, in.WaistCm, in.SleepH, in.Hunger, in.Energy, in.Stress, strings.TrimSpace(in.Notes))
	if err != nil {
		return "", fmt.Errorf("create checkin: %w", err)
	}
	return id, nil
}

func ListCheckins(db *sql.DB, userID string, limit int) ([]model.Checkin, error) {
	if limit <= 0 {
		limit = 12
	}
	return queryCheckins(db, `
SELECT id, user_id, week_start, weight_kg, waist_cm, sleep_h, hunger_1_5, energy_1_5, stress_1_5, notes, created_at
FROM checkins
WHERE user_id = ?
ORDER BY week_start DESC, created_at DESC
LIMIT ?
`, userID, limit)
}

// CheckinForWeek returns the most recent check-in recorded for weekStart.
func CheckinForWeek(db *sql.DB, userID, weekStart string) (*model.Checkin, error) {
	items, err := queryCheckins(db, `
SELECT id, user_id, week_start, weight_kg, waist_cm, sleep_h, hunger_1_5, energy_1_5, stress_1_5, notes, created_at
FROM checkins
WHERE user_id = ? AND week_start = ?
ORDER BY created_at DESC, rowid DESC
LIMIT 1
`, userID, weekStart)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func queryCheckins(db *sql.DB, query string, args ...any) ([]model.Checkin, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}
	defer rows.Close()

	items := make([]model.Checkin, 0)
	for rows.Next() {
		var (
			c                      model.Checkin
			weight, waist, sleep   sql.NullFloat64
			hunger, energy, stress sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.WeekStart, &weight, &waist, &sleep, &hunger, &energy, &stress, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		c.WeightKg = nullFloat(weight)
		c.WaistCm = nullFloat(waist)
		c.SleepH = nullFloat(sleep)
		c.Hunger = nullInt(hunger)
		c.Energy = nullInt(energy)
		c.Stress = nullInt(stress)
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkins: %w", err)
	}
	return items, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
