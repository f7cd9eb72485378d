package service

import (
	"database/sql"
	"fmt"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

func SaveProfile(db *sql.DB, userID string, p nutrition.Profile) error {
	userID, err := normalizeUser(userID)
	if err != nil {
		return err
	}
	if err := nutrition.ValidateProfile(p); err != nil {
		return err
	}
	_, err = db.Exec(`
INSERT INTO profiles(user_id, sex, age, height_cm, weight_kg, activity, goal, rate_kg_per_week, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id) DO UPDATE SET
  sex=excluded.sex,
  age=excluded.age,
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  activity=excluded.activity,
  goal=excluded.goal,
  rate_kg_per_week=excluded.rate_kg_per_week,
  updated_at=excluded.updated_at
`, userID, string(p.Sex), p.Age, p.HeightCm, p.WeightKg, string(p.Activity), string(p.Goal), p.RateKgPerWeek)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func ProfileByUser(db *sql.DB, userID string) (*nutrition.Profile, error) {
	var (
		p                   nutrition.Profile
		sex, activity, goal string
	)
	err := db.QueryRow(`
SELECT sex, age, height_cm, weight_kg, activity, goal, rate_kg_per_week
FROM profiles
WHERE user_id = ?
`, userID).Scan(&sex, &p.Age, &p.HeightCm, &p.WeightKg, &activity, &goal, &p.RateKgPerWeek)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", userID, err)
	}
	p.Sex = nutrition.Sex(sex)
	p.Activity = nutrition.ActivityLevel(activity)
	p.Goal = nutrition.GoalType(goal)
	return &p, nil
}
