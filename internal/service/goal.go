package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rruubeenn23/WebCursor/internal/model"
	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

const (
	GoalSourceManual   = "manual"
	GoalSourceComputed = "computed"
)

// SaveGoal appends a new goal snapshot; the newest snapshot is the active one.
func SaveGoal(db *sql.DB, userID string, g nutrition.MacroGoals, source string) (int64, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return 0, err
	}
	if err := validateGoal(g); err != nil {
		return 0, err
	}
	if source == "" {
		source = GoalSourceManual
	}
	res, err := db.Exec(`
INSERT INTO goals(user_id, kcal_target, protein_g, carbs_g, fat_g, source)
VALUES(?, ?, ?, ?, ?, ?)
`, userID, g.Kcal, g.Protein, g.Carbs, g.Fat, source)
	if err != nil {
		return 0, fmt.Errorf("save goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve goal id: %w", err)
	}
	return id, nil
}

func validateGoal(g nutrition.MacroGoals) error {
	if err := validateNonNegativeFloat("kcal", g.Kcal); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", g.Protein); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", g.Carbs); err != nil {
		return err
	}
	return validateNonNegativeFloat("fat", g.Fat)
}

func LatestGoal(db *sql.DB, userID string) (*model.Goal, error) {
	return latestGoal(context.Background(), db, userID)
}

func latestGoal(ctx context.Context, db *sql.DB, userID string) (*model.Goal, error) {
	var g model.Goal
	err := db.QueryRowContext(ctx, `
SELECT id, user_id, kcal_target, protein_g, carbs_g, fat_g, source, created_at
FROM goals
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT 1
`, userID).Scan(&g.ID, &g.UserID, &g.Goals.Kcal, &g.Goals.Protein, &g.Goals.Carbs, &g.Goals.Fat, &g.Source, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest goal for %s: %w", userID, err)
	}
	return &g, nil
}

func GoalHistory(db *sql.DB, userID string) ([]model.Goal, error) {
	rows, err := db.Query(`
SELECT id, user_id, kcal_target, protein_g, carbs_g, fat_g, source, created_at
FROM goals
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goal history: %w", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0)
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Goals.Kcal, &g.Goals.Protein, &g.Goals.Carbs, &g.Goals.Fat, &g.Source, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal history: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goal history: %w", err)
	}
	return goals, nil
}

// ComputeAndSaveGoal stores the profile and a computed goal snapshot.
func ComputeAndSaveGoal(db *sql.DB, userID string, p nutrition.Profile) (nutrition.MacroResult, error) {
	if err := SaveProfile(db, userID, p); err != nil {
		return nutrition.MacroResult{}, err
	}
	res, err := nutrition.ComputeMacros(p)
	if err != nil {
		return nutrition.MacroResult{}, err
	}
	if _, err := SaveGoal(db, userID, res.Goals(), GoalSourceComputed); err != nil {
		return nutrition.MacroResult{}, err
	}
	return res, nil
}
