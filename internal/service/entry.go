package service

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Rruubeenn23/WebCursor/internal/model"
	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type AddFoodItemInput struct {
	Date     string
	Time     string
	Food     string
	QtyUnits float64
	Done     bool
}

type AddQuickItemInput struct {
	Date   string
	Time   string
	Label  string
	Macros nutrition.MacroGoals
	Done   bool
}

func validateClock(v string) error {
	if !clockRe.MatchString(v) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", v)
	}
	return nil
}

// openPlan returns the (user, date) plan id, creating a rest-day plan when
// none exists. An existing plan keeps its training flag and notes.
func openPlan(ctx context.Context, q execQuerier, userID, date string) (string, error) {
	if _, err := q.ExecContext(ctx, `
INSERT INTO day_plans(id, user_id, date, training_day)
VALUES(?, ?, ?, 0)
ON CONFLICT(user_id, date) DO NOTHING
`, uuid.NewString(), userID, date); err != nil {
		return "", fmt.Errorf("open day plan %s: %w", date, err)
	}
	var id string
	if err := q.QueryRowContext(ctx, `SELECT id FROM day_plans WHERE user_id = ? AND date = ?`, userID, date).Scan(&id); err != nil {
		return "", fmt.Errorf("resolve day plan %s: %w", date, err)
	}
	return id, nil
}

// AddFoodItem adds a catalog food to the day outside the planner.
func AddFoodItem(db *sql.DB, userID string, in AddFoodItemInput) (string, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return "", err
	}
	in.Date, in.Time = strings.TrimSpace(in.Date), strings.TrimSpace(in.Time)
	var verr error
	if _, perr := parseDate("date", in.Date); perr != nil {
		verr = multierr.Append(verr, perr)
	}
	verr = multierr.Append(verr, validateClock(in.Time))
	if in.QtyUnits <= 0 {
		verr = multierr.Append(verr, fmt.Errorf("quantity must be > 0"))
	}
	if verr != nil {
		return "", verr
	}
	food, err := ResolveFood(db, in.Food)
	if err != nil {
		return "", err
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	planID, err := openPlan(ctx, tx, userID, in.Date)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `
INSERT INTO day_plan_items(id, day_plan_id, food_id, qty_units, time, done, entry_type)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, id, planID, food.ID, in.QtyUnits, in.Time, boolToInt(in.Done), model.EntryTypeFood); err != nil {
		return "", fmt.Errorf("add food item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit food item: %w", err)
	}
	return id, nil
}

// AddQuickItem logs raw macros for the day without a catalog food.
func AddQuickItem(db *sql.DB, userID string, in AddQuickItemInput) (string, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return "", err
	}
	in.Date, in.Time = strings.TrimSpace(in.Date), strings.TrimSpace(in.Time)
	var verr error
	if _, perr := parseDate("date", in.Date); perr != nil {
		verr = multierr.Append(verr, perr)
	}
	verr = multierr.Append(verr, validateClock(in.Time))
	verr = multierr.Append(verr, validateGoal(in.Macros))
	if verr != nil {
		return "", verr
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	planID, err := openPlan(ctx, tx, userID, in.Date)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	m := in.Macros
	if _, err := tx.ExecContext(ctx, `
INSERT INTO day_plan_items(id, day_plan_id, qty_units, time, done, entry_type, label, quick_kcal, quick_protein_g, quick_carbs_g, quick_fat_g)
VALUES(?, ?, 1, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, planID, in.Time, boolToInt(in.Done), model.EntryTypeQuick, strings.TrimSpace(in.Label), m.Kcal, m.Protein, m.Carbs, m.Fat); err != nil {
		return "", fmt.Errorf("add quick item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit quick item: %w", err)
	}
	return id, nil
}
