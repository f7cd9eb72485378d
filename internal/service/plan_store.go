package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Rruubeenn23/WebCursor/internal/model"
	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/planner"
)

// SQLStore backs the planner with the local database.
type SQLStore struct {
	db *sql.DB
}

var (
	_ planner.FoodCatalog = (*SQLStore)(nil)
	_ planner.GoalStore   = (*SQLStore)(nil)
	_ planner.PlanStore   = (*SQLStore)(nil)
)

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListFoods(ctx context.Context, q planner.FoodQuery) ([]nutrition.FoodItem, error) {
	return listFoods(ctx, s.db, FoodFilter{OrderBy: q.OrderBy, ExcludeIDs: q.ExcludeIDs, Limit: q.Limit})
}

func (s *SQLStore) LatestGoal(ctx context.Context, userID string) (*nutrition.MacroGoals, error) {
	g, err := latestGoal(ctx, s.db, userID)
	if err != nil || g == nil {
		return nil, err
	}
	return &g.Goals, nil
}

func (s *SQLStore) EnsurePlan(ctx context.Context, userID, date string, trainingDay bool) (string, error) {
	return ensurePlan(ctx, s.db, userID, date, trainingDay, nil)
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ensurePlan upserts the (user, date) container. notes is only written when
// non-nil so planning a day does not wipe notes set by the weekly skeleton.
func ensurePlan(ctx context.Context, q execQuerier, userID, date string, trainingDay bool, notes *string) (string, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return "", err
	}
	if _, err := parseDate("date", date); err != nil {
		return "", err
	}
	if notes == nil {
		_, err = q.ExecContext(ctx, `
INSERT INTO day_plans(id, user_id, date, training_day)
VALUES(?, ?, ?, ?)
ON CONFLICT(user_id, date) DO UPDATE SET training_day=excluded.training_day
`, uuid.NewString(), userID, date, boolToInt(trainingDay))
	} else {
		_, err = q.ExecContext(ctx, `
INSERT INTO day_plans(id, user_id, date, training_day, notes)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(user_id, date) DO UPDATE SET training_day=excluded.training_day, notes=excluded.notes
`, uuid.NewString(), userID, date, boolToInt(trainingDay), *notes)
	}
	if err != nil {
		return "", fmt.Errorf("upsert day plan %s: %w", date, err)
	}
	var id string
	if err := q.QueryRowContext(ctx, `SELECT id FROM day_plans WHERE user_id = ? AND date = ?`, userID, date).Scan(&id); err != nil {
		return "", fmt.Errorf("resolve day plan %s: %w", date, err)
	}
	return id, nil
}

func (s *SQLStore) ReplaceItems(ctx context.Context, planID string, items []planner.PlannedItem) ([]planner.PlannedItem, error) {
	return s.writeItems(ctx, planID, items, true)
}

func (s *SQLStore) AppendItems(ctx context.Context, planID string, items []planner.PlannedItem) ([]planner.PlannedItem, error) {
	return s.writeItems(ctx, planID, items, false)
}

func (s *SQLStore) writeItems(ctx context.Context, planID string, items []planner.PlannedItem, replace bool) ([]planner.PlannedItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin plan items tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored, err := insertPlanItems(ctx, tx, planID, items, replace)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit plan items: %w", err)
	}
	return stored, nil
}

// insertPlanItems writes catalog-food items, clearing the plan first when
// replace is set.
func insertPlanItems(ctx context.Context, tx *sql.Tx, planID string, items []planner.PlannedItem, replace bool) ([]planner.PlannedItem, error) {
	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM day_plan_items WHERE day_plan_id = ?`, planID); err != nil {
			return nil, fmt.Errorf("clear plan items: %w", err)
		}
	}
	stored := make([]planner.PlannedItem, 0, len(items))
	for _, it := range items {
		it.ID = uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
INSERT INTO day_plan_items(id, day_plan_id, food_id, qty_units, time, done, entry_type)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, it.ID, planID, it.FoodID, it.QtyUnits, it.Time, boolToInt(it.Done), model.EntryTypeFood); err != nil {
			return nil, fmt.Errorf("insert plan item %s: %w", it.Time, err)
		}
		stored = append(stored, it)
	}
	return stored, nil
}

// PlanForDate returns the plan with its items ordered by time, or nil when no
// plan exists for the day.
func PlanForDate(db *sql.DB, userID, date string) (*model.DayPlan, error) {
	if _, err := parseDate("date", date); err != nil {
		return nil, err
	}
	userID, err := normalizeUser(userID)
	if err != nil {
		return nil, err
	}
	var (
		plan       model.DayPlan
		training   int
		templateID sql.NullString
	)
	err = db.QueryRow(`
SELECT id, user_id, date, training_day, notes, template_id, created_at
FROM day_plans
WHERE user_id = ? AND date = ?
`, userID, date).Scan(&plan.ID, &plan.UserID, &plan.Date, &training, &plan.Notes, &templateID, &plan.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load day plan %s: %w", date, err)
	}
	plan.TrainingDay = training == 1
	plan.TemplateID = templateID.String

	rows, err := db.Query(`
SELECT i.id, i.day_plan_id, i.time, i.qty_units, i.done, i.entry_type, i.label,
       i.quick_kcal, i.quick_protein_g, i.quick_carbs_g, i.quick_fat_g,
       f.id, f.name, f.kcal, f.protein_g, f.carbs_g, f.fat_g, f.unit, f.grams_per_unit
FROM day_plan_items i
LEFT JOIN foods f ON f.id = i.food_id
WHERE i.day_plan_id = ?
ORDER BY i.time ASC, i.rowid ASC
`, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("query plan items: %w", err)
	}
	defer rows.Close()

	plan.Items = make([]model.PlanItem, 0)
	for rows.Next() {
		var (
			it                                 model.PlanItem
			done                               int
			label                              string
			qKcal, qProtein, qCarbs, qFat      sql.NullFloat64
			foodID, foodName, foodUnit         sql.NullString
			fKcal, fProtein, fCarbs, fFat, fGr sql.NullFloat64
		)
		if err := rows.Scan(&it.ID, &it.DayPlanID, &it.Time, &it.QtyUnits, &done, &it.EntryType, &label,
			&qKcal, &qProtein, &qCarbs, &qFat,
			&foodID, &foodName, &fKcal, &fProtein, &fCarbs, &fFat, &foodUnit, &fGr); err != nil {
			return nil, fmt.Errorf("scan plan item: %w", err)
		}
		it.Done = done == 1
		if it.EntryType == model.EntryTypeQuick {
			if label == "" {
				label = "Quick add"
			}
			it.Food = nutrition.FoodItem{
				Name:    label,
				Kcal:    qKcal.Float64,
				Protein: qProtein.Float64,
				Carbs:   qCarbs.Float64,
				Fat:     qFat.Float64,
				Unit:    "serving",
			}
		} else {
			it.Food = nutrition.FoodItem{
				ID:           foodID.String,
				Name:         foodName.String,
				Kcal:         fKcal.Float64,
				Protein:      fProtein.Float64,
				Carbs:        fCarbs.Float64,
				Fat:          fFat.Float64,
				Unit:         foodUnit.String,
				GramsPerUnit: fGr.Float64,
			}
		}
		plan.Items = append(plan.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plan items: %w", err)
	}
	return &plan, nil
}

func MarkItemDone(db *sql.DB, itemID string, done bool) error {
	res, err := db.Exec(`UPDATE day_plan_items SET done = ? WHERE id = ?`, boolToInt(done), itemID)
	if err != nil {
		return fmt.Errorf("update plan item %s: %w", itemID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("plan item %s not found", itemID)
	}
	return nil
}
