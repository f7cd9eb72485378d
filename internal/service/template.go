package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Rruubeenn23/WebCursor/internal/model"
	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/planner"
)

const defaultTimeHint = "08:00"

type TemplateItemInput struct {
	Food     string
	QtyUnits float64
	TimeHint string
}

type CreateTemplateInput struct {
	Name  string
	Items []TemplateItemInput
}

type ApplyTemplateInput struct {
	Date        string
	Template    string
	TrainingDay bool
	Mode        string
}

type ApplyTemplateResult struct {
	PlanID      string                 `json:"plan_id"`
	Date        string                 `json:"date"`
	TrainingDay bool                   `json:"training_day"`
	TargetKcal  float64                `json:"target_kcal"`
	Factor      float64                `json:"factor"`
	Items       []planner.PlannedItem  `json:"items"`
	Shopping    []planner.ShoppingLine `json:"shopping"`
}

func CreateTemplate(db *sql.DB, userID string, in CreateTemplateInput) (string, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(in.Name)
	var verr error
	if name == "" {
		verr = multierr.Append(verr, fmt.Errorf("template name is required"))
	}
	if len(in.Items) == 0 {
		verr = multierr.Append(verr, fmt.Errorf("template needs at least one item"))
	}
	for i, it := range in.Items {
		if it.QtyUnits <= 0 {
			verr = multierr.Append(verr, fmt.Errorf("item %d: quantity must be > 0", i+1))
		}
		if hint := strings.TrimSpace(it.TimeHint); hint != "" {
			if err := validateClock(hint); err != nil {
				verr = multierr.Append(verr, fmt.Errorf("item %d: %w", i+1, err))
			}
		}
	}
	if verr != nil {
		return "", verr
	}

	// resolve foods before the tx: the handle has a single connection
	foodIDs := make([]string, len(in.Items))
	for i, it := range in.Items {
		food, err := ResolveFood(db, it.Food)
		if err != nil {
			return "", fmt.Errorf("item %d: %w", i+1, err)
		}
		foodIDs[i] = food.ID
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO meal_templates(id, user_id, name, name_norm) VALUES(?, ?, ?, ?)`, id, userID, name, normalizeName(name)); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return "", fmt.Errorf("template %q already exists", name)
		}
		return "", fmt.Errorf("create template: %w", err)
	}
	for i, it := range in.Items {
		if _, err := tx.Exec(`
INSERT INTO meal_template_items(id, template_id, position, food_id, qty_units, time_hint)
VALUES(?, ?, ?, ?, ?, ?)
`, uuid.NewString(), id, i+1, foodIDs[i], it.QtyUnits, strings.TrimSpace(it.TimeHint)); err != nil {
			return "", fmt.Errorf("create template item %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit template: %w", err)
	}
	return id, nil
}

func ListTemplates(db *sql.DB, userID string) ([]model.MealTemplate, error) {
	rows, err := db.Query(`
SELECT id, user_id, name, created_at
FROM meal_templates
WHERE user_id = ?
ORDER BY name_norm ASC
`, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	templates := make([]model.MealTemplate, 0)
	for rows.Next() {
		var t model.MealTemplate
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	rows.Close()

	for i := range templates {
		if templates[i].Items, err = templateItems(db, templates[i].ID); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

// ResolveTemplate looks a template up by id, then by case-insensitive name.
func ResolveTemplate(db *sql.DB, userID, idOrName string) (*model.MealTemplate, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("template identifier is required")
	}
	var t model.MealTemplate
	err := db.QueryRow(`
SELECT id, user_id, name, created_at
FROM meal_templates
WHERE user_id = ? AND (id = ? OR name_norm = ?)
ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END
LIMIT 1
`, strings.TrimSpace(userID), idOrName, normalizeName(idOrName), idOrName).Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("template %q not found", idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup template %q: %w", idOrName, err)
	}
	if t.Items, err = templateItems(db, t.ID); err != nil {
		return nil, err
	}
	return &t, nil
}

func templateItems(db *sql.DB, templateID string) ([]model.TemplateItem, error) {
	rows, err := db.Query(`
SELECT i.id, i.position, i.qty_units, i.time_hint,
       f.id, f.name, f.kcal, f.protein_g, f.carbs_g, f.fat_g, f.unit, f.grams_per_unit
FROM meal_template_items i
JOIN foods f ON f.id = i.food_id
WHERE i.template_id = ?
ORDER BY i.position ASC
`, templateID)
	if err != nil {
		return nil, fmt.Errorf("query template items: %w", err)
	}
	defer rows.Close()

	items := make([]model.TemplateItem, 0)
	for rows.Next() {
		var it model.TemplateItem
		if err := rows.Scan(&it.ID, &it.Position, &it.QtyUnits, &it.TimeHint,
			&it.Food.ID, &it.Food.Name, &it.Food.Kcal, &it.Food.Protein, &it.Food.Carbs, &it.Food.Fat, &it.Food.Unit, &it.Food.GramsPerUnit); err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template items: %w", err)
	}
	return items, nil
}

func DeleteTemplate(db *sql.DB, userID, idOrName string) error {
	t, err := ResolveTemplate(db, userID, idOrName)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM meal_templates WHERE id = ?`, t.ID); err != nil {
		return fmt.Errorf("delete template %q: %w", t.Name, err)
	}
	return nil
}

// ScaleTemplate resizes every item by targetKcal / template kcal, rounding
// quantities to two decimals. Items keep their time hint, else 08:00.
func ScaleTemplate(t model.MealTemplate, targetKcal float64) ([]planner.PlannedItem, float64, error) {
	total := 0.0
	for _, it := range t.Items {
		total += it.Food.Kcal * it.QtyUnits
	}
	if total <= 0 {
		return nil, 0, fmt.Errorf("template %q has no calories to scale", t.Name)
	}
	factor := targetKcal / total
	items := make([]planner.PlannedItem, 0, len(t.Items))
	for _, it := range t.Items {
		qty := math.Max(0.01, math.Floor(it.QtyUnits*factor*100+0.5)/100)
		at := it.TimeHint
		if at == "" {
			at = defaultTimeHint
		}
		items = append(items, planner.PlannedItem{
			Time:     at,
			FoodID:   it.Food.ID,
			QtyUnits: qty,
			Food:     planner.PlannedFood{Name: it.Food.Name, Unit: it.Food.Unit, Kcal: it.Food.Kcal},
		})
	}
	return items, factor, nil
}

// ApplyTemplate fills a day from a template sized to the day-adjusted kcal
// goal and records the template on the plan.
func ApplyTemplate(db *sql.DB, userID string, in ApplyTemplateInput) (*ApplyTemplateResult, error) {
	userID, err := normalizeUser(userID)
	if err != nil {
		return nil, err
	}
	date := strings.TrimSpace(in.Date)
	if err := planner.ValidateDate(date); err != nil {
		return nil, err
	}
	mode, err := planner.ParseMode(in.Mode)
	if err != nil {
		return nil, err
	}
	tpl, err := ResolveTemplate(db, userID, in.Template)
	if err != nil {
		return nil, err
	}
	goal, err := LatestGoal(db, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, planner.ErrNoGoal
	}
	target := nutrition.AdjustMacrosForDay(goal.Goals, in.TrainingDay).Kcal
	scaled, factor, err := ScaleTemplate(*tpl, target)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	planID, err := ensurePlan(ctx, tx, userID, date, in.TrainingDay, nil)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE day_plans SET template_id = ? WHERE id = ?`, tpl.ID, planID); err != nil {
		return nil, fmt.Errorf("record template on plan: %w", err)
	}
	stored, err := insertPlanItems(ctx, tx, planID, scaled, mode == planner.ModeReplace)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit template plan: %w", err)
	}
	return &ApplyTemplateResult{
		PlanID:      planID,
		Date:        date,
		TrainingDay: in.TrainingDay,
		TargetKcal:  target,
		Factor:      factor,
		Items:       stored,
		Shopping:    planner.BuildShoppingList(stored),
	}, nil
}
