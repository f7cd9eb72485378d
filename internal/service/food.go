package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/planner"
)

type CreateFoodInput struct {
	Name         string
	Kcal         float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
	Unit         string
	GramsPerUnit float64
}

type FoodFilter struct {
	Query      string
	OrderBy    planner.SortKey
	ExcludeIDs []string
	Limit      int
}

var foodOrderColumns = map[planner.SortKey]string{
	planner.SortDefault: "rowid ASC",
	planner.SortProtein: "protein_g DESC, rowid ASC",
	planner.SortCarbs:   "carbs_g DESC, rowid ASC",
	planner.SortFat:     "fat_g DESC, rowid ASC",
}

func validateFood(in CreateFoodInput) error {
	var err error
	if strings.TrimSpace(in.Name) == "" {
		err = multierr.Append(err, fmt.Errorf("food name is required"))
	}
	err = multierr.Append(err, validateRange("kcal", in.Kcal, 0, 2000))
	err = multierr.Append(err, validateRange("protein", in.ProteinG, 0, 300))
	err = multierr.Append(err, validateRange("carbs", in.CarbsG, 0, 300))
	err = multierr.Append(err, validateRange("fat", in.FatG, 0, 200))
	err = multierr.Append(err, validateRange("grams per unit", in.GramsPerUnit, 1, 2000))
	return err
}

func CreateFood(db *sql.DB, in CreateFoodInput) (string, error) {
	if strings.TrimSpace(in.Unit) == "" {
		in.Unit = "100g"
	}
	if in.GramsPerUnit == 0 {
		in.GramsPerUnit = 100
	}
	if err := validateFood(in); err != nil {
		return "", err
	}
	name := strings.TrimSpace(in.Name)
	id := uuid.NewString()
	_, err := db.Exec(`
INSERT INTO foods(id, name, name_norm, kcal, protein_g, carbs_g, fat_g, unit, grams_per_unit)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, name, normalizeName(name), in.Kcal, in.ProteinG, in.CarbsG, in.FatG, strings.TrimSpace(in.Unit), in.GramsPerUnit)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return "", fmt.Errorf("food %q already exists", name)
		}
		return "", fmt.Errorf("create food: %w", err)
	}
	return id, nil
}

func ListFoods(db *sql.DB, f FoodFilter) ([]nutrition.FoodItem, error) {
	return listFoods(context.Background(), db, f)
}

func listFoods(ctx context.Context, db *sql.DB, f FoodFilter) ([]nutrition.FoodItem, error) {
	order, ok := foodOrderColumns[f.OrderBy]
	if !ok {
		return nil, fmt.Errorf("unsupported food ordering %q", f.OrderBy)
	}
	query := `SELECT id, name, kcal, protein_g, carbs_g, fat_g, unit, grams_per_unit FROM foods WHERE 1=1`
	args := make([]any, 0)
	if q := normalizeName(f.Query); q != "" {
		query += ` AND name_norm LIKE ?`
		args = append(args, "%"+q+"%")
	}
	if len(f.ExcludeIDs) > 0 {
		query += ` AND id NOT IN (?` + strings.Repeat(`, ?`, len(f.ExcludeIDs)-1) + `)`
		for _, id := range f.ExcludeIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY ` + order
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	foods := make([]nutrition.FoodItem, 0)
	for rows.Next() {
		var item nutrition.FoodItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Kcal, &item.Protein, &item.Carbs, &item.Fat, &item.Unit, &item.GramsPerUnit); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		foods = append(foods, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}

// ResolveFood looks a food up by id, then by case-insensitive name.
func ResolveFood(db *sql.DB, idOrName string) (*nutrition.FoodItem, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("food identifier is required")
	}
	var item nutrition.FoodItem
	err := db.QueryRow(`
SELECT id, name, kcal, protein_g, carbs_g, fat_g, unit, grams_per_unit
FROM foods
WHERE id = ? OR name_norm = ?
ORDER BY CASE WHEN id = ? THEN 0 ELSE 1 END
LIMIT 1
`, idOrName, normalizeName(idOrName), idOrName).Scan(&item.ID, &item.Name, &item.Kcal, &item.Protein, &item.Carbs, &item.Fat, &item.Unit, &item.GramsPerUnit)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("food %q not found", idOrName)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup food %q: %w", idOrName, err)
	}
	return &item, nil
}

func DeleteFood(db *sql.DB, idOrName string) error {
	food, err := ResolveFood(db, idOrName)
	if err != nil {
		return err
	}
	var refs int
	if err := db.QueryRow(`SELECT COUNT(1) FROM day_plan_items WHERE food_id = ?`, food.ID).Scan(&refs); err != nil {
		return fmt.Errorf("count plan items for food %q: %w", food.Name, err)
	}
	if refs > 0 {
		return fmt.Errorf("food %q is used by %d planned item(s)", food.Name, refs)
	}
	if err := db.QueryRow(`SELECT COUNT(1) FROM meal_template_items WHERE food_id = ?`, food.ID).Scan(&refs); err != nil {
		return fmt.Errorf("count template items for food %q: %w", food.Name, err)
	}
	if refs > 0 {
		return fmt.Errorf("food %q is used by %d template item(s)", food.Name, refs)
	}
	if _, err := db.Exec(`DELETE FROM foods WHERE id = ?`, food.ID); err != nil {
		return fmt.Errorf("delete food %q: %w", food.Name, err)
	}
	return nil
}
