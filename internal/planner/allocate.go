package planner

import (
	"context"
	"fmt"
	"math"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

type mealSlot struct {
	time     string
	fraction float64
}

var mealSlots = []mealSlot{
	{time: "08:00", fraction: 0.25},
	{time: "13:30", fraction: 0.35},
	{time: "17:30", fraction: 0.15},
	{time: "21:00", fraction: 0.25},
}

// SelectFoods is a greedy pick: the top food by protein, then carbs, then
// fat, each excluding earlier picks. Fewer than three picks fall back to the
// default listing; the first pick is repeated to fill four slots.
func SelectFoods(ctx context.Context, catalog FoodCatalog) ([]nutrition.FoodItem, error) {
	picks := make([]nutrition.FoodItem, 0, mealsPerDay)
	for _, key := range []SortKey{SortProtein, SortCarbs, SortFat} {
		foods, err := catalog.ListFoods(ctx, FoodQuery{OrderBy: key, ExcludeIDs: pickedIDs(picks), Limit: 1})
		if err != nil {
			return nil, fmt.Errorf("pick food by %s: %w", key, err)
		}
		if len(foods) > 0 {
			picks = append(picks, foods[0])
		}
	}

	if len(picks) < 3 {
		foods, err := catalog.ListFoods(ctx, FoodQuery{OrderBy: SortDefault, Limit: mealsPerDay})
		if err != nil {
			return nil, fmt.Errorf("list fallback foods: %w", err)
		}
		for _, f := range foods {
			if len(picks) >= mealsPerDay {
				break
			}
			if !containsID(picks, f.ID) {
				picks = append(picks, f)
			}
		}
	}

	if len(picks) == 0 {
		return nil, ErrNoFoods
	}
	for len(picks) < mealsPerDay {
		picks = append(picks, picks[0])
	}
	return picks, nil
}

// Allocate assigns picks to the fixed meal slots in order.
func Allocate(dailyKcal float64, picks []nutrition.FoodItem) []PlannedItem {
	n := min(len(mealSlots), len(picks))
	items := make([]PlannedItem, 0, n)
	for i := 0; i < n; i++ {
		f := picks[i]
		slotKcal := SlotKcal(dailyKcal, mealSlots[i].fraction)
		items = append(items, PlannedItem{
			Time:     mealSlots[i].time,
			FoodID:   f.ID,
			QtyUnits: QuantityFor(slotKcal, f.Kcal),
			Food:     PlannedFood{Name: f.Name, Unit: f.Unit, Kcal: f.Kcal},
		})
	}
	return items
}

func SlotKcal(dailyKcal, fraction float64) float64 {
	return math.Max(minSlotKcal, math.Floor(dailyKcal*fraction+0.5))
}

// QuantityFor rounds slotKcal/kcalPerUnit to the nearest half unit, never
// below half a unit. Foods without kcal count as one unit.
func QuantityFor(slotKcal, kcalPerUnit float64) float64 {
	raw := 1.0
	if kcalPerUnit > 0 {
		raw = slotKcal / kcalPerUnit
	}
	return math.Max(minQtyUnits, math.Floor(raw*2+0.5)/2)
}

func pickedIDs(picks []nutrition.FoodItem) []string {
	ids := make([]string, 0, len(picks))
	for _, p := range picks {
		ids = append(ids, p.ID)
	}
	return ids
}

func containsID(picks []nutrition.FoodItem, id string) bool {
	for _, p := range picks {
		if p.ID == id {
			return true
		}
	}
	return false
}
