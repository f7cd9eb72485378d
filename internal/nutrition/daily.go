package nutrition

import "math"

// DayAdjustments are percentages applied to a baseline goal.
type DayAdjustments struct {
	TrainingCarbsIncrease float64
	TrainingFatDecrease   float64
	RestFatIncrease       float64
}

var DefaultDayAdjustments = DayAdjustments{
	TrainingCarbsIncrease: 15,
	TrainingFatDecrease:   10,
	RestFatIncrease:       5,
}

// AdjustMacrosForDay shifts carbs and fat for training or rest days. Kcal and
// protein are passed through untouched, so the kcal implied by the adjusted
// macros can drift from base.Kcal.
func AdjustMacrosForDay(base MacroGoals, isTrainingDay bool, adj ...DayAdjustments) MacroGoals {
	a := DefaultDayAdjustments
	if len(adj) > 0 {
		a = adj[0]
	}
	out := MacroGoals{Kcal: base.Kcal, Protein: base.Protein, Carbs: base.Carbs}
	if isTrainingDay {
		out.Carbs = round(base.Carbs * (1 + a.TrainingCarbsIncrease/100))
		out.Fat = round(base.Fat * (1 - a.TrainingFatDecrease/100))
		return out
	}
	out.Fat = round(base.Fat * (1 + a.RestFatIncrease/100))
	return out
}

func CalculateFoodMacros(food FoodItem, qtyUnits float64) MacroGoals {
	return MacroGoals{
		Kcal:    round(food.Kcal * qtyUnits),
		Protein: round1(food.Protein * qtyUnits),
		Carbs:   round1(food.Carbs * qtyUnits),
		Fat:     round1(food.Fat * qtyUnits),
	}
}

func SumMacros(items ...MacroGoals) MacroGoals {
	var out MacroGoals
	for _, m := range items {
		out.Kcal += m.Kcal
		out.Protein += m.Protein
		out.Carbs += m.Carbs
		out.Fat += m.Fat
	}
	out.Protein = round1(out.Protein)
	out.Carbs = round1(out.Carbs)
	out.Fat = round1(out.Fat)
	return out
}

func CalculateRemainingMacros(goals, consumed MacroGoals) MacroGoals {
	return MacroGoals{
		Kcal:    math.Max(0, goals.Kcal-consumed.Kcal),
		Protein: math.Max(0, goals.Protein-consumed.Protein),
		Carbs:   math.Max(0, goals.Carbs-consumed.Carbs),
		Fat:     math.Max(0, goals.Fat-consumed.Fat),
	}
}

// CalculateProgress is current/target as a percentage clamped to [0, 100].
func CalculateProgress(current, target float64) float64 {
	if target == 0 {
		return 0
	}
	return math.Min(100, math.Max(0, current/target*100))
}

func AdherenceWithin(actual, target, tolerance float64) bool {
	if target == 0 {
		return actual == 0
	}
	lower := target * (1 - tolerance)
	upper := target * (1 + tolerance)
	return actual >= lower && actual <= upper
}
