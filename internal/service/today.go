package service

import (
	"database/sql"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

type MacroProgress struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type DayStatusReport struct {
	Date        string               `json:"date"`
	HasPlan     bool                 `json:"has_plan"`
	HasGoal     bool                 `json:"has_goal"`
	TrainingDay bool                 `json:"training_day"`
	ItemsTotal  int                  `json:"items_total"`
	ItemsDone   int                  `json:"items_done"`
	BaseGoal    nutrition.MacroGoals `json:"base_goal"`
	Goal        nutrition.MacroGoals `json:"goal"`
	Planned     nutrition.MacroGoals `json:"planned"`
	Consumed    nutrition.MacroGoals `json:"consumed"`
	Remaining   nutrition.MacroGoals `json:"remaining"`
	Progress    MacroProgress        `json:"progress"`
}

// DayStatus reports what was eaten on date against the day-adjusted goal.
// Only items marked done count as consumed.
func DayStatus(db *sql.DB, userID, date string) (*DayStatusReport, error) {
	plan, err := PlanForDate(db, userID, date)
	if err != nil {
		return nil, err
	}
	status := &DayStatusReport{Date: date}

	planned := make([]nutrition.MacroGoals, 0)
	consumed := make([]nutrition.MacroGoals, 0)
	if plan != nil {
		status.HasPlan = true
		status.TrainingDay = plan.TrainingDay
		status.ItemsTotal = len(plan.Items)
		for _, it := range plan.Items {
			m := nutrition.CalculateFoodMacros(it.Food, it.QtyUnits)
			planned = append(planned, m)
			if it.Done {
				status.ItemsDone++
				consumed = append(consumed, m)
			}
		}
	}
	status.Planned = nutrition.SumMacros(planned...)
	status.Consumed = nutrition.SumMacros(consumed...)

	goal, err := LatestGoal(db, userID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return status, nil
	}
	status.HasGoal = true
	status.BaseGoal = goal.Goals
	status.Goal = nutrition.AdjustMacrosForDay(goal.Goals, status.TrainingDay)
	status.Remaining = nutrition.CalculateRemainingMacros(status.Goal, status.Consumed)
	status.Progress = MacroProgress{
		Kcal:    nutrition.CalculateProgress(status.Consumed.Kcal, status.Goal.Kcal),
		Protein: nutrition.CalculateProgress(status.Consumed.Protein, status.Goal.Protein),
		Carbs:   nutrition.CalculateProgress(status.Consumed.Carbs, status.Goal.Carbs),
		Fat:     nutrition.CalculateProgress(status.Consumed.Fat, status.Goal.Fat),
	}
	return status, nil
}
