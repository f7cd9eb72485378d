package service

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/Rruubeenn23/WebCursor/internal/model"
	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

type AdherenceDay struct {
	Date      string           `json:"date"`
	Evaluated bool             `json:"evaluated"`
	Within    bool             `json:"within"`
	Status    *DayStatusReport `json:"status"`
}

type AdherenceReport struct {
	WeekStart     string               `json:"week_start"`
	WeekEnd       string               `json:"week_end"`
	Tolerance     float64              `json:"tolerance"`
	Days          []AdherenceDay       `json:"days"`
	EvaluatedDays int                  `json:"evaluated_days"`
	WithinDays    int                  `json:"within_days"`
	SkippedDays   int                  `json:"skipped_days"`
	AvgConsumed   nutrition.MacroGoals `json:"avg_consumed"`
	Checkin       *model.Checkin       `json:"checkin,omitempty"`
}

// WeeklyAdherence evaluates seven days from weekStart. Days without a goal or
// without anything eaten are skipped. A day is within goal when kcal stays at
// or under target and each macro lands within tolerance of its target.
func WeeklyAdherence(db *sql.DB, userID, weekStart string, tolerance float64) (*AdherenceReport, error) {
	start, err := parseDate("week start", weekStart)
	if err != nil {
		return nil, err
	}
	if tolerance < 0 || tolerance > 1 {
		return nil, fmt.Errorf("tolerance must be between 0 and 1")
	}
	report := &AdherenceReport{
		WeekStart: weekStart,
		WeekEnd:   start.AddDate(0, 0, 6).Format(dateLayout),
		Tolerance: tolerance,
		Days:      make([]AdherenceDay, 0, 7),
	}

	var sum nutrition.MacroGoals
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		status, err := DayStatus(db, userID, date)
		if err != nil {
			return nil, err
		}
		day := AdherenceDay{Date: date, Status: status}
		if !status.HasGoal || status.ItemsDone == 0 {
			report.SkippedDays++
			report.Days = append(report.Days, day)
			continue
		}
		day.Evaluated = true
		day.Within = dayWithin(status.Consumed, status.Goal, tolerance)
		report.EvaluatedDays++
		if day.Within {
			report.WithinDays++
		}
		sum = nutrition.SumMacros(sum, status.Consumed)
		report.Days = append(report.Days, day)
	}
	if report.EvaluatedDays > 0 {
		n := float64(report.EvaluatedDays)
		report.AvgConsumed = nutrition.MacroGoals{
			Kcal:    math.Round(sum.Kcal / n),
			Protein: math.Round(sum.Protein/n*10) / 10,
			Carbs:   math.Round(sum.Carbs/n*10) / 10,
			Fat:     math.Round(sum.Fat/n*10) / 10,
		}
	}

	checkin, err := CheckinForWeek(db, userID, weekStart)
	if err != nil {
		return nil, err
	}
	report.Checkin = checkin
	return report, nil
}

func dayWithin(consumed, goal nutrition.MacroGoals, tolerance float64) bool {
	if consumed.Kcal > goal.Kcal {
		return false
	}
	return nutrition.AdherenceWithin(consumed.Protein, goal.Protein, tolerance) &&
		nutrition.AdherenceWithin(consumed.Carbs, goal.Carbs, tolerance) &&
		nutrition.AdherenceWithin(consumed.Fat, goal.Fat, tolerance)
}
