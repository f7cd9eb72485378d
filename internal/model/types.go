package model

import (
	"time"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

const (
	EntryTypeFood  = "food"
	EntryTypeQuick = "quick"
)

type Goal struct {
	ID        int64                `json:"id"`
	UserID    string               `json:"user_id"`
	Goals     nutrition.MacroGoals `json:"goals"`
	Source    string               `json:"source"`
	CreatedAt time.Time            `json:"created_at"`
}

type DayPlan struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Date        string     `json:"date"`
	TrainingDay bool       `json:"training_day"`
	Notes       string     `json:"notes"`
	TemplateID  string     `json:"template_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Items       []PlanItem `json:"items"`
}

// PlanItem is one planned or logged entry. Quick entries carry their macros
// in Food with a quantity of one serving and no food id.
type PlanItem struct {
	ID        string             `json:"id"`
	DayPlanID string             `json:"day_plan_id"`
	Time      string             `json:"time"`
	QtyUnits  float64            `json:"qty_units"`
	Done      bool               `json:"done"`
	EntryType string             `json:"entry_type"`
	Food      nutrition.FoodItem `json:"food"`
}

type MealTemplate struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []TemplateItem `json:"items"`
}

type TemplateItem struct {
	ID       string             `json:"id"`
	Position int                `json:"position"`
	QtyUnits float64            `json:"qty_units"`
	TimeHint string             `json:"time_hint"`
	Food     nutrition.FoodItem `json:"food"`
}

type Checkin struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	WeekStart string    `json:"week_start"`
	WeightKg  *float64  `json:"weight_kg,omitempty"`
	WaistCm   *float64  `json:"waist_cm,omitempty"`
	SleepH    *float64  `json:"sleep_h,omitempty"`
	Hunger    *int      `json:"hunger_1_5,omitempty"`
	Energy    *int      `json:"energy_1_5,omitempty"`
	Stress    *int      `json:"stress_1_5,omitempty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
