// Package planner implements the rule-based "plan my day" allocator: it picks
// a handful of foods from the catalog, spreads the daily kcal budget across
// fixed meal slots and derives a shopping list. Storage is reached only
// through the FoodCatalog, GoalStore and PlanStore interfaces.
package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
)

var (
	ErrInvalidDate = errors.New("invalid date (expected YYYY-MM-DD)")
	ErrInvalidMode = errors.New("invalid mode (use replace or append)")
	ErrNoFoods     = errors.New("no foods available")
	ErrNoGoal      = errors.New("no macro goal configured")
	ErrNoUser      = errors.New("user id is required")
)

const (
	minDailyKcal = 1200
	minSlotKcal  = 150
	minQtyUnits  = 0.5
	mealsPerDay  = 4
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

func ParseMode(v string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(v)))
	switch m {
	case "":
		return ModeReplace, nil
	case ModeReplace, ModeAppend:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, v)
}

type SortKey string

const (
	SortDefault SortKey = ""
	SortProtein SortKey = "protein"
	SortCarbs   SortKey = "carbs"
	SortFat     SortKey = "fat"
)

type FoodQuery struct {
	OrderBy    SortKey
	ExcludeIDs []string
	Limit      int
}

type FoodCatalog interface {
	// ListFoods returns foods ordered descending by OrderBy, or in catalog
	// order for SortDefault, skipping ExcludeIDs.
	ListFoods(ctx context.Context, q FoodQuery) ([]nutrition.FoodItem, error)
}

type GoalStore interface {
	// LatestGoal returns the most recently created goal, or nil when unset.
	LatestGoal(ctx context.Context, userID string) (*nutrition.MacroGoals, error)
}

type PlanStore interface {
	EnsurePlan(ctx context.Context, userID, date string, trainingDay bool) (string, error)
	// ReplaceItems clears the plan and inserts items in one transaction.
	ReplaceItems(ctx context.Context, planID string, items []PlannedItem) ([]PlannedItem, error)
	AppendItems(ctx context.Context, planID string, items []PlannedItem) ([]PlannedItem, error)
}

type PlannedFood struct {
	Name string  `json:"name"`
	Unit string  `json:"unit"`
	Kcal float64 `json:"kcal"`
}

type PlannedItem struct {
	ID       string      `json:"id,omitempty"`
	Time     string      `json:"time"`
	FoodID   string      `json:"food_id"`
	QtyUnits float64     `json:"qty_units"`
	Food     PlannedFood `json:"food"`
	Done     bool        `json:"done"`
}

type Request struct {
	UserID      string
	Date        string
	Mode        string
	TrainingDay bool
}

type Result struct {
	PlanID      string         `json:"plan_id"`
	Date        string         `json:"date"`
	TrainingDay bool           `json:"training_day"`
	Items       []PlannedItem  `json:"items"`
	Shopping    []ShoppingLine `json:"shopping"`
}

type Planner struct {
	foods FoodCatalog
	goals GoalStore
	plans PlanStore
	log   log.FieldLogger
}

func New(foods FoodCatalog, goals GoalStore, plans PlanStore) *Planner {
	return &Planner{
		foods: foods,
		goals: goals,
		plans: plans,
		log:   log.StandardLogger(),
	}
}

func (p *Planner) WithLogger(l log.FieldLogger) *Planner {
	p.log = l
	return p
}

func ValidateDate(date string) error {
	date = strings.TrimSpace(date)
	if !dateRe.MatchString(date) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// PlanMyDay builds and stores a meal plan for one (user, date). Input is
// validated before any store call. Concurrent calls for the same (user, date)
// must be serialized by the caller; the ensure-plan and item writes are
// separate store calls and a failure between them is returned as-is.
func (p *Planner) PlanMyDay(ctx context.Context, req Request) (*Result, error) {
	user := strings.TrimSpace(req.UserID)
	if user == "" {
		return nil, ErrNoUser
	}
	date := strings.TrimSpace(req.Date)
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	logger := p.log.WithFields(log.Fields{"user": user, "date": date, "mode": mode})

	goal, err := p.goals.LatestGoal(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("load latest goal: %w", err)
	}
	if goal == nil {
		return nil, ErrNoGoal
	}
	dailyKcal := math.Max(minDailyKcal, goal.Kcal)

	picks, err := SelectFoods(ctx, p.foods)
	if err != nil {
		return nil, err
	}

	planID, err := p.plans.EnsurePlan(ctx, user, date, req.TrainingDay)
	if err != nil {
		return nil, fmt.Errorf("ensure day plan: %w", err)
	}

	planned := Allocate(dailyKcal, picks)
	var stored []PlannedItem
	if mode == ModeReplace {
		stored, err = p.plans.ReplaceItems(ctx, planID, planned)
	} else {
		stored, err = p.plans.AppendItems(ctx, planID, planned)
	}
	if err != nil {
		return nil, fmt.Errorf("store planned items: %w", err)
	}
	logger.WithFields(log.Fields{"plan_id": planID, "items": len(stored), "daily_kcal": dailyKcal}).Debug("day planned")

	return &Result{
		PlanID:      planID,
		Date:        date,
		TrainingDay: req.TrainingDay,
		Items:       stored,
		Shopping:    BuildShoppingList(stored),
	}, nil
}
