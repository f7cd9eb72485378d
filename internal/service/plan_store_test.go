package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/planner"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

var goal2000 = nutrition.MacroGoals{Kcal: 2000, Protein: 150, Carbs: 200, Fat: 70}

func bg() context.Context { return context.Background() }

func newPlanner(store *service.SQLStore) *planner.Planner {
	return planner.New(store, store, store)
}

func TestPlanMyDayPersistsAllocation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	ids := seedCatalog(t, db)
	saveGoal(t, db, "me", goal2000)

	res, err := newPlanner(service.NewSQLStore(db)).PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("plan day: %v", err)
	}
	want := []struct {
		time string
		food string
		qty  float64
	}{
		{"08:00", "Chicken breast", 3},
		{"13:30", "Rice", 5.5},
		{"17:30", "Olive oil", 0.5},
		{"21:00", "Chicken breast", 3},
	}
	if len(res.Items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), res.Items)
	}
	for i, w := range want {
		got := res.Items[i]
		if got.Time != w.time || got.FoodID != ids[w.food] || got.QtyUnits != w.qty || got.ID == "" {
			t.Fatalf("item %d: expected %+v, got %+v", i, w, got)
		}
	}
	if len(res.Shopping) != 3 || res.Shopping[0].Name != "Chicken breast" || res.Shopping[0].QtyUnits != 6 {
		t.Fatalf("unexpected shopping list: %+v", res.Shopping)
	}

	plan, err := service.PlanForDate(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if plan == nil || plan.ID != res.PlanID || len(plan.Items) != 4 {
		t.Fatalf("expected stored plan with 4 items, got %+v", plan)
	}
	if plan.Items[1].Food.Name != "Rice" || plan.Items[1].QtyUnits != 5.5 {
		t.Fatalf("expected rice at 13:30, got %+v", plan.Items[1])
	}
}

func TestPlanMyDayReplaceIsIdempotentAndAppendAccumulates(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedCatalog(t, db)
	saveGoal(t, db, "me", goal2000)
	p := newPlanner(service.NewSQLStore(db))

	first, err := p.PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02", Mode: "replace"})
	if err != nil {
		t.Fatalf("first plan: %v", err)
	}
	second, err := p.PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02", Mode: "replace"})
	if err != nil {
		t.Fatalf("second plan: %v", err)
	}
	if first.PlanID != second.PlanID {
		t.Fatalf("expected the same plan container, got %s and %s", first.PlanID, second.PlanID)
	}
	plan, err := service.PlanForDate(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if len(plan.Items) != 4 {
		t.Fatalf("expected 4 items after replanning, got %d", len(plan.Items))
	}

	if _, err := p.PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02", Mode: "append"}); err != nil {
		t.Fatalf("append plan: %v", err)
	}
	plan, err = service.PlanForDate(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if len(plan.Items) != 8 {
		t.Fatalf("expected 8 items after append, got %d", len(plan.Items))
	}
}

func TestPlanMyDayErrorsBeforeWriting(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	p := newPlanner(service.NewSQLStore(db))

	if _, err := p.PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02"}); !errors.Is(err, planner.ErrNoGoal) {
		t.Fatalf("expected ErrNoGoal, got %v", err)
	}
	saveGoal(t, db, "me", goal2000)
	if _, err := p.PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02"}); !errors.Is(err, planner.ErrNoFoods) {
		t.Fatalf("expected ErrNoFoods, got %v", err)
	}
	if _, err := p.PlanMyDay(bg(), planner.Request{UserID: "me", Date: "02/03/2026"}); !errors.Is(err, planner.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	plan, err := service.PlanForDate(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if plan != nil {
		t.Fatalf("expected no plan to be created, got %+v", plan)
	}
}

func TestMarkItemDone(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedCatalog(t, db)
	saveGoal(t, db, "me", goal2000)

	res, err := newPlanner(service.NewSQLStore(db)).PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("plan day: %v", err)
	}
	if err := service.MarkItemDone(db, res.Items[0].ID, true); err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if err := service.MarkItemDone(db, "missing", true); err == nil {
		t.Fatalf("expected missing item error")
	}
	plan, err := service.PlanForDate(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}
	if !plan.Items[0].Done || plan.Items[1].Done {
		t.Fatalf("expected only first item done, got %+v", plan.Items)
	}
}
