package service_test

import (
	"math"
	"testing"

	"github.com/Rruubeenn23/WebCursor/internal/planner"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

func TestDayStatusCountsDoneItems(t *testing.T) {
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

	status, err := service.DayStatus(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if !status.HasPlan || !status.HasGoal || status.ItemsDone != 1 || status.ItemsTotal != 4 {
		t.Fatalf("unexpected status header: %+v", status)
	}
	if status.Consumed.Kcal != 495 || status.Consumed.Protein != 93 || status.Consumed.Fat != 10.8 {
		t.Fatalf("unexpected consumed: %+v", status.Consumed)
	}
	// rest day: fat goes up 5%
	if status.Goal.Fat != 74 || status.Goal.Carbs != 200 || status.BaseGoal.Fat != 70 {
		t.Fatalf("unexpected adjusted goal: %+v", status.Goal)
	}
	if status.Remaining.Kcal != 1505 || status.Remaining.Protein != 57 || math.Abs(status.Remaining.Fat-63.2) > 1e-9 {
		t.Fatalf("unexpected remaining: %+v", status.Remaining)
	}
	if math.Abs(status.Progress.Kcal-24.75) > 1e-9 || status.Progress.Carbs != 0 {
		t.Fatalf("unexpected progress: %+v", status.Progress)
	}
	if status.Planned.Kcal != 495+715+442+495 {
		t.Fatalf("unexpected planned kcal: %v", status.Planned.Kcal)
	}
}

func TestDayStatusTrainingDayAdjustsCarbs(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()
	seedCatalog(t, db)
	saveGoal(t, db, "me", goal2000)

	if _, err := newPlanner(service.NewSQLStore(db)).PlanMyDay(bg(), planner.Request{UserID: "me", Date: "2026-03-02", TrainingDay: true}); err != nil {
		t.Fatalf("plan day: %v", err)
	}
	status, err := service.DayStatus(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if !status.TrainingDay || status.Goal.Carbs != 230 || status.Goal.Fat != 63 || status.Goal.Kcal != 2000 {
		t.Fatalf("unexpected training goal: %+v", status.Goal)
	}
	if status.Progress.Kcal != 0 || status.Remaining != status.Goal {
		t.Fatalf("expected nothing consumed, got %+v", status)
	}
}

func TestDayStatusWithoutPlanOrGoal(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	status, err := service.DayStatus(db, "me", "2026-03-02")
	if err != nil {
		t.Fatalf("day status: %v", err)
	}
	if status.HasPlan || status.HasGoal || status.ItemsTotal != 0 {
		t.Fatalf("expected empty status, got %+v", status)
	}
	if _, err := service.DayStatus(db, "me", "2026-13-40"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}
