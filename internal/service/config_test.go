package service_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/Rruubeenn23/WebCursor/internal/service"
)

func TestConfigDefaultsAreSeeded(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	days, err := service.TrainingDays(db)
	if err != nil {
		t.Fatalf("training days: %v", err)
	}
	if !reflect.DeepEqual(days, []time.Weekday{time.Monday, time.Wednesday, time.Friday}) {
		t.Fatalf("unexpected default training days: %v", days)
	}
	tol, err := service.AdherenceTolerance(db)
	if err != nil {
		t.Fatalf("adherence tolerance: %v", err)
	}
	if tol != 0.10 {
		t.Fatalf("expected 0.10 tolerance, got %v", tol)
	}
}

func TestSetConfigValidatesKnownKeys(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetConfig(db, service.ConfigTrainingDays, "mon,funday"); err == nil {
		t.Fatalf("expected invalid weekday error")
	}
	if err := service.SetConfig(db, service.ConfigAdherenceTolerance, "1.5"); err == nil {
		t.Fatalf("expected invalid tolerance error")
	}
	if err := service.SetConfig(db, service.ConfigTimezone, "Mars/Olympus"); err == nil {
		t.Fatalf("expected invalid timezone error")
	}
	if err := service.SetConfig(db, "Training_Days", "Tuesday, thu"); err != nil {
		t.Fatalf("set training days: %v", err)
	}
	days, err := service.TrainingDays(db)
	if err != nil {
		t.Fatalf("training days: %v", err)
	}
	if !reflect.DeepEqual(days, []time.Weekday{time.Tuesday, time.Thursday}) {
		t.Fatalf("unexpected training days: %v", days)
	}

	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list config: %v", err)
	}
	if all[service.ConfigTrainingDays] != "Tuesday, thu" {
		t.Fatalf("unexpected config: %v", all)
	}
	if _, ok, err := service.GetConfig(db, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
}

func TestParseWeekdaysAllowsEmptyList(t *testing.T) {
	t.Parallel()
	days, err := service.ParseWeekdays(" , ")
	if err != nil {
		t.Fatalf("parse weekdays: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no days, got %v", days)
	}
}

func TestParseWeekdaysMatchesWholeNames(t *testing.T) {
	t.Parallel()
	days, err := service.ParseWeekdays("MONDAY, wed,Saturday")
	if err != nil {
		t.Fatalf("parse weekdays: %v", err)
	}
	if !reflect.DeepEqual(days, []time.Weekday{time.Monday, time.Wednesday, time.Saturday}) {
		t.Fatalf("unexpected days: %v", days)
	}
	for _, bad := range []string{"month", "sunflower", "frizzle", "tues", "we"} {
		if _, err := service.ParseWeekdays(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
