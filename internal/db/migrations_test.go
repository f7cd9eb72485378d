package db_test

import (
	"path/filepath"
	"testing"

	"github.com/Rruubeenn23/WebCursor/internal/db"
)

func TestApplyMigrationsIdempotentAndSeedsDefaults(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "macroplan.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 3 {
		t.Fatalf("expected 3 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"foods", "profiles", "goals", "day_plans", "day_plan_items", "app_config", "checkins", "meal_templates", "meal_template_items"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var trainingDays string
	if err := sqldb.QueryRow(`SELECT value FROM app_config WHERE key = 'training_days'`).Scan(&trainingDays); err != nil {
		t.Fatalf("read seeded config: %v", err)
	}
	if trainingDays != "mon,wed,fri" {
		t.Fatalf("expected seeded training days, got %q", trainingDays)
	}
}

func TestDayPlansAreUniquePerUserAndDate(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "macroplan.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if _, err := sqldb.Exec(`INSERT INTO day_plans(id, user_id, date) VALUES('a', 'u1', '2026-03-02')`); err != nil {
		t.Fatalf("insert first plan: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO day_plans(id, user_id, date) VALUES('b', 'u1', '2026-03-02')`); err == nil {
		t.Fatalf("expected duplicate (user, date) to be rejected")
	}
	if _, err := sqldb.Exec(`INSERT INTO day_plans(id, user_id, date) VALUES('c', 'u2', '2026-03-02')`); err != nil {
		t.Fatalf("insert plan for another user: %v", err)
	}
}

func TestPlanItemsRequireFoodOrQuickMacros(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "macroplan.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := sqldb.Exec(`INSERT INTO day_plans(id, user_id, date) VALUES('p', 'u1', '2026-03-02')`); err != nil {
		t.Fatalf("insert plan: %v", err)
	}

	if _, err := sqldb.Exec(`INSERT INTO day_plan_items(id, day_plan_id, qty_units, time, entry_type) VALUES('i1', 'p', 1, '08:00', 'food')`); err == nil {
		t.Fatalf("expected food item without food_id to be rejected")
	}
	if _, err := sqldb.Exec(`INSERT INTO day_plan_items(id, day_plan_id, qty_units, time, entry_type) VALUES('i2', 'p', 1, '08:00', 'quick')`); err == nil {
		t.Fatalf("expected quick item without kcal to be rejected")
	}
	if _, err := sqldb.Exec(`INSERT INTO day_plan_items(id, day_plan_id, qty_units, time, entry_type, quick_kcal) VALUES('i3', 'p', 1, '08:00', 'quick', 250)`); err != nil {
		t.Fatalf("insert quick item: %v", err)
	}
}
