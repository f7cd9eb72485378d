package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Rruubeenn23/WebCursor/internal/db"
	"github.com/Rruubeenn23/WebCursor/internal/nutrition"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macroplan.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

// seedCatalog adds chicken, rice and olive oil and returns their ids.
func seedCatalog(t *testing.T, sqldb *sql.DB) map[string]string {
	t.Helper()
	foods := []service.CreateFoodInput{
		{Name: "Chicken breast", Kcal: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6},
		{Name: "Rice", Kcal: 130, ProteinG: 2.7, CarbsG: 28, FatG: 0.3},
		{Name: "Olive oil", Kcal: 884, ProteinG: 0, CarbsG: 0, FatG: 100},
	}
	ids := map[string]string{}
	for _, f := range foods {
		id, err := service.CreateFood(sqldb, f)
		if err != nil {
			t.Fatalf("create food %s: %v", f.Name, err)
		}
		ids[f.Name] = id
	}
	return ids
}

func saveGoal(t *testing.T, sqldb *sql.DB, user string, g nutrition.MacroGoals) {
	t.Helper()
	if _, err := service.SaveGoal(sqldb, user, g, service.GoalSourceManual); err != nil {
		t.Fatalf("save goal: %v", err)
	}
}
