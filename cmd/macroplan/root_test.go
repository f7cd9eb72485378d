package macroplan

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rruubeenn23/WebCursor/internal/db"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

type cliEnv struct {
	dbPath     string
	configPath string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	return cliEnv{
		dbPath:     filepath.Join(dir, "macroplan.db"),
		configPath: filepath.Join(dir, "config.toml"),
	}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--db", e.dbPath, "--config", e.configPath, "--user", "me"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func expectContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestInitCommandIdempotent(t *testing.T) {
	env := newCLIEnv(t)
	for i := 0; i < 2; i++ {
		out := env.mustRun(t, "init")
		expectContains(t, out, "Initialized macroplan database at "+env.dbPath)
	}
}

func TestMetricCommands(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "bmi", "--weight", "70", "--height", "175")
	expectContains(t, out, "BMI: 22.9 (Normal)")

	out = env.mustRun(t, "bmr", "--sex", "male", "--age", "30", "--weight", "70", "--height", "175", "--activity", "moderate")
	expectContains(t, out, "BMR: 1649 kcal", "TDEE (moderate): 2556 kcal")

	if _, err := env.run(t, "bmr", "--sex", "other", "--age", "30", "--weight", "70", "--height", "175", "--activity", "moderate"); err == nil {
		t.Fatalf("expected invalid sex to fail")
	}
}

func TestProfileAndComputedGoal(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t, "goal", "compute", "--dry-run=false"); err == nil || !strings.Contains(err.Error(), "no profile") {
		t.Fatalf("expected missing profile error, got %v", err)
	}
	env.mustRun(t, "profile", "set", "--sex", "male", "--age", "30", "--height", "175", "--weight", "70",
		"--activity", "moderate", "--goal", "maintain", "--rate", "0")
	out := env.mustRun(t, "goal", "compute", "--dry-run=false")
	expectContains(t, out, "BMR: 1649 kcal", "Target: 2556 kcal", "Protein: 140g", "Carbs: 373g", "Fat: 56g", "Saved as current goal")

	out = env.mustRun(t, "goal", "current")
	expectContains(t, out, "Source: computed", "Calories: 2556")

	out = env.mustRun(t, "bmi")
	expectContains(t, out, "BMI: 22.9")
}

func TestPlanDayFlow(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "init")

	for _, args := range [][]string{
		{"--name", "Chicken breast", "--kcal", "165", "--protein", "31", "--carbs", "0", "--fat", "3.6"},
		{"--name", "Rice", "--kcal", "130", "--protein", "2.7", "--carbs", "28", "--fat", "0.3"},
		{"--name", "Olive oil", "--kcal", "884", "--protein", "0", "--carbs", "0", "--fat", "100"},
	} {
		env.mustRun(t, append([]string{"food", "add", "--unit", "100g", "--grams-per-unit", "100"}, args...)...)
	}

	if _, err := env.run(t, "plan", "day", "--date", "2026-03-02", "--mode", "replace", "--training", "no", "--json=false"); err == nil || !strings.Contains(err.Error(), "no macro goal") {
		t.Fatalf("expected missing goal error, got %v", err)
	}
	env.mustRun(t, "goal", "set", "--kcal", "2000", "--protein", "150", "--carbs", "200", "--fat", "70")

	for i := 0; i < 2; i++ {
		out := env.mustRun(t, "plan", "day", "--date", "2026-03-02", "--mode", "replace", "--training", "no", "--json=false")
		expectContains(t, out,
			"08:00\tChicken breast\t3\t100g\t495",
			"13:30\tRice\t5.5\t100g\t715",
			"17:30\tOlive oil\t0.5\t100g\t442",
			"Chicken breast\t6\t100g",
		)
	}
	out := env.mustRun(t, "plan", "show", "--date", "2026-03-02", "--json=false")
	if n := strings.Count(out, "\tno\n"); n != 4 {
		t.Fatalf("expected 4 pending items after replanning, got %d:\n%s", n, out)
	}

	if _, err := env.run(t, "plan", "day", "--date", "2026-03-02", "--mode", "merge", "--training", "no", "--json=false"); err == nil {
		t.Fatalf("expected invalid mode to fail")
	}

	sqldb, err := db.Open(env.dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	plan, err := service.PlanForDate(sqldb, "me", "2026-03-02")
	sqldb.Close()
	if err != nil || plan == nil {
		t.Fatalf("load plan: %v", err)
	}
	env.mustRun(t, "plan", "done", plan.Items[0].ID, "--undo=false")

	out = env.mustRun(t, "today", "--date", "2026-03-02", "--json=false")
	expectContains(t, out, "Meals done: 1/4", "Eaten: 495 kcal", "Remaining: 1505 kcal")

	if _, err := env.run(t, "food", "delete", "Rice"); err == nil {
		t.Fatalf("expected planned food delete to fail")
	}
}

func TestWeekReportAndCheckins(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "init")

	out := env.mustRun(t, "plan", "week", "--start", "2026-03-02")
	expectContains(t, out, "2026-03-02\tMon\tTraining", "2026-03-03\tTue\tRest", "2026-03-08\tSun\tRest")

	env.mustRun(t, "config", "set", "--training-days", "tue,thu")
	out = env.mustRun(t, "config", "get")
	expectContains(t, out, "training_days\ttue,thu")

	out = env.mustRun(t, "checkin", "add", "--week", "2026-03-04", "--weight", "80", "--sleep", "7", "--notes", "solid week")
	expectContains(t, out, "for week 2026-03-02")
	out = env.mustRun(t, "checkin", "list", "--limit", "5")
	expectContains(t, out, "2026-03-02\t80.0\t-\t7.0")

	out = env.mustRun(t, "report", "week", "--week", "2026-03-05", "--json=false")
	expectContains(t, out, "Week: 2026-03-02 to 2026-03-08 (tolerance 10%)", "Within goal: 0/0 evaluated day(s), 7 skipped", "Check-in weight: 80.0 kg")
}

func TestTemplatesAndLoggedEntries(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "init")
	for _, args := range [][]string{
		{"--name", "Chicken breast", "--kcal", "165", "--protein", "31", "--carbs", "0", "--fat", "3.6"},
		{"--name", "Rice", "--kcal", "130", "--protein", "2.7", "--carbs", "28", "--fat", "0.3"},
	} {
		env.mustRun(t, append([]string{"food", "add", "--unit", "100g", "--grams-per-unit", "100"}, args...)...)
	}
	env.mustRun(t, "goal", "set", "--kcal", "2000", "--protein", "150", "--carbs", "200", "--fat", "70")

	out := env.mustRun(t, "template", "add", "--name", "Lean day", "--item", "Chicken breast:2@08:00", "--item", "Rice:3@13:00")
	expectContains(t, out, "Saved template Lean day")
	out = env.mustRun(t, "template", "list")
	expectContains(t, out, "Lean day\t2\t720")

	out = env.mustRun(t, "plan", "apply-template", "lean day", "--date", "2026-03-02", "--mode", "replace", "--training", "no", "--json=false")
	expectContains(t, out,
		"target 2000 kcal, scale x2.78",
		"08:00\tChicken breast\t5.56\t100g\t917",
		"13:00\tRice\t8.33\t100g\t1083",
	)

	env.mustRun(t, "plan", "add", "--food", "Rice", "--qty", "1", "--time", "20:00", "--date", "2026-03-02", "--pending=false")
	env.mustRun(t, "plan", "quick", "--label", "Protein bar", "--kcal", "250", "--protein", "20", "--carbs", "25", "--fat", "8",
		"--time", "16:00", "--date", "2026-03-02", "--pending=false")
	if _, err := env.run(t, "plan", "add", "--food", "Rice", "--qty", "1", "--time", "8pm", "--date", "2026-03-02", "--pending=false"); err == nil {
		t.Fatalf("expected invalid time to fail")
	}

	out = env.mustRun(t, "today", "--date", "2026-03-02", "--json=false")
	expectContains(t, out, "Meals done: 2/4", "Eaten: 380 kcal")

	out = env.mustRun(t, "plan", "show", "--date", "2026-03-02", "--json")
	expectContains(t, out, `"training_day": false`, `"template_id": "`, `"qty_units": 5.56`, `"entry_type": "quick"`, `"name": "Protein bar"`)

	env.mustRun(t, "template", "delete", "Lean day")
	out = env.mustRun(t, "template", "list")
	if strings.Contains(out, "Lean day") {
		t.Fatalf("expected template to be deleted:\n%s", out)
	}
}
