package macroplan

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Rruubeenn23/WebCursor/internal/app"
	"github.com/Rruubeenn23/WebCursor/internal/db"
	"github.com/Rruubeenn23/WebCursor/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}

// resolveDate returns value, or today when empty. The database timezone
// setting wins over the config file and APP_DEFAULT_TZ.
func resolveDate(sqldb *sql.DB, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
		}
		return value, nil
	}
	c := app.Config{Timezone: app.DefaultTimezone}
	if cfg != nil {
		c = *cfg
	}
	tz, ok, err := service.GetConfig(sqldb, service.ConfigTimezone)
	if err != nil {
		return "", err
	}
	if ok {
		c.Timezone = tz
	}
	return c.Today(time.Now())
}

// weekStartOf returns the Monday on or before date.
func weekStartOf(date string) (string, error) {
	t, err := parseDay(date)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format("2006-01-02"), nil
}

func printJSON(w io.Writer, what string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s json: %w", what, err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func parseDay(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}
