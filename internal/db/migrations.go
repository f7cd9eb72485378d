package db

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS foods (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  name_norm TEXT NOT NULL UNIQUE,
  kcal REAL NOT NULL CHECK(kcal >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  unit TEXT NOT NULL,
  grams_per_unit REAL NOT NULL CHECK(grams_per_unit > 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profiles (
  user_id TEXT PRIMARY KEY,
  sex TEXT NOT NULL CHECK(sex IN ('male', 'female')),
  age INTEGER NOT NULL CHECK(age > 0),
  height_cm REAL NOT NULL CHECK(height_cm > 0),
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  activity TEXT NOT NULL,
  goal TEXT NOT NULL CHECK(goal IN ('cut', 'maintain', 'bulk')),
  rate_kg_per_week REAL NOT NULL DEFAULT 0,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS goals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id TEXT NOT NULL,
  kcal_target REAL NOT NULL CHECK(kcal_target >= 0),
  protein_g REAL NOT NULL CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL CHECK(fat_g >= 0),
  source TEXT NOT NULL DEFAULT 'manual',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_goals_user_created ON goals(user_id, created_at);

CREATE TABLE IF NOT EXISTS day_plans (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  date TEXT NOT NULL,
  training_day INTEGER NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, date)
);

CREATE TABLE IF NOT EXISTS day_plan_items (
  id TEXT PRIMARY KEY,
  day_plan_id TEXT NOT NULL,
  food_id TEXT NOT NULL,
  qty_units REAL NOT NULL CHECK(qty_units > 0),
  time TEXT NOT NULL,
  done INTEGER NOT NULL DEFAULT 0,
  entry_type TEXT NOT NULL DEFAULT 'food',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(day_plan_id) REFERENCES day_plans(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES foods(id)
);

CREATE INDEX IF NOT EXISTS idx_day_plan_items_plan ON day_plan_items(day_plan_id);

CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 2,
		name:    "checkins",
		sql: `
CREATE TABLE IF NOT EXISTS checkins (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  week_start TEXT NOT NULL,
  weight_kg REAL CHECK(weight_kg > 0),
  waist_cm REAL CHECK(waist_cm > 0),
  sleep_h REAL CHECK(sleep_h >= 0 AND sleep_h <= 24),
  hunger_1_5 INTEGER CHECK(hunger_1_5 BETWEEN 1 AND 5),
  energy_1_5 INTEGER CHECK(energy_1_5 BETWEEN 1 AND 5),
  stress_1_5 INTEGER CHECK(stress_1_5 BETWEEN 1 AND 5),
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_checkins_user_week ON checkins(user_id, week_start);
`,
	},
	{
		version: 3,
		name:    "meal_templates_and_quick_items",
		sql: `
CREATE TABLE IF NOT EXISTS meal_templates (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  name_norm TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, name_norm)
);

CREATE TABLE IF NOT EXISTS meal_template_items (
  id TEXT PRIMARY KEY,
  template_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  food_id TEXT NOT NULL,
  qty_units REAL NOT NULL CHECK(qty_units > 0),
  time_hint TEXT NOT NULL DEFAULT '',
  FOREIGN KEY(template_id) REFERENCES meal_templates(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES foods(id)
);

CREATE INDEX IF NOT EXISTS idx_meal_template_items_template ON meal_template_items(template_id);

ALTER TABLE day_plans ADD COLUMN template_id TEXT REFERENCES meal_templates(id) ON DELETE SET NULL;

CREATE TABLE day_plan_items_v3 (
  id TEXT PRIMARY KEY,
  day_plan_id TEXT NOT NULL,
  food_id TEXT,
  qty_units REAL NOT NULL CHECK(qty_units > 0),
  time TEXT NOT NULL,
  done INTEGER NOT NULL DEFAULT 0,
  entry_type TEXT NOT NULL DEFAULT 'food' CHECK(entry_type IN ('food', 'quick')),
  label TEXT NOT NULL DEFAULT '',
  quick_kcal REAL CHECK(quick_kcal >= 0),
  quick_protein_g REAL CHECK(quick_protein_g >= 0),
  quick_carbs_g REAL CHECK(quick_carbs_g >= 0),
  quick_fat_g REAL CHECK(quick_fat_g >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(day_plan_id) REFERENCES day_plans(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES foods(id),
  CHECK((entry_type = 'food' AND food_id IS NOT NULL) OR (entry_type = 'quick' AND quick_kcal IS NOT NULL))
);

INSERT INTO day_plan_items_v3(id, day_plan_id, food_id, qty_units, time, done, entry_type, created_at)
SELECT id, day_plan_id, food_id, qty_units, time, done, entry_type, created_at FROM day_plan_items;

DROP TABLE day_plan_items;
ALTER TABLE day_plan_items_v3 RENAME TO day_plan_items;
CREATE INDEX IF NOT EXISTS idx_day_plan_items_plan ON day_plan_items(day_plan_id);
`,
	},
}

var defaultConfig = map[string]string{
	"training_days":       "mon,wed,fri",
	"adherence_tolerance": "0.10",
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
		log.WithFields(log.Fields{"version": m.version, "name": m.name}).Debug("migration applied")
	}

	for key, value := range defaultConfig {
		if _, err := db.Exec(`INSERT OR IGNORE INTO app_config(key, value) VALUES(?, ?)`, key, value); err != nil {
			return fmt.Errorf("seed default config %s: %w", key, err)
		}
	}
	return nil
}
