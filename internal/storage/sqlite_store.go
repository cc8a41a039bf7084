package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/flowtrack/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS category (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uuid TEXT UNIQUE NOT NULL,
	name TEXT NOT NULL UNIQUE,
	icon TEXT NOT NULL DEFAULT 'circle'
);

CREATE TABLE IF NOT EXISTS habit (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	uuid TEXT UNIQUE NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	target_value INTEGER,
	target_unit TEXT,
	active_days TEXT DEFAULT '[1,2,3,4,5,6,7]',
	reminder_time TEXT,
	is_active INTEGER DEFAULT 1,
	due_date TEXT,
	created_at TEXT NOT NULL,
	category_uuid TEXT REFERENCES category(uuid) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_habit_category ON habit(category_uuid);
CREATE INDEX IF NOT EXISTS idx_habit_active ON habit(is_active);
CREATE INDEX IF NOT EXISTS idx_habit_due_date ON habit(due_date);
CREATE INDEX IF NOT EXISTS idx_category_uuid ON category(uuid);
CREATE INDEX IF NOT EXISTS idx_habit_uuid ON habit(uuid);

CREATE VIEW IF NOT EXISTS category_stats AS
SELECT
	c.uuid,
	c.name,
	c.icon,
	COUNT(h.uuid) AS total_habits,
	SUM(CASE WHEN h.is_active = 1 THEN 1 ELSE 0 END) AS active_habits,
	SUM(CASE WHEN h.is_active = 0 THEN 1 ELSE 0 END) AS inactive_habits
FROM category c
LEFT JOIN habit h ON c.uuid = h.category_uuid
GROUP BY c.uuid, c.name, c.icon
ORDER BY total_habits DESC;
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'flowtrack init' first")
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	// The pragma goes in the DSN so every pooled connection enforces
	// ON DELETE SET NULL on category_uuid.
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

const habitColumns = `uuid, title, description, target_value, target_unit,
	active_days, reminder_time, is_active, due_date, created_at, category_uuid`

func (s *SQLiteStore) AddHabit(h models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habit (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.UUID, h.Title, nullString(h.Description), nullInt(h.TargetValue),
		nullString(h.TargetUnit), h.ActiveDays.Serialize(),
		nullString(h.ReminderTime), boolToInt(h.Active), nullString(h.DueDate),
		h.CreatedAt.Format(time.RFC3339), nullString(h.CategoryUUID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetHabit(uuid string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habit WHERE uuid = ?`, uuid)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit %s: %w", uuid, ErrNotFound)
	}
	return h, err
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habit ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(uuid string, u models.HabitUpdate) error {
	var setFields []string
	var params []any

	set := func(field string, v any) {
		setFields = append(setFields, field+" = ?")
		params = append(params, v)
	}

	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Description != nil {
		set("description", nullString(*u.Description))
	}
	if u.TargetValue != nil {
		set("target_value", *u.TargetValue)
	}
	if u.TargetUnit != nil {
		set("target_unit", nullString(*u.TargetUnit))
	}
	if u.ActiveDays != nil {
		set("active_days", u.ActiveDays.Serialize())
	}
	if u.ReminderTime != nil {
		set("reminder_time", nullString(*u.ReminderTime))
	}
	if u.Active != nil {
		set("is_active", boolToInt(*u.Active))
	}
	if u.DueDate != nil {
		set("due_date", nullString(*u.DueDate))
	}
	if u.CategoryUUID != nil {
		set("category_uuid", nullString(*u.CategoryUUID))
	}

	if len(setFields) == 0 {
		return ErrNoFields
	}

	query := "UPDATE habit SET " + strings.Join(setFields, ", ") + " WHERE uuid = ?"
	params = append(params, uuid)

	res, err := s.db.Exec(query, params...)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", uuid, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteHabit(uuid string) error {
	res, err := s.db.Exec("DELETE FROM habit WHERE uuid = ?", uuid)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", uuid, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) AddCategory(c models.Category) error {
	icon := c.Icon
	if icon == "" {
		icon = models.DefaultCategoryIcon
	}
	_, err := s.db.Exec(
		"INSERT INTO category (uuid, name, icon) VALUES (?, ?, ?)",
		c.UUID, c.Name, icon,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAllCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT uuid, name, icon FROM category ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.UUID, &c.Name, &c.Icon); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) DeleteCategory(uuid string) error {
	res, err := s.db.Exec("DELETE FROM category WHERE uuid = ?", uuid)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("category %s: %w", uuid, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetCategoryStats() ([]models.CategoryStats, error) {
	rows, err := s.db.Query(`
		SELECT uuid, name, icon, total_habits, active_habits, inactive_habits
		FROM category_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.CategoryStats
	for rows.Next() {
		var cs models.CategoryStats
		var active, inactive sql.NullInt64
		if err := rows.Scan(&cs.UUID, &cs.Name, &cs.Icon, &cs.TotalHabits, &active, &inactive); err != nil {
			return nil, err
		}
		cs.ActiveHabits = int(active.Int64)
		cs.InactiveHabits = int(inactive.Int64)
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

// ActiveHabitsWithCategory returns the most recent active habits, at most
// three per category, ordered for the dashboard. The window-function cap is
// a query optimization; callers re-group defensively.
func (s *SQLiteStore) ActiveHabitsWithCategory() ([]models.HabitWithCategory, error) {
	rows, err := s.db.Query(`
		WITH ranked AS (
			SELECT h.uuid, h.title, h.description, h.target_value, h.target_unit,
				h.active_days, h.reminder_time, h.is_active, h.due_date,
				h.created_at, h.category_uuid,
				c.name AS category_name, c.icon AS category_icon,
				ROW_NUMBER() OVER (
					PARTITION BY h.category_uuid ORDER BY h.created_at DESC
				) AS rn
			FROM habit h
			LEFT JOIN category c ON h.category_uuid = c.uuid
			WHERE h.is_active = 1
		)
		SELECT uuid, title, description, target_value, target_unit, active_days,
			reminder_time, is_active, due_date, created_at, category_uuid,
			category_name, category_icon
		FROM ranked WHERE rn <= 3
		ORDER BY category_name ASC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJoined(rows)
}

func (s *SQLiteStore) InactiveHabits(limit int) ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT `+habitColumns+` FROM habit
		WHERE is_active = 0
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// ReminderHabits returns active habits with a reminder time set, joined with
// category metadata. Bucketing and ordering happen in the schedule package.
func (s *SQLiteStore) ReminderHabits() ([]models.HabitWithCategory, error) {
	rows, err := s.db.Query(`
		SELECT h.uuid, h.title, h.description, h.target_value, h.target_unit,
			h.active_days, h.reminder_time, h.is_active, h.due_date,
			h.created_at, h.category_uuid,
			c.name AS category_name, c.icon AS category_icon
		FROM habit h
		LEFT JOIN category c ON h.category_uuid = c.uuid
		WHERE h.is_active = 1 AND h.reminder_time IS NOT NULL
		ORDER BY h.reminder_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJoined(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var description, targetUnit, reminderTime, dueDate, categoryUUID sql.NullString
	var targetValue sql.NullInt64
	var activeDays, createdAt string
	var active int

	err := row.Scan(
		&h.UUID, &h.Title, &description, &targetValue, &targetUnit,
		&activeDays, &reminderTime, &active, &dueDate, &createdAt, &categoryUUID,
	)
	if err != nil {
		return models.Habit{}, err
	}

	h.Description = description.String
	if targetValue.Valid {
		v := int(targetValue.Int64)
		h.TargetValue = &v
	}
	h.TargetUnit = targetUnit.String
	h.ActiveDays = models.ParseActiveDays(activeDays)
	h.ReminderTime = reminderTime.String
	h.Active = active != 0
	h.DueDate = dueDate.String
	h.CategoryUUID = categoryUUID.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		h.CreatedAt = t
	}
	return h, nil
}

func collectJoined(rows *sql.Rows) ([]models.HabitWithCategory, error) {
	var habits []models.HabitWithCategory
	for rows.Next() {
		var h models.HabitWithCategory
		var description, targetUnit, reminderTime, dueDate, categoryUUID sql.NullString
		var categoryName, categoryIcon sql.NullString
		var targetValue sql.NullInt64
		var activeDays, createdAt string
		var active int

		err := rows.Scan(
			&h.UUID, &h.Title, &description, &targetValue, &targetUnit,
			&activeDays, &reminderTime, &active, &dueDate, &createdAt,
			&categoryUUID, &categoryName, &categoryIcon,
		)
		if err != nil {
			return nil, err
		}

		h.Description = description.String
		if targetValue.Valid {
			v := int(targetValue.Int64)
			h.TargetValue = &v
		}
		h.TargetUnit = targetUnit.String
		h.ActiveDays = models.ParseActiveDays(activeDays)
		h.ReminderTime = reminderTime.String
		h.Active = active != 0
		h.DueDate = dueDate.String
		h.CategoryUUID = categoryUUID.String
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			h.CreatedAt = t
		}
		if categoryUUID.Valid && categoryName.Valid {
			h.Category = &models.Category{
				UUID: categoryUUID.String,
				Name: categoryName.String,
				Icon: categoryIcon.String,
			}
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

