package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/flowtrack/internal/models"
)

// JSONStore is a flat-file Provider for environments where the sqlite
// backend is unwanted, e.g. tests and portable setups. Selected by giving
// the config path a .json extension.
type JSONStore struct {
	path  string
	store *jsonStore
}

type jsonStore struct {
	Version    int                        `json:"version"`
	Habits     map[string]models.Habit    `json:"habits"`
	Categories map[string]models.Category `json:"categories"`
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &jsonStore{
		Version:    1,
		Habits:     make(map[string]models.Habit),
		Categories: make(map[string]models.Category),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.store != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'flowtrack init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &jsonStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
	if s.store.Categories == nil {
		s.store.Categories = make(map[string]models.Category)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) AddHabit(h models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.store.Habits[h.UUID] = h
	return s.save()
}

func (s *JSONStore) GetHabit(uuid string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}
	h, ok := s.store.Habits[uuid]
	if !ok {
		return models.Habit{}, fmt.Errorf("habit %s: %w", uuid, ErrNotFound)
	}
	return h, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, h := range s.store.Habits {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *JSONStore) UpdateHabit(uuid string, u models.HabitUpdate) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if u.Empty() {
		return ErrNoFields
	}
	h, ok := s.store.Habits[uuid]
	if !ok {
		return fmt.Errorf("habit %s: %w", uuid, ErrNotFound)
	}

	if u.Title != nil {
		h.Title = *u.Title
	}
	if u.Description != nil {
		h.Description = *u.Description
	}
	if u.TargetValue != nil {
		v := *u.TargetValue
		h.TargetValue = &v
	}
	if u.TargetUnit != nil {
		h.TargetUnit = *u.TargetUnit
	}
	if u.ActiveDays != nil {
		h.ActiveDays = models.NewActiveDays(*u.ActiveDays...)
	}
	if u.ReminderTime != nil {
		h.ReminderTime = *u.ReminderTime
	}
	if u.Active != nil {
		h.Active = *u.Active
	}
	if u.DueDate != nil {
		h.DueDate = *u.DueDate
	}
	if u.CategoryUUID != nil {
		h.CategoryUUID = *u.CategoryUUID
	}

	s.store.Habits[uuid] = h
	return s.save()
}

func (s *JSONStore) DeleteHabit(uuid string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Habits[uuid]; !ok {
		return fmt.Errorf("habit %s: %w", uuid, ErrNotFound)
	}
	delete(s.store.Habits, uuid)
	return s.save()
}

func (s *JSONStore) AddCategory(c models.Category) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if c.Icon == "" {
		c.Icon = models.DefaultCategoryIcon
	}
	for _, existing := range s.store.Categories {
		if existing.Name == c.Name {
			return fmt.Errorf("category %q already exists", c.Name)
		}
	}
	s.store.Categories[c.UUID] = c
	return s.save()
}

func (s *JSONStore) GetAllCategories() ([]models.Category, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(s.store.Categories))
	for _, c := range s.store.Categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// DeleteCategory removes a category and detaches its habits, mirroring the
// sqlite backend's ON DELETE SET NULL.
func (s *JSONStore) DeleteCategory(uuid string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.store.Categories[uuid]; !ok {
		return fmt.Errorf("category %s: %w", uuid, ErrNotFound)
	}
	delete(s.store.Categories, uuid)
	for id, h := range s.store.Habits {
		if h.CategoryUUID == uuid {
			h.CategoryUUID = ""
			s.store.Habits[id] = h
		}
	}
	return s.save()
}

func (s *JSONStore) GetCategoryStats() ([]models.CategoryStats, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	stats := make([]models.CategoryStats, 0, len(s.store.Categories))
	for _, c := range s.store.Categories {
		cs := models.CategoryStats{UUID: c.UUID, Name: c.Name, Icon: c.Icon}
		for _, h := range s.store.Habits {
			if h.CategoryUUID != c.UUID {
				continue
			}
			cs.TotalHabits++
			if h.Active {
				cs.ActiveHabits++
			} else {
				cs.InactiveHabits++
			}
		}
		stats = append(stats, cs)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].TotalHabits > stats[j].TotalHabits
	})
	return stats, nil
}

// ActiveHabitsWithCategory returns all active habits joined with category
// metadata. Unlike the sqlite backend it applies no per-category cap; the
// schedule package re-groups and caps either way.
func (s *JSONStore) ActiveHabitsWithCategory() ([]models.HabitWithCategory, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var habits []models.HabitWithCategory
	for _, h := range s.store.Habits {
		if !h.Active {
			continue
		}
		habits = append(habits, s.join(h))
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *JSONStore) InactiveHabits(limit int) ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var habits []models.Habit
	for _, h := range s.store.Habits {
		if !h.Active {
			habits = append(habits, h)
		}
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})
	if limit >= 0 && len(habits) > limit {
		habits = habits[:limit]
	}
	return habits, nil
}

func (s *JSONStore) ReminderHabits() ([]models.HabitWithCategory, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var habits []models.HabitWithCategory
	for _, h := range s.store.Habits {
		if !h.Active || h.ReminderTime == "" {
			continue
		}
		habits = append(habits, s.join(h))
	}
	sort.Slice(habits, func(i, j int) bool {
		return habits[i].ReminderTime < habits[j].ReminderTime
	})
	return habits, nil
}

func (s *JSONStore) join(h models.Habit) models.HabitWithCategory {
	joined := models.HabitWithCategory{Habit: h}
	if h.CategoryUUID != "" {
		if c, ok := s.store.Categories[h.CategoryUUID]; ok {
			joined.Category = &c
		}
	}
	return joined
}
