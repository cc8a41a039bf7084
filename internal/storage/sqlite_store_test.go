package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/flowtrack/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "flowtrack.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleHabit(uuid string, createdAt time.Time) models.Habit {
	return models.Habit{
		UUID:         uuid,
		Title:        "Habit " + uuid,
		ActiveDays:   models.EveryDay(),
		ReminderTime: "08:00",
		Active:       true,
		CreatedAt:    createdAt,
	}
}

func TestSQLiteStore_HabitRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	target := 8
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	in := models.Habit{
		UUID:         "h-1",
		Title:        "Hydrate",
		Description:  "eight glasses",
		TargetValue:  &target,
		TargetUnit:   "glasses",
		ActiveDays:   models.NewActiveDays(1, 3, 5),
		ReminderTime: "08:00",
		Active:       true,
		DueDate:      "2026-01-01",
		CreatedAt:    created,
	}
	if err := store.AddHabit(in); err != nil {
		t.Fatalf("AddHabit failed: %v", err)
	}

	got, err := store.GetHabit("h-1")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if got.Title != in.Title || got.Description != in.Description {
		t.Errorf("text fields mismatch: %+v", got)
	}
	if got.TargetValue == nil || *got.TargetValue != target || got.TargetUnit != "glasses" {
		t.Errorf("target mismatch: %+v", got)
	}
	if !got.ActiveDays.Equal(in.ActiveDays) {
		t.Errorf("active days = %v, want %v", got.ActiveDays, in.ActiveDays)
	}
	if got.ReminderTime != "08:00" || got.DueDate != "2026-01-01" {
		t.Errorf("schedule fields mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, created)
	}
}

func TestSQLiteStore_GetHabitNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.GetHabit("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_UpdateHabitPartial(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddHabit(sampleHabit("h-1", time.Now())); err != nil {
		t.Fatal(err)
	}

	title := "Renamed"
	paused := false
	err := store.UpdateHabit("h-1", models.HabitUpdate{Title: &title, Active: &paused})
	if err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}

	got, err := store.GetHabit("h-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", got.Title)
	}
	if got.Active {
		t.Error("habit still active after pause update")
	}
	// Untouched fields survive.
	if got.ReminderTime != "08:00" {
		t.Errorf("reminder time changed to %q", got.ReminderTime)
	}
}

func TestSQLiteStore_UpdateHabitErrors(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddHabit(sampleHabit("h-1", time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateHabit("h-1", models.HabitUpdate{}); !errors.Is(err, ErrNoFields) {
		t.Errorf("empty update err = %v, want ErrNoFields", err)
	}

	title := "x"
	if err := store.UpdateHabit("missing", models.HabitUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown uuid err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_DeleteHabit(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.AddHabit(sampleHabit("h-1", time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteHabit("h-1"); err != nil {
		t.Fatalf("DeleteHabit failed: %v", err)
	}
	if _, err := store.GetHabit("h-1"); !errors.Is(err, ErrNotFound) {
		t.Error("habit still present after delete")
	}
	if err := store.DeleteHabit("h-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_DeleteCategoryDetachesHabits(t *testing.T) {
	store := newTestSQLiteStore(t)

	cat := models.Category{UUID: "c-1", Name: "Health", Icon: "heart"}
	if err := store.AddCategory(cat); err != nil {
		t.Fatal(err)
	}
	h := sampleHabit("h-1", time.Now())
	h.CategoryUUID = "c-1"
	if err := store.AddHabit(h); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteCategory("c-1"); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	got, err := store.GetHabit("h-1")
	if err != nil {
		t.Fatalf("habit deleted along with its category: %v", err)
	}
	if got.CategoryUUID != "" {
		t.Errorf("category uuid = %q, want empty after category deletion", got.CategoryUUID)
	}
}

func TestSQLiteStore_ActiveHabitsWithCategoryCap(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.AddCategory(models.Category{UUID: "c-1", Name: "Health", Icon: "heart"}); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		h := sampleHabit(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		h.CategoryUUID = "c-1"
		if err := store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}
	loose := sampleHabit("loose", base)
	if err := store.AddHabit(loose); err != nil {
		t.Fatal(err)
	}

	got, err := store.ActiveHabitsWithCategory()
	if err != nil {
		t.Fatalf("ActiveHabitsWithCategory failed: %v", err)
	}

	perCategory := map[string]int{}
	for _, h := range got {
		key := h.CategoryUUID
		perCategory[key]++
		if h.CategoryUUID == "c-1" && (h.Category == nil || h.Category.Name != "Health") {
			t.Errorf("missing joined category on %s", h.UUID)
		}
	}
	if perCategory["c-1"] != 3 {
		t.Errorf("categorized habits = %d, want 3 (capped)", perCategory["c-1"])
	}
	if perCategory[""] != 1 {
		t.Errorf("uncategorized habits = %d, want 1", perCategory[""])
	}
}

func TestSQLiteStore_InactiveHabitsLimit(t *testing.T) {
	store := newTestSQLiteStore(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		h := sampleHabit(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		h.Active = false
		if err := store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.InactiveHabits(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d inactive habits, want 3", len(got))
	}
	// Newest first.
	if got[0].UUID != "e" {
		t.Errorf("first inactive habit = %s, want e", got[0].UUID)
	}
}

func TestSQLiteStore_ReminderHabitsFilter(t *testing.T) {
	store := newTestSQLiteStore(t)

	withReminder := sampleHabit("h-1", time.Now())
	silent := sampleHabit("h-2", time.Now())
	silent.ReminderTime = ""
	paused := sampleHabit("h-3", time.Now())
	paused.Active = false
	for _, h := range []models.Habit{withReminder, silent, paused} {
		if err := store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ReminderHabits()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].UUID != "h-1" {
		t.Errorf("reminder habits = %+v, want only h-1", got)
	}
}

func TestSQLiteStore_CategoryStats(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.AddCategory(models.Category{UUID: "c-1", Name: "Health"}); err != nil {
		t.Fatal(err)
	}

	active := sampleHabit("h-1", time.Now())
	active.CategoryUUID = "c-1"
	paused := sampleHabit("h-2", time.Now())
	paused.CategoryUUID = "c-1"
	paused.Active = false
	for _, h := range []models.Habit{active, paused} {
		if err := store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.GetCategoryStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d stats rows, want 1", len(stats))
	}
	s := stats[0]
	if s.TotalHabits != 2 || s.ActiveHabits != 1 || s.InactiveHabits != 1 {
		t.Errorf("stats = %+v, want 2 total / 1 active / 1 inactive", s)
	}
	if s.Icon != models.DefaultCategoryIcon {
		t.Errorf("icon = %q, want default %q", s.Icon, models.DefaultCategoryIcon)
	}
}
