package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/flowtrack/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "flowtrack.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail")
	}
}

func TestJSONStore_PersistsAcrossLoads(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.AddHabit(sampleHabit("h-1", time.Now())); err != nil {
		t.Fatal(err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := reopened.GetHabit("h-1")
	if err != nil {
		t.Fatalf("GetHabit after reload failed: %v", err)
	}
	if got.Title != "Habit h-1" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestJSONStore_UpdateErrors(t *testing.T) {
	store := newTestJSONStore(t)
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

func TestJSONStore_DeleteCategoryDetachesHabits(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.AddCategory(models.Category{UUID: "c-1", Name: "Health"}); err != nil {
		t.Fatal(err)
	}
	h := sampleHabit("h-1", time.Now())
	h.CategoryUUID = "c-1"
	if err := store.AddHabit(h); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteCategory("c-1"); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetHabit("h-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.CategoryUUID != "" {
		t.Errorf("category uuid = %q, want empty", got.CategoryUUID)
	}
}

func TestJSONStore_DuplicateCategoryName(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.AddCategory(models.Category{UUID: "c-1", Name: "Health"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddCategory(models.Category{UUID: "c-2", Name: "Health"}); err == nil {
		t.Error("expected duplicate category name to be rejected")
	}
}

func TestJSONStore_ReminderHabitsSorted(t *testing.T) {
	store := newTestJSONStore(t)

	early := sampleHabit("early", time.Now())
	early.ReminderTime = "06:00"
	late := sampleHabit("late", time.Now())
	late.ReminderTime = "21:00"
	for _, h := range []models.Habit{late, early} {
		if err := store.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.ReminderHabits()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].UUID != "early" {
		t.Errorf("reminder habits = %+v, want early first", got)
	}
}
