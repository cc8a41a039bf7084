package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManager_CreateAndList(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "flowtrack.json", `{"version":1}`)

	mgr := NewManager(storePath)
	created, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if backups[0].Path != created {
		t.Errorf("listed path = %s, want %s", backups[0].Path, created)
	}

	data, err := os.ReadFile(created)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content = %q", data)
	}
}

func TestManager_CreateMissingStore(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := mgr.Create(); err == nil {
		t.Error("expected Create to fail for missing store")
	}
}

func TestManager_ListEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "flowtrack.json"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("got %d backups, want 0", len(backups))
	}
}

func TestManager_Restore(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "flowtrack.json", `{"version":1}`)

	mgr := NewManager(storePath)
	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	// Mutate the store, then restore the snapshot.
	if err := os.WriteFile(storePath, []byte(`{"version":2}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("restored content = %q", data)
	}

	// The pre-restore safety copy holds the mutated contents.
	safety, err := os.ReadFile(storePath + ".pre-restore")
	if err != nil {
		t.Fatalf("missing pre-restore copy: %v", err)
	}
	if string(safety) != `{"version":2}` {
		t.Errorf("pre-restore content = %q", safety)
	}
}

func TestManager_RestoreMissingBackup(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "flowtrack.json", `{}`)
	mgr := NewManager(storePath)
	if err := mgr.Restore(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected Restore to fail for missing backup")
	}
}

func TestManager_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	storePath := writeStore(t, dir, "flowtrack.json", `{}`)

	mgr := NewManager(storePath)
	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}
	writeStore(t, mgr.BackupDir(), "unrelated.txt", "x")
	writeStore(t, mgr.BackupDir(), "flowtrack-garbage.json", "x")

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("got %d backups, want 1 (foreign files ignored)", len(backups))
	}
}
