// Package backup manages timestamped copies of the flowtrack store file.
package backup

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxBackups is the number of backups kept after rotation.
	MaxBackups = 14
	// BackupDirName is the directory created next to the store file.
	BackupDirName = "backups"
	// BackupFilePrefix prefixes every backup filename.
	BackupFilePrefix = "flowtrack-"
)

const timestampLayout = "20060102-150405"

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, rotates, and restores backups for a single store
// file. It works for both the sqlite and json backends; sqlite stores get a
// consistent copy via VACUUM INTO when possible.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

func NewManager(storePath string) *Manager {
	suffix := filepath.Ext(storePath)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		suffix:    suffix,
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create writes a new backup and rotates old ones. Returns the backup path.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	name := BackupFilePrefix + time.Now().Format(timestampLayout) + m.suffix
	dest := filepath.Join(m.backupDir, name)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s",
			BackupFilePrefix, time.Now().Format(timestampLayout), counter, m.suffix))
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
	}

	if err := m.copyStore(dest); err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}

	if err := m.rotate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}
	return dest, nil
}

// List returns available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix)
		// Drop the uniqueness counter if present.
		if parts := strings.Split(stamp, "-"); len(parts) == 3 {
			stamp = parts[0] + "-" + parts[1]
		}
		ts, err := time.Parse(timestampLayout, stamp)
		if err != nil {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// Restore replaces the store file with the given backup, taking a safety
// copy of the current store first.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	if _, err := os.Stat(m.storePath); err == nil {
		safety := m.storePath + ".pre-restore"
		if err := copyFile(m.storePath, safety); err != nil {
			return fmt.Errorf("failed to save current store before restore: %w", err)
		}
	}

	if err := copyFile(backupPath, m.storePath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

func (m *Manager) copyStore(dest string) error {
	if m.suffix != ".db" {
		return copyFile(m.storePath, dest)
	}

	// VACUUM INTO gives a consistent snapshot even with the db in use.
	src, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return copyFile(m.storePath, dest)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("store appears to be corrupted: %w", err)
	}
	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		return copyFile(m.storePath, dest)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
