package cli

import (
	"fmt"

	"github.com/julianstephens/flowtrack/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	fmt.Println("Backups (newest first):")
	for _, b := range backups {
		fmt.Printf("  %s (%s, %d bytes)\n",
			b.Path, b.Timestamp.Format("2006-01-02 15:04:05"), b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" optional:"" help:"Backup file to restore. Defaults to the newest."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	path := c.Path
	if path == "" {
		backups, err := mgr.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups available to restore")
		}
		path = backups[0].Path
	}

	if err := mgr.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored store from %s\n", path)
	return nil
}
