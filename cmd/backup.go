package cmd

import (
	"fmt"
	"log"

	"github.com/tntzzxwife/my-order-app/internal/backup"

	"github.com/spf13/cobra"
)

var (
	outputDir    string
	backupFormat string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup the order file",
	Long:  "Write a timestamped copy of every order to a CSV or JSON file",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "./backups", "Output directory for backup files")
	backupCmd.Flags().StringVar(&backupFormat, "format", backup.FormatCSV, "Backup format: csv or json")
}

func runBackup(cmd *cobra.Command, args []string) error {
	if backupFormat != backup.FormatCSV && backupFormat != backup.FormatJSON {
		return fmt.Errorf("invalid format: %s. Use 'csv' or 'json'", backupFormat)
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	log.Printf("Starting backup of %s to %s format...", s.Path(), backupFormat)
	backupFile, count, err := backup.NewService(s).BackupOrders(outputDir, backupFormat)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	log.Printf("Backup completed successfully: %s (%d orders)", backupFile, count)
	return nil
}
