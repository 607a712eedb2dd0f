package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tntzzxwife/my-order-app/internal/backup"

	"github.com/spf13/cobra"
)

var (
	inputFile        string
	restoreFormat    string
	skipConfirmation bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore the order file from a backup",
	Long:  "Replace every order with the contents of a CSV or JSON backup file",
	RunE:  runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input backup file to restore (required)")
	restoreCmd.Flags().StringVar(&restoreFormat, "format", "", "Backup format: csv or json (auto-detected if not specified)")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	restoreCmd.MarkFlagRequired("input")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", inputFile)
	}

	format := restoreFormat
	if format == "" {
		detected, err := backup.DetectFormat(inputFile)
		if err != nil {
			return err
		}
		format = detected
	}

	if format != backup.FormatCSV && format != backup.FormatJSON {
		return fmt.Errorf("invalid format: %s. Use 'csv' or 'json'", format)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	backupService := backup.NewService(s)

	if err := backupService.ValidateBackupFile(inputFile, format); err != nil {
		return fmt.Errorf("backup file validation failed: %w", err)
	}

	if !skipConfirmation {
		log.Printf("About to restore:")
		log.Printf("  Source file: %s", inputFile)
		log.Printf("  Target file: %s", s.Path())
		log.Printf("  Format: %s", format)
		log.Printf("  WARNING: Existing orders will be REPLACED!")

		if !confirmAction("Do you want to continue?") {
			log.Println("Restore cancelled")
			return nil
		}
	}

	log.Printf("Starting restore of %s from %s...", s.Path(), inputFile)

	count, err := backupService.RestoreOrders(inputFile, format)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	log.Printf("Restore completed successfully! %d orders", count)
	return nil
}

func confirmAction(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
