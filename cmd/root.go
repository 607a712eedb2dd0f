package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/tntzzxwife/my-order-app/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var ordersFile string

var rootCmd = &cobra.Command{
	Use:   "orders",
	Short: "A small order tracker for a reselling business",
	Long: `Orders keeps purchase/resale orders in a CSV file. Register orders,
search them, bulk-update their shipping status or delete what you searched.

Running without a command starts the interactive TUI.`,
	RunE: runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&ordersFile, "file", "f", store.DefaultPath, "Order CSV file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(mirrorCmd)
}

// initConfig lets .env and the environment override flag defaults. Flags
// set on the command line always win.
func initConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	fromEnv(rootCmd, "file", "ORDERS_FILE", &ordersFile)
	fromEnv(backupCmd, "output", "BACKUP_DIR", &outputDir)
	fromEnv(mirrorCmd, "db-uri", "DB_URI", &dbURI)
	fromEnv(mirrorCmd, "database", "DB_NAME", &dbName)
	fromEnv(mirrorCmd, "collection", "DB_COLLECTION", &collection)
}

func fromEnv(cmd *cobra.Command, flag, key string, target *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// openStore returns the configured store, creating the order file on first
// use.
func openStore() (*store.Store, error) {
	s := store.NewStore(ordersFile)
	if err := s.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", s.Path(), err)
	}
	return s, nil
}
