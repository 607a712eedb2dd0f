package cmd

import (
	"fmt"
	"log"

	"github.com/tntzzxwife/my-order-app/internal/models"

	"github.com/spf13/cobra"
)

var (
	statusAccount string
	statusValue   string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Set the status of every order of an account",
	Long:  "Set the status of every order whose account equals --account exactly.",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusAccount, "account", "a", "", "IG account (required)")
	statusCmd.Flags().StringVarP(&statusValue, "status", "s", string(models.Shipped), "New status: shipped, unshipped, 已出貨 or 未出貨")

	statusCmd.MarkFlagRequired("account")
}

func runStatus(cmd *cobra.Command, args []string) error {
	status, err := models.ParseStatus(statusValue)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	updated, err := s.UpdateStatus(statusAccount, status)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if updated == 0 {
		log.Printf("WARNING: no orders found for account %q", statusAccount)
		return nil
	}
	log.Printf("Updated %d orders of %s to %s", updated, statusAccount, status)
	return nil
}
