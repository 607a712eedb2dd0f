package cmd

import (
	"fmt"
	"log"

	"github.com/tntzzxwife/my-order-app/internal/store"

	"github.com/spf13/cobra"
)

var (
	deleteQuery   string
	deleteConfirm bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete every order matching a search",
	Long: `Delete every order matching --search. Without --search every order is
deleted.`,
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().StringVarP(&deleteQuery, "search", "q", "", "Search text selecting the orders to delete")
	deleteCmd.Flags().BoolVar(&deleteConfirm, "yes", false, "Skip confirmation prompts")
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	orders, err := s.Load()
	if err != nil {
		return err
	}

	found := store.Search(orders, deleteQuery)
	if len(found) == 0 {
		log.Printf("No orders match %q", deleteQuery)
		return nil
	}

	if !deleteConfirm {
		log.Printf("About to delete %d of %d orders", len(found), len(orders))
		if deleteQuery == "" {
			log.Printf("  WARNING: no search given, ALL orders will be deleted!")
		}
		if !confirmAction("Do you want to continue?") {
			log.Println("Delete cancelled")
			return nil
		}
	}

	removed, err := s.DeleteMatching(orders, deleteQuery)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	log.Printf("Deleted %d orders", removed)
	return nil
}
