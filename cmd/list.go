package cmd

import (
	"log"
	"os"

	"github.com/tntzzxwife/my-order-app/internal/store"
	"github.com/tntzzxwife/my-order-app/internal/tui"

	"github.com/spf13/cobra"
)

var listQuery string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show orders, optionally filtered",
	Long:  "Show the order table. --search keeps orders with any field containing the text, ignoring case.",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "search", "q", "", "Search text")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	orders, err := s.Load()
	if err != nil {
		return err
	}

	found := store.Search(orders, listQuery)
	tui.NewTableRenderer(os.Stdout).Render(found)

	if listQuery != "" {
		log.Printf("%d of %d orders match %q", len(found), len(orders), listQuery)
	}
	return nil
}
