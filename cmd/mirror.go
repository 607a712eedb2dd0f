package cmd

import (
	"fmt"
	"log"

	"github.com/tntzzxwife/my-order-app/internal/database"

	"github.com/spf13/cobra"
)

var (
	dbURI           string
	dbName          string
	collection      string
	listCollections bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Copy every order into a MongoDB collection",
	Long:  "Replace the documents of a MongoDB collection with the orders of the order file, in file order",
	RunE:  runMirror,
}

func init() {
	mirrorCmd.Flags().StringVarP(&dbURI, "db-uri", "u", "mongodb://localhost:27017", "MongoDB connection URI")
	mirrorCmd.Flags().StringVarP(&dbName, "database", "d", "orders", "Database name")
	mirrorCmd.Flags().StringVarP(&collection, "collection", "t", "orders", "Collection name")
	mirrorCmd.Flags().BoolVar(&listCollections, "list", false, "List the database's collections and exit")
}

func runMirror(cmd *cobra.Command, args []string) error {
	db, err := database.NewMongoDB(dbURI, dbName)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer db.Close()

	if listCollections {
		names, err := db.ListCollections()
		if err != nil {
			return err
		}
		log.Printf("Collections in %s:", dbName)
		for _, name := range names {
			log.Printf("  - %s", name)
		}
		return nil
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	orders, err := s.Load()
	if err != nil {
		return err
	}

	log.Printf("Mirroring %d orders from %s to %s.%s", len(orders), s.Path(), dbName, collection)
	count, err := db.MirrorOrders(collection, orders)
	if err != nil {
		return fmt.Errorf("mirror failed after %d orders: %w", count, err)
	}

	log.Printf("Successfully mirrored %d/%d orders to %s.%s", count, len(orders), dbName, collection)
	return nil
}
