package cmd

import (
	"fmt"
	"log"

	"github.com/tntzzxwife/my-order-app/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	addAccount string
	addProduct string
	addSource  string
	addRate    string
	addCost    string
	addPrice   int64
	addNote    string
	addShipped bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new order",
	Long:  "Register a new order. Local cost and profit are derived from the foreign cost, exchange rate and price.",
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addAccount, "account", "a", "", "IG account (required)")
	addCmd.Flags().StringVarP(&addProduct, "product", "p", "", "Product name (required)")
	addCmd.Flags().StringVarP(&addSource, "source", "s", "", "Where the product is sourced")
	addCmd.Flags().StringVar(&addRate, "rate", models.DefaultExchangeRate.String(), "Exchange rate")
	addCmd.Flags().StringVar(&addCost, "cost", "0", "Cost in source currency (RMB)")
	addCmd.Flags().Int64Var(&addPrice, "price", 0, "Sale price (TWD)")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "Free text note")
	addCmd.Flags().BoolVar(&addShipped, "shipped", false, "Mark the order as shipped")
}

func runAdd(cmd *cobra.Command, args []string) error {
	rate, err := decimal.NewFromString(addRate)
	if err != nil {
		return fmt.Errorf("invalid exchange rate %q: %w", addRate, err)
	}
	cost, err := decimal.NewFromString(addCost)
	if err != nil {
		return fmt.Errorf("invalid cost %q: %w", addCost, err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	order, err := s.Append(models.OrderInput{
		Account:      addAccount,
		Product:      addProduct,
		Source:       addSource,
		ExchangeRate: &rate,
		CostForeign:  &cost,
		PriceLocal:   &addPrice,
		Note:         addNote,
		Shipped:      addShipped,
	})
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	log.Printf("Saved order for %s: %s (cost %d, price %d, profit %d, %s)",
		order.Account, order.Product, order.CostLocal, order.PriceLocal, order.ProfitLocal, order.Status)
	return nil
}
