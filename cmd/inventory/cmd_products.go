package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/goldenhive/inventory/client"
	"github.com/goldenhive/inventory/client/view"
)

var (
	apiURL         string
	searchFlag     string
	categoryFlag   string
	requestTimeout time.Duration
)

// inventory products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Print the product list of a running server with its stock summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(apiURL, client.WithTimeout(requestTimeout))

		list, err := c.ListProducts(cmd.Context(), client.ListParams{
			Search:   searchFlag,
			Category: categoryFlag,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSKU\tNAME\tCATEGORY\tPRICE\tQTY\tSTATUS")
		for _, p := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
				p.ID, p.SKU, p.Name, p.Category, p.Price, p.Quantity, stockStatus(p.Quantity))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		s := view.Summarize(list)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d products, total value %s, %d low stock, %d out of stock\n",
			s.TotalProducts, s.TotalValue.StringFixed(2), s.LowStock, s.OutOfStock)
		return nil
	},
}

func stockStatus(quantity int) string {
	switch {
	case quantity == 0:
		return "out of stock"
	case quantity <= view.LowStockThreshold:
		return "low"
	default:
		return "in stock"
	}
}

func init() {
	productsCmd.Flags().StringVar(&apiURL, "url", "http://localhost:3001", "base URL of the inventory API")
	productsCmd.Flags().StringVar(&searchFlag, "search", "", "case-insensitive name or SKU filter")
	productsCmd.Flags().StringVar(&categoryFlag, "category", "", "exact category filter")
	productsCmd.Flags().DurationVar(&requestTimeout, "timeout", 10*time.Second, "request timeout")
}
