package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"minierp/internal/numbering"
	"minierp/internal/store"
	"minierp/pkg/models"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalog",
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new product",
	Long: `Add a product to the catalog. The catalog index (SKU) is a unique
positive integer; when --index is omitted the next free one (current
maximum + 1) is assigned automatically. Valid units: szt (pieces), kg,
kpl (sets), m. The VAT rate defaults to 23%.`,
	Example: `  # Auto-assigned index, default 23% VAT
  minierp product add --name "Screws M4" --unit szt

  # Explicit index and reduced rate
  minierp product add --name "Flour 1kg" --index 205 --unit kg --vat-rate 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		name, _ := cmd.Flags().GetString("name")
		unitStr, _ := cmd.Flags().GetString("unit")
		index, _ := cmd.Flags().GetInt64("index")
		stockStr, _ := cmd.Flags().GetString("stock")
		rateStr, _ := cmd.Flags().GetString("vat-rate")

		unit, ok := models.ParseProductUnit(unitStr)
		if !ok {
			return fmt.Errorf("invalid unit %q (must be one of: szt, kg, kpl, m)", unitStr)
		}

		stock, err := decimal.NewFromString(stockStr)
		if err != nil {
			return fmt.Errorf("invalid stock %q: %w", stockStr, err)
		}

		vatRate := models.DefaultVATRate
		if rateStr != "" {
			if vatRate, err = decimal.NewFromString(rateStr); err != nil {
				return fmt.Errorf("invalid VAT rate %q: %w", rateStr, err)
			}
		}

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if index <= 0 {
			maxIndex, found, err := st.MaxProductIndex(ctx)
			if err != nil {
				return err
			}
			index = numbering.NextProductIndex(maxIndex, found)
		}

		product, err := st.CreateProduct(ctx, models.Product{
			Name:         name,
			ProductIndex: index,
			Unit:         unit,
			Stock:        stock,
			VATRate:      vatRate,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Product '%s' added with index %d.\n", product.Name, product.ProductIndex)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered by name",
	Example: `  minierp product list
  minierp product list --name screw
  minierp product list --index 205`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		nameFilter, _ := cmd.Flags().GetString("name")
		index, _ := cmd.Flags().GetInt64("index")

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		var products []models.Product
		if index > 0 {
			p, err := st.FindProductByIndex(ctx, index)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if err == nil {
				products = []models.Product{p}
			}
		} else {
			if products, err = st.ListProducts(ctx, nameFilter); err != nil {
				return err
			}
		}
		if len(products) == 0 {
			fmt.Println("No products found matching your criteria.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tNAME\tUNIT\tSTOCK\tVAT %")
		for _, p := range products {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				p.ProductIndex, p.Name, p.Unit, p.Stock, p.VATRate)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)

	productAddCmd.Flags().String("name", "", "Product name [REQUIRED]")
	productAddCmd.Flags().Int64("index", 0, "Catalog index / SKU (auto-assigned when omitted)")
	productAddCmd.Flags().String("unit", "szt", "Unit: szt, kg, kpl or m")
	productAddCmd.Flags().String("stock", "0", "Initial stock")
	productAddCmd.Flags().String("vat-rate", "", "VAT rate in percent (default 23)")

	productAddCmd.MarkFlagRequired("name")

	productListCmd.Flags().String("name", "", "Filter by name substring")
	productListCmd.Flags().Int64("index", 0, "Look up a single product by catalog index")
}
