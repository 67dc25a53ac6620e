package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"minierp/internal/draft"
	"minierp/internal/finance"
	"minierp/internal/store"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Record and track orders",
}

var orderCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an order from a set of line items",
	Long: `Create an order for a client. Each --item flag adds one line in the
form INDEX:QUANTITY:PRICE, where INDEX is the product's catalog index,
QUANTITY the amount sold and PRICE the net price per unit agreed for this
order (independent of any catalog price).

All lines are validated first and the order is committed in a single
transaction; either every line is stored or none is. Quantities of products
sold in pieces (szt) or sets (kpl) must be whole numbers. The product's
current VAT rate is snapshotted into each line.`,
	Example: `  # Two lines: 10 pieces of product 100 at 0.50 net, 2.5 m of product 101 at 4.20 net
  minierp order create --client 1 --item 100:10:0.50 --item 101:2.5:4.20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		clientID, _ := cmd.Flags().GetInt64("client")
		itemSpecs, _ := cmd.Flags().GetStringArray("item")
		if len(itemSpecs) == 0 {
			return draft.ErrEmptyDraft
		}

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if _, err := st.GetClient(ctx, clientID); err != nil {
			return fmt.Errorf("client %d: %w", clientID, err)
		}

		d := draft.New(clientID)
		for _, spec := range itemSpecs {
			index, quantity, price, err := parseItemSpec(spec)
			if err != nil {
				return err
			}

			product, err := st.FindProductByIndex(ctx, index)
			if err != nil {
				return fmt.Errorf("product with index %d: %w", index, err)
			}

			if err := d.AddLine(product, quantity, price); err != nil {
				return err
			}
		}

		items, err := d.Items()
		if err != nil {
			return err
		}

		order, err := st.CreateOrder(ctx, clientID, items)
		if err != nil {
			return err
		}
		d.Clear()

		totals := finance.Calculate(finance.LinesFromItems(order.Items))
		fmt.Printf("Order #%d created (%d items, total %s PLN gross).\n",
			order.ID, len(order.Items), totals.Gross.StringFixed(2))
		return nil
	},
}

// parseItemSpec splits an INDEX:QUANTITY:PRICE line flag.
func parseItemSpec(spec string) (index int64, quantity, price decimal.Decimal, err error) {
	fields := strings.Split(spec, ":")
	if len(fields) != 3 {
		return 0, decimal.Zero, decimal.Zero,
			fmt.Errorf("invalid item %q: want INDEX:QUANTITY:PRICE", spec)
	}
	if index, err = strconv.ParseInt(fields[0], 10, 64); err != nil {
		return 0, decimal.Zero, decimal.Zero,
			fmt.Errorf("invalid item %q: index must be numeric", spec)
	}
	if quantity, err = decimal.NewFromString(fields[1]); err != nil {
		return 0, decimal.Zero, decimal.Zero,
			fmt.Errorf("invalid item %q: bad quantity", spec)
	}
	if price, err = decimal.NewFromString(fields[2]); err != nil {
		return 0, decimal.Zero, decimal.Zero,
			fmt.Errorf("invalid item %q: bad price", spec)
	}
	return index, quantity, price, nil
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders with their items and totals",
	Example: `  minierp order list
  minierp order list --client 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		clientID, _ := cmd.Flags().GetInt64("client")

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		orders, err := st.ListOrders(ctx, clientID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders found matching the criteria.")
			return nil
		}

		for _, o := range orders {
			totals := finance.Calculate(finance.LinesFromItems(o.Items))

			invoiced := "not invoiced"
			if o.Invoiced() {
				invoiced = *o.InvoiceNumber
			}
			fmt.Printf("Order #%d  %s  %s  %s  total %s PLN gross\n",
				o.ID, o.OrderDate.Format("2006-01-02"), invoiced,
				o.PaymentStatus, totals.Gross.StringFixed(2))

			for _, it := range o.Items {
				fmt.Printf("    %s  %s %s x %s = %s net (VAT %s%%)\n",
					it.ProductName, it.Quantity, it.Unit, it.PricePerUnit.StringFixed(2),
					finance.LineNet(it).StringFixed(2), it.VATRate)
			}
		}
		return nil
	},
}

var orderMarkPaidCmd = &cobra.Command{
	Use:   "mark-paid [order-id]",
	Short: "Mark an invoiced order as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orderID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.MarkPaid(ctx, orderID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("order %d does not exist or is not invoiced", orderID)
			}
			return err
		}
		fmt.Printf("Order #%d marked as paid.\n", orderID)
		return nil
	},
}

var orderRefreshOverdueCmd = &cobra.Command{
	Use:   "refresh-overdue",
	Short: "Flip unpaid orders past their due date to overdue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		updated, err := st.RefreshOverdue(ctx, time.Now())
		if err != nil {
			return err
		}
		fmt.Printf("%d order(s) marked overdue.\n", updated)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
	orderCmd.AddCommand(orderCreateCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderMarkPaidCmd)
	orderCmd.AddCommand(orderRefreshOverdueCmd)

	orderCreateCmd.Flags().Int64("client", 0, "Client ID [REQUIRED]")
	orderCreateCmd.Flags().StringArray("item", nil, "Order line as INDEX:QUANTITY:PRICE (repeatable)")
	orderCreateCmd.MarkFlagRequired("client")

	orderListCmd.Flags().Int64("client", 0, "Filter by client ID")
}
