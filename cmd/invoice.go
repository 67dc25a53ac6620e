package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"minierp/internal/document"
	"minierp/internal/logger"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Issue invoices and render invoice documents",
	Long: `Issue sequentially numbered invoices for orders and render the invoice
documents handed to the PDF conversion pipeline.

Invoice numbers use the format FV/<sequence>/<month>/<year>; the sequence
restarts at 1 each calendar month and is derived from the most recently
created invoiced order of the current month. An order receives its number
and payment due date together, exactly once.`,
}

var invoiceIssueCmd = &cobra.Command{
	Use:   "issue [order-id]",
	Short: "Assign the next invoice number and due date to an order",
	Example: `  minierp invoice issue 42

  # With a 30-day payment term (default 14, or INVOICE_DUE_DAYS)
  INVOICE_DUE_DAYS=30 minierp invoice issue 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orderID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		cfg, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := document.NewService(st, cfg.InvoiceDueDays)
		number, dueDate, err := svc.Issue(ctx, orderID)
		if err != nil {
			return err
		}

		fmt.Printf("Order #%d invoiced as %s, payment due %s.\n",
			orderID, number, dueDate.Format("2006-01-02"))
		return nil
	},
}

var invoiceRenderCmd = &cobra.Command{
	Use:   "render [order-id]",
	Short: "Render the invoice document for one order",
	Long: `Render the HTML invoice document for an invoiced order. The output file
is the handoff artifact for the PDF converter and is named after the invoice
number, e.g. FV_3_6_2026.html.`,
	Example: `  minierp invoice render 42 -o ./invoices`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		orderID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}
		outDir, _ := cmd.Flags().GetString("output")

		cfg, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := document.NewService(st, cfg.InvoiceDueDays)
		path, err := renderToDir(ctx, svc, orderID, outDir)
		if err != nil {
			return err
		}

		fmt.Printf("Invoice document written to %s\n", path)
		return nil
	},
}

var invoiceRenderAllCmd = &cobra.Command{
	Use:   "render-all",
	Short: "Render invoice documents for every invoiced order",
	Example: `  minierp invoice render-all -o ./invoices

  # Limit parallelism
  minierp invoice render-all -o ./invoices --workers 4`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.WithComponent("invoice-render")

		outDir, _ := cmd.Flags().GetString("output")
		workers, _ := cmd.Flags().GetInt("workers")
		if workers < 1 {
			workers = 1
		}

		cfg, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		orders, err := st.ListOrders(ctx, 0)
		if err != nil {
			return err
		}

		svc := document.NewService(st, cfg.InvoiceDueDays)

		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		var rendered int
		for _, o := range orders {
			if !o.Invoiced() {
				continue
			}
			rendered++

			o := o
			g.Go(func() error {
				path, err := renderToDir(ctx, svc, o.ID, outDir)
				if err != nil {
					return fmt.Errorf("order %d: %w", o.ID, err)
				}
				log.Debug().Int64("order_id", o.ID).Str("path", path).Msg("Rendered")
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Rendered %d invoice document(s) to %s\n", rendered, outDir)
		return nil
	},
}

// renderToDir renders one order's invoice document into outDir and returns
// the written path. The file is named after the invoice number.
func renderToDir(ctx context.Context, svc *document.Service, orderID int64, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	var buf bytes.Buffer
	record, err := svc.Render(ctx, orderID, &buf)
	if err != nil {
		return "", err
	}

	// FV/3/6/2026 -> FV_3_6_2026.html
	name := strings.ReplaceAll(record.InvoiceNumber, "/", "_") + ".html"
	path := filepath.Join(outDir, name)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceIssueCmd)
	invoiceCmd.AddCommand(invoiceRenderCmd)
	invoiceCmd.AddCommand(invoiceRenderAllCmd)

	invoiceRenderCmd.Flags().StringP("output", "o", ".", "Output directory")
	invoiceRenderAllCmd.Flags().StringP("output", "o", ".", "Output directory")
	invoiceRenderAllCmd.Flags().Int("workers", 8, "Number of parallel render workers")
}
