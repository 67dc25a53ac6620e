package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minierp/internal/config"
	"minierp/internal/logger"
	"minierp/internal/store"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "minierp",
	Short: "Mini ERP - company profile, clients, products and invoicing",
	Long: `Mini ERP is a small business-management application: it keeps your
company profile, client registry and product catalog, records orders and
issues sequentially numbered VAT invoices.

All data lives in PostgreSQL; connection settings come from the environment
(or a .env file in the working directory).`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Mini ERP!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// openStore loads the configuration, connects to the database and makes sure
// the schema exists. Every subcommand goes through here.
func openStore(ctx context.Context) (*config.Config, *store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(ctx, store.Config{URL: cfg.DSN()})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := st.InitSchema(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}

	return cfg, st, nil
}
