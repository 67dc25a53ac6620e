package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"minierp/pkg/models"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage the client registry",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new client",
	Long: `Add a client to the registry. A client is either a company (requires
--company-name and --vat-id) or an individual (requires --first-name and
--last-name).`,
	Example: `  # Company client
  minierp client add --category company --company-name "Test Corp" --vat-id PL9999999999

  # Individual client
  minierp client add --category individual --first-name Jan --last-name Kowalski \
    --email jan@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		category, _ := cmd.Flags().GetString("category")
		client := models.Client{}

		switch category {
		case "company":
			client.Category = models.ClientCategoryCompany
			client.CompanyName, _ = cmd.Flags().GetString("company-name")
			client.VATID, _ = cmd.Flags().GetString("vat-id")
			if client.CompanyName == "" || client.VATID == "" {
				return fmt.Errorf("company clients require --company-name and --vat-id")
			}
		case "individual":
			client.Category = models.ClientCategoryIndividual
			client.FirstName, _ = cmd.Flags().GetString("first-name")
			client.LastName, _ = cmd.Flags().GetString("last-name")
			if client.FirstName == "" || client.LastName == "" {
				return fmt.Errorf("individual clients require --first-name and --last-name")
			}
		default:
			return fmt.Errorf("invalid category %q (must be 'company' or 'individual')", category)
		}

		client.Email, _ = cmd.Flags().GetString("email")
		client.PhoneNumber, _ = cmd.Flags().GetString("phone")
		client.AddressStreet, _ = cmd.Flags().GetString("street")
		client.AddressZipcode, _ = cmd.Flags().GetString("zipcode")
		client.AddressCity, _ = cmd.Flags().GetString("city")

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		created, err := st.CreateClient(ctx, client)
		if err != nil {
			return err
		}

		fmt.Printf("Client '%s' added with ID %d.\n", created.DisplayName(), created.ID)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		clients, err := st.ListClients(ctx)
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Println("No clients found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tVAT ID\tEMAIL\tPHONE")
		for _, c := range clients {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.DisplayName(), c.Category,
				orDash(c.VATID), orDash(c.Email), orDash(c.PhoneNumber))
		}
		return w.Flush()
	},
}

func orDash(s string) string {
	if s == "" {
		return "---"
	}
	return s
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)

	clientAddCmd.Flags().String("category", "", "Client category: company or individual [REQUIRED]")
	clientAddCmd.Flags().String("company-name", "", "Company name (company clients)")
	clientAddCmd.Flags().String("vat-id", "", "VAT ID (company clients)")
	clientAddCmd.Flags().String("first-name", "", "First name (individual clients)")
	clientAddCmd.Flags().String("last-name", "", "Last name (individual clients)")
	clientAddCmd.Flags().String("email", "", "Email address")
	clientAddCmd.Flags().String("phone", "", "Phone number")
	clientAddCmd.Flags().String("street", "", "Street and number")
	clientAddCmd.Flags().String("zipcode", "", "ZIP code")
	clientAddCmd.Flags().String("city", "", "City")

	clientAddCmd.MarkFlagRequired("category")
}
