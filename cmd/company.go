package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"minierp/internal/store"
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage your company profile",
	Long: `Show or update the company profile printed on every invoice: name,
VAT ID, address and bank account. The application keeps a single profile.`,
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current company profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		profile, err := st.GetCompanyProfile(ctx)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Println("No company profile has been saved yet. Use 'minierp company set'.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Company name:  %s\n", profile.CompanyName)
		fmt.Printf("VAT ID (NIP):  %s\n", profile.VATID)
		fmt.Printf("Address:       %s, %s %s\n",
			profile.AddressStreet, profile.AddressZipcode, profile.AddressCity)
		fmt.Printf("Bank account:  %s\n", profile.BankAccountNumber)
		if profile.AdditionalInfo != "" {
			fmt.Printf("Additional:    %s\n", profile.AdditionalInfo)
		}
		return nil
	},
}

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the company profile",
	Example: `  minierp company set --name "Widget Works Sp. z o.o." --vat-id PL5260001246 \
    --street "ul. Prosta 1" --zipcode 00-001 --city Warszawa \
    --bank-account "PL61 1090 1014 0000 0712 1981 2874"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		// Start from the existing profile so unset flags keep their values.
		profile, err := st.GetCompanyProfile(ctx)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		applyFlag(cmd, "name", &profile.CompanyName)
		applyFlag(cmd, "vat-id", &profile.VATID)
		applyFlag(cmd, "street", &profile.AddressStreet)
		applyFlag(cmd, "zipcode", &profile.AddressZipcode)
		applyFlag(cmd, "city", &profile.AddressCity)
		applyFlag(cmd, "bank-account", &profile.BankAccountNumber)
		applyFlag(cmd, "info", &profile.AdditionalInfo)

		if profile.CompanyName == "" {
			return fmt.Errorf("company name is required")
		}

		if _, err := st.SaveCompanyProfile(ctx, profile); err != nil {
			return err
		}
		fmt.Println("Company profile saved.")
		return nil
	},
}

// applyFlag copies a string flag into dst only when the flag was set.
func applyFlag(cmd *cobra.Command, name string, dst *string) {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetString(name)
		*dst = v
	}
}

func init() {
	rootCmd.AddCommand(companyCmd)
	companyCmd.AddCommand(companyShowCmd)
	companyCmd.AddCommand(companySetCmd)

	companySetCmd.Flags().String("name", "", "Company name")
	companySetCmd.Flags().String("vat-id", "", "VAT ID (NIP)")
	companySetCmd.Flags().String("street", "", "Street and number")
	companySetCmd.Flags().String("zipcode", "", "ZIP code")
	companySetCmd.Flags().String("city", "", "City")
	companySetCmd.Flags().String("bank-account", "", "Bank account number")
	companySetCmd.Flags().String("info", "", "Additional info shown on invoices")
}
