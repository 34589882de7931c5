package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/model"
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Record an equipment certification",
	Long:  `Record a certification or test result for an inventory item. The latest certification per (item, type, location) supersedes older ones.`,
	RunE:  runCert,
}

func init() {
	rootCmd.AddCommand(certCmd)
	certCmd.Flags().StringP("item", "i", "", "Inventory item ID")
	certCmd.Flags().StringP("type", "t", "", "Certification type (e.g. 'hydrostatic test')")
	certCmd.Flags().String("location", "", "Vehicle or station the item is assigned to")
	certCmd.Flags().String("date", "", "Certification date (YYYY-MM-DD)")
	certCmd.Flags().String("expires", "", "Expiration date (YYYY-MM-DD)")
	certCmd.Flags().String("agency", "", "Certifying agency")
	certCmd.Flags().String("number", "", "Certificate number")
	certCmd.Flags().Bool("failed", false, "Mark the certification as failed")
	_ = certCmd.MarkFlagRequired("item")
	_ = certCmd.MarkFlagRequired("type")
	_ = certCmd.MarkFlagRequired("date")
	_ = certCmd.MarkFlagRequired("expires")
}

func runCert(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	itemID, _ := cmd.Flags().GetString("item")
	certType, _ := cmd.Flags().GetString("type")
	location, _ := cmd.Flags().GetString("location")
	dateStr, _ := cmd.Flags().GetString("date")
	expiresStr, _ := cmd.Flags().GetString("expires")
	agency, _ := cmd.Flags().GetString("agency")
	number, _ := cmd.Flags().GetString("number")
	failed, _ := cmd.Flags().GetBool("failed")

	certDate, err := parseDate(dateStr)
	if err != nil {
		return err
	}
	expires, err := parseDate(expiresStr)
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	cert := &model.Certification{
		ItemID:            itemID,
		Location:          location,
		Type:              certType,
		CertificationDate: certDate,
		ExpirationDate:    expires,
		Agency:            agency,
		CertificateNumber: number,
		Passed:            !failed,
	}

	if err := store.AddCertification(cmd.Context(), cert); err != nil {
		return fmt.Errorf("add certification: %w", err)
	}

	result := "passed"
	if failed {
		result = "FAILED"
	}
	fmt.Printf("Certification recorded:\n")
	fmt.Printf("  ID:      %s\n", cert.ID)
	fmt.Printf("  Type:    %s\n", cert.Type)
	fmt.Printf("  Result:  %s\n", result)
	fmt.Printf("  Expires: %s\n", cert.ExpirationDate.Format("2006-01-02"))

	return nil
}
