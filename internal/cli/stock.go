package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Manage stock levels",
}

var stockSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the quantity of an item at a location",
	RunE:  runStockSet,
}

var stockListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show stock levels and shortages",
	RunE:  runStockList,
}

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.AddCommand(stockSetCmd)
	stockCmd.AddCommand(stockListCmd)

	stockSetCmd.Flags().StringP("item", "i", "", "Inventory item ID")
	stockSetCmd.Flags().StringP("location", "l", "", "Station or vehicle name")
	stockSetCmd.Flags().IntP("quantity", "q", 0, "Quantity on hand")
	_ = stockSetCmd.MarkFlagRequired("item")
	_ = stockSetCmd.MarkFlagRequired("location")
	_ = stockSetCmd.MarkFlagRequired("quantity")
}

func runStockSet(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	itemID, _ := cmd.Flags().GetString("item")
	location, _ := cmd.Flags().GetString("location")
	quantity, _ := cmd.Flags().GetInt("quantity")

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpsertStockLevel(cmd.Context(), itemID, location, quantity); err != nil {
		return fmt.Errorf("set stock level: %w", err)
	}

	fmt.Printf("Stock updated: item %s at %s now %d\n", itemID, location, quantity)
	return nil
}

func runStockList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	levels, err := store.ListStockLevels(cmd.Context())
	if err != nil {
		return fmt.Errorf("list stock levels: %w", err)
	}

	if len(levels) == 0 {
		fmt.Println("No stock levels recorded. Use 'fleetwatch stock set' to add one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ITEM\tLOCATION\tQUANTITY\tMINIMUM\tSTATUS\n")
	for _, l := range levels {
		status := "ok"
		if s := l.Shortage(); s > 0 {
			status = fmt.Sprintf("SHORT %d", s)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", l.ItemName, l.Location, l.Quantity, l.MinQuantity, status)
	}
	w.Flush()

	return nil
}
