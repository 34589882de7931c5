package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/model"
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage vehicles",
}

var vehicleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a vehicle",
	RunE:  runVehicleAdd,
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles",
	RunE:  runVehicleList,
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage inventory items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an inventory item",
	RunE:  runItemAdd,
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory items",
	RunE:  runItemList,
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
	vehicleCmd.AddCommand(vehicleAddCmd)
	vehicleCmd.AddCommand(vehicleListCmd)

	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)

	vehicleAddCmd.Flags().StringP("name", "n", "", "Vehicle name (e.g. 'Engine 1')")
	vehicleAddCmd.Flags().String("unit", "", "Unit number")
	vehicleAddCmd.Flags().String("station", "", "Home station")
	_ = vehicleAddCmd.MarkFlagRequired("name")

	itemAddCmd.Flags().StringP("name", "n", "", "Item name")
	itemAddCmd.Flags().String("code", "", "Item code")
	itemAddCmd.Flags().String("category", "", "Category")
	itemAddCmd.Flags().Int("min", 0, "Minimum quantity threshold")
	itemAddCmd.Flags().Bool("consumable", false, "Item is consumable stock")
	_ = itemAddCmd.MarkFlagRequired("name")
}

func runVehicleAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	unit, _ := cmd.Flags().GetString("unit")
	station, _ := cmd.Flags().GetString("station")

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	v := &model.Vehicle{Name: name, UnitNumber: unit, Station: station, Active: true}
	if err := store.CreateVehicle(cmd.Context(), v); err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}

	fmt.Printf("Vehicle registered: %s (%s)\n", v.Name, v.ID)
	return nil
}

func runVehicleList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	vehicles, err := store.ListVehicles(cmd.Context())
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tUNIT\tSTATION\tACTIVE\n")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", v.ID, v.Name, v.UnitNumber, v.Station, v.Active)
	}
	w.Flush()

	return nil
}

func runItemAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	code, _ := cmd.Flags().GetString("code")
	category, _ := cmd.Flags().GetString("category")
	minQty, _ := cmd.Flags().GetInt("min")
	consumable, _ := cmd.Flags().GetBool("consumable")

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	item := &model.InventoryItem{
		Name:        name,
		ItemCode:    code,
		Category:    category,
		MinQuantity: minQty,
		Consumable:  consumable,
	}
	if err := store.CreateItem(cmd.Context(), item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}

	fmt.Printf("Item registered: %s (%s)\n", item.Name, item.ID)
	return nil
}

func runItemList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := store.ListItems(cmd.Context())
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tCODE\tCATEGORY\tMIN QTY\n")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", item.ID, item.Name, item.ItemCode, item.Category, item.MinQuantity)
	}
	w.Flush()

	return nil
}
