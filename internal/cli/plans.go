package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/model"
	"github.com/stationops/fleetwatch/pkg/plans"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Manage maintenance plan templates",
}

var plansApplyCmd = &cobra.Command{
	Use:   "apply <plan-file>",
	Short: "Apply a plan template to a vehicle or item",
	Long:  `Load a YAML maintenance plan and create all of its schedules against the given target in one step.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansApply,
}

func init() {
	rootCmd.AddCommand(plansCmd)
	plansCmd.AddCommand(plansApplyCmd)

	plansApplyCmd.Flags().String("vehicle", "", "Target vehicle ID")
	plansApplyCmd.Flags().String("item", "", "Target inventory item ID")
}

func runPlansApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	vehicleID, _ := cmd.Flags().GetString("vehicle")
	itemID, _ := cmd.Flags().GetString("item")

	path := args[0]
	if filepath.Ext(path) == "" {
		path = filepath.Join(cfg.Plans.Dir, path+".yaml")
	}

	plan, err := plans.Load(path)
	if err != nil {
		return err
	}

	target := model.TargetRef{ItemID: itemID, VehicleID: vehicleID}
	schedules, err := plan.Materialize(target)
	if err != nil {
		return fmt.Errorf("apply plan %q: %w", plan.Name, err)
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	for i := range schedules {
		if err := store.CreateSchedule(cmd.Context(), &schedules[i]); err != nil {
			return fmt.Errorf("create schedule %q: %w", schedules[i].Title, err)
		}
	}

	fmt.Printf("Applied plan %q: %d schedules created.\n", plan.Name, len(schedules))
	return nil
}
