package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/model"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage maintenance schedules",
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a maintenance schedule",
	RunE:  runScheduleAdd,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active maintenance schedules",
	RunE:  runScheduleList,
}

var scheduleDeactivateCmd = &cobra.Command{
	Use:   "deactivate <schedule-id>",
	Short: "Remove a schedule from due-date computation",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleDeactivate,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleDeactivateCmd)

	scheduleAddCmd.Flags().StringP("title", "t", "", "Schedule title (e.g. 'Oil Change')")
	scheduleAddCmd.Flags().StringP("kind", "k", string(model.KindPeriodicMaintenance), "Kind (periodic_maintenance, replacement, certification, inspection)")
	scheduleAddCmd.Flags().String("vehicle", "", "Target vehicle ID")
	scheduleAddCmd.Flags().String("item", "", "Target inventory item ID")
	scheduleAddCmd.Flags().String("every", "months", "Interval type (months, years, hours, miles)")
	scheduleAddCmd.Flags().IntP("value", "n", 0, "Interval value")
	scheduleAddCmd.Flags().Float64("cost", 0, "Cost estimate in USD")
	_ = scheduleAddCmd.MarkFlagRequired("title")
	_ = scheduleAddCmd.MarkFlagRequired("value")
}

func runScheduleAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	kind, _ := cmd.Flags().GetString("kind")
	vehicleID, _ := cmd.Flags().GetString("vehicle")
	itemID, _ := cmd.Flags().GetString("item")
	intervalType, _ := cmd.Flags().GetString("every")
	intervalValue, _ := cmd.Flags().GetInt("value")
	cost, _ := cmd.Flags().GetFloat64("cost")

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	sched := &model.MaintenanceSchedule{
		Kind:  model.ScheduleKind(kind),
		Title: title,
		Target: model.TargetRef{
			ItemID:    itemID,
			VehicleID: vehicleID,
		},
		Interval: model.Interval{
			Type:  model.IntervalType(intervalType),
			Value: intervalValue,
		},
		CostEstimate: cost,
		Active:       true,
	}

	if err := store.CreateSchedule(cmd.Context(), sched); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}

	fmt.Printf("Schedule created:\n")
	fmt.Printf("  ID:       %s\n", sched.ID)
	fmt.Printf("  Title:    %s\n", sched.Title)
	fmt.Printf("  Kind:     %s\n", sched.Kind)
	fmt.Printf("  Interval: every %d %s\n", sched.Interval.Value, sched.Interval.Type)

	return nil
}

func runScheduleList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	schedules, err := store.ListActiveSchedules(cmd.Context())
	if err != nil {
		return fmt.Errorf("list schedules: %w", err)
	}

	if len(schedules) == 0 {
		fmt.Println("No active schedules. Use 'fleetwatch schedule add' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\tKIND\tTARGET\tINTERVAL\tEST. COST\n")
	for _, s := range schedules {
		note := ""
		if !s.Interval.Type.CalendarBased() {
			note = " (usage-based)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\tevery %d %s%s\t$%.2f\n",
			s.ID, s.Title, s.Kind, s.TargetLabel, s.Interval.Value, s.Interval.Type, note, s.CostEstimate)
	}
	w.Flush()

	return nil
}

func runScheduleDeactivate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetScheduleActive(cmd.Context(), args[0], false); err != nil {
		return fmt.Errorf("deactivate schedule: %w", err)
	}

	fmt.Printf("Schedule %s deactivated.\n", args[0])
	return nil
}
