package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/model"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Log completed maintenance work",
	Long:  `Record a completed unit of maintenance work against a schedule. The latest completed record resets the schedule's due date.`,
	RunE:  runRecord,
}

func init() {
	rootCmd.AddCommand(recordCmd)
	recordCmd.Flags().StringP("schedule", "s", "", "Schedule ID this work fulfils")
	recordCmd.Flags().String("vehicle", "", "Target vehicle ID")
	recordCmd.Flags().String("item", "", "Target inventory item ID")
	recordCmd.Flags().StringP("work-type", "w", "", "Kind of work performed")
	recordCmd.Flags().String("performed", "", "Date performed (YYYY-MM-DD, default today)")
	recordCmd.Flags().String("next-due", "", "Explicit next due date override (YYYY-MM-DD)")
	recordCmd.Flags().String("by", "", "Who performed the work")
	recordCmd.Flags().Float64("cost", 0, "Actual cost in USD")
	recordCmd.Flags().String("notes", "", "Free-text notes")
	_ = recordCmd.MarkFlagRequired("work-type")
}

func runRecord(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scheduleID, _ := cmd.Flags().GetString("schedule")
	vehicleID, _ := cmd.Flags().GetString("vehicle")
	itemID, _ := cmd.Flags().GetString("item")
	workType, _ := cmd.Flags().GetString("work-type")
	performedStr, _ := cmd.Flags().GetString("performed")
	nextDueStr, _ := cmd.Flags().GetString("next-due")
	performedBy, _ := cmd.Flags().GetString("by")
	cost, _ := cmd.Flags().GetFloat64("cost")
	notes, _ := cmd.Flags().GetString("notes")

	performed := time.Now().UTC()
	if performedStr != "" {
		performed, err = parseDate(performedStr)
		if err != nil {
			return err
		}
	}

	var nextDue time.Time
	if nextDueStr != "" {
		nextDue, err = parseDate(nextDueStr)
		if err != nil {
			return err
		}
	}

	store, err := initStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	record := &model.MaintenanceRecord{
		ScheduleID: scheduleID,
		Target: model.TargetRef{
			ItemID:    itemID,
			VehicleID: vehicleID,
		},
		WorkType:      workType,
		PerformedBy:   performedBy,
		PerformedDate: performed,
		NextDueDate:   nextDue,
		Completed:     true,
		Cost:          cost,
		Notes:         notes,
	}

	if err := store.AddRecord(cmd.Context(), record); err != nil {
		return fmt.Errorf("add record: %w", err)
	}

	fmt.Printf("Maintenance recorded:\n")
	fmt.Printf("  ID:        %s\n", record.ID)
	fmt.Printf("  Work:      %s\n", record.WorkType)
	fmt.Printf("  Performed: %s\n", record.PerformedDate.Format("2006-01-02"))
	if !record.NextDueDate.IsZero() {
		fmt.Printf("  Next due:  %s (override)\n", record.NextDueDate.Format("2006-01-02"))
	}

	return nil
}

// parseDate parses an operator-supplied YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}
