package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/alerts"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show the current alert feed",
	Long:  `Compute and print the ordered alert feed: overdue and upcoming maintenance, certification expirations, and stock shortages.`,
	RunE:  runAlerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.Flags().Bool("no-color", false, "Disable severity colouring")
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}

	eng, store, err := initEngine(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	feed, err := eng.GetAlertFeed(cmd.Context(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("compute alert feed: %w", err)
	}

	if len(feed.Degraded) > 0 {
		color.Red("Feed degraded: could not read %s", strings.Join(feed.Degraded, ", "))
	}

	if len(feed.Alerts) == 0 {
		fmt.Println("All clear: nothing needs attention.")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SEVERITY\tTYPE\tURGENCY\tLOCATION\tDESCRIPTION\n")
		for _, a := range feed.Alerts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				colorSeverity(a.Severity), a.Type, formatUrgency(a), a.Location, a.Description)
		}
		w.Flush()
	}

	if len(feed.Indeterminate) > 0 {
		fmt.Printf("\nUsage-based schedules (no due date, manual tracking required):\n")
		for _, s := range feed.Indeterminate {
			fmt.Printf("  %s (%s) every %d %s\n", s.Title, s.TargetLabel, s.Interval.Value, s.Interval.Type)
		}
	}

	return nil
}

func colorSeverity(s alerts.Severity) string {
	switch s {
	case alerts.SeverityCritical:
		return color.RedString(string(s))
	case alerts.SeverityWarning:
		return color.YellowString(string(s))
	default:
		return color.CyanString(string(s))
	}
}

func formatUrgency(a alerts.Alert) string {
	if a.Type == alerts.TypeLowStock {
		return fmt.Sprintf("short %d", -a.Urgency)
	}
	if a.Urgency < 0 {
		return fmt.Sprintf("%d days over", -a.Urgency)
	}
	return fmt.Sprintf("%d days", a.Urgency)
}
