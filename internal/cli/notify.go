package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stationops/fleetwatch/pkg/alerts"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Dispatch critical alerts to configured notifiers",
	Long:  `Compute the alert feed and send every critical alert to the Slack and webhook notifiers from config. Intended to run from cron.`,
	RunE:  runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
	notifyCmd.Flags().Bool("warnings", false, "Also dispatch warning-severity alerts")
}

func runNotify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	includeWarnings, _ := cmd.Flags().GetBool("warnings")

	notifiers := initNotifiers(cfg)
	if len(notifiers) == 0 {
		return fmt.Errorf("no notifiers configured")
	}

	logger := newLogger(cfg)

	eng, store, err := initEngine(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	feed, err := eng.GetAlertFeed(cmd.Context(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("compute alert feed: %w", err)
	}

	sent := 0
	for _, a := range feed.Alerts {
		if a.Severity != alerts.SeverityCritical && !(includeWarnings && a.Severity == alerts.SeverityWarning) {
			continue
		}
		for _, n := range notifiers {
			if err := n.Send(cmd.Context(), a); err != nil {
				logger.Error("send alert failed", "notifier", n.Name(), "type", a.Type, "error", err)
				continue
			}
			sent++
		}
	}

	fmt.Printf("Dispatched %d notifications.\n", sent)
	return nil
}
