package engine

import (
	"fmt"

	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/model"
)

// resolveStock emits a low-stock alert for each (item, location) below its
// minimum. Urgency is the negated shortage so that the largest shortage sorts
// first under the feed's ascending-urgency rule.
func (e *Engine) resolveStock(levels []model.StockLevel) []alerts.Alert {
	var out []alerts.Alert
	for _, l := range levels {
		shortage := l.Shortage()
		if shortage <= 0 {
			continue
		}
		out = append(out, alerts.Alert{
			Type:     alerts.TypeLowStock,
			Severity: alerts.SeverityInfo,
			Description: fmt.Sprintf("%s low at %s: %d on hand, minimum %d",
				l.ItemName, l.Location, l.Quantity, l.MinQuantity),
			Urgency:  -shortage,
			Location: l.Location,
		})
	}
	return out
}
