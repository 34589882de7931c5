package engine

import (
	"fmt"
	"time"

	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/calendar"
	"github.com/stationops/fleetwatch/pkg/model"
)

// certGroupKey identifies one certification lineage. Re-certifying the same
// item at the same location supersedes older rows.
type certGroupKey struct {
	itemID   string
	certType string
	location string
}

// resolveCertifications classifies the authoritative certification per
// (item, type, location) group and returns the resulting alerts. Superseded
// rows never contribute, regardless of their dates or pass flags.
func (e *Engine) resolveCertifications(certs []model.Certification, now time.Time) []alerts.Alert {
	latest := make(map[certGroupKey]model.Certification)
	for _, c := range certs {
		key := certGroupKey{itemID: c.ItemID, certType: c.Type, location: c.Location}
		cur, ok := latest[key]
		if !ok || c.CertificationDate.After(cur.CertificationDate) {
			latest[key] = c
		}
	}

	var out []alerts.Alert
	for _, c := range latest {
		days := calendar.DaysUntil(c.ExpirationDate, now)

		// A failed certification is actionable regardless of its dates.
		if !c.Passed {
			out = append(out, alerts.Alert{
				Type:        alerts.TypeCertificationFailed,
				Severity:    alerts.SeverityCritical,
				Description: fmt.Sprintf("%s certification failed for %s", c.Type, c.ItemName),
				Urgency:     days,
				Location:    c.Location,
			})
		}

		switch {
		case days < 0:
			out = append(out, alerts.Alert{
				Type:        alerts.TypeCertificationExpired,
				Severity:    alerts.SeverityCritical,
				Description: fmt.Sprintf("%s certification for %s expired %d days ago", c.Type, c.ItemName, -days),
				Urgency:     days,
				Location:    c.Location,
			})
		case days <= e.warnWindowDays:
			out = append(out, alerts.Alert{
				Type:        alerts.TypeCertificationExpiring,
				Severity:    alerts.SeverityWarning,
				Description: fmt.Sprintf("%s certification for %s expires in %d days", c.Type, c.ItemName, days),
				Urgency:     days,
				Location:    c.Location,
			})
		}
	}
	return out
}
