package alerts

import "context"

// Severity ranks how urgently an alert needs attention.
type Severity string

const (
	SeverityCritical Severity = "critical" // Overdue, expired or failed
	SeverityWarning  Severity = "warning"  // Due or expiring within the warning window
	SeverityInfo     Severity = "info"     // Stock shortages and other advisories
)

// Rank returns the sort position of a severity; lower sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Type labels the condition that produced an alert.
type Type string

const (
	TypeMaintenanceOverdue    Type = "maintenance_overdue"
	TypeMaintenanceDue        Type = "maintenance_due"
	TypeNeverServiced         Type = "never_serviced"
	TypeCertificationExpired  Type = "certification_expired"
	TypeCertificationExpiring Type = "certification_expiring"
	TypeCertificationFailed   Type = "certification_failed"
	TypeLowStock              Type = "low_stock"
)

// Alert is a derived, identity-less finding. Alerts are recomputed on every
// feed read and never persisted.
//
// Urgency is the ordering scalar within a severity tier, oriented so that
// ascending order is most-urgent first: for date-based alerts it is signed
// days to the due/expiration date (most overdue is most negative); for stock
// alerts it is the negated shortage (largest shortage is most negative).
type Alert struct {
	Type        Type     `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Urgency     int      `json:"urgency"`
	Location    string   `json:"location,omitempty"`
}

// Less implements the feed ordering contract: severity rank, then urgency
// ascending, then description for deterministic ties.
func Less(a, b Alert) bool {
	if a.Severity.Rank() != b.Severity.Rank() {
		return a.Severity.Rank() < b.Severity.Rank()
	}
	if a.Urgency != b.Urgency {
		return a.Urgency < b.Urgency
	}
	return a.Description < b.Description
}

// Notifier delivers alerts to external systems.
type Notifier interface {
	// Name returns the notifier identifier.
	Name() string

	// Send delivers an alert. Implementations must be safe for concurrent use.
	Send(ctx context.Context, alert Alert) error
}
