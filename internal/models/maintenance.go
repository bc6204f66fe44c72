package models

import "time"

// Priority is the urgency bucket for a pending maintenance action.
type Priority string

const (
	PriorityHigh   Priority = "High Priority"
	PriorityMedium Priority = "Medium Priority"

	// Maintenance applying within this many days is considered urgent.
	HighPriorityDays = 7
)

// MaintenanceRecord represents one pending maintenance action detail
// on an RDS instance. Records are rebuilt on every scan and carry no
// identity beyond their fields.
type MaintenanceRecord struct {
	InstanceID     string
	Action         string
	IsWriter       bool
	ApplyDate      time.Time
	Description    string
	DaysUntilApply int
	Region         string
}

// Priority classifies the record by how soon the action will be
// force-applied. The 7-day boundary is inclusive.
func (r MaintenanceRecord) Priority() Priority {
	if r.DaysUntilApply <= HighPriorityDays {
		return PriorityHigh
	}
	return PriorityMedium
}
