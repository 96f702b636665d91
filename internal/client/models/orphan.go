package models

import "time"

// Orphan is a speculatively created entity that could not be deleted after
// its form was abandoned.
type Orphan struct {
	Kind      Kind
	EntityID  string
	Reason    string
	CreatedAt time.Time
}

// ResolvedOrphan is a ledger row that was cleared by a successful purge.
type ResolvedOrphan struct {
	Kind       Kind
	EntityID   string
	RecordedAt time.Time
	ResolvedAt time.Time
}
