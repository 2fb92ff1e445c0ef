package models

import "time"

// RebookingRecord is the append-only audit trail of item relocations: one row
// per relocated item per rebooking operation. Never mutated or deleted.
type RebookingRecord struct {
	ID             int64
	Model          string
	VoyageSource   int64
	BookingSource  int64
	OriginalSource int64
	VoyageDest     int64
	BookingDest    int64
	OriginalDest   int64
	UserID         int64
	Comment        string
	CreatedAt      time.Time
}
