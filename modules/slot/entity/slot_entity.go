package entity

import (
	"time"

	"courtbook/core/entity"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusBlocked   SlotStatus = "blocked"
)

// Slot is a fixed bookable time window on a court. Price is snapshotted
// from the court's hourly price at generation time so later price changes
// never drift into existing bookings. Slots referenced by historical
// bookings are blocked, never deleted.
type Slot struct {
	CourtID     uuid.UUID  `db:"court_id" json:"court_id"`
	StartTime   time.Time  `db:"start_time" json:"start_time"`
	EndTime     time.Time  `db:"end_time" json:"end_time"`
	Price       int64      `db:"price" json:"price"`
	Status      SlotStatus `db:"status" json:"status"`
	BlockReason *string    `db:"block_reason" json:"block_reason,omitempty"`
	entity.BaseEntity
}
