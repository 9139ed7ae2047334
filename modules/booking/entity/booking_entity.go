package entity

import (
	"time"

	"courtbook/core/entity"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is the central transactional record. The slot set is immutable
// after creation and the row is never physically deleted; rejected and
// cancelled bookings are retained for audit.
type Booking struct {
	Code         string        `db:"code" json:"code"`
	UserID       uuid.UUID     `db:"user_id" json:"user_id"`
	VenueID      uuid.UUID     `db:"venue_id" json:"venue_id"`
	CourtID      uuid.UUID     `db:"court_id" json:"court_id"`
	SportID      uuid.UUID     `db:"sport_id" json:"sport_id"`
	Amount       int64         `db:"amount" json:"amount"`
	Status       BookingStatus `db:"status" json:"status"`
	ProofRef     *string       `db:"proof_ref" json:"proof_ref,omitempty"`
	UTR          *string       `db:"utr" json:"utr,omitempty"`
	RejectReason *string       `db:"reject_reason" json:"reject_reason,omitempty"`
	ConfirmedAt  *time.Time    `db:"confirmed_at" json:"confirmed_at,omitempty"`
	SlotIDs      []uuid.UUID   `db:"-" json:"slot_ids"`
	entity.BaseEntity
}

// transitions is the whole approval state machine. Anything not listed is
// an invalid transition and must surface as an error, never a no-op.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
}

func (b *Booking) CanTransitionTo(to BookingStatus) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ReleasesSlots reports whether entering the status frees the booking's
// slots. Completion keeps them booked: the time window has passed.
func ReleasesSlots(to BookingStatus) bool {
	return to == BookingStatusRejected || to == BookingStatusCancelled
}

type PaginatedBookingEntity = entity.Pagination[Booking]
