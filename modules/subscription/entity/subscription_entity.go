package entity

import (
	"time"

	"courtbook/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive         SubscriptionStatus = "active"
	SubscriptionStatusExpired        SubscriptionStatus = "expired"
	SubscriptionStatusPendingPayment SubscriptionStatus = "pending_payment"
)

// Plan is an admin-managed catalog entry. Read-only from the booking core;
// only the quota gate consumes its limits.
type Plan struct {
	Name              string         `db:"name" json:"name"`
	Price             int64          `db:"price" json:"price"`
	DurationDays      int            `db:"duration_days" json:"duration_days"`
	MaxVenues         entity.Limit   `db:"max_venues" json:"max_venues"`
	MaxCourtsPerVenue entity.Limit   `db:"max_courts_per_venue" json:"max_courts_per_venue"`
	MaxBookings       entity.Limit   `db:"max_bookings" json:"max_bookings"`
	MaxMessages       entity.Limit   `db:"max_messages" json:"max_messages"`
	Features          pq.StringArray `db:"features" json:"features"`
	Active            bool           `db:"active" json:"active"`
	entity.BaseEntity
}

// Subscription binds an owner to a plan for a date range. The running
// counters are reset when a new billing cycle starts.
type Subscription struct {
	OwnerID       uuid.UUID          `db:"owner_id" json:"owner_id"`
	PlanID        uuid.UUID          `db:"plan_id" json:"plan_id"`
	StartDate     time.Time          `db:"start_date" json:"start_date"`
	EndDate       time.Time          `db:"end_date" json:"end_date"`
	Status        SubscriptionStatus `db:"status" json:"status"`
	BookingsCount int                `db:"bookings_count" json:"bookings_count"`
	MessagesCount int                `db:"messages_count" json:"messages_count"`
	ProofRef      *string            `db:"proof_ref" json:"proof_ref,omitempty"`
	UTR           *string            `db:"utr" json:"utr,omitempty"`
	entity.BaseEntity
}

// ActiveAt reports whether the subscription can gate actions at the given
// instant. Expiry is evaluated at check time, not by a background job.
func (s *Subscription) ActiveAt(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && !now.After(s.EndDate)
}

type PaginatedPlanEntity = entity.Pagination[Plan]
