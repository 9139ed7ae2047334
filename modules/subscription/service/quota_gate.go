package service

import (
	"context"
	"time"

	"courtbook/core/errors"
	"courtbook/modules/subscription/repository"

	"github.com/google/uuid"
)

type ActionKind string

const (
	ActionCreateVenue   ActionKind = "create_venue"
	ActionCreateCourt   ActionKind = "create_court"
	ActionAcceptBooking ActionKind = "accept_booking"
	ActionSendMessage   ActionKind = "send_message"
)

// Action describes a gated owner action. VenueID is required for
// create_court, where the ceiling applies per venue.
type Action struct {
	Kind    ActionKind
	VenueID uuid.UUID
}

// QuotaDetails tells the caller which dimension was exhausted so the UI can
// present an upgrade path.
type QuotaDetails struct {
	Dimension string `json:"dimension"`
	Limit     string `json:"limit"`
	Current   int    `json:"current"`
}

// ResourceCounter supplies current row counts for capacity dimensions.
// Venue/court creation compares against existing rows rather than a running
// counter, so there is no increment to serialize.
type ResourceCounter interface {
	CountVenuesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	CountCourtsByVenue(ctx context.Context, venueID uuid.UUID) (int, error)
}

type QuotaGateInterface interface {
	CheckAndConsume(ctx context.Context, ownerID uuid.UUID, action Action) *errors.AppError
}

// QuotaGate evaluates an owner's active subscription against a requested
// action. Denials are business-rule errors, never silent degradation.
type QuotaGate struct {
	repo   repository.SubscriptionRepositoryInterface
	counts ResourceCounter
	now    func() time.Time
}

func NewQuotaGate(repo repository.SubscriptionRepositoryInterface, counts ResourceCounter) QuotaGateInterface {
	return &QuotaGate{repo: repo, counts: counts, now: time.Now}
}

func (g *QuotaGate) CheckAndConsume(ctx context.Context, ownerID uuid.UUID, action Action) *errors.AppError {
	sub, err := g.repo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load subscription", err)
	}
	if sub == nil || !sub.ActiveAt(g.now()) {
		return errors.NewAppError(errors.ErrSubscriptionInactive, "No active subscription; renew to continue", nil)
	}

	plan, err := g.repo.GetPlanByID(ctx, sub.PlanID)
	if err != nil || plan == nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load plan", err)
	}

	switch action.Kind {
	case ActionCreateVenue:
		current, err := g.counts.CountVenuesByOwner(ctx, ownerID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to count venues", err)
		}
		if !plan.MaxVenues.Allows(current) {
			return g.exceeded("venues", plan.MaxVenues.String(), current)
		}
		return nil

	case ActionCreateCourt:
		if action.VenueID == uuid.Nil {
			return errors.NewAppError(errors.ErrInvalidInput, "Venue is required for court quota check", nil)
		}
		current, err := g.counts.CountCourtsByVenue(ctx, action.VenueID)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to count courts", err)
		}
		if !plan.MaxCourtsPerVenue.Allows(current) {
			return g.exceeded("courts", plan.MaxCourtsPerVenue.String(), current)
		}
		return nil

	case ActionAcceptBooking:
		ok, err := g.repo.ConsumeCounter(ctx, ownerID, "bookings_count", plan.MaxBookings)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to consume booking quota", err)
		}
		if !ok {
			// The conditional update also fails if the subscription lapsed
			// between the read above and the increment.
			if plan.MaxBookings.Unlimited {
				return errors.NewAppError(errors.ErrSubscriptionInactive, "Subscription expired", nil)
			}
			return g.exceeded("bookings", plan.MaxBookings.String(), sub.BookingsCount)
		}
		return nil

	case ActionSendMessage:
		ok, err := g.repo.ConsumeCounter(ctx, ownerID, "messages_count", plan.MaxMessages)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "Failed to consume message quota", err)
		}
		if !ok {
			if plan.MaxMessages.Unlimited {
				return errors.NewAppError(errors.ErrSubscriptionInactive, "Subscription expired", nil)
			}
			return g.exceeded("messages", plan.MaxMessages.String(), sub.MessagesCount)
		}
		return nil

	default:
		return errors.NewAppError(errors.ErrInvalidInput, "Unknown quota action", nil)
	}
}

func (g *QuotaGate) exceeded(dimension, limit string, current int) *errors.AppError {
	return errors.NewAppErrorWithDetails(
		errors.ErrQuotaExceeded,
		"Plan limit reached for "+dimension,
		nil,
		QuotaDetails{Dimension: dimension, Limit: limit, Current: current},
	)
}
