package service

import (
	"context"
	"testing"
	"time"

	coreEntity "courtbook/core/entity"
	"courtbook/core/errors"
	"courtbook/modules/subscription/entity"

	"github.com/google/uuid"
)

type fakeSubscriptionRepo struct {
	sub          *entity.Subscription
	plan         *entity.Plan
	consumeOK    bool
	consumeCalls []string
	activateErr  error
}

func (f *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.Plan) (*entity.Plan, error) {
	return plan, nil
}

func (f *fakeSubscriptionRepo) GetPlanByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	return f.plan, nil
}

func (f *fakeSubscriptionRepo) ListPlans(ctx context.Context, activeOnly bool) ([]entity.Plan, error) {
	return nil, nil
}

func (f *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	return sub, nil
}

func (f *fakeSubscriptionRepo) GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error) {
	return f.sub, nil
}

func (f *fakeSubscriptionRepo) ActivateSubscription(ctx context.Context, id uuid.UUID) error {
	return f.activateErr
}

func (f *fakeSubscriptionRepo) ConsumeCounter(ctx context.Context, ownerID uuid.UUID, counter string, limit coreEntity.Limit) (bool, error) {
	f.consumeCalls = append(f.consumeCalls, counter)
	return f.consumeOK, nil
}

type fakeResourceCounter struct {
	venues int
	courts int
}

func (f *fakeResourceCounter) CountVenuesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return f.venues, nil
}

func (f *fakeResourceCounter) CountCourtsByVenue(ctx context.Context, venueID uuid.UUID) (int, error) {
	return f.courts, nil
}

func testGate(repo *fakeSubscriptionRepo, counts *fakeResourceCounter, now time.Time) *QuotaGate {
	return &QuotaGate{repo: repo, counts: counts, now: func() time.Time { return now }}
}

func activeSub(now time.Time, planID uuid.UUID) *entity.Subscription {
	return &entity.Subscription{
		PlanID:    planID,
		StartDate: now.AddDate(0, 0, -5),
		EndDate:   now.AddDate(0, 0, 25),
		Status:    entity.SubscriptionStatusActive,
	}
}

func TestQuotaGateNoSubscription(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	gate := testGate(&fakeSubscriptionRepo{}, &fakeResourceCounter{}, now)

	appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionCreateVenue})
	if appErr == nil || appErr.Code != errors.ErrSubscriptionInactive {
		t.Fatalf("expected subscription inactive, got %v", appErr)
	}
}

func TestQuotaGateExpiredSubscription(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	sub := activeSub(now, planID)
	sub.EndDate = now.AddDate(0, 0, -1)

	gate := testGate(&fakeSubscriptionRepo{sub: sub}, &fakeResourceCounter{}, now)

	appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionAcceptBooking})
	if appErr == nil || appErr.Code != errors.ErrSubscriptionInactive {
		t.Fatalf("expected subscription inactive, got %v", appErr)
	}
}

func TestQuotaGateVenueLimitReached(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	repo := &fakeSubscriptionRepo{
		sub: activeSub(now, planID),
		plan: &entity.Plan{
			MaxVenues: coreEntity.Limited(1),
		},
	}
	gate := testGate(repo, &fakeResourceCounter{venues: 1}, now)

	appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionCreateVenue})
	if appErr == nil || appErr.Code != errors.ErrQuotaExceeded {
		t.Fatalf("expected quota exceeded, got %v", appErr)
	}

	details, ok := appErr.Details.(QuotaDetails)
	if !ok {
		t.Fatalf("expected quota details, got %T", appErr.Details)
	}
	if details.Dimension != "venues" || details.Limit != "1" || details.Current != 1 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestQuotaGateVenueUnderLimit(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	repo := &fakeSubscriptionRepo{
		sub: activeSub(now, planID),
		plan: &entity.Plan{
			MaxVenues: coreEntity.Limited(3),
		},
	}
	gate := testGate(repo, &fakeResourceCounter{venues: 2}, now)

	if appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionCreateVenue}); appErr != nil {
		t.Fatalf("expected allowed, got %v", appErr)
	}
}

func TestQuotaGateUnlimitedVenues(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	repo := &fakeSubscriptionRepo{
		sub: activeSub(now, planID),
		plan: &entity.Plan{
			MaxVenues: coreEntity.Unlimited(),
		},
	}
	gate := testGate(repo, &fakeResourceCounter{venues: 1000}, now)

	if appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionCreateVenue}); appErr != nil {
		t.Fatalf("expected allowed, got %v", appErr)
	}
}

func TestQuotaGateCourtLimitRequiresVenue(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	repo := &fakeSubscriptionRepo{
		sub:  activeSub(now, planID),
		plan: &entity.Plan{MaxCourtsPerVenue: coreEntity.Limited(4)},
	}
	gate := testGate(repo, &fakeResourceCounter{}, now)

	appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionCreateCourt})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input without venue id, got %v", appErr)
	}
}

func TestQuotaGateBookingCounterConsumed(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	repo := &fakeSubscriptionRepo{
		sub:       activeSub(now, planID),
		plan:      &entity.Plan{MaxBookings: coreEntity.Limited(100)},
		consumeOK: true,
	}
	gate := testGate(repo, &fakeResourceCounter{}, now)

	if appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionAcceptBooking}); appErr != nil {
		t.Fatalf("expected allowed, got %v", appErr)
	}
	if len(repo.consumeCalls) != 1 || repo.consumeCalls[0] != "bookings_count" {
		t.Fatalf("expected one bookings_count consume, got %v", repo.consumeCalls)
	}
}

func TestQuotaGateBookingCeilingHit(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	planID := uuid.New()
	sub := activeSub(now, planID)
	sub.BookingsCount = 50
	repo := &fakeSubscriptionRepo{
		sub:       sub,
		plan:      &entity.Plan{MaxBookings: coreEntity.Limited(50)},
		consumeOK: false,
	}
	gate := testGate(repo, &fakeResourceCounter{}, now)

	appErr := gate.CheckAndConsume(context.Background(), uuid.New(), Action{Kind: ActionAcceptBooking})
	if appErr == nil || appErr.Code != errors.ErrQuotaExceeded {
		t.Fatalf("expected quota exceeded, got %v", appErr)
	}

	details, ok := appErr.Details.(QuotaDetails)
	if !ok {
		t.Fatalf("expected quota details, got %T", appErr.Details)
	}
	if details.Dimension != "bookings" || details.Limit != "50" {
		t.Fatalf("unexpected details: %+v", details)
	}
}
