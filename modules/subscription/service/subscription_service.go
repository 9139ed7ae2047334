package service

import (
	"context"
	"time"

	coreEntity "courtbook/core/entity"
	"courtbook/core/errors"
	"courtbook/modules/subscription/dto"
	"courtbook/modules/subscription/entity"
	"courtbook/modules/subscription/repository"

	"github.com/google/uuid"
)

// SubscriptionService handles plan catalog and subscription lifecycle.
// Plan verification/payment review is an admin concern; the service only
// records the submitted evidence and flips status on activation.
type SubscriptionService struct {
	repo repository.SubscriptionRepositoryInterface
}

type SubscriptionServiceInterface interface {
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*entity.Plan, *errors.AppError)
	ListPlans(ctx context.Context, activeOnly bool) ([]entity.Plan, *errors.AppError)
	Submit(ctx context.Context, ownerID uuid.UUID, req *dto.SubmitSubscriptionRequest, proofRef *string) (*dto.SubscriptionResponse, *errors.AppError)
	Activate(ctx context.Context, subscriptionID uuid.UUID) *errors.AppError
	GetMySubscription(ctx context.Context, ownerID uuid.UUID) (*dto.SubscriptionResponse, *errors.AppError)
}

func NewSubscriptionService(repo repository.SubscriptionRepositoryInterface) SubscriptionServiceInterface {
	return &SubscriptionService{repo: repo}
}

func (s *SubscriptionService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*entity.Plan, *errors.AppError) {
	if req.Name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Plan name is required", nil)
	}
	if req.DurationDays <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Plan duration must be positive", nil)
	}

	plan := &entity.Plan{
		Name:              req.Name,
		Price:             req.Price,
		DurationDays:      req.DurationDays,
		MaxVenues:         toLimit(req.MaxVenues),
		MaxCourtsPerVenue: toLimit(req.MaxCourtsPerVenue),
		MaxBookings:       toLimit(req.MaxBookings),
		MaxMessages:       toLimit(req.MaxMessages),
		Features:          req.Features,
		Active:            true,
	}

	created, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create plan", err)
	}
	return created, nil
}

func (s *SubscriptionService) ListPlans(ctx context.Context, activeOnly bool) ([]entity.Plan, *errors.AppError) {
	plans, err := s.repo.ListPlans(ctx, activeOnly)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list plans", err)
	}
	return plans, nil
}

// Submit records a pending_payment subscription with the payment evidence.
// The dates are provisional; activation restarts the cycle clock.
func (s *SubscriptionService) Submit(ctx context.Context, ownerID uuid.UUID, req *dto.SubmitSubscriptionRequest, proofRef *string) (*dto.SubscriptionResponse, *errors.AppError) {
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid plan ID", err)
	}

	plan, err := s.repo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load plan", err)
	}
	if plan == nil || !plan.Active {
		return nil, errors.NewAppError(errors.ErrNotFound, "Plan not found", nil)
	}

	if proofRef == nil && (req.UTR == nil || *req.UTR == "") {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Payment proof or UTR is required", nil)
	}

	now := time.Now()
	sub := &entity.Subscription{
		OwnerID:   ownerID,
		PlanID:    planID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		Status:    entity.SubscriptionStatusPendingPayment,
		ProofRef:  proofRef,
		UTR:       req.UTR,
	}

	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create subscription", err)
	}

	return dto.ToSubscriptionResponse(created, plan), nil
}

func (s *SubscriptionService) Activate(ctx context.Context, subscriptionID uuid.UUID) *errors.AppError {
	if err := s.repo.ActivateSubscription(ctx, subscriptionID); err != nil {
		if err == repository.ErrNoPendingSubscription {
			return errors.NewAppError(errors.ErrNotFound, "No subscription awaiting activation with this ID", err)
		}
		return errors.NewAppError(errors.ErrInternalServer, "Failed to activate subscription", err)
	}
	return nil
}

func (s *SubscriptionService) GetMySubscription(ctx context.Context, ownerID uuid.UUID) (*dto.SubscriptionResponse, *errors.AppError) {
	sub, err := s.repo.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load subscription", err)
	}
	if sub == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "No subscription found", nil)
	}

	plan, err := s.repo.GetPlanByID(ctx, sub.PlanID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load plan", err)
	}

	return dto.ToSubscriptionResponse(sub, plan), nil
}

func toLimit(n *int) coreEntity.Limit {
	if n == nil {
		return coreEntity.Unlimited()
	}
	return coreEntity.Limited(*n)
}
