package repository

import (
	"context"
	"database/sql"
	"errors"

	"courtbook/core/database"
	coreEntity "courtbook/core/entity"
	"courtbook/core/logger"
	"courtbook/modules/subscription/entity"

	"github.com/google/uuid"
)

// ErrNoPendingSubscription means the activation target does not exist or
// is not awaiting payment verification.
var ErrNoPendingSubscription = errors.New("subscription is not pending activation")

type SubscriptionRepository struct {
	DB database.Database
}

func NewSubscriptionRepository(db database.Database) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

type SubscriptionRepositoryInterface interface {
	// Plans
	CreatePlan(ctx context.Context, plan *entity.Plan) (*entity.Plan, error)
	GetPlanByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	ListPlans(ctx context.Context, activeOnly bool) ([]entity.Plan, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error)
	GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error)
	ActivateSubscription(ctx context.Context, id uuid.UUID) error
	ConsumeCounter(ctx context.Context, ownerID uuid.UUID, counter string, limit coreEntity.Limit) (bool, error)
}

// ===================== Plans =====================

func (r *SubscriptionRepository) CreatePlan(ctx context.Context, plan *entity.Plan) (*entity.Plan, error) {
	query := `
		INSERT INTO plans (name, price, duration_days, max_venues, max_courts_per_venue, max_bookings, max_messages, features, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, price, duration_days, max_venues, max_courts_per_venue, max_bookings, max_messages, features, active, created_at, updated_at
	`

	var created entity.Plan
	err := r.DB.GetContext(ctx, &created, query,
		plan.Name, plan.Price, plan.DurationDays,
		plan.MaxVenues, plan.MaxCourtsPerVenue, plan.MaxBookings, plan.MaxMessages,
		plan.Features, plan.Active)
	if err != nil {
		logger.Error("SubscriptionRepository:CreatePlan", err)
		return nil, err
	}

	return &created, nil
}

func (r *SubscriptionRepository) GetPlanByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	query := `
		SELECT id, name, price, duration_days, max_venues, max_courts_per_venue, max_bookings, max_messages, features, active, created_at, updated_at
		FROM plans WHERE id = $1
	`

	var plan entity.Plan
	err := r.DB.GetContext(ctx, &plan, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SubscriptionRepository:GetPlanByID", err)
		return nil, err
	}

	return &plan, nil
}

func (r *SubscriptionRepository) ListPlans(ctx context.Context, activeOnly bool) ([]entity.Plan, error) {
	query := `
		SELECT id, name, price, duration_days, max_venues, max_courts_per_venue, max_bookings, max_messages, features, active, created_at, updated_at
		FROM plans
	`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY price ASC`

	var plans []entity.Plan
	err := r.DB.SelectContext(ctx, &plans, query)
	if err != nil {
		logger.Error("SubscriptionRepository:ListPlans", err)
		return nil, err
	}

	return plans, nil
}

// ===================== Subscriptions =====================

func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, sub *entity.Subscription) (*entity.Subscription, error) {
	query := `
		INSERT INTO subscriptions (owner_id, plan_id, start_date, end_date, status, bookings_count, messages_count, proof_ref, utr)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, $7)
		RETURNING id, owner_id, plan_id, start_date, end_date, status, bookings_count, messages_count, proof_ref, utr, created_at, updated_at
	`

	var created entity.Subscription
	err := r.DB.GetContext(ctx, &created, query,
		sub.OwnerID, sub.PlanID, sub.StartDate, sub.EndDate, sub.Status, sub.ProofRef, sub.UTR)
	if err != nil {
		logger.Error("SubscriptionRepository:CreateSubscription", err)
		return nil, err
	}

	return &created, nil
}

// GetActiveByOwner returns the subscription the quota gate should judge.
// Active rows win over a pending_payment renewal whose provisional end_date
// is later, so submitting a renewal early never blocks the live plan.
func (r *SubscriptionRepository) GetActiveByOwner(ctx context.Context, ownerID uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT id, owner_id, plan_id, start_date, end_date, status, bookings_count, messages_count, proof_ref, utr, created_at, updated_at
		FROM subscriptions
		WHERE owner_id = $1 AND status != 'expired'
		ORDER BY (status = 'active') DESC, end_date DESC
		LIMIT 1
	`

	var sub entity.Subscription
	err := r.DB.GetContext(ctx, &sub, query, ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SubscriptionRepository:GetActiveByOwner", err)
		return nil, err
	}

	return &sub, nil
}

func (r *SubscriptionRepository) ActivateSubscription(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE subscriptions
		SET status = 'active', start_date = now(), end_date = now() + (SELECT duration_days FROM plans WHERE plans.id = subscriptions.plan_id) * interval '1 day', updated_at = now()
		WHERE id = $1 AND status = 'pending_payment'
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("SubscriptionRepository:ActivateSubscription", err)
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		logger.Error("SubscriptionRepository:ActivateSubscription - RowsAffected", err)
		return err
	}
	if rows == 0 {
		return ErrNoPendingSubscription
	}
	return nil
}

// ConsumeCounter atomically increments a cycle counter provided the plan
// ceiling is not reached. A single conditional UPDATE serializes concurrent
// check-and-increment calls per owner; false means the ceiling was hit by
// this or a concurrent request.
func (r *SubscriptionRepository) ConsumeCounter(ctx context.Context, ownerID uuid.UUID, counter string, limit coreEntity.Limit) (bool, error) {
	var query string
	switch counter {
	case "bookings_count":
		query = `
			UPDATE subscriptions
			SET bookings_count = bookings_count + 1, updated_at = now()
			WHERE owner_id = $1 AND status = 'active' AND end_date >= now()
			  AND ($2::int IS NULL OR bookings_count < $2)
		`
	case "messages_count":
		query = `
			UPDATE subscriptions
			SET messages_count = messages_count + 1, updated_at = now()
			WHERE owner_id = $1 AND status = 'active' AND end_date >= now()
			  AND ($2::int IS NULL OR messages_count < $2)
		`
	default:
		logger.Error("SubscriptionRepository:ConsumeCounter:UnknownCounter", "counter", counter)
		return false, sql.ErrNoRows
	}

	res, err := r.DB.SQLx().ExecContext(ctx, query, ownerID, limit)
	if err != nil {
		logger.Error("SubscriptionRepository:ConsumeCounter", err)
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		logger.Error("SubscriptionRepository:ConsumeCounter - RowsAffected", err)
		return false, err
	}

	return rows > 0, nil
}
