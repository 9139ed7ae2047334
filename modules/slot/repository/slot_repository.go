package repository

import (
	"context"
	"time"

	"courtbook/core/database"
	"courtbook/core/logger"
	"courtbook/modules/slot/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type SlotRepository struct {
	DB database.Database
}

func NewSlotRepository(db database.Database) *SlotRepository {
	return &SlotRepository{DB: db}
}

type SlotRepositoryInterface interface {
	GetByCourtAndRange(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]entity.Slot, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Slot, error)
	BulkInsert(ctx context.Context, slots []entity.Slot) (int, error)
	Release(ctx context.Context, ids []uuid.UUID) (int64, error)
	Block(ctx context.Context, ids []uuid.UUID, reason string) (int64, error)
	Unblock(ctx context.Context, ids []uuid.UUID) (int64, error)

	LockForReserve(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) ([]entity.Slot, error)
	MarkBookedTx(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) error
}

func (r *SlotRepository) GetByCourtAndRange(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	query := `
		SELECT id, court_id, start_time, end_time, price, status, block_reason, created_at, updated_at
		FROM slots
		WHERE court_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time ASC
	`

	var slots []entity.Slot
	err := r.DB.SelectContext(ctx, &slots, query, courtID, from, to)
	if err != nil {
		logger.Error("SlotRepository:GetByCourtAndRange", err)
		return nil, err
	}

	return slots, nil
}

func (r *SlotRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Slot, error) {
	if len(ids) == 0 {
		return []entity.Slot{}, nil
	}

	query := `
		SELECT id, court_id, start_time, end_time, price, status, block_reason, created_at, updated_at
		FROM slots
		WHERE id = ANY($1)
		ORDER BY start_time ASC
	`

	var slots []entity.Slot
	err := r.DB.SelectContext(ctx, &slots, query, pq.Array(ids))
	if err != nil {
		logger.Error("SlotRepository:GetByIDs", err)
		return nil, err
	}

	return slots, nil
}

// BulkInsert writes generated slots, skipping windows that already exist
// for the court. Returns the number of new rows.
func (r *SlotRepository) BulkInsert(ctx context.Context, slots []entity.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO slots (court_id, start_time, end_time, price, status)
		VALUES ($1, $2, $3, $4, 'available')
		ON CONFLICT (court_id, start_time) DO NOTHING
	`

	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("SlotRepository:BulkInsert - BeginTx", err)
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, slot := range slots {
		res, err := tx.ExecContext(ctx, query, slot.CourtID, slot.StartTime, slot.EndTime, slot.Price)
		if err != nil {
			logger.Error("SlotRepository:BulkInsert - Insert", err)
			return 0, err
		}
		if rows, err := res.RowsAffected(); err == nil {
			inserted += int(rows)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("SlotRepository:BulkInsert - Commit", err)
		return 0, err
	}

	return inserted, nil
}

// Release moves booked slots back to available. Releasing a slot that is
// already available is a no-op, which keeps compensating actions safe to
// deliver more than once.
func (r *SlotRepository) Release(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE slots
		SET status = 'available', updated_at = now()
		WHERE id = ANY($1) AND status = 'booked'
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.Error("SlotRepository:Release", err)
		return 0, err
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

// Block removes slots from the bookable pool independent of any booking.
// Booked slots are left untouched; the owner must decide the booking first.
func (r *SlotRepository) Block(ctx context.Context, ids []uuid.UUID, reason string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE slots
		SET status = 'blocked', block_reason = $2, updated_at = now()
		WHERE id = ANY($1) AND status = 'available'
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, pq.Array(ids), reason)
	if err != nil {
		logger.Error("SlotRepository:Block", err)
		return 0, err
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

func (r *SlotRepository) Unblock(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE slots
		SET status = 'available', block_reason = NULL, updated_at = now()
		WHERE id = ANY($1) AND status = 'blocked'
	`

	res, err := r.DB.SQLx().ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.Error("SlotRepository:Unblock", err)
		return 0, err
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

// LockForReserve locks the requested slots inside the caller's transaction.
// Ids are locked in primary-key order so two overlapping multi-slot
// requests cannot deadlock each other.
func (r *SlotRepository) LockForReserve(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) ([]entity.Slot, error) {
	query := `
		SELECT id, court_id, start_time, end_time, price, status, block_reason, created_at, updated_at
		FROM slots
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	var slots []entity.Slot
	err := tx.SelectContext(ctx, &slots, query, pq.Array(ids))
	if err != nil {
		logger.Error("SlotRepository:LockForReserve", err)
		return nil, err
	}

	return slots, nil
}

func (r *SlotRepository) MarkBookedTx(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) error {
	query := `
		UPDATE slots
		SET status = 'booked', updated_at = now()
		WHERE id = ANY($1)
	`

	if _, err := tx.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		logger.Error("SlotRepository:MarkBookedTx", err)
		return err
	}
	return nil
}
