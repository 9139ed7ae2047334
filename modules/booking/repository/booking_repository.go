package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"courtbook/core/database"
	"courtbook/core/logger"
	"courtbook/core/params"
	"courtbook/modules/booking/entity"
	slotEntity "courtbook/modules/slot/entity"
	slotRepository "courtbook/modules/slot/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateCode means the generated booking code collided with an
// existing one. The caller must fail loudly, never overwrite.
var ErrDuplicateCode = errors.New("booking code already exists")

// ErrStatusConflict means the booking's status changed between the
// caller's read and the conditional update, so the decided transition no
// longer applies.
var ErrStatusConflict = errors.New("booking status changed concurrently")

// WrongCourtError reports requested slots that exist but belong to a
// different court than the booking targets. This is a malformed request,
// not a reservation conflict.
type WrongCourtError struct {
	SlotIDs []uuid.UUID
}

func (e *WrongCourtError) Error() string {
	return "slots belong to a different court"
}

type BookingRepository struct {
	DB       database.Database
	slotRepo slotRepository.SlotRepositoryInterface
}

func NewBookingRepository(db database.Database, slotRepo slotRepository.SlotRepositoryInterface) *BookingRepository {
	return &BookingRepository{DB: db, slotRepo: slotRepo}
}

type BookingRepositoryInterface interface {
	CreateWithSlots(ctx context.Context, booking *entity.Booking) ([]uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	UpdateStatus(ctx context.Context, booking *entity.Booking, from entity.BookingStatus, releaseSlots bool) error
	GetByUser(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, error)
}

// CreateWithSlots reserves the slots and persists the booking as one
// atomic unit of work. It locks the slot rows in id order, verifies every
// one is still available and on the requested court, flips them to booked
// and inserts the booking, all inside a single transaction. On conflict it
// returns the ids that were not available; nothing is left half-reserved.
func (r *BookingRepository) CreateWithSlots(ctx context.Context, booking *entity.Booking) ([]uuid.UUID, error) {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("BookingRepository:CreateWithSlots - BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	locked, err := r.slotRepo.LockForReserve(ctx, tx, booking.SlotIDs)
	if err != nil {
		return nil, err
	}

	lockedByID := make(map[uuid.UUID]slotEntity.Slot, len(locked))
	for _, slot := range locked {
		lockedByID[slot.ID] = slot
	}

	var conflicts, wrongCourt []uuid.UUID
	var amount int64
	for _, id := range booking.SlotIDs {
		slot, ok := lockedByID[id]
		if !ok || slot.Status != slotEntity.SlotStatusAvailable {
			conflicts = append(conflicts, id)
			continue
		}
		if slot.CourtID != booking.CourtID {
			wrongCourt = append(wrongCourt, id)
			continue
		}
		amount += slot.Price
	}
	if len(wrongCourt) > 0 {
		return nil, &WrongCourtError{SlotIDs: wrongCourt}
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	// The locked rows are authoritative for the amount; the service's
	// pre-read only exists for early validation feedback.
	booking.Amount = amount

	if err := r.slotRepo.MarkBookedTx(ctx, tx, booking.SlotIDs); err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO bookings (code, user_id, venue_id, court_id, sport_id, amount, status, proof_ref, utr)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowxContext(ctx, insertQuery,
		booking.Code, booking.UserID, booking.VenueID, booking.CourtID, booking.SportID,
		booking.Amount, booking.Status, booking.ProofRef, booking.UTR,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			logger.Error("BookingRepository:CreateWithSlots - DuplicateCode", "code", booking.Code)
			return nil, ErrDuplicateCode
		}
		logger.Error("BookingRepository:CreateWithSlots - Insert", err)
		return nil, err
	}

	slotInsert := `INSERT INTO booking_slots (booking_id, slot_id, position) VALUES ($1, $2, $3)`
	for i, slotID := range booking.SlotIDs {
		if _, err := tx.ExecContext(ctx, slotInsert, booking.ID, slotID, i); err != nil {
			logger.Error("BookingRepository:CreateWithSlots - InsertSlot", err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("BookingRepository:CreateWithSlots - Commit", err)
		return nil, err
	}

	return nil, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, code, user_id, venue_id, court_id, sport_id, amount, status, proof_ref, utr, reject_reason, confirmed_at, created_at, updated_at
		FROM bookings WHERE id = $1
	`

	var booking entity.Booking
	err := r.DB.GetContext(ctx, &booking, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}

	if err := r.loadSlotIDs(ctx, &booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *BookingRepository) loadSlotIDs(ctx context.Context, booking *entity.Booking) error {
	query := `SELECT slot_id FROM booking_slots WHERE booking_id = $1 ORDER BY position ASC`

	var ids []uuid.UUID
	err := r.DB.SelectContext(ctx, &ids, query, booking.ID)
	if err != nil {
		logger.Error("BookingRepository:loadSlotIDs", err)
		return err
	}

	booking.SlotIDs = ids
	return nil
}

// UpdateStatus persists a decided transition. The update is conditional on
// the status the caller decided from, so two concurrent decisions on the
// same booking cannot both land; the loser gets ErrStatusConflict. When the
// transition releases slots the release happens in the same transaction, so
// a rejected booking can never keep its slots booked.
func (r *BookingRepository) UpdateStatus(ctx context.Context, booking *entity.Booking, from entity.BookingStatus, releaseSlots bool) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("BookingRepository:UpdateStatus - BeginTx", err)
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE bookings
		SET status = $2, reject_reason = $3, confirmed_at = $4, updated_at = now()
		WHERE id = $1 AND status = $5
	`

	res, err := tx.ExecContext(ctx, query, booking.ID, booking.Status, booking.RejectReason, booking.ConfirmedAt, from)
	if err != nil {
		logger.Error("BookingRepository:UpdateStatus", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		logger.Error("BookingRepository:UpdateStatus - RowsAffected", err)
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}

	if releaseSlots {
		releaseQuery := `
			UPDATE slots
			SET status = 'available', updated_at = now()
			WHERE id = ANY($1) AND status = 'booked'
		`
		if _, err := tx.ExecContext(ctx, releaseQuery, pq.Array(booking.SlotIDs)); err != nil {
			logger.Error("BookingRepository:UpdateStatus - Release", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("BookingRepository:UpdateStatus - Commit", err)
		return err
	}

	return nil
}

func (r *BookingRepository) GetByUser(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	baseQuery := `FROM bookings WHERE user_id = $1`
	args := []any{userID}

	if p.Status != "" {
		baseQuery += ` AND status = $2`
		args = append(args, p.Status)
	}

	return r.paginate(ctx, baseQuery, args, p)
}

// GetByOwner lists bookings across all of the owner's venues, pending
// first so the approval inbox surfaces work.
func (r *BookingRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	baseQuery := `FROM bookings WHERE venue_id IN (SELECT id FROM venues WHERE owner_id = $1)`
	args := []any{ownerID}

	if p.Status != "" {
		baseQuery += ` AND status = $2`
		args = append(args, p.Status)
	}

	return r.paginate(ctx, baseQuery, args, p)
}

func (r *BookingRepository) paginate(ctx context.Context, baseQuery string, args []any, p params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	var totalItems int
	err := r.DB.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, args...)
	if err != nil {
		logger.Error("BookingRepository:paginate - Count", err)
		return nil, err
	}

	offset := (p.PageNumber - 1) * p.PageSize
	limitPos := len(args) + 1

	query := `
		SELECT id, code, user_id, venue_id, court_id, sport_id, amount, status, proof_ref, utr, reject_reason, confirmed_at, created_at, updated_at
	` + baseQuery + `
		ORDER BY CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC
		LIMIT $` + strconv.Itoa(limitPos) + ` OFFSET $` + strconv.Itoa(limitPos+1)

	args = append(args, p.PageSize, offset)

	var bookings []entity.Booking
	err = r.DB.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		logger.Error("BookingRepository:paginate - Select", err)
		return nil, err
	}

	for i := range bookings {
		if err := r.loadSlotIDs(ctx, &bookings[i]); err != nil {
			return nil, err
		}
	}

	return &entity.PaginatedBookingEntity{
		Items:      bookings,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}
