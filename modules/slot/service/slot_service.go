package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"courtbook/core/cache"
	"courtbook/core/constants"
	"courtbook/core/errors"
	"courtbook/modules/slot/dto"
	"courtbook/modules/slot/entity"
	"courtbook/modules/slot/repository"
	venueEntity "courtbook/modules/venue/entity"
	venueRepository "courtbook/modules/venue/repository"

	"github.com/google/uuid"
)

// SlotService is the slot store: availability reads, owner slot tooling,
// and the idempotent release path used when bookings are rejected or
// cancelled. The atomic reserve lives in the booking repository because it
// shares a transaction with the booking insert.
type SlotService struct {
	repo      repository.SlotRepositoryInterface
	venueRepo venueRepository.VenueRepositoryInterface
	cache     cache.Cache
}

type SlotServiceInterface interface {
	GetAvailability(ctx context.Context, courtID uuid.UUID, from, to time.Time) (*dto.AvailabilityResponse, *errors.AppError)
	GenerateSlots(ctx context.Context, courtID, ownerID uuid.UUID, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, *errors.AppError)
	Block(ctx context.Context, ownerID uuid.UUID, slotIDs []uuid.UUID, reason string) *errors.AppError
	Unblock(ctx context.Context, ownerID uuid.UUID, slotIDs []uuid.UUID) *errors.AppError
	Release(ctx context.Context, slotIDs []uuid.UUID) *errors.AppError
	GetByIDs(ctx context.Context, slotIDs []uuid.UUID) ([]entity.Slot, *errors.AppError)
	InvalidateAvailability(ctx context.Context, courtID uuid.UUID)
}

func NewSlotService(repo repository.SlotRepositoryInterface, venueRepo venueRepository.VenueRepositoryInterface, c cache.Cache) SlotServiceInterface {
	return &SlotService{repo: repo, venueRepo: venueRepo, cache: c}
}

func availabilityCacheKey(courtID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("slots:%s:%s:%s", courtID, from.Format("20060102"), to.Format("20060102"))
}

func (s *SlotService) GetAvailability(ctx context.Context, courtID uuid.UUID, from, to time.Time) (*dto.AvailabilityResponse, *errors.AppError) {
	if !to.After(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date_to must be after date_from", nil)
	}

	key := availabilityCacheKey(courtID, from, to)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var resp dto.AvailabilityResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	slots, err := s.repo.GetByCourtAndRange(ctx, courtID, from, to)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load availability", err)
	}

	resp := &dto.AvailabilityResponse{CourtID: courtID.String(), Slots: slots}
	if data, err := json.Marshal(resp); err == nil {
		s.cache.Set(ctx, key, string(data), constants.AvailabilityCacheTTL*time.Second)
	}

	return resp, nil
}

// GenerateSlots pre-creates slots for a date range using the venue's
// operating hours. Windows that already exist are skipped, so regenerating
// a range never touches slots referenced by bookings.
func (s *SlotService) GenerateSlots(ctx context.Context, courtID, ownerID uuid.UUID, req *dto.GenerateSlotsRequest) (*dto.GenerateSlotsResponse, *errors.AppError) {
	court, venue, appErr := s.ownedCourt(ctx, courtID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	from, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date_from", err)
	}
	to, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid date_to", err)
	}
	if to.Before(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date_to must not be before date_from", nil)
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = 60
	}
	if slotMinutes > 24*60 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "slot_minutes too large", nil)
	}

	step := time.Duration(slotMinutes) * time.Minute
	price := court.HourlyPrice * int64(slotMinutes) / 60

	var slots []entity.Slot
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		open := time.Date(day.Year(), day.Month(), day.Day(), venue.OpenHour, 0, 0, 0, time.UTC)
		close := time.Date(day.Year(), day.Month(), day.Day(), venue.CloseHour, 0, 0, 0, time.UTC)
		for start := open; !start.Add(step).After(close); start = start.Add(step) {
			slots = append(slots, entity.Slot{
				CourtID:   courtID,
				StartTime: start,
				EndTime:   start.Add(step),
				Price:     price,
				Status:    entity.SlotStatusAvailable,
			})
		}
	}

	created, err := s.repo.BulkInsert(ctx, slots)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate slots", err)
	}

	s.InvalidateAvailability(ctx, courtID)

	return &dto.GenerateSlotsResponse{Created: created, Skipped: len(slots) - created}, nil
}

func (s *SlotService) Block(ctx context.Context, ownerID uuid.UUID, slotIDs []uuid.UUID, reason string) *errors.AppError {
	if reason == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Block reason is required", nil)
	}

	slots, appErr := s.ownedSlots(ctx, ownerID, slotIDs)
	if appErr != nil {
		return appErr
	}

	if _, err := s.repo.Block(ctx, slotIDs, reason); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to block slots", err)
	}

	for _, slot := range slots {
		s.InvalidateAvailability(ctx, slot.CourtID)
	}
	return nil
}

func (s *SlotService) Unblock(ctx context.Context, ownerID uuid.UUID, slotIDs []uuid.UUID) *errors.AppError {
	slots, appErr := s.ownedSlots(ctx, ownerID, slotIDs)
	if appErr != nil {
		return appErr
	}

	if _, err := s.repo.Unblock(ctx, slotIDs); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to unblock slots", err)
	}

	for _, slot := range slots {
		s.InvalidateAvailability(ctx, slot.CourtID)
	}
	return nil
}

// Release is the compensating action after rejection/cancellation. It is
// idempotent: releasing already-available slots changes nothing.
func (s *SlotService) Release(ctx context.Context, slotIDs []uuid.UUID) *errors.AppError {
	slots, err := s.repo.GetByIDs(ctx, slotIDs)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load slots for release", err)
	}

	if _, err := s.repo.Release(ctx, slotIDs); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to release slots", err)
	}

	seen := map[uuid.UUID]bool{}
	for _, slot := range slots {
		if !seen[slot.CourtID] {
			seen[slot.CourtID] = true
			s.InvalidateAvailability(ctx, slot.CourtID)
		}
	}
	return nil
}

func (s *SlotService) GetByIDs(ctx context.Context, slotIDs []uuid.UUID) ([]entity.Slot, *errors.AppError) {
	slots, err := s.repo.GetByIDs(ctx, slotIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}
	return slots, nil
}

func (s *SlotService) InvalidateAvailability(ctx context.Context, courtID uuid.UUID) {
	s.cache.DeleteByPrefix(ctx, fmt.Sprintf("slots:%s:", courtID))
}

func (s *SlotService) ownedCourt(ctx context.Context, courtID, ownerID uuid.UUID) (*venueEntity.Court, *venueEntity.Venue, *errors.AppError) {
	court, err := s.venueRepo.GetCourtByID(ctx, courtID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
	}
	if court == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}

	venue, err := s.venueRepo.GetVenueByID(ctx, court.VenueID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
	}
	if venue == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Venue not found", nil)
	}
	if venue.OwnerID != ownerID {
		return nil, nil, errors.NewAppError(errors.ErrForbidden, "Court belongs to another owner", nil)
	}
	return court, venue, nil
}

func (s *SlotService) ownedSlots(ctx context.Context, ownerID uuid.UUID, slotIDs []uuid.UUID) ([]entity.Slot, *errors.AppError) {
	if len(slotIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "At least one slot is required", nil)
	}

	slots, err := s.repo.GetByIDs(ctx, slotIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slots", err)
	}
	if len(slots) != len(slotIDs) {
		return nil, errors.NewAppError(errors.ErrNotFound, "One or more slots not found", nil)
	}

	courts := map[uuid.UUID]bool{}
	for _, slot := range slots {
		if !courts[slot.CourtID] {
			courts[slot.CourtID] = true
			if _, _, appErr := s.ownedCourt(ctx, slot.CourtID, ownerID); appErr != nil {
				return nil, appErr
			}
		}
	}

	return slots, nil
}
