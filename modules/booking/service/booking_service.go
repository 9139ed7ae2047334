package service

import (
	"context"
	"strings"
	"time"

	"courtbook/core/errors"
	"courtbook/core/logger"
	"courtbook/core/params"
	"courtbook/core/tasks"
	"courtbook/core/utils"
	"courtbook/modules/booking/dto"
	"courtbook/modules/booking/entity"
	"courtbook/modules/booking/repository"
	slotEntity "courtbook/modules/slot/entity"
	slotService "courtbook/modules/slot/service"
	subService "courtbook/modules/subscription/service"
	venueRepository "courtbook/modules/venue/repository"

	"github.com/google/uuid"
)

// BookingService owns the reservation flow and the approval lifecycle.
// Reservation is all-or-nothing: either every requested slot flips to
// booked and a pending booking exists, or nothing changed.
type BookingService struct {
	repo       repository.BookingRepositoryInterface
	slotSvc    slotService.SlotServiceInterface
	venueRepo  venueRepository.VenueRepositoryInterface
	quota      subService.QuotaGateInterface
	dispatcher tasks.Dispatcher
	now        func() time.Time
}

type BookingServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest, proofRef *string) (*dto.BookingResponse, *errors.AppError)
	GetByID(ctx context.Context, actorID uuid.UUID, role string, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	Approve(ctx context.Context, ownerID, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	Reject(ctx context.Context, ownerID, bookingID uuid.UUID, reason string) (*dto.BookingResponse, *errors.AppError)
	Cancel(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	Complete(ctx context.Context, ownerID, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError)
	ListMyBookings(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, *errors.AppError)
	ListOwnerBookings(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, *errors.AppError)
}

func NewBookingService(
	repo repository.BookingRepositoryInterface,
	slotSvc slotService.SlotServiceInterface,
	venueRepo venueRepository.VenueRepositoryInterface,
	quota subService.QuotaGateInterface,
	dispatcher tasks.Dispatcher,
) BookingServiceInterface {
	return &BookingService{
		repo:       repo,
		slotSvc:    slotSvc,
		venueRepo:  venueRepo,
		quota:      quota,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateBookingRequest, proofRef *string) (*dto.BookingResponse, *errors.AppError) {
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid court_id", err)
	}
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid venue_id", err)
	}
	sportID, err := uuid.Parse(req.SportID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid sport_id", err)
	}

	rawIDs := req.AllSlotIDs()
	if len(rawIDs) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "At least one slot is required", nil)
	}

	slotIDs := make([]uuid.UUID, 0, len(rawIDs))
	seen := map[uuid.UUID]bool{}
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid slot id: "+raw, err)
		}
		if seen[id] {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Duplicate slot id: "+raw, nil)
		}
		seen[id] = true
		slotIDs = append(slotIDs, id)
	}

	court, err := s.venueRepo.GetCourtByID(ctx, courtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
	}
	if court == nil || !court.Active || court.VenueID != venueID {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}

	venue, err := s.venueRepo.GetVenueByID(ctx, venueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
	}
	if venue == nil || !venue.Active {
		return nil, errors.NewAppError(errors.ErrNotFound, "Venue not found", nil)
	}

	// Early read for fast feedback. The transaction re-checks under lock,
	// so this can be stale without breaking correctness.
	preSlots, appErr := s.slotSvc.GetByIDs(ctx, slotIDs)
	if appErr != nil {
		return nil, appErr
	}
	unavailable, wrongCourt := splitConflicts(slotIDs, preSlots, courtID)
	if len(wrongCourt) > 0 {
		return nil, crossCourtInput(wrongCourt)
	}
	if len(unavailable) > 0 {
		return nil, slotsUnavailable(unavailable)
	}

	code, err := utils.GenerateBookingCode(s.now())
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to generate booking code", err)
	}

	booking := &entity.Booking{
		Code:    code,
		UserID:  userID,
		VenueID: venueID,
		CourtID: courtID,
		SportID: sportID,
		Status:  entity.BookingStatusPending,
		SlotIDs: slotIDs,
	}
	if req.UTR != "" {
		utr := req.UTR
		booking.UTR = &utr
	}
	booking.ProofRef = proofRef

	conflicts, err := s.repo.CreateWithSlots(ctx, booking)
	if err != nil {
		if err == repository.ErrDuplicateCode {
			return nil, errors.NewAppError(errors.ErrAlreadyExists, "Booking code collision, please retry", err)
		}
		if wc, ok := err.(*repository.WrongCourtError); ok {
			return nil, crossCourtInput(wc.SlotIDs)
		}
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create booking", err)
	}
	if len(conflicts) > 0 {
		return nil, slotsUnavailable(conflicts)
	}

	s.slotSvc.InvalidateAvailability(ctx, courtID)

	s.notify(ctx, tasks.EventBookingCreated, booking, venue.OwnerID)

	return s.respond(ctx, booking), nil
}

// Approve confirms a pending booking. The owner's booking quota is
// consumed here, at accept time, not at request time.
func (s *BookingService) Approve(ctx context.Context, ownerID, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	booking, appErr := s.ownedBooking(ctx, ownerID, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	if !booking.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, invalidTransition(booking.Status, entity.BookingStatusConfirmed)
	}

	if appErr := s.quota.CheckAndConsume(ctx, ownerID, subService.Action{Kind: subService.ActionAcceptBooking}); appErr != nil {
		return nil, appErr
	}

	now := s.now()
	prior := booking.Status
	booking.Status = entity.BookingStatusConfirmed
	booking.ConfirmedAt = &now

	if appErr := s.persistTransition(ctx, booking, prior, false, "Failed to confirm booking"); appErr != nil {
		return nil, appErr
	}

	s.notify(ctx, tasks.EventBookingConfirmed, booking, booking.UserID)

	return s.respond(ctx, booking), nil
}

// Reject declines a pending booking and frees its slots. The reason is
// mandatory and validated before any state is touched.
func (s *BookingService) Reject(ctx context.Context, ownerID, bookingID uuid.UUID, reason string) (*dto.BookingResponse, *errors.AppError) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Rejection reason is required", nil)
	}

	booking, appErr := s.ownedBooking(ctx, ownerID, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	if !booking.CanTransitionTo(entity.BookingStatusRejected) {
		return nil, invalidTransition(booking.Status, entity.BookingStatusRejected)
	}

	prior := booking.Status
	booking.Status = entity.BookingStatusRejected
	booking.RejectReason = &reason

	if appErr := s.persistTransition(ctx, booking, prior, true, "Failed to reject booking"); appErr != nil {
		return nil, appErr
	}

	s.slotSvc.InvalidateAvailability(ctx, booking.CourtID)
	s.notify(ctx, tasks.EventBookingRejected, booking, booking.UserID)

	return s.respond(ctx, booking), nil
}

// Cancel may be called by the booking's user or by the venue owner, from
// pending or confirmed. Slots are freed either way.
func (s *BookingService) Cancel(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	booking, appErr := s.getBooking(ctx, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	venue, err := s.venueRepo.GetVenueByID(ctx, booking.VenueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
	}
	if venue == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Venue not found", nil)
	}
	if booking.UserID != actorID && venue.OwnerID != actorID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Not allowed to cancel this booking", nil)
	}

	if !booking.CanTransitionTo(entity.BookingStatusCancelled) {
		return nil, invalidTransition(booking.Status, entity.BookingStatusCancelled)
	}

	prior := booking.Status
	booking.Status = entity.BookingStatusCancelled

	if appErr := s.persistTransition(ctx, booking, prior, true, "Failed to cancel booking"); appErr != nil {
		return nil, appErr
	}

	s.slotSvc.InvalidateAvailability(ctx, booking.CourtID)

	// The other party gets the notification, not the actor.
	if actorID == booking.UserID {
		s.notify(ctx, tasks.EventBookingCancelled, booking, venue.OwnerID)
	} else {
		s.notify(ctx, tasks.EventBookingCancelled, booking, booking.UserID)
	}

	return s.respond(ctx, booking), nil
}

// Complete closes out a confirmed booking once its last slot has ended.
// Completed bookings keep their slots booked; the window is in the past.
func (s *BookingService) Complete(ctx context.Context, ownerID, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	booking, appErr := s.ownedBooking(ctx, ownerID, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	if !booking.CanTransitionTo(entity.BookingStatusCompleted) {
		return nil, invalidTransition(booking.Status, entity.BookingStatusCompleted)
	}

	slots, slotErr := s.slotSvc.GetByIDs(ctx, booking.SlotIDs)
	if slotErr != nil {
		return nil, slotErr
	}
	for _, slot := range slots {
		if slot.EndTime.After(s.now()) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Booking cannot be completed before its time has passed", nil)
		}
	}

	prior := booking.Status
	booking.Status = entity.BookingStatusCompleted

	if appErr := s.persistTransition(ctx, booking, prior, false, "Failed to complete booking"); appErr != nil {
		return nil, appErr
	}

	return s.respond(ctx, booking), nil
}

func (s *BookingService) GetByID(ctx context.Context, actorID uuid.UUID, role string, bookingID uuid.UUID) (*dto.BookingResponse, *errors.AppError) {
	booking, appErr := s.getBooking(ctx, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	if booking.UserID != actorID && role != "admin" {
		venue, err := s.venueRepo.GetVenueByID(ctx, booking.VenueID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
		}
		if venue == nil || venue.OwnerID != actorID {
			return nil, errors.NewAppError(errors.ErrForbidden, "Not allowed to view this booking", nil)
		}
	}

	return s.respond(ctx, booking), nil
}

func (s *BookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, *errors.AppError) {
	page, err := s.repo.GetByUser(ctx, userID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list bookings", err)
	}
	return page, nil
}

func (s *BookingService) ListOwnerBookings(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*entity.PaginatedBookingEntity, *errors.AppError) {
	page, err := s.repo.GetByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list bookings", err)
	}
	return page, nil
}

func (s *BookingService) getBooking(ctx context.Context, bookingID uuid.UUID) (*entity.Booking, *errors.AppError) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load booking", err)
	}
	if booking == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Booking not found", nil)
	}
	return booking, nil
}

func (s *BookingService) ownedBooking(ctx context.Context, ownerID, bookingID uuid.UUID) (*entity.Booking, *errors.AppError) {
	booking, appErr := s.getBooking(ctx, bookingID)
	if appErr != nil {
		return nil, appErr
	}

	venue, err := s.venueRepo.GetVenueByID(ctx, booking.VenueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
	}
	if venue == nil || venue.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Booking belongs to another owner's venue", nil)
	}

	return booking, nil
}

// notify is best-effort. A failed enqueue never fails the booking
// operation that triggered it.
func (s *BookingService) notify(ctx context.Context, event string, booking *entity.Booking, recipientID uuid.UUID) {
	err := s.dispatcher.Dispatch(ctx, tasks.NotificationPayload{
		Event:       event,
		BookingID:   booking.ID,
		RecipientID: recipientID,
		Data: map[string]any{
			"code":   booking.Code,
			"status": string(booking.Status),
		},
	})
	if err != nil {
		logger.Warn("BookingService:notify", "event", event, "booking_id", booking.ID, "error", err)
	}
}

func (s *BookingService) respond(ctx context.Context, booking *entity.Booking) *dto.BookingResponse {
	slots, appErr := s.slotSvc.GetByIDs(ctx, booking.SlotIDs)
	if appErr != nil {
		slots = nil
	}
	return dto.ToBookingResponse(booking, slots)
}

// persistTransition writes the decided status change conditioned on the
// status it was decided from. A concurrent decision that got there first
// surfaces as an invalid transition, never a silent overwrite.
func (s *BookingService) persistTransition(ctx context.Context, booking *entity.Booking, from entity.BookingStatus, releaseSlots bool, failMsg string) *errors.AppError {
	if err := s.repo.UpdateStatus(ctx, booking, from, releaseSlots); err != nil {
		if err == repository.ErrStatusConflict {
			return errors.NewAppError(errors.ErrInvalidStateTransition, "Booking was decided concurrently, reload and retry", err)
		}
		return errors.NewAppError(errors.ErrInternalServer, failMsg, err)
	}
	return nil
}

// splitConflicts separates slots that are gone or taken (a reservation
// conflict the user resolves by re-selecting) from slots that exist on a
// different court (a malformed request).
func splitConflicts(requested []uuid.UUID, slots []slotEntity.Slot, courtID uuid.UUID) (unavailable, wrongCourt []uuid.UUID) {
	byID := make(map[uuid.UUID]slotEntity.Slot, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
	}

	for _, id := range requested {
		slot, ok := byID[id]
		switch {
		case !ok || slot.Status != slotEntity.SlotStatusAvailable:
			unavailable = append(unavailable, id)
		case slot.CourtID != courtID:
			wrongCourt = append(wrongCourt, id)
		}
	}
	return unavailable, wrongCourt
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func slotsUnavailable(conflicts []uuid.UUID) *errors.AppError {
	return errors.NewAppErrorWithDetails(
		errors.ErrSlotsUnavailable,
		"One or more slots are no longer available",
		nil,
		dto.SlotConflictDetails{SlotIDs: idStrings(conflicts)},
	)
}

func crossCourtInput(wrongCourt []uuid.UUID) *errors.AppError {
	ids := idStrings(wrongCourt)
	return errors.NewAppErrorWithDetails(
		errors.ErrInvalidInput,
		"Slots belong to a different court: "+strings.Join(ids, ", "),
		nil,
		dto.SlotConflictDetails{SlotIDs: ids},
	)
}

func invalidTransition(from, to entity.BookingStatus) *errors.AppError {
	return errors.NewAppError(
		errors.ErrInvalidStateTransition,
		"Cannot move booking from "+string(from)+" to "+string(to),
		nil,
	)
}
