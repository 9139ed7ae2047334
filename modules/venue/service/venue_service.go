package service

import (
	"context"
	"strings"

	"courtbook/core/errors"
	"courtbook/core/utils"
	"courtbook/modules/subscription/service"
	"courtbook/modules/venue/dto"
	"courtbook/modules/venue/entity"
	"courtbook/modules/venue/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// VenueService handles owner venue/court management. Creation paths pass
// through the quota gate before any row is written.
type VenueService struct {
	repo  repository.VenueRepositoryInterface
	quota service.QuotaGateInterface
}

type VenueServiceInterface interface {
	CreateVenue(ctx context.Context, ownerID uuid.UUID, req *dto.CreateVenueRequest) (*entity.Venue, *errors.AppError)
	UpdateVenue(ctx context.Context, venueID, ownerID uuid.UUID, req *dto.UpdateVenueRequest) (*entity.Venue, *errors.AppError)
	DeactivateVenue(ctx context.Context, venueID, ownerID uuid.UUID) *errors.AppError
	GetMyVenues(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, *errors.AppError)
	GetVenueBySlug(ctx context.Context, venueSlug string) (*dto.VenueDetailResponse, *errors.AppError)

	CreateCourt(ctx context.Context, venueID, ownerID uuid.UUID, req *dto.CreateCourtRequest) (*entity.Court, *errors.AppError)
	UpdateCourt(ctx context.Context, courtID, ownerID uuid.UUID, req *dto.UpdateCourtRequest) (*entity.Court, *errors.AppError)
	DeactivateCourt(ctx context.Context, courtID, ownerID uuid.UUID) *errors.AppError

	ListSports(ctx context.Context) ([]entity.Sport, *errors.AppError)
}

func NewVenueService(repo repository.VenueRepositoryInterface, quota service.QuotaGateInterface) VenueServiceInterface {
	return &VenueService{repo: repo, quota: quota}
}

func (s *VenueService) CreateVenue(ctx context.Context, ownerID uuid.UUID, req *dto.CreateVenueRequest) (*entity.Venue, *errors.AppError) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Venue name is required", nil)
	}
	if req.OpenHour < 0 || req.CloseHour > 24 || req.OpenHour >= req.CloseHour {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid operating hours", nil)
	}

	if appErr := s.quota.CheckAndConsume(ctx, ownerID, service.Action{Kind: service.ActionCreateVenue}); appErr != nil {
		return nil, appErr
	}

	venue := &entity.Venue{
		OwnerID:   ownerID,
		Name:      req.Name,
		Slug:      slug.Make(req.Name) + "-" + strings.ToLower(utils.GenerateID()),
		Address:   req.Address,
		City:      req.City,
		OpenHour:  req.OpenHour,
		CloseHour: req.CloseHour,
	}

	created, err := s.repo.CreateVenue(ctx, venue)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create venue", err)
	}
	return created, nil
}

func (s *VenueService) UpdateVenue(ctx context.Context, venueID, ownerID uuid.UUID, req *dto.UpdateVenueRequest) (*entity.Venue, *errors.AppError) {
	venue, appErr := s.ownedVenue(ctx, venueID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Name != "" {
		venue.Name = req.Name
	}
	if req.Address != "" {
		venue.Address = req.Address
	}
	if req.City != "" {
		venue.City = req.City
	}
	if req.OpenHour != nil {
		venue.OpenHour = *req.OpenHour
	}
	if req.CloseHour != nil {
		venue.CloseHour = *req.CloseHour
	}
	if venue.OpenHour < 0 || venue.CloseHour > 24 || venue.OpenHour >= venue.CloseHour {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid operating hours", nil)
	}

	if err := s.repo.UpdateVenue(ctx, venue); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update venue", err)
	}
	return venue, nil
}

func (s *VenueService) DeactivateVenue(ctx context.Context, venueID, ownerID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedVenue(ctx, venueID, ownerID); appErr != nil {
		return appErr
	}

	if err := s.repo.SetVenueActive(ctx, venueID, false); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to deactivate venue", err)
	}
	return nil
}

func (s *VenueService) GetMyVenues(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, *errors.AppError) {
	venues, err := s.repo.GetVenuesByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list venues", err)
	}
	return venues, nil
}

func (s *VenueService) GetVenueBySlug(ctx context.Context, venueSlug string) (*dto.VenueDetailResponse, *errors.AppError) {
	venue, err := s.repo.GetVenueBySlug(ctx, venueSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
	}
	if venue == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Venue not found", nil)
	}

	courts, err := s.repo.GetCourtsByVenue(ctx, venue.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load courts", err)
	}

	active := make([]entity.Court, 0, len(courts))
	for _, c := range courts {
		if c.Active {
			active = append(active, c)
		}
	}

	return &dto.VenueDetailResponse{Venue: venue, Courts: active}, nil
}

func (s *VenueService) CreateCourt(ctx context.Context, venueID, ownerID uuid.UUID, req *dto.CreateCourtRequest) (*entity.Court, *errors.AppError) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Court name is required", nil)
	}
	if req.HourlyPrice < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Hourly price cannot be negative", nil)
	}

	sportID, err := uuid.Parse(req.SportID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid sport ID", err)
	}

	if _, appErr := s.ownedVenue(ctx, venueID, ownerID); appErr != nil {
		return nil, appErr
	}

	sport, err := s.repo.GetSportByID(ctx, sportID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load sport", err)
	}
	if sport == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Sport not found", nil)
	}

	if appErr := s.quota.CheckAndConsume(ctx, ownerID, service.Action{Kind: service.ActionCreateCourt, VenueID: venueID}); appErr != nil {
		return nil, appErr
	}

	court := &entity.Court{
		VenueID:     venueID,
		Name:        req.Name,
		SportID:     sportID,
		HourlyPrice: req.HourlyPrice,
		Capacity:    req.Capacity,
	}

	created, err := s.repo.CreateCourt(ctx, court)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create court", err)
	}
	return created, nil
}

func (s *VenueService) UpdateCourt(ctx context.Context, courtID, ownerID uuid.UUID, req *dto.UpdateCourtRequest) (*entity.Court, *errors.AppError) {
	court, appErr := s.ownedCourt(ctx, courtID, ownerID)
	if appErr != nil {
		return nil, appErr
	}

	if req.Name != "" {
		court.Name = req.Name
	}
	if req.HourlyPrice != nil {
		if *req.HourlyPrice < 0 {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Hourly price cannot be negative", nil)
		}
		court.HourlyPrice = *req.HourlyPrice
	}
	if req.Capacity != nil {
		court.Capacity = *req.Capacity
	}

	if err := s.repo.UpdateCourt(ctx, court); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update court", err)
	}
	return court, nil
}

func (s *VenueService) DeactivateCourt(ctx context.Context, courtID, ownerID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedCourt(ctx, courtID, ownerID); appErr != nil {
		return appErr
	}

	if err := s.repo.SetCourtActive(ctx, courtID, false); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to deactivate court", err)
	}
	return nil
}

func (s *VenueService) ListSports(ctx context.Context) ([]entity.Sport, *errors.AppError) {
	sports, err := s.repo.ListSports(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list sports", err)
	}
	return sports, nil
}

func (s *VenueService) ownedVenue(ctx context.Context, venueID, ownerID uuid.UUID) (*entity.Venue, *errors.AppError) {
	venue, err := s.repo.GetVenueByID(ctx, venueID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load venue", err)
	}
	if venue == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Venue not found", nil)
	}
	if venue.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Venue belongs to another owner", nil)
	}
	return venue, nil
}

func (s *VenueService) ownedCourt(ctx context.Context, courtID, ownerID uuid.UUID) (*entity.Court, *errors.AppError) {
	court, err := s.repo.GetCourtByID(ctx, courtID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load court", err)
	}
	if court == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Court not found", nil)
	}
	if _, appErr := s.ownedVenue(ctx, court.VenueID, ownerID); appErr != nil {
		return nil, appErr
	}
	return court, nil
}
