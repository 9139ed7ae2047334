package repository

import (
	"context"
	"database/sql"

	"courtbook/core/database"
	"courtbook/core/logger"
	"courtbook/modules/venue/entity"

	"github.com/google/uuid"
)

type VenueRepository struct {
	DB database.Database
}

func NewVenueRepository(db database.Database) *VenueRepository {
	return &VenueRepository{DB: db}
}

type VenueRepositoryInterface interface {
	// Venues
	CreateVenue(ctx context.Context, venue *entity.Venue) (*entity.Venue, error)
	GetVenueByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	GetVenueBySlug(ctx context.Context, slug string) (*entity.Venue, error)
	GetVenuesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, error)
	UpdateVenue(ctx context.Context, venue *entity.Venue) error
	SetVenueActive(ctx context.Context, id uuid.UUID, active bool) error
	CountVenuesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)

	// Courts
	CreateCourt(ctx context.Context, court *entity.Court) (*entity.Court, error)
	GetCourtByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	GetCourtsByVenue(ctx context.Context, venueID uuid.UUID) ([]entity.Court, error)
	UpdateCourt(ctx context.Context, court *entity.Court) error
	SetCourtActive(ctx context.Context, id uuid.UUID, active bool) error
	CountCourtsByVenue(ctx context.Context, venueID uuid.UUID) (int, error)

	// Sports catalog
	ListSports(ctx context.Context) ([]entity.Sport, error)
	GetSportByID(ctx context.Context, id uuid.UUID) (*entity.Sport, error)
}

// ===================== Venues =====================

func (r *VenueRepository) CreateVenue(ctx context.Context, venue *entity.Venue) (*entity.Venue, error) {
	query := `
		INSERT INTO venues (owner_id, name, slug, address, city, open_hour, close_hour, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING id, owner_id, name, slug, address, city, open_hour, close_hour, active, created_at, updated_at
	`

	var created entity.Venue
	err := r.DB.GetContext(ctx, &created, query,
		venue.OwnerID, venue.Name, venue.Slug, venue.Address, venue.City, venue.OpenHour, venue.CloseHour)
	if err != nil {
		logger.Error("VenueRepository:CreateVenue", err)
		return nil, err
	}

	return &created, nil
}

func (r *VenueRepository) GetVenueByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, slug, address, city, open_hour, close_hour, active, created_at, updated_at
		FROM venues WHERE id = $1
	`

	var venue entity.Venue
	err := r.DB.GetContext(ctx, &venue, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("VenueRepository:GetVenueByID", err)
		return nil, err
	}

	return &venue, nil
}

func (r *VenueRepository) GetVenueBySlug(ctx context.Context, slug string) (*entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, slug, address, city, open_hour, close_hour, active, created_at, updated_at
		FROM venues WHERE slug = $1 AND active = true
	`

	var venue entity.Venue
	err := r.DB.GetContext(ctx, &venue, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("VenueRepository:GetVenueBySlug", err)
		return nil, err
	}

	return &venue, nil
}

func (r *VenueRepository) GetVenuesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Venue, error) {
	query := `
		SELECT id, owner_id, name, slug, address, city, open_hour, close_hour, active, created_at, updated_at
		FROM venues
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var venues []entity.Venue
	err := r.DB.SelectContext(ctx, &venues, query, ownerID)
	if err != nil {
		logger.Error("VenueRepository:GetVenuesByOwner", err)
		return nil, err
	}

	return venues, nil
}

func (r *VenueRepository) UpdateVenue(ctx context.Context, venue *entity.Venue) error {
	query := `
		UPDATE venues
		SET name = $2, address = $3, city = $4, open_hour = $5, close_hour = $6, updated_at = now()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		venue.ID, venue.Name, venue.Address, venue.City, venue.OpenHour, venue.CloseHour)
	if err != nil {
		logger.Error("VenueRepository:UpdateVenue", err)
		return err
	}
	return nil
}

func (r *VenueRepository) SetVenueActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE venues SET active = $2, updated_at = now() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, active)
	if err != nil {
		logger.Error("VenueRepository:SetVenueActive", err)
		return err
	}
	return nil
}

func (r *VenueRepository) CountVenuesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM venues WHERE owner_id = $1 AND active = true`
	err := r.DB.GetContext(ctx, &count, query, ownerID)
	if err != nil {
		logger.Error("VenueRepository:CountVenuesByOwner", err)
		return 0, err
	}
	return count, nil
}

// ===================== Courts =====================

func (r *VenueRepository) CreateCourt(ctx context.Context, court *entity.Court) (*entity.Court, error) {
	query := `
		INSERT INTO courts (venue_id, name, sport_id, hourly_price, capacity, active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, venue_id, name, sport_id, hourly_price, capacity, active, created_at, updated_at
	`

	var created entity.Court
	err := r.DB.GetContext(ctx, &created, query,
		court.VenueID, court.Name, court.SportID, court.HourlyPrice, court.Capacity)
	if err != nil {
		logger.Error("VenueRepository:CreateCourt", err)
		return nil, err
	}

	return &created, nil
}

func (r *VenueRepository) GetCourtByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `
		SELECT id, venue_id, name, sport_id, hourly_price, capacity, active, created_at, updated_at
		FROM courts WHERE id = $1
	`

	var court entity.Court
	err := r.DB.GetContext(ctx, &court, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("VenueRepository:GetCourtByID", err)
		return nil, err
	}

	return &court, nil
}

func (r *VenueRepository) GetCourtsByVenue(ctx context.Context, venueID uuid.UUID) ([]entity.Court, error) {
	query := `
		SELECT id, venue_id, name, sport_id, hourly_price, capacity, active, created_at, updated_at
		FROM courts
		WHERE venue_id = $1
		ORDER BY name ASC
	`

	var courts []entity.Court
	err := r.DB.SelectContext(ctx, &courts, query, venueID)
	if err != nil {
		logger.Error("VenueRepository:GetCourtsByVenue", err)
		return nil, err
	}

	return courts, nil
}

func (r *VenueRepository) UpdateCourt(ctx context.Context, court *entity.Court) error {
	query := `
		UPDATE courts
		SET name = $2, hourly_price = $3, capacity = $4, updated_at = now()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, court.ID, court.Name, court.HourlyPrice, court.Capacity)
	if err != nil {
		logger.Error("VenueRepository:UpdateCourt", err)
		return err
	}
	return nil
}

func (r *VenueRepository) SetCourtActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE courts SET active = $2, updated_at = now() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, active)
	if err != nil {
		logger.Error("VenueRepository:SetCourtActive", err)
		return err
	}
	return nil
}

func (r *VenueRepository) CountCourtsByVenue(ctx context.Context, venueID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM courts WHERE venue_id = $1 AND active = true`
	err := r.DB.GetContext(ctx, &count, query, venueID)
	if err != nil {
		logger.Error("VenueRepository:CountCourtsByVenue", err)
		return 0, err
	}
	return count, nil
}

// ===================== Sports =====================

func (r *VenueRepository) ListSports(ctx context.Context) ([]entity.Sport, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM sports ORDER BY name ASC`

	var sports []entity.Sport
	err := r.DB.SelectContext(ctx, &sports, query)
	if err != nil {
		logger.Error("VenueRepository:ListSports", err)
		return nil, err
	}

	return sports, nil
}

func (r *VenueRepository) GetSportByID(ctx context.Context, id uuid.UUID) (*entity.Sport, error) {
	query := `SELECT id, name, slug, created_at, updated_at FROM sports WHERE id = $1`

	var sport entity.Sport
	err := r.DB.GetContext(ctx, &sport, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("VenueRepository:GetSportByID", err)
		return nil, err
	}

	return &sport, nil
}
