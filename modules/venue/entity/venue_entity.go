package entity

import (
	"courtbook/core/entity"

	"github.com/google/uuid"
)

// Venue is an owner-scoped container for courts. Deactivation is a soft
// flag; venues are never hard-deleted while bookings reference them.
type Venue struct {
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	Address   string    `db:"address" json:"address"`
	City      string    `db:"city" json:"city"`
	OpenHour  int       `db:"open_hour" json:"open_hour"`
	CloseHour int       `db:"close_hour" json:"close_hour"`
	Active    bool      `db:"active" json:"active"`
	entity.BaseEntity
}

// Court belongs to exactly one venue. HourlyPrice is the current price;
// slots snapshot it at generation time.
type Court struct {
	VenueID     uuid.UUID `db:"venue_id" json:"venue_id"`
	Name        string    `db:"name" json:"name"`
	SportID     uuid.UUID `db:"sport_id" json:"sport_id"`
	HourlyPrice int64     `db:"hourly_price" json:"hourly_price"`
	Capacity    int       `db:"capacity" json:"capacity"`
	Active      bool      `db:"active" json:"active"`
	entity.BaseEntity
}

type Sport struct {
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
	entity.BaseEntity
}

type PaginatedVenueEntity = entity.Pagination[Venue]
