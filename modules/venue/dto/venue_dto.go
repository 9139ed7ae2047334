package dto

import (
	"courtbook/modules/venue/entity"
)

type CreateVenueRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	OpenHour  int    `json:"open_hour"`
	CloseHour int    `json:"close_hour"`
}

type UpdateVenueRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	OpenHour  *int   `json:"open_hour"`
	CloseHour *int   `json:"close_hour"`
}

type CreateCourtRequest struct {
	Name        string `json:"name"`
	SportID     string `json:"sport_id"`
	HourlyPrice int64  `json:"hourly_price"`
	Capacity    int    `json:"capacity"`
}

type UpdateCourtRequest struct {
	Name        string `json:"name"`
	HourlyPrice *int64 `json:"hourly_price"`
	Capacity    *int   `json:"capacity"`
}

// VenueDetailResponse is the public venue page payload: the venue and its
// active courts.
type VenueDetailResponse struct {
	Venue  *entity.Venue  `json:"venue"`
	Courts []entity.Court `json:"courts"`
}
