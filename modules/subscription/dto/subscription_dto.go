package dto

import (
	"time"

	"courtbook/modules/subscription/entity"
)

type CreatePlanRequest struct {
	Name              string   `json:"name"`
	Price             int64    `json:"price"`
	DurationDays      int      `json:"duration_days"`
	MaxVenues         *int     `json:"max_venues"`           // null = unlimited
	MaxCourtsPerVenue *int     `json:"max_courts_per_venue"` // null = unlimited
	MaxBookings       *int     `json:"max_bookings"`         // null = unlimited
	MaxMessages       *int     `json:"max_messages"`         // null = unlimited
	Features          []string `json:"features"`
}

type SubmitSubscriptionRequest struct {
	PlanID string  `json:"plan_id"`
	UTR    *string `json:"utr,omitempty"`
}

type SubscriptionResponse struct {
	ID            string    `json:"id"`
	PlanID        string    `json:"plan_id"`
	PlanName      string    `json:"plan_name,omitempty"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        string    `json:"status"`
	BookingsCount int       `json:"bookings_count"`
	MessagesCount int       `json:"messages_count"`
}

func ToSubscriptionResponse(sub *entity.Subscription, plan *entity.Plan) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:            sub.ID.String(),
		PlanID:        sub.PlanID.String(),
		StartDate:     sub.StartDate,
		EndDate:       sub.EndDate,
		Status:        string(sub.Status),
		BookingsCount: sub.BookingsCount,
		MessagesCount: sub.MessagesCount,
	}
	if plan != nil {
		resp.PlanName = plan.Name
	}
	return resp
}
