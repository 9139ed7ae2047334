package dto

import (
	"courtbook/modules/slot/entity"
)

type GenerateSlotsRequest struct {
	DateFrom    string `json:"date_from"` // YYYY-MM-DD inclusive
	DateTo      string `json:"date_to"`   // YYYY-MM-DD inclusive
	SlotMinutes int    `json:"slot_minutes"`
}

type GenerateSlotsResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type BlockSlotsRequest struct {
	SlotIDs []string `json:"slot_ids"`
	Reason  string   `json:"reason"`
}

type UnblockSlotsRequest struct {
	SlotIDs []string `json:"slot_ids"`
}

type AvailabilityResponse struct {
	CourtID string        `json:"court_id"`
	Slots   []entity.Slot `json:"slots"`
}
