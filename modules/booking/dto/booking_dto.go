package dto

import (
	"time"

	"courtbook/modules/booking/entity"
	slotEntity "courtbook/modules/slot/entity"
)

// CreateBookingRequest accepts either a single slot_id or a slot_ids list;
// the two are folded into one list before validation.
type CreateBookingRequest struct {
	VenueID string   `json:"venue_id" form:"venue_id"`
	CourtID string   `json:"court_id" form:"court_id"`
	SportID string   `json:"sport_id" form:"sport_id"`
	SlotID  string   `json:"slot_id" form:"slot_id"`
	SlotIDs []string `json:"slot_ids" form:"slot_ids"`
	UTR     string   `json:"utr" form:"utr"`
}

func (r *CreateBookingRequest) AllSlotIDs() []string {
	ids := make([]string, 0, len(r.SlotIDs)+1)
	if r.SlotID != "" {
		ids = append(ids, r.SlotID)
	}
	ids = append(ids, r.SlotIDs...)
	return ids
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

type BookingResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	UserID       string            `json:"user_id"`
	VenueID      string            `json:"venue_id"`
	CourtID      string            `json:"court_id"`
	SportID      string            `json:"sport_id"`
	Amount       int64             `json:"amount"`
	Status       string            `json:"status"`
	ProofRef     *string           `json:"proof_ref,omitempty"`
	UTR          *string           `json:"utr,omitempty"`
	RejectReason *string           `json:"reject_reason,omitempty"`
	ConfirmedAt  *time.Time        `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Slots        []slotEntity.Slot `json:"slots,omitempty"`
	SlotIDs      []string          `json:"slot_ids"`
}

func ToBookingResponse(b *entity.Booking, slots []slotEntity.Slot) *BookingResponse {
	slotIDs := make([]string, 0, len(b.SlotIDs))
	for _, id := range b.SlotIDs {
		slotIDs = append(slotIDs, id.String())
	}

	return &BookingResponse{
		ID:           b.ID.String(),
		Code:         b.Code,
		UserID:       b.UserID.String(),
		VenueID:      b.VenueID.String(),
		CourtID:      b.CourtID.String(),
		SportID:      b.SportID.String(),
		Amount:       b.Amount,
		Status:       string(b.Status),
		ProofRef:     b.ProofRef,
		UTR:          b.UTR,
		RejectReason: b.RejectReason,
		ConfirmedAt:  b.ConfirmedAt,
		CreatedAt:    b.CreatedAt,
		Slots:        slots,
		SlotIDs:      slotIDs,
	}
}

// SlotConflictDetails names the slot ids that were no longer available so
// the client can refresh and let the user re-select.
type SlotConflictDetails struct {
	SlotIDs []string `json:"slot_ids"`
}
