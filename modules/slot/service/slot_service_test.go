package service

import (
	"context"
	"testing"
	"time"

	coreEntity "courtbook/core/entity"
	"courtbook/core/errors"
	"courtbook/modules/slot/dto"
	"courtbook/modules/slot/entity"
	venueEntity "courtbook/modules/venue/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type fakeSlotRepo struct {
	slots        map[uuid.UUID]*entity.Slot
	inserted     []entity.Slot
	releaseCalls int
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: map[uuid.UUID]*entity.Slot{}}
}

func (f *fakeSlotRepo) GetByCourtAndRange(ctx context.Context, courtID uuid.UUID, from, to time.Time) ([]entity.Slot, error) {
	var out []entity.Slot
	for _, slot := range f.slots {
		if slot.CourtID == courtID && !slot.StartTime.Before(from) && slot.StartTime.Before(to) {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Slot, error) {
	var out []entity.Slot
	for _, id := range ids {
		if slot, ok := f.slots[id]; ok {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) BulkInsert(ctx context.Context, slots []entity.Slot) (int, error) {
	f.inserted = append(f.inserted, slots...)
	return len(slots), nil
}

func (f *fakeSlotRepo) Release(ctx context.Context, ids []uuid.UUID) (int64, error) {
	f.releaseCalls++
	var n int64
	for _, id := range ids {
		if slot, ok := f.slots[id]; ok && slot.Status == entity.SlotStatusBooked {
			slot.Status = entity.SlotStatusAvailable
			n++
		}
	}
	return n, nil
}

func (f *fakeSlotRepo) Block(ctx context.Context, ids []uuid.UUID, reason string) (int64, error) {
	var n int64
	for _, id := range ids {
		if slot, ok := f.slots[id]; ok && slot.Status == entity.SlotStatusAvailable {
			slot.Status = entity.SlotStatusBlocked
			slot.BlockReason = &reason
			n++
		}
	}
	return n, nil
}

func (f *fakeSlotRepo) Unblock(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if slot, ok := f.slots[id]; ok && slot.Status == entity.SlotStatusBlocked {
			slot.Status = entity.SlotStatusAvailable
			slot.BlockReason = nil
			n++
		}
	}
	return n, nil
}

func (f *fakeSlotRepo) LockForReserve(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) ([]entity.Slot, error) {
	return f.GetByIDs(ctx, ids)
}

func (f *fakeSlotRepo) MarkBookedTx(ctx context.Context, tx *sqlx.Tx, ids []uuid.UUID) error {
	for _, id := range ids {
		f.slots[id].Status = entity.SlotStatusBooked
	}
	return nil
}

type fakeSlotVenueRepo struct {
	venues map[uuid.UUID]*venueEntity.Venue
	courts map[uuid.UUID]*venueEntity.Court
}

func (f *fakeSlotVenueRepo) CreateVenue(ctx context.Context, v *venueEntity.Venue) (*venueEntity.Venue, error) {
	return v, nil
}

func (f *fakeSlotVenueRepo) GetVenueByID(ctx context.Context, id uuid.UUID) (*venueEntity.Venue, error) {
	return f.venues[id], nil
}

func (f *fakeSlotVenueRepo) GetVenueBySlug(ctx context.Context, slug string) (*venueEntity.Venue, error) {
	return nil, nil
}

func (f *fakeSlotVenueRepo) GetVenuesByOwner(ctx context.Context, ownerID uuid.UUID) ([]venueEntity.Venue, error) {
	return nil, nil
}

func (f *fakeSlotVenueRepo) UpdateVenue(ctx context.Context, v *venueEntity.Venue) error { return nil }

func (f *fakeSlotVenueRepo) SetVenueActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

func (f *fakeSlotVenueRepo) CountVenuesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeSlotVenueRepo) CreateCourt(ctx context.Context, c *venueEntity.Court) (*venueEntity.Court, error) {
	return c, nil
}

func (f *fakeSlotVenueRepo) GetCourtByID(ctx context.Context, id uuid.UUID) (*venueEntity.Court, error) {
	return f.courts[id], nil
}

func (f *fakeSlotVenueRepo) GetCourtsByVenue(ctx context.Context, venueID uuid.UUID) ([]venueEntity.Court, error) {
	return nil, nil
}

func (f *fakeSlotVenueRepo) UpdateCourt(ctx context.Context, c *venueEntity.Court) error { return nil }

func (f *fakeSlotVenueRepo) SetCourtActive(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

func (f *fakeSlotVenueRepo) CountCourtsByVenue(ctx context.Context, venueID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeSlotVenueRepo) ListSports(ctx context.Context) ([]venueEntity.Sport, error) {
	return nil, nil
}

func (f *fakeSlotVenueRepo) GetSportByID(ctx context.Context, id uuid.UUID) (*venueEntity.Sport, error) {
	return nil, nil
}

type fakeCache struct {
	values  map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	f.values[key] = value
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		delete(f.values, key)
		f.deleted = append(f.deleted, key)
	}
}

func (f *fakeCache) DeleteByPrefix(ctx context.Context, prefix string) {
	f.deleted = append(f.deleted, prefix)
	for key := range f.values {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(f.values, key)
		}
	}
}

type slotTestEnv struct {
	svc     *SlotService
	repo    *fakeSlotRepo
	cache   *fakeCache
	ownerID uuid.UUID
	venueID uuid.UUID
	courtID uuid.UUID
}

func newSlotTestEnv() *slotTestEnv {
	env := &slotTestEnv{
		repo:    newFakeSlotRepo(),
		cache:   newFakeCache(),
		ownerID: uuid.New(),
		venueID: uuid.New(),
		courtID: uuid.New(),
	}

	venueRepo := &fakeSlotVenueRepo{
		venues: map[uuid.UUID]*venueEntity.Venue{
			env.venueID: {
				OwnerID:    env.ownerID,
				OpenHour:   8,
				CloseHour:  12,
				Active:     true,
				BaseEntity: coreEntity.BaseEntity{ID: env.venueID},
			},
		},
		courts: map[uuid.UUID]*venueEntity.Court{
			env.courtID: {
				VenueID:     env.venueID,
				HourlyPrice: 600,
				Active:      true,
				BaseEntity:  coreEntity.BaseEntity{ID: env.courtID},
			},
		},
	}

	env.svc = &SlotService{repo: env.repo, venueRepo: venueRepo, cache: env.cache}
	return env
}

func (e *slotTestEnv) addSlot(start time.Time, status entity.SlotStatus) uuid.UUID {
	id := uuid.New()
	e.repo.slots[id] = &entity.Slot{
		CourtID:    e.courtID,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Price:      600,
		Status:     status,
		BaseEntity: coreEntity.BaseEntity{ID: id},
	}
	return id
}

func TestGenerateSlotsUsesOperatingHours(t *testing.T) {
	env := newSlotTestEnv()

	resp, appErr := env.svc.GenerateSlots(context.Background(), env.courtID, env.ownerID, &dto.GenerateSlotsRequest{
		DateFrom: "2026-09-01",
		DateTo:   "2026-09-02",
	})
	if appErr != nil {
		t.Fatalf("generate: %v", appErr)
	}

	// 08:00-12:00 with 60-minute windows is 4 per day over 2 days.
	if resp.Created != 8 {
		t.Fatalf("expected 8 slots, got %d", resp.Created)
	}
	for _, slot := range env.repo.inserted {
		if slot.Price != 600 {
			t.Fatalf("expected hourly price snapshot 600, got %d", slot.Price)
		}
		if slot.Status != entity.SlotStatusAvailable {
			t.Fatalf("expected available, got %q", slot.Status)
		}
	}
}

func TestGenerateSlotsHalfHourPricing(t *testing.T) {
	env := newSlotTestEnv()

	resp, appErr := env.svc.GenerateSlots(context.Background(), env.courtID, env.ownerID, &dto.GenerateSlotsRequest{
		DateFrom:    "2026-09-01",
		DateTo:      "2026-09-01",
		SlotMinutes: 30,
	})
	if appErr != nil {
		t.Fatalf("generate: %v", appErr)
	}
	if resp.Created != 8 {
		t.Fatalf("expected 8 half-hour slots, got %d", resp.Created)
	}
	for _, slot := range env.repo.inserted {
		if slot.Price != 300 {
			t.Fatalf("expected pro-rated price 300, got %d", slot.Price)
		}
	}
}

func TestGenerateSlotsForeignCourtForbidden(t *testing.T) {
	env := newSlotTestEnv()

	_, appErr := env.svc.GenerateSlots(context.Background(), env.courtID, uuid.New(), &dto.GenerateSlotsRequest{
		DateFrom: "2026-09-01",
		DateTo:   "2026-09-01",
	})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected forbidden, got %v", appErr)
	}
}

func TestBlockRequiresReason(t *testing.T) {
	env := newSlotTestEnv()
	slotID := env.addSlot(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), entity.SlotStatusAvailable)

	if appErr := env.svc.Block(context.Background(), env.ownerID, []uuid.UUID{slotID}, ""); appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", appErr)
	}
	if env.repo.slots[slotID].Status != entity.SlotStatusAvailable {
		t.Fatal("expected slot untouched without a reason")
	}

	if appErr := env.svc.Block(context.Background(), env.ownerID, []uuid.UUID{slotID}, "maintenance"); appErr != nil {
		t.Fatalf("block: %v", appErr)
	}
	slot := env.repo.slots[slotID]
	if slot.Status != entity.SlotStatusBlocked || slot.BlockReason == nil || *slot.BlockReason != "maintenance" {
		t.Fatalf("expected blocked with reason, got %+v", slot)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	env := newSlotTestEnv()
	slotID := env.addSlot(time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), entity.SlotStatusBooked)

	if appErr := env.svc.Release(context.Background(), []uuid.UUID{slotID}); appErr != nil {
		t.Fatalf("release: %v", appErr)
	}
	if env.repo.slots[slotID].Status != entity.SlotStatusAvailable {
		t.Fatal("expected slot available after release")
	}

	// Releasing again must not error or change state.
	if appErr := env.svc.Release(context.Background(), []uuid.UUID{slotID}); appErr != nil {
		t.Fatalf("second release: %v", appErr)
	}
	if env.repo.slots[slotID].Status != entity.SlotStatusAvailable {
		t.Fatal("expected slot still available")
	}
	if env.repo.releaseCalls != 2 {
		t.Fatalf("expected 2 release calls, got %d", env.repo.releaseCalls)
	}
}

func TestGetAvailabilityValidatesRange(t *testing.T) {
	env := newSlotTestEnv()
	from := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, appErr := env.svc.GetAvailability(context.Background(), env.courtID, from, to)
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", appErr)
	}
}

func TestGetAvailabilityCachesResult(t *testing.T) {
	env := newSlotTestEnv()
	start := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	env.addSlot(start, entity.SlotStatusAvailable)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	resp, appErr := env.svc.GetAvailability(context.Background(), env.courtID, from, to)
	if appErr != nil {
		t.Fatalf("availability: %v", appErr)
	}
	if len(resp.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp.Slots))
	}
	if len(env.cache.values) != 1 {
		t.Fatalf("expected response cached, cache has %d entries", len(env.cache.values))
	}

	// Second read is served from cache even after the store changes.
	env.addSlot(start.Add(time.Hour), entity.SlotStatusAvailable)
	resp, appErr = env.svc.GetAvailability(context.Background(), env.courtID, from, to)
	if appErr != nil {
		t.Fatalf("availability: %v", appErr)
	}
	if len(resp.Slots) != 1 {
		t.Fatalf("expected cached result with 1 slot, got %d", len(resp.Slots))
	}

	// Invalidation clears the court's cached windows.
	env.svc.InvalidateAvailability(context.Background(), env.courtID)
	resp, appErr = env.svc.GetAvailability(context.Background(), env.courtID, from, to)
	if appErr != nil {
		t.Fatalf("availability: %v", appErr)
	}
	if len(resp.Slots) != 2 {
		t.Fatalf("expected fresh result with 2 slots, got %d", len(resp.Slots))
	}
}
