package service

import (
	"context"
	"encoding/json"
	"testing"

	"courtbook/core/params"
	"courtbook/core/tasks"
	"courtbook/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type fakeNotificationRepo struct {
	created []entity.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) GetByUserID(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return &entity.PaginatedNotificationEntity{}, nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	return nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return 0, nil
}

func deliverTask(t *testing.T, payload tasks.NotificationPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(tasks.TypeNotificationDeliver, data)
}

func TestHandleDeliverTaskPersistsNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	bookingID := uuid.New()
	recipient := uuid.New()
	task := deliverTask(t, tasks.NotificationPayload{
		Event:       tasks.EventBookingConfirmed,
		BookingID:   bookingID,
		RecipientID: recipient,
		Data:        map[string]any{"code": "BK-20260830-7KQ2MX"},
	})

	if err := svc.HandleDeliverTask(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.created))
	}
	n := repo.created[0]
	if n.UserID != recipient {
		t.Fatal("expected recipient as notification user")
	}
	if n.Type != tasks.EventBookingConfirmed {
		t.Fatalf("expected type booking_confirmed, got %q", n.Type)
	}
	if n.IsRead {
		t.Fatal("expected unread notification")
	}
	if n.Data["booking_id"] != bookingID.String() {
		t.Fatalf("expected booking id in data, got %v", n.Data)
	}
	if n.Data["code"] != "BK-20260830-7KQ2MX" {
		t.Fatalf("expected code carried over, got %v", n.Data)
	}
}

func TestHandleDeliverTaskIgnoresUnknownEvent(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	task := deliverTask(t, tasks.NotificationPayload{
		Event:       "something_else",
		BookingID:   uuid.New(),
		RecipientID: uuid.New(),
	})

	// Unknown events are dropped, not retried.
	if err := svc.HandleDeliverTask(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("expected no notification, got %d", len(repo.created))
	}
}

func TestHandleDeliverTaskBadPayload(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)

	task := asynq.NewTask(tasks.TypeNotificationDeliver, []byte("{not json"))
	if err := svc.HandleDeliverTask(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}
