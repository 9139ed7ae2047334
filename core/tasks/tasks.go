package tasks

import (
	"context"
	"encoding/json"
	"time"

	"courtbook/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Booking lifecycle events handed to the Notification Dispatcher. Delivery
// channel and retry policy belong to the dispatcher, not the callers.
const (
	TypeNotificationDeliver = "notification:deliver"

	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingRejected  = "booking_rejected"
	EventBookingCancelled = "booking_cancelled"
)

type NotificationPayload struct {
	Event       string         `json:"event"`
	BookingID   uuid.UUID      `json:"booking_id"`
	RecipientID uuid.UUID      `json:"recipient_id"`
	Data        map[string]any `json:"data,omitempty"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, payload NotificationPayload) error
}

type asynqDispatcher struct {
	client *asynq.Client
}

func NewDispatcher(redisAddr, redisPassword string, redisDB int) Dispatcher {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return &asynqDispatcher{client: client}
}

// Dispatch is fire-and-forget from the caller's perspective: a booking is
// valid even if the notification could not be queued. Callers log the error
// and move on.
func (d *asynqDispatcher) Dispatch(ctx context.Context, payload NotificationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeNotificationDeliver, data)
	info, err := d.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return err
	}

	logger.Debug("Tasks:Dispatch", "event", payload.Event, "task_id", info.ID)
	return nil
}
