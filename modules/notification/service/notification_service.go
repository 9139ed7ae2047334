package service

import (
	"context"
	"encoding/json"
	"time"

	coreEntity "courtbook/core/entity"
	"courtbook/core/errors"
	"courtbook/core/logger"
	"courtbook/core/params"
	"courtbook/core/tasks"
	"courtbook/modules/notification/entity"
	"courtbook/modules/notification/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// NotificationService persists and serves in-app notifications. Delivery
// happens off the request path: booking operations enqueue a task and the
// asynq worker lands it here via HandleDeliverTask.
type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

type NotificationServiceInterface interface {
	GetMyNotifications(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
	HandleDeliverTask(ctx context.Context, t *asynq.Task) error
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) NotificationServiceInterface {
	return &NotificationService{repo: repo}
}

var eventTitles = map[string]string{
	tasks.EventBookingCreated:   "New booking request",
	tasks.EventBookingConfirmed: "Booking confirmed",
	tasks.EventBookingRejected:  "Booking rejected",
	tasks.EventBookingCancelled: "Booking cancelled",
}

var eventMessages = map[string]string{
	tasks.EventBookingCreated:   "A new booking is waiting for your approval.",
	tasks.EventBookingConfirmed: "Your booking has been confirmed by the venue.",
	tasks.EventBookingRejected:  "Your booking was rejected by the venue.",
	tasks.EventBookingCancelled: "A booking was cancelled.",
}

// HandleDeliverTask is the asynq handler for queued booking events.
// Returning an error lets asynq retry with backoff.
func (s *NotificationService) HandleDeliverTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.NotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationService:HandleDeliverTask - Unmarshal", err)
		return err
	}

	title, ok := eventTitles[payload.Event]
	if !ok {
		logger.Warn("NotificationService:HandleDeliverTask", "unknown_event", payload.Event)
		return nil
	}

	data := entity.JSONB{"booking_id": payload.BookingID.String()}
	for k, v := range payload.Data {
		data[k] = v
	}

	notif := &entity.Notification{
		UserID:  payload.RecipientID,
		Title:   title,
		Message: eventMessages[payload.Event],
		Type:    payload.Event,
		Data:    data,
		IsRead:  false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	return s.repo.Create(ctx, notif)
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, p params.QueryParams) (*entity.PaginatedNotificationEntity, *errors.AppError) {
	page, err := s.repo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get notifications", err)
	}
	return page, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to mark all as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Failed to count unread", err)
	}
	return count, nil
}
