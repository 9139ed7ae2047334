package service

import (
	"context"
	"testing"

	"courtbook/core/errors"
	"courtbook/modules/subscription/repository"

	"github.com/google/uuid"
)

func TestActivateUnknownSubscriptionNotFound(t *testing.T) {
	repo := &fakeSubscriptionRepo{activateErr: repository.ErrNoPendingSubscription}
	svc := NewSubscriptionService(repo)

	appErr := svc.Activate(context.Background(), uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected not found for a non-pending target, got %v", appErr)
	}
}

func TestActivatePendingSubscription(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := NewSubscriptionService(repo)

	if appErr := svc.Activate(context.Background(), uuid.New()); appErr != nil {
		t.Fatalf("activate: %v", appErr)
	}
}
