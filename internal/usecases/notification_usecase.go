package usecases

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
)

// NotificationUsecase handles failed-order customer notifications. Two
// ceilings apply: at most three per order, and at most three across all of a
// customer's failed orders. The per-order ceiling is enforced by a guarded
// atomic increment so concurrent senders cannot overshoot it.
type NotificationUsecase struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	mail      MailSender
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	mail MailSender,
) *NotificationUsecase {
	return &NotificationUsecase{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mail:      mail,
	}
}

func capReached(message string) *domainerrors.AppError {
	return domainerrors.NewAppError(
		http.StatusBadRequest,
		domainerrors.CodeBadRequest,
		message,
		domainerrors.ErrNotificationCap,
	)
}

// SendFailedOrderNotification emails the customer about their failed
// payment. Force bypasses the per-order enable flag and both send ceilings.
// The counter moves only after the email went out.
func (u *NotificationUsecase) SendFailedOrderNotification(ctx context.Context, orderID primitive.ObjectID, force bool) (*entities.FailedNotificationStatus, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != entities.PaymentStatusFailed {
		return nil, domainerrors.NewAppError(
			http.StatusBadRequest,
			domainerrors.CodeBadRequest,
			"order is not marked as failed",
			domainerrors.ErrOrderNotFailed,
		)
	}
	if !order.FailedOrderNotificationEnabled && !force {
		return nil, domainerrors.BadRequest("failure notifications are disabled for this order")
	}

	email, name, guestEmail, err := u.resolveCustomer(ctx, order)
	if err != nil {
		return nil, err
	}

	if !force && order.FailedOrderNotificationsSent >= entities.MaxFailedOrderNotifications {
		return nil, capReached("order already received the maximum number of failure notifications")
	}

	total, err := u.orderRepo.SumFailedNotifications(ctx, order.UserID, guestEmail)
	if err != nil {
		return nil, err
	}
	if !force && total >= entities.MaxFailedOrderNotifications {
		return nil, capReached("customer already received the maximum number of failure notifications")
	}

	if err := u.mail.SendOrderFailed(email, name, order); err != nil {
		return nil, err
	}

	// Forced sends increment without a ceiling guard; the counter is allowed
	// to pass the cap.
	ceiling := entities.MaxFailedOrderNotifications
	if force {
		ceiling = 0
	}

	now := time.Now()
	ok, err := u.orderRepo.IncrementFailedNotification(ctx, orderID, ceiling, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent sender exhausted the ceiling between our read and the
		// increment. The email was already delivered; the counter stays put.
		return nil, capReached("order already received the maximum number of failure notifications")
	}

	order.FailedOrderNotificationsSent++
	order.FailedOrderNotificationsSentAt = append(order.FailedOrderNotificationsSentAt, now)
	return u.status(order, total+1), nil
}

// ToggleFailedOrderNotification flips the per-order enable flag
func (u *NotificationUsecase) ToggleFailedOrderNotification(ctx context.Context, orderID primitive.ObjectID, enabled bool) error {
	if _, err := u.orderRepo.GetByID(ctx, orderID); err != nil {
		return err
	}
	return u.orderRepo.SetNotificationEnabled(ctx, orderID, enabled)
}

// GetFailedOrderNotificationStatus reports both ceilings for the order
func (u *NotificationUsecase) GetFailedOrderNotificationStatus(ctx context.Context, orderID primitive.ObjectID) (*entities.FailedNotificationStatus, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	guestEmail := ""
	if order.IsGuest() {
		guestEmail = order.GuestCustomer.Email
	}
	total, err := u.orderRepo.SumFailedNotifications(ctx, order.UserID, guestEmail)
	if err != nil {
		return nil, err
	}
	return u.status(order, total), nil
}

func (u *NotificationUsecase) status(order *entities.Order, customerTotal int) *entities.FailedNotificationStatus {
	remaining := entities.MaxFailedOrderNotifications - order.FailedOrderNotificationsSent
	if byCustomer := entities.MaxFailedOrderNotifications - customerTotal; byCustomer < remaining {
		remaining = byCustomer
	}
	if remaining < 0 {
		remaining = 0
	}
	return &entities.FailedNotificationStatus{
		Enabled:       order.FailedOrderNotificationEnabled,
		SentCount:     order.FailedOrderNotificationsSent,
		SentAt:        order.FailedOrderNotificationsSentAt,
		CustomerTotal: customerTotal,
		Remaining:     remaining,
	}
}

// resolveCustomer returns the notification address and name. For guest
// orders the email also serves as the cross-order matching key.
func (u *NotificationUsecase) resolveCustomer(ctx context.Context, order *entities.Order) (email, name, guestEmail string, err error) {
	if order.UserID != nil {
		user, err := u.userRepo.GetByID(ctx, *order.UserID)
		if err != nil {
			return "", "", "", err
		}
		return user.Email, user.Name, "", nil
	}
	if order.GuestCustomer == nil || order.GuestCustomer.Email == "" {
		return "", "", "", domainerrors.BadRequest("order has no customer email")
	}
	return order.GuestCustomer.Email, order.GuestCustomer.Name, order.GuestCustomer.Email, nil
}
