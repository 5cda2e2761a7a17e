package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
)

// OrderRepository defines order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Order, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Order, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error)
	ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error)

	// AppendStatus sets the top-level status and appends a history entry in
	// one update
	AppendStatus(ctx context.Context, id primitive.ObjectID, entry entities.StatusHistoryEntry) error
	SetVendorItemStatus(ctx context.Context, orderID, vendorID, productID primitive.ObjectID, status entities.VendorItemStatus) error
	SetVendorSummaryPayoutStatus(ctx context.Context, orderID, vendorID primitive.ObjectID, status entities.PayoutStatus) error
	MarkFailed(ctx context.Context, id primitive.ObjectID, reason, code string) error

	SetNotificationEnabled(ctx context.Context, id primitive.ObjectID, enabled bool) error
	// IncrementFailedNotification bumps the notification counter and appends
	// the timestamp, but only while the counter is below the ceiling. A
	// ceiling of zero or less skips the guard. Returns false when the guard
	// rejected the update.
	IncrementFailedNotification(ctx context.Context, id primitive.ObjectID, ceiling int, at time.Time) (bool, error)
	// SumFailedNotifications totals failure notifications across all FAILED
	// orders belonging to the same customer, matched by user id or by
	// case-insensitive guest email
	SumFailedNotifications(ctx context.Context, userID *primitive.ObjectID, guestEmail string) (int, error)

	// ListReviewCandidates returns delivered orders pending review requests.
	// With ids non-empty only those orders are considered, delivered or not
	// already processed checks still apply.
	ListReviewCandidates(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Order, error)
	SetReviewRequestsSent(ctx context.Context, id primitive.ObjectID, sent bool) error
}
