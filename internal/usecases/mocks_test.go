package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	"market-hub.backend/internal/domain/repositories"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock MailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendVendorWelcome(to, name, storeName string) error {
	args := m.Called(to, name, storeName)
	return args.Error(0)
}

func (m *MockMailSender) SendVendorStatusChanged(to, name string, vendor *entities.Vendor, notes string) error {
	args := m.Called(to, name, vendor, notes)
	return args.Error(0)
}

func (m *MockMailSender) SendOrderFailed(to, name string, order *entities.Order) error {
	args := m.Called(to, name, order)
	return args.Error(0)
}

func (m *MockMailSender) SendReviewRequest(req *entities.ReviewRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetVendorLink(ctx context.Context, userID, vendorID primitive.ObjectID) error {
	args := m.Called(ctx, userID, vendorID)
	return args.Error(0)
}

func (m *MockUserRepository) ClearVendorLink(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) ClearAllVendorLinks(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

// Mock VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entities.Vendor) error {
	args := m.Called(ctx, vendor)
	if vendor.ID.IsZero() {
		vendor.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetBySlug(ctx context.Context, slug string) (*entities.Vendor, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByEmail(ctx context.Context, email string) (*entities.Vendor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByOwnerUser(ctx context.Context, userID primitive.ObjectID) (*entities.Vendor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *entities.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entities.VendorStatus, notes string) error {
	args := m.Called(ctx, id, status, notes)
	return args.Error(0)
}

func (m *MockVendorRepository) ApplyBalanceDelta(ctx context.Context, id primitive.ObjectID, delta repositories.BalanceDelta) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVendorRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) List(ctx context.Context, status entities.VendorStatus, limit, offset int) ([]*entities.Vendor, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) ListAll(ctx context.Context) ([]*entities.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Vendor), args.Error(1)
}

// Mock MaintenanceRepository
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) FixVendorIndexes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Mock OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entities.Order) error {
	args := m.Called(ctx, order)
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, limit, offset int) ([]*entities.Order, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) AppendStatus(ctx context.Context, id primitive.ObjectID, entry entities.StatusHistoryEntry) error {
	args := m.Called(ctx, id, entry)
	return args.Error(0)
}

func (m *MockOrderRepository) SetVendorItemStatus(ctx context.Context, orderID, vendorID, productID primitive.ObjectID, status entities.VendorItemStatus) error {
	args := m.Called(ctx, orderID, vendorID, productID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) SetVendorSummaryPayoutStatus(ctx context.Context, orderID, vendorID primitive.ObjectID, status entities.PayoutStatus) error {
	args := m.Called(ctx, orderID, vendorID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkFailed(ctx context.Context, id primitive.ObjectID, reason, code string) error {
	args := m.Called(ctx, id, reason, code)
	return args.Error(0)
}

func (m *MockOrderRepository) SetNotificationEnabled(ctx context.Context, id primitive.ObjectID, enabled bool) error {
	args := m.Called(ctx, id, enabled)
	return args.Error(0)
}

func (m *MockOrderRepository) IncrementFailedNotification(ctx context.Context, id primitive.ObjectID, ceiling int, at time.Time) (bool, error) {
	args := m.Called(ctx, id, ceiling, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SumFailedNotifications(ctx context.Context, userID *primitive.ObjectID, guestEmail string) (int, error) {
	args := m.Called(ctx, userID, guestEmail)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) ListReviewCandidates(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Order), args.Error(1)
}

func (m *MockOrderRepository) SetReviewRequestsSent(ctx context.Context, id primitive.ObjectID, sent bool) error {
	args := m.Called(ctx, id, sent)
	return args.Error(0)
}

// Mock ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *entities.Product) error {
	args := m.Called(ctx, product)
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entities.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteByVendor(ctx context.Context, vendorID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*entities.Product, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Product, int64, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) SetRating(ctx context.Context, id primitive.ObjectID, average float64, count int) error {
	args := m.Called(ctx, id, average, count)
	return args.Error(0)
}

// Mock ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	args := m.Called(ctx, review)
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByProductAndReviewer(ctx context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (*entities.Review, error) {
	args := m.Called(ctx, productID, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) HasApprovedReview(ctx context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (bool, error) {
	args := m.Called(ctx, productID, userID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewStatus, approved bool) error {
	args := m.Called(ctx, id, status, approved)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID primitive.ObjectID, limit, offset int) ([]*entities.Review, int64, error) {
	args := m.Called(ctx, productID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) RatingStats(ctx context.Context, productID primitive.ObjectID) (float64, int, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// Mock ReviewRequestRepository
type MockReviewRequestRepository struct {
	mock.Mock
}

func (m *MockReviewRequestRepository) Create(ctx context.Context, request *entities.ReviewRequest) error {
	args := m.Called(ctx, request)
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockReviewRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.ReviewRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) GetByToken(ctx context.Context, token string) (*entities.ReviewRequest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) GetActiveByOrderProduct(ctx context.Context, orderID, productID primitive.ObjectID) (*entities.ReviewRequest, error) {
	args := m.Called(ctx, orderID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ReviewRequest), args.Error(1)
}

func (m *MockReviewRequestRepository) List(ctx context.Context, status entities.ReviewRequestStatus, adminStatus entities.ReviewRequestAdminStatus, limit, offset int) ([]*entities.ReviewRequest, int64, error) {
	args := m.Called(ctx, status, adminStatus, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.ReviewRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRequestRepository) MarkSent(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) MarkOpened(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) MarkExpired(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) MarkReviewed(ctx context.Context, id, reviewID primitive.ObjectID, at time.Time) error {
	args := m.Called(ctx, id, reviewID, at)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewRequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReviewRequestRepository) SetAdminStatus(ctx context.Context, id primitive.ObjectID, status entities.ReviewRequestAdminStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// Mock PayoutRepository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *entities.Payout) error {
	args := m.Called(ctx, payout)
	if payout.ID.IsZero() {
		payout.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Payout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payout), args.Error(1)
}

func (m *MockPayoutRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status entities.PayoutRequestStatus, note string, processedAt time.Time) error {
	args := m.Called(ctx, id, status, note, processedAt)
	return args.Error(0)
}

func (m *MockPayoutRepository) ListByVendor(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Payout, int64, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) List(ctx context.Context, status entities.PayoutRequestStatus, limit, offset int) ([]*entities.Payout, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) DeleteByVendor(ctx context.Context, vendorID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPayoutRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	args := m.Called(ctx, coupon)
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Update(ctx context.Context, coupon *entities.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) List(ctx context.Context, limit, offset int) ([]*entities.Coupon, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Coupon), args.Get(1).(int64), args.Error(2)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// Mock AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *entities.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) List(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.AuditLog), args.Get(1).(int64), args.Error(2)
}
