package handlers

import (
	"bytes"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
)

// Map-backed stubs implementing the repository interfaces. Handler tests run
// the real usecases on top of these.

type userRepoStub struct {
	users map[primitive.ObjectID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[primitive.ObjectID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return u, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(_ context.Context, user *entities.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) SetVendorLink(_ context.Context, userID, vendorID primitive.ObjectID) error {
	u, ok := s.users[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.VendorID = &vendorID
	u.Role = entities.UserRoleVendor
	return nil
}

func (s *userRepoStub) ClearVendorLink(_ context.Context, userID primitive.ObjectID) error {
	u, ok := s.users[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.VendorID = nil
	u.Role = entities.UserRoleUser
	return nil
}

func (s *userRepoStub) ClearAllVendorLinks(context.Context) (int64, error) { return 0, nil }
func (s *userRepoStub) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.users, id)
	return nil
}
func (s *userRepoStub) List(context.Context, int, int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

type vendorRepoStub struct {
	vendors map[primitive.ObjectID]*entities.Vendor
}

func newVendorRepoStub() *vendorRepoStub {
	return &vendorRepoStub{vendors: map[primitive.ObjectID]*entities.Vendor{}}
}

func (s *vendorRepoStub) Create(_ context.Context, vendor *entities.Vendor) error {
	if vendor.ID.IsZero() {
		vendor.ID = primitive.NewObjectID()
	}
	s.vendors[vendor.ID] = vendor
	return nil
}

func (s *vendorRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Vendor, error) {
	v, ok := s.vendors[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return v, nil
}

func (s *vendorRepoStub) GetBySlug(_ context.Context, slug string) (*entities.Vendor, error) {
	for _, v := range s.vendors {
		if v.StoreSlug == slug {
			return v, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *vendorRepoStub) GetByEmail(_ context.Context, email string) (*entities.Vendor, error) {
	for _, v := range s.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *vendorRepoStub) GetByOwnerUser(_ context.Context, userID primitive.ObjectID) (*entities.Vendor, error) {
	for _, v := range s.vendors {
		if v.OwnerUser != nil && *v.OwnerUser == userID {
			return v, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *vendorRepoStub) Update(_ context.Context, vendor *entities.Vendor) error {
	s.vendors[vendor.ID] = vendor
	return nil
}

func (s *vendorRepoStub) UpdateStatus(_ context.Context, id primitive.ObjectID, status entities.VendorStatus, notes string) error {
	v, ok := s.vendors[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	v.Status = status
	v.StatusNotes = notes
	return nil
}

func (s *vendorRepoStub) ApplyBalanceDelta(_ context.Context, id primitive.ObjectID, delta repositories.BalanceDelta) error {
	v, ok := s.vendors[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	v.PendingBalance += delta.Pending
	v.AvailableBalance += delta.Available
	v.TotalSales += delta.Sales
	v.TotalEarnings += delta.Earnings
	return nil
}

func (s *vendorRepoStub) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.vendors, id)
	return nil
}

func (s *vendorRepoStub) DeleteAll(context.Context) (int64, error) {
	n := int64(len(s.vendors))
	s.vendors = map[primitive.ObjectID]*entities.Vendor{}
	return n, nil
}

func (s *vendorRepoStub) List(_ context.Context, status entities.VendorStatus, _, _ int) ([]*entities.Vendor, int64, error) {
	var out []*entities.Vendor
	for _, v := range s.vendors {
		if status == "" || v.Status == status {
			out = append(out, v)
		}
	}
	return out, int64(len(out)), nil
}

func (s *vendorRepoStub) ListAll(context.Context) ([]*entities.Vendor, error) {
	out := make([]*entities.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	return out, nil
}

type productRepoStub struct {
	products map[primitive.ObjectID]*entities.Product
}

func newProductRepoStub() *productRepoStub {
	return &productRepoStub{products: map[primitive.ObjectID]*entities.Product{}}
}

func (s *productRepoStub) Create(_ context.Context, product *entities.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	s.products[product.ID] = product
	return nil
}

func (s *productRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *productRepoStub) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*entities.Product, error) {
	var out []*entities.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *productRepoStub) Update(_ context.Context, product *entities.Product) error {
	s.products[product.ID] = product
	return nil
}

func (s *productRepoStub) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.products, id)
	return nil
}

func (s *productRepoStub) DeleteByVendor(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *productRepoStub) List(context.Context, int, int) ([]*entities.Product, int64, error) {
	out := make([]*entities.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (s *productRepoStub) ListByVendor(_ context.Context, vendorID primitive.ObjectID, _, _ int) ([]*entities.Product, int64, error) {
	var out []*entities.Product
	for _, p := range s.products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *productRepoStub) SetRating(_ context.Context, id primitive.ObjectID, average float64, count int) error {
	p, ok := s.products[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	p.AverageRating = average
	p.ReviewCount = count
	return nil
}

type orderRepoStub struct {
	orders map[primitive.ObjectID]*entities.Order
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: map[primitive.ObjectID]*entities.Order{}}
}

func (s *orderRepoStub) Create(_ context.Context, order *entities.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders[order.ID] = order
	return nil
}

func (s *orderRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return o, nil
}

func (s *orderRepoStub) List(context.Context, int, int) ([]*entities.Order, int64, error) {
	out := make([]*entities.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (s *orderRepoStub) ListByUser(_ context.Context, userID primitive.ObjectID, _, _ int) ([]*entities.Order, int64, error) {
	var out []*entities.Order
	for _, o := range s.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (s *orderRepoStub) ListByVendor(_ context.Context, vendorID primitive.ObjectID, _, _ int) ([]*entities.Order, int64, error) {
	var out []*entities.Order
	for _, o := range s.orders {
		for _, sum := range o.VendorSummaries {
			if sum.VendorID == vendorID {
				out = append(out, o)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

func (s *orderRepoStub) AppendStatus(_ context.Context, id primitive.ObjectID, entry entities.StatusHistoryEntry) error {
	o, ok := s.orders[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	o.Status = entry.Status
	o.StatusHistory = append(o.StatusHistory, entry)
	return nil
}

func (s *orderRepoStub) SetVendorItemStatus(_ context.Context, orderID, vendorID, productID primitive.ObjectID, status entities.VendorItemStatus) error {
	o, ok := s.orders[orderID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	for i := range o.Items {
		if o.Items[i].VendorID == vendorID && o.Items[i].ProductID == productID {
			o.Items[i].VendorStatus = status
		}
	}
	return nil
}

func (s *orderRepoStub) SetVendorSummaryPayoutStatus(_ context.Context, orderID, vendorID primitive.ObjectID, status entities.PayoutStatus) error {
	o, ok := s.orders[orderID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	for i := range o.VendorSummaries {
		if o.VendorSummaries[i].VendorID == vendorID {
			o.VendorSummaries[i].PayoutStatus = status
		}
	}
	return nil
}

func (s *orderRepoStub) MarkFailed(_ context.Context, id primitive.ObjectID, reason, code string) error {
	o, ok := s.orders[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	o.PaymentStatus = entities.PaymentStatusFailed
	o.FailReason = reason
	o.FailCode = code
	return nil
}

func (s *orderRepoStub) SetNotificationEnabled(_ context.Context, id primitive.ObjectID, enabled bool) error {
	o, ok := s.orders[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	o.FailedOrderNotificationEnabled = enabled
	return nil
}

func (s *orderRepoStub) IncrementFailedNotification(_ context.Context, id primitive.ObjectID, ceiling int, at time.Time) (bool, error) {
	o, ok := s.orders[id]
	if !ok {
		return false, domainerrors.ErrNotFound
	}
	if ceiling > 0 && o.FailedOrderNotificationsSent >= ceiling {
		return false, nil
	}
	o.FailedOrderNotificationsSent++
	o.FailedOrderNotificationsSentAt = append(o.FailedOrderNotificationsSentAt, at)
	return true, nil
}

func (s *orderRepoStub) SumFailedNotifications(_ context.Context, userID *primitive.ObjectID, guestEmail string) (int, error) {
	total := 0
	for _, o := range s.orders {
		if o.PaymentStatus != entities.PaymentStatusFailed {
			continue
		}
		if userID != nil && o.UserID != nil && *o.UserID == *userID {
			total += o.FailedOrderNotificationsSent
		}
		if guestEmail != "" && o.GuestCustomer != nil && o.GuestCustomer.Email == guestEmail {
			total += o.FailedOrderNotificationsSent
		}
	}
	return total, nil
}

func (s *orderRepoStub) ListReviewCandidates(_ context.Context, ids []primitive.ObjectID) ([]*entities.Order, error) {
	var out []*entities.Order
	for _, o := range s.orders {
		if o.Status != entities.OrderStatusDelivered || o.ReviewRequestsSent {
			continue
		}
		if len(ids) > 0 {
			for _, id := range ids {
				if o.ID == id {
					out = append(out, o)
					break
				}
			}
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *orderRepoStub) SetReviewRequestsSent(_ context.Context, id primitive.ObjectID, sent bool) error {
	o, ok := s.orders[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	o.ReviewRequestsSent = sent
	return nil
}

type couponRepoStub struct {
	coupons map[string]*entities.Coupon
}

func newCouponRepoStub() *couponRepoStub {
	return &couponRepoStub{coupons: map[string]*entities.Coupon{}}
}

func (s *couponRepoStub) Create(_ context.Context, coupon *entities.Coupon) error {
	if _, exists := s.coupons[coupon.Code]; exists {
		return domainerrors.ErrAlreadyExists
	}
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	s.coupons[coupon.Code] = coupon
	return nil
}

func (s *couponRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Coupon, error) {
	for _, cp := range s.coupons {
		if cp.ID == id {
			return cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *couponRepoStub) GetByCode(_ context.Context, code string) (*entities.Coupon, error) {
	cp, ok := s.coupons[code]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return cp, nil
}

func (s *couponRepoStub) Update(_ context.Context, coupon *entities.Coupon) error {
	s.coupons[coupon.Code] = coupon
	return nil
}

func (s *couponRepoStub) Delete(_ context.Context, id primitive.ObjectID) error {
	for code, cp := range s.coupons {
		if cp.ID == id {
			delete(s.coupons, code)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *couponRepoStub) List(context.Context, int, int) ([]*entities.Coupon, int64, error) {
	out := make([]*entities.Coupon, 0, len(s.coupons))
	for _, cp := range s.coupons {
		out = append(out, cp)
	}
	return out, int64(len(out)), nil
}

func (s *couponRepoStub) IncrementUsage(_ context.Context, code string) (bool, error) {
	cp, ok := s.coupons[code]
	if !ok {
		return false, domainerrors.ErrNotFound
	}
	if cp.MaxUses > 0 && cp.UsedCount >= cp.MaxUses {
		return false, nil
	}
	cp.UsedCount++
	return true, nil
}

type payoutRepoStub struct {
	payouts map[primitive.ObjectID]*entities.Payout
}

func newPayoutRepoStub() *payoutRepoStub {
	return &payoutRepoStub{payouts: map[primitive.ObjectID]*entities.Payout{}}
}

func (s *payoutRepoStub) Create(_ context.Context, payout *entities.Payout) error {
	if payout.ID.IsZero() {
		payout.ID = primitive.NewObjectID()
	}
	s.payouts[payout.ID] = payout
	return nil
}

func (s *payoutRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Payout, error) {
	p, ok := s.payouts[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (s *payoutRepoStub) SetStatus(_ context.Context, id primitive.ObjectID, status entities.PayoutRequestStatus, note string, processedAt time.Time) error {
	p, ok := s.payouts[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	p.Status = status
	p.Note = note
	p.ProcessedAt = &processedAt
	return nil
}

func (s *payoutRepoStub) ListByVendor(_ context.Context, vendorID primitive.ObjectID, _, _ int) ([]*entities.Payout, int64, error) {
	var out []*entities.Payout
	for _, p := range s.payouts {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *payoutRepoStub) List(_ context.Context, status entities.PayoutRequestStatus, _, _ int) ([]*entities.Payout, int64, error) {
	var out []*entities.Payout
	for _, p := range s.payouts {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *payoutRepoStub) DeleteByVendor(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}
func (s *payoutRepoStub) DeleteAll(context.Context) (int64, error) { return 0, nil }

type reviewRepoStub struct {
	reviews map[primitive.ObjectID]*entities.Review
}

func newReviewRepoStub() *reviewRepoStub {
	return &reviewRepoStub{reviews: map[primitive.ObjectID]*entities.Review{}}
}

func (s *reviewRepoStub) Create(_ context.Context, review *entities.Review) error {
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}
	s.reviews[review.ID] = review
	return nil
}

func (s *reviewRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.Review, error) {
	r, ok := s.reviews[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return r, nil
}

func (s *reviewRepoStub) GetByProductAndReviewer(_ context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (*entities.Review, error) {
	for _, r := range s.reviews {
		if r.ProductID != productID {
			continue
		}
		if userID != nil && r.UserID != nil && *r.UserID == *userID {
			return r, nil
		}
		if email != "" && r.ReviewerEmail == email {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *reviewRepoStub) HasApprovedReview(_ context.Context, productID primitive.ObjectID, userID *primitive.ObjectID, email string) (bool, error) {
	r, err := s.GetByProductAndReviewer(context.Background(), productID, userID, email)
	if err != nil {
		return false, nil
	}
	return r.Status == entities.ReviewStatusApproved, nil
}

func (s *reviewRepoStub) SetStatus(_ context.Context, id primitive.ObjectID, status entities.ReviewStatus, approved bool) error {
	r, ok := s.reviews[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = status
	r.IsApproved = approved
	return nil
}

func (s *reviewRepoStub) ListByProduct(_ context.Context, productID primitive.ObjectID, _, _ int) ([]*entities.Review, int64, error) {
	var out []*entities.Review
	for _, r := range s.reviews {
		if r.ProductID == productID && r.Status == entities.ReviewStatusApproved {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (s *reviewRepoStub) RatingStats(_ context.Context, productID primitive.ObjectID) (float64, int, error) {
	sum, count := 0.0, 0
	for _, r := range s.reviews {
		if r.ProductID == productID && r.Status == entities.ReviewStatusApproved {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return sum / float64(count), count, nil
}

type reviewRequestRepoStub struct {
	requests map[primitive.ObjectID]*entities.ReviewRequest
}

func newReviewRequestRepoStub() *reviewRequestRepoStub {
	return &reviewRequestRepoStub{requests: map[primitive.ObjectID]*entities.ReviewRequest{}}
}

func (s *reviewRequestRepoStub) Create(_ context.Context, request *entities.ReviewRequest) error {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	s.requests[request.ID] = request
	return nil
}

func (s *reviewRequestRepoStub) GetByID(_ context.Context, id primitive.ObjectID) (*entities.ReviewRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return r, nil
}

func (s *reviewRequestRepoStub) GetByToken(_ context.Context, token string) (*entities.ReviewRequest, error) {
	for _, r := range s.requests {
		if r.ReviewToken == token {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *reviewRequestRepoStub) GetActiveByOrderProduct(_ context.Context, orderID, productID primitive.ObjectID) (*entities.ReviewRequest, error) {
	for _, r := range s.requests {
		if r.OrderID == orderID && r.ProductID == productID &&
			(r.Status == entities.ReviewRequestPending || r.Status == entities.ReviewRequestSent) {
			return r, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *reviewRequestRepoStub) List(_ context.Context, status entities.ReviewRequestStatus, adminStatus entities.ReviewRequestAdminStatus, _, _ int) ([]*entities.ReviewRequest, int64, error) {
	var out []*entities.ReviewRequest
	for _, r := range s.requests {
		if status != "" && r.Status != status {
			continue
		}
		if adminStatus != "" && r.AdminStatus != adminStatus {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (s *reviewRequestRepoStub) MarkSent(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r, ok := s.requests[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = entities.ReviewRequestSent
	r.SentAt = &at
	return nil
}

func (s *reviewRequestRepoStub) MarkOpened(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r, ok := s.requests[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if !r.EmailOpened {
		r.EmailOpened = true
		r.EmailOpenedAt = &at
	}
	return nil
}

func (s *reviewRequestRepoStub) MarkExpired(_ context.Context, id primitive.ObjectID) error {
	r, ok := s.requests[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = entities.ReviewRequestExpired
	return nil
}

func (s *reviewRequestRepoStub) MarkReviewed(_ context.Context, id, reviewID primitive.ObjectID, at time.Time) error {
	r, ok := s.requests[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = entities.ReviewRequestReviewed
	r.AdminStatus = entities.ReviewRequestAdminPending
	r.ReviewID = &reviewID
	r.ReviewedAt = &at
	return nil
}

func (s *reviewRequestRepoStub) SetStatus(_ context.Context, id primitive.ObjectID, status entities.ReviewRequestStatus) error {
	r, ok := s.requests[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.Status = status
	return nil
}

func (s *reviewRequestRepoStub) SetAdminStatus(_ context.Context, id primitive.ObjectID, status entities.ReviewRequestAdminStatus) error {
	r, ok := s.requests[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.AdminStatus = status
	return nil
}

type auditRepoStub struct {
	mu      sync.Mutex
	entries []*entities.AuditLog
}

func (s *auditRepoStub) Create(_ context.Context, entry *entities.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *auditRepoStub) List(context.Context, int, int) ([]*entities.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, int64(len(s.entries)), nil
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mailStub records sends under a mutex because welcome and status emails go
// out on background goroutines
type mailStub struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *mailStub) record(entry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, entry)
	return m.err
}

func (m *mailStub) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func (m *mailStub) SendVendorWelcome(to, name, storeName string) error {
	return m.record("welcome:" + to)
}

func (m *mailStub) SendVendorStatusChanged(to, name string, vendor *entities.Vendor, notes string) error {
	return m.record("status:" + to)
}

func (m *mailStub) SendOrderFailed(to, name string, order *entities.Order) error {
	return m.record("failed:" + to)
}

func (m *mailStub) SendReviewRequest(request *entities.ReviewRequest) error {
	return m.record("review:" + request.CustomerEmail)
}

func jsonBody(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}
