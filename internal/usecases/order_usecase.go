package usecases

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
	"market-hub.backend/pkg/utils"
)

// OrderUsecase handles checkout, order lifecycle and vendor reconciliation
type OrderUsecase struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
	couponRepo  repositories.CouponRepository
	uow         repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	vendorRepo repositories.VendorRepository,
	couponRepo repositories.CouponRepository,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		couponRepo:  couponRepo,
		uow:         uow,
	}
}

// PlaceOrder runs checkout: splits the cart per vendor, snapshots each
// vendor's commission configuration onto the line items, builds the
// per-vendor summaries and credits pending balances in one transaction.
// Exactly one of UserID and GuestCustomer must be present.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, input *entities.PlaceOrderInput) (*entities.Order, error) {
	hasUser := input.UserID != ""
	hasGuest := input.GuestCustomer != nil && input.GuestCustomer.Email != ""
	if hasUser == hasGuest {
		return nil, domainerrors.BadRequest("order requires exactly one of userId or guestCustomer")
	}

	var userID *primitive.ObjectID
	if hasUser {
		id, err := utils.ParseObjectID(input.UserID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid userId")
		}
		userID = &id
	}

	var guest *entities.GuestCustomer
	if hasGuest {
		guest = &entities.GuestCustomer{
			Name:  input.GuestCustomer.Name,
			Email: utils.NormalizeEmail(input.GuestCustomer.Email),
			Phone: input.GuestCustomer.Phone,
		}
	}

	if len(input.Items) == 0 {
		return nil, domainerrors.BadRequest("order requires at least one item")
	}

	productIDs := make([]primitive.ObjectID, 0, len(input.Items))
	for _, line := range input.Items {
		id, err := utils.ParseObjectID(line.ProductID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid productId: " + line.ProductID)
		}
		productIDs = append(productIDs, id)
	}

	products, err := u.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[primitive.ObjectID]*entities.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	vendorsByID := map[primitive.ObjectID]*entities.Vendor{}
	items := make([]entities.OrderItem, 0, len(input.Items))
	var subtotal float64

	for i, line := range input.Items {
		product, ok := productsByID[productIDs[i]]
		if !ok {
			return nil, domainerrors.NotFound("product not found: " + line.ProductID)
		}
		if !product.Active {
			return nil, domainerrors.BadRequest("product is not available: " + product.Name)
		}
		if product.Stock < line.Quantity {
			return nil, domainerrors.BadRequest("insufficient stock for " + product.Name)
		}

		vendor, ok := vendorsByID[product.VendorID]
		if !ok {
			vendor, err = u.vendorRepo.GetByID(ctx, product.VendorID)
			if err != nil {
				return nil, err
			}
			vendorsByID[product.VendorID] = vendor
		}
		if vendor.Status != entities.VendorStatusApproved {
			return nil, domainerrors.BadRequest("vendor is not active: " + vendor.StoreName)
		}

		gross := entities.Round2(product.Price * float64(line.Quantity))
		commission := entities.ComputeCommission(vendor.CommissionType, vendor.CommissionValue, product.Price, line.Quantity)

		items = append(items, entities.OrderItem{
			ProductID:        product.ID,
			VendorID:         vendor.ID,
			Name:             product.Name,
			Price:            product.Price,
			Quantity:         line.Quantity,
			CommissionType:   vendor.CommissionType,
			CommissionValue:  vendor.CommissionValue,
			CommissionAmount: commission,
			VendorEarning:    entities.Round2(gross - commission),
			VendorStatus:     entities.VendorItemReceived,
		})
		subtotal += gross
	}
	subtotal = entities.Round2(subtotal)

	summaries := buildVendorSummaries(items)

	now := time.Now()
	var couponSnapshot *entities.CouponSnapshot
	var discount float64
	if input.CouponCode != "" {
		code := entities.NormalizeCouponCode(input.CouponCode)
		coupon, err := u.couponRepo.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.BadRequest("unknown coupon code")
			}
			return nil, err
		}
		if !coupon.Usable(subtotal, now) {
			return nil, domainerrors.BadRequest("coupon cannot be applied to this order")
		}
		ok, err := u.couponRepo.IncrementUsage(ctx, code)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domainerrors.BadRequest("coupon has no uses left")
		}
		discount = coupon.Discount(subtotal)
		couponSnapshot = &entities.CouponSnapshot{Code: code, Discount: discount}
	}

	order := &entities.Order{
		UserID:          userID,
		GuestCustomer:   guest,
		Items:           items,
		VendorSummaries: summaries,
		Subtotal:        subtotal,
		Discount:        discount,
		Total:           entities.Round2(subtotal - discount),
		Coupon:          couponSnapshot,
		Status:          entities.OrderStatusReceived,
		StatusHistory: []entities.StatusHistoryEntry{
			{Status: entities.OrderStatusReceived, ChangedAt: now},
		},
		PaymentStatus:                  entities.PaymentStatusPending,
		FailedOrderNotificationEnabled: true,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.Create(txCtx, order); err != nil {
			return err
		}
		for _, s := range summaries {
			delta := repositories.BalanceDelta{Pending: s.Net}
			if err := u.vendorRepo.ApplyBalanceDelta(txCtx, s.VendorID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// buildVendorSummaries aggregates line items into one summary per vendor,
// in first-appearance order
func buildVendorSummaries(items []entities.OrderItem) []entities.VendorSummary {
	index := map[primitive.ObjectID]int{}
	var summaries []entities.VendorSummary
	for _, item := range items {
		gross := entities.Round2(item.Price * float64(item.Quantity))
		i, ok := index[item.VendorID]
		if !ok {
			index[item.VendorID] = len(summaries)
			summaries = append(summaries, entities.VendorSummary{
				VendorID:     item.VendorID,
				PayoutStatus: entities.PayoutStatusPending,
			})
			i = len(summaries) - 1
		}
		summaries[i].Gross = entities.Round2(summaries[i].Gross + gross)
		summaries[i].Commission = entities.Round2(summaries[i].Commission + item.CommissionAmount)
		summaries[i].Net = entities.Round2(summaries[i].Net + item.VendorEarning)
	}
	return summaries
}

// GetOrder returns an order by id
func (u *OrderUsecase) GetOrder(ctx context.Context, id primitive.ObjectID) (*entities.Order, error) {
	return u.orderRepo.GetByID(ctx, id)
}

// ListOrders lists all orders (admin)
func (u *OrderUsecase) ListOrders(ctx context.Context, limit, offset int) ([]*entities.Order, int64, error) {
	return u.orderRepo.List(ctx, limit, offset)
}

// ListUserOrders lists a customer's own orders
func (u *OrderUsecase) ListUserOrders(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error) {
	return u.orderRepo.ListByUser(ctx, userID, limit, offset)
}

// ListVendorOrders lists orders containing the vendor's items
func (u *OrderUsecase) ListVendorOrders(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Order, int64, error) {
	return u.orderRepo.ListByVendor(ctx, vendorID, limit, offset)
}

// UpdateOrderStatus moves the order forward along the fulfillment chain.
// Reaching Delivered releases each vendor's share: payoutStatus flips
// PENDING to AVAILABLE and the pending balance moves to available, in one
// transaction.
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, input *entities.UpdateOrderStatusInput) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == entities.PaymentStatusFailed {
		return nil, domainerrors.BadRequest("cannot progress an order with failed payment")
	}
	if !order.Status.CanTransitionTo(input.Status) {
		return nil, domainerrors.BadRequest("invalid status transition from " + string(order.Status) + " to " + string(input.Status))
	}

	entry := entities.StatusHistoryEntry{
		Status:    input.Status,
		Note:      input.Note,
		ChangedAt: time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.orderRepo.AppendStatus(txCtx, id, entry); err != nil {
			return err
		}
		if input.Status != entities.OrderStatusDelivered {
			return nil
		}
		for _, s := range order.VendorSummaries {
			if s.PayoutStatus != entities.PayoutStatusPending {
				continue
			}
			if err := u.orderRepo.SetVendorSummaryPayoutStatus(txCtx, id, s.VendorID, entities.PayoutStatusAvailable); err != nil {
				return err
			}
			delta := repositories.BalanceDelta{
				Pending:   -s.Net,
				Available: s.Net,
				Sales:     s.Gross,
				Earnings:  s.Net,
			}
			if err := u.vendorRepo.ApplyBalanceDelta(txCtx, s.VendorID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = input.Status
	order.StatusHistory = append(order.StatusHistory, entry)
	if input.Status == entities.OrderStatusDelivered {
		for i := range order.VendorSummaries {
			if order.VendorSummaries[i].PayoutStatus == entities.PayoutStatusPending {
				order.VendorSummaries[i].PayoutStatus = entities.PayoutStatusAvailable
			}
		}
	}
	return order, nil
}

// MarkVendorSummaryPaid closes the finance loop on a delivered order once
// the vendor's share left the platform through a payout
func (u *OrderUsecase) MarkVendorSummaryPaid(ctx context.Context, orderID, vendorID primitive.ObjectID) error {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	for _, s := range order.VendorSummaries {
		if s.VendorID != vendorID {
			continue
		}
		if s.PayoutStatus != entities.PayoutStatusAvailable {
			return domainerrors.BadRequest("vendor share is not available for payout")
		}
		return u.orderRepo.SetVendorSummaryPayoutStatus(ctx, orderID, vendorID, entities.PayoutStatusPaid)
	}
	return domainerrors.NotFound("vendor has no share in this order")
}

// UpdateVendorItemStatus updates one vendor's fulfillment state for a line
// item on the vendor dashboard
func (u *OrderUsecase) UpdateVendorItemStatus(ctx context.Context, vendorID, orderID, productID primitive.ObjectID, status entities.VendorItemStatus) error {
	if !status.Valid() {
		return domainerrors.BadRequest("invalid item status")
	}

	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	found := false
	for _, item := range order.Items {
		if item.VendorID == vendorID && item.ProductID == productID {
			found = true
			break
		}
	}
	if !found {
		return domainerrors.NotFound("order item not found for this vendor")
	}

	return u.orderRepo.SetVendorItemStatus(ctx, orderID, vendorID, productID, status)
}

// MarkOrderFailed records a failed payment on the order
func (u *OrderUsecase) MarkOrderFailed(ctx context.Context, id primitive.ObjectID, input *entities.MarkOrderFailedInput) error {
	order, err := u.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.PaymentStatus == entities.PaymentStatusCompleted {
		return domainerrors.BadRequest("cannot fail an order with completed payment")
	}
	return u.orderRepo.MarkFailed(ctx, id, input.FailReason, input.FailCode)
}
