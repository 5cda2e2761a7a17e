package usecases

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
)

// CouponValidation is the storefront answer for a coupon check
type CouponValidation struct {
	Valid    bool    `json:"valid"`
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// CouponUsecase handles coupon administration and storefront validation
type CouponUsecase struct {
	couponRepo repositories.CouponRepository
}

// NewCouponUsecase creates a new coupon usecase
func NewCouponUsecase(couponRepo repositories.CouponRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo}
}

// CreateCoupon creates a discount code
func (u *CouponUsecase) CreateCoupon(ctx context.Context, input *entities.CreateCouponInput) (*entities.Coupon, error) {
	if input.Type != entities.CouponPercent && input.Type != entities.CouponFixed {
		return nil, domainerrors.BadRequest("invalid coupon type")
	}
	if input.Type == entities.CouponPercent && input.Value > 100 {
		return nil, domainerrors.BadRequest("percent discount cannot exceed 100")
	}

	coupon := &entities.Coupon{
		Code:          entities.NormalizeCouponCode(input.Code),
		Type:          input.Type,
		Value:         input.Value,
		MinOrderTotal: input.MinOrderTotal,
		MaxUses:       input.MaxUses,
		Active:        true,
		ExpiresAt:     input.ExpiresAt,
	}
	if err := u.couponRepo.Create(ctx, coupon); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("coupon code already exists")
		}
		return nil, err
	}
	return coupon, nil
}

// GetCoupon returns a coupon by id
func (u *CouponUsecase) GetCoupon(ctx context.Context, id primitive.ObjectID) (*entities.Coupon, error) {
	return u.couponRepo.GetByID(ctx, id)
}

// UpdateCoupon replaces the mutable fields of a coupon
func (u *CouponUsecase) UpdateCoupon(ctx context.Context, id primitive.ObjectID, input *entities.CreateCouponInput, active bool) (*entities.Coupon, error) {
	coupon, err := u.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	coupon.Code = entities.NormalizeCouponCode(input.Code)
	coupon.Type = input.Type
	coupon.Value = input.Value
	coupon.MinOrderTotal = input.MinOrderTotal
	coupon.MaxUses = input.MaxUses
	coupon.ExpiresAt = input.ExpiresAt
	coupon.Active = active

	if err := u.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// DeleteCoupon removes a coupon
func (u *CouponUsecase) DeleteCoupon(ctx context.Context, id primitive.ObjectID) error {
	return u.couponRepo.Delete(ctx, id)
}

// ListCoupons lists coupons for the admin panel
func (u *CouponUsecase) ListCoupons(ctx context.Context, limit, offset int) ([]*entities.Coupon, int64, error) {
	return u.couponRepo.List(ctx, limit, offset)
}

// ValidateCoupon answers the storefront's pre-checkout coupon check without
// consuming a use
func (u *CouponUsecase) ValidateCoupon(ctx context.Context, code string, orderTotal float64) (*CouponValidation, error) {
	coupon, err := u.couponRepo.GetByCode(ctx, entities.NormalizeCouponCode(code))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &CouponValidation{Valid: false}, nil
		}
		return nil, err
	}

	if !coupon.Usable(orderTotal, time.Now()) {
		return &CouponValidation{Valid: false, Code: coupon.Code}, nil
	}
	return &CouponValidation{
		Valid:    true,
		Code:     coupon.Code,
		Discount: coupon.Discount(orderTotal),
	}, nil
}
