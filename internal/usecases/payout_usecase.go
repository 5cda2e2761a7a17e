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

// PayoutUsecase handles vendor withdrawals. Requesting a payout debits the
// available balance up front; a rejection restores it.
type PayoutUsecase struct {
	payoutRepo repositories.PayoutRepository
	vendorRepo repositories.VendorRepository
	uow        repositories.UnitOfWork
}

// NewPayoutUsecase creates a new payout usecase
func NewPayoutUsecase(
	payoutRepo repositories.PayoutRepository,
	vendorRepo repositories.VendorRepository,
	uow repositories.UnitOfWork,
) *PayoutUsecase {
	return &PayoutUsecase{
		payoutRepo: payoutRepo,
		vendorRepo: vendorRepo,
		uow:        uow,
	}
}

// RequestPayout opens a withdrawal for the vendor. The amount is debited
// from the available balance in the same transaction that records the
// request.
func (u *PayoutUsecase) RequestPayout(ctx context.Context, vendorID primitive.ObjectID, input *entities.RequestPayoutInput) (*entities.Payout, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.BadRequest("payout amount must be positive")
	}

	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if input.Amount > vendor.AvailableBalance {
		return nil, domainerrors.NewAppError(
			http.StatusBadRequest,
			domainerrors.CodeBadRequest,
			"payout amount exceeds available balance",
			domainerrors.ErrInsufficientFunds,
		)
	}

	payout := &entities.Payout{
		VendorID:    vendorID,
		Amount:      entities.Round2(input.Amount),
		Status:      entities.PayoutRequested,
		Note:        input.Note,
		RequestedAt: time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		delta := repositories.BalanceDelta{Available: -payout.Amount}
		if err := u.vendorRepo.ApplyBalanceDelta(txCtx, vendorID, delta); err != nil {
			return err
		}
		return u.payoutRepo.Create(txCtx, payout)
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// ApprovePayout moves a requested payout to APPROVED
func (u *PayoutUsecase) ApprovePayout(ctx context.Context, id primitive.ObjectID, note string) error {
	payout, err := u.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payout.Status != entities.PayoutRequested {
		return domainerrors.BadRequest("only requested payouts can be approved")
	}
	return u.payoutRepo.SetStatus(ctx, id, entities.PayoutApproved, note, time.Now())
}

// MarkPayoutPaid records that the transfer was executed
func (u *PayoutUsecase) MarkPayoutPaid(ctx context.Context, id primitive.ObjectID, note string) error {
	payout, err := u.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payout.Status != entities.PayoutRequested && payout.Status != entities.PayoutApproved {
		return domainerrors.BadRequest("payout is not payable in its current state")
	}
	return u.payoutRepo.SetStatus(ctx, id, entities.PayoutPaid, note, time.Now())
}

// RejectPayout declines the withdrawal and restores the vendor's available
// balance in the same transaction
func (u *PayoutUsecase) RejectPayout(ctx context.Context, id primitive.ObjectID, note string) error {
	payout, err := u.payoutRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payout.Status != entities.PayoutRequested && payout.Status != entities.PayoutApproved {
		return domainerrors.BadRequest("payout is not rejectable in its current state")
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.payoutRepo.SetStatus(txCtx, id, entities.PayoutRejected, note, time.Now()); err != nil {
			return err
		}
		delta := repositories.BalanceDelta{Available: payout.Amount}
		return u.vendorRepo.ApplyBalanceDelta(txCtx, payout.VendorID, delta)
	})
}

// ListVendorPayouts lists the vendor's own payouts
func (u *PayoutUsecase) ListVendorPayouts(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Payout, int64, error) {
	return u.payoutRepo.ListByVendor(ctx, vendorID, limit, offset)
}

// ListPayouts lists payouts for the admin panel, optionally by status
func (u *PayoutUsecase) ListPayouts(ctx context.Context, status entities.PayoutRequestStatus, limit, offset int) ([]*entities.Payout, int64, error) {
	return u.payoutRepo.List(ctx, status, limit, offset)
}
