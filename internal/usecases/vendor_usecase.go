package usecases

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
	"market-hub.backend/pkg/crypto"
	"market-hub.backend/pkg/jwt"
	"market-hub.backend/pkg/logger"
	"market-hub.backend/pkg/utils"
)

// MailSender is the outbound email surface the usecases depend on
type MailSender interface {
	SendVendorWelcome(to, name, storeName string) error
	SendVendorStatusChanged(to, name string, vendor *entities.Vendor, notes string) error
	SendOrderFailed(to, name string, order *entities.Order) error
	SendReviewRequest(req *entities.ReviewRequest) error
}

const minPasswordLength = 6

// staleIndexSolution is surfaced on duplicate-key failures that our own
// uniqueness prechecks did not predict, which points at a leftover legacy
// index on the vendors collection.
const staleIndexSolution = "run POST /api/v1/admin/vendors/fix-indexes to drop legacy indexes, then retry"

// VendorUsecase handles vendor lifecycle business logic
type VendorUsecase struct {
	vendorRepo      repositories.VendorRepository
	userRepo        repositories.UserRepository
	productRepo     repositories.ProductRepository
	payoutRepo      repositories.PayoutRepository
	auditRepo       repositories.AuditLogRepository
	maintenanceRepo repositories.MaintenanceRepository
	uow             repositories.UnitOfWork
	jwtService      *jwt.JWTService
	mail            MailSender

	defaultCommissionType  entities.CommissionType
	defaultCommissionValue float64
}

// NewVendorUsecase creates a new vendor usecase
func NewVendorUsecase(
	vendorRepo repositories.VendorRepository,
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	payoutRepo repositories.PayoutRepository,
	auditRepo repositories.AuditLogRepository,
	maintenanceRepo repositories.MaintenanceRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	mail MailSender,
	defaultCommissionType entities.CommissionType,
	defaultCommissionValue float64,
) *VendorUsecase {
	return &VendorUsecase{
		vendorRepo:             vendorRepo,
		userRepo:               userRepo,
		productRepo:            productRepo,
		payoutRepo:             payoutRepo,
		auditRepo:              auditRepo,
		maintenanceRepo:        maintenanceRepo,
		uow:                    uow,
		jwtService:             jwtService,
		mail:                   mail,
		defaultCommissionType:  defaultCommissionType,
		defaultCommissionValue: defaultCommissionValue,
	}
}

// sendMailAsync fires an email without blocking the request. Failures are
// logged and never bubble up.
var sendMailAsync = func(send func() error) {
	go func() {
		if err := send(); err != nil {
			logger.Error(context.Background(), "failed to send email: "+err.Error())
		}
	}()
}

// CreateVendor onboards a store from the admin panel. The owner user is
// created when the email is unknown; user and vendor are written in one
// transaction so a rejected slug or email can never leave an orphaned user
// behind. Re-submitting the same store for the same owner updates in place.
func (u *VendorUsecase) CreateVendor(ctx context.Context, input *entities.CreateVendorInput) (*entities.CreateVendorResponse, error) {
	slug := utils.NormalizeSlug(input.StoreSlug)
	email := utils.NormalizeEmail(input.Email)

	if !entities.StoreSlugPattern.MatchString(slug) {
		return nil, domainerrors.BadRequest("storeSlug may only contain lowercase letters, digits and hyphens")
	}

	status := input.Status
	if status == "" {
		status = entities.VendorStatusApproved
	}
	if !status.Valid() {
		return nil, domainerrors.BadRequest("invalid vendor status")
	}

	existingUser, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	// Re-submission of the owner's own store is an idempotent update
	if existingUser != nil && existingUser.VendorID != nil {
		owned, err := u.vendorRepo.GetByID(ctx, *existingUser.VendorID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if owned != nil {
			if owned.StoreSlug != slug {
				return nil, domainerrors.Conflict("email already belongs to another store owner").WithData("emailTaken", true)
			}
			owned.StoreName = input.StoreName
			owned.Phone = input.Phone
			owned.Address = input.Address
			owned.Categories = input.Categories
			if input.CommissionType != "" {
				owned.CommissionType = input.CommissionType
				owned.CommissionValue = input.CommissionValue
			}
			if err := u.vendorRepo.Update(ctx, owned); err != nil {
				return nil, err
			}
			return &entities.CreateVendorResponse{
				VendorID:    owned.ID,
				UserID:      existingUser.ID,
				StoreSlug:   owned.StoreSlug,
				Status:      owned.Status,
				UserCreated: false,
			}, nil
		}
	}

	if _, err := u.vendorRepo.GetBySlug(ctx, slug); err == nil {
		return nil, domainerrors.Conflict("store slug already taken").WithData("slugTaken", true)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	userCreated := existingUser == nil
	if userCreated && len(input.Password) < minPasswordLength {
		return nil, domainerrors.BadRequest("password must be at least 6 characters for a new owner account")
	}

	commissionType := input.CommissionType
	commissionValue := input.CommissionValue
	if commissionType == "" {
		commissionType = u.defaultCommissionType
		commissionValue = u.defaultCommissionValue
	}

	var resp *entities.CreateVendorResponse
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		owner := existingUser
		if owner == nil {
			passwordHash, err := crypto.HashPassword(input.Password)
			if err != nil {
				return err
			}
			owner = &entities.User{
				Email:        email,
				Name:         input.Name,
				PasswordHash: passwordHash,
				Role:         entities.UserRoleUser,
				Phone:        input.Phone,
			}
			if err := u.userRepo.Create(txCtx, owner); err != nil {
				return err
			}
		}

		vendor := &entities.Vendor{
			OwnerUser:       &owner.ID,
			StoreName:       input.StoreName,
			StoreSlug:       slug,
			Email:           email,
			Status:          status,
			Phone:           input.Phone,
			Address:         input.Address,
			Categories:      input.Categories,
			CommissionType:  commissionType,
			CommissionValue: commissionValue,
		}
		if err := u.vendorRepo.Create(txCtx, vendor); err != nil {
			return err
		}

		if err := u.userRepo.SetVendorLink(txCtx, owner.ID, vendor.ID); err != nil {
			return err
		}

		resp = &entities.CreateVendorResponse{
			VendorID:    vendor.ID,
			UserID:      owner.ID,
			StoreSlug:   vendor.StoreSlug,
			Status:      vendor.Status,
			UserCreated: userCreated,
		}
		return nil
	})
	if err != nil {
		// Uniqueness was prechecked, so a duplicate key here means a stale
		// legacy index rejected the insert.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.NewAppError(
				http.StatusInternalServerError,
				domainerrors.CodeStaleIndex,
				"vendor insert rejected by a stale database index",
				domainerrors.ErrStaleIndex,
			).WithData("solution", staleIndexSolution)
		}
		return nil, err
	}

	if status == entities.VendorStatusApproved {
		to, name := email, input.Name
		storeName := input.StoreName
		sendMailAsync(func() error {
			return u.mail.SendVendorWelcome(to, name, storeName)
		})
	}

	return resp, nil
}

// RegisterVendor files a self-service seller application for the
// authenticated user. The store goes live only after admin approval.
func (u *VendorUsecase) RegisterVendor(ctx context.Context, userID primitive.ObjectID, input *entities.RegisterVendorInput) (*entities.Vendor, error) {
	slug := utils.NormalizeSlug(input.StoreSlug)
	if !entities.StoreSlugPattern.MatchString(slug) {
		return nil, domainerrors.BadRequest("storeSlug may only contain lowercase letters, digits and hyphens")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := u.vendorRepo.GetByOwnerUser(ctx, userID); err == nil {
		return nil, domainerrors.Conflict("user already owns a store")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if _, err := u.vendorRepo.GetBySlug(ctx, slug); err == nil {
		return nil, domainerrors.Conflict("store slug already taken").WithData("slugTaken", true)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	vendor := &entities.Vendor{
		OwnerUser:       &user.ID,
		StoreName:       input.StoreName,
		StoreSlug:       slug,
		Email:           user.Email,
		Status:          entities.VendorStatusPending,
		Phone:           input.Phone,
		Address:         input.Address,
		Categories:      input.Categories,
		CommissionType:  u.defaultCommissionType,
		CommissionValue: u.defaultCommissionValue,
	}

	if err := u.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// UpdateVendorStatus transitions the vendor lifecycle. Approval force-syncs
// the owner user's role and back-reference in the same transaction.
func (u *VendorUsecase) UpdateVendorStatus(ctx context.Context, vendorID primitive.ObjectID, input *entities.UpdateVendorStatusInput) (*entities.Vendor, error) {
	if !input.Status.Valid() {
		return nil, domainerrors.BadRequest("invalid vendor status")
	}

	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.vendorRepo.UpdateStatus(txCtx, vendorID, input.Status, input.Notes); err != nil {
			return err
		}
		if input.Status == entities.VendorStatusApproved && vendor.OwnerUser != nil {
			return u.userRepo.SetVendorLink(txCtx, *vendor.OwnerUser, vendorID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	vendor.Status = input.Status
	vendor.StatusNotes = input.Notes

	ownerName := vendor.StoreName
	if vendor.OwnerUser != nil {
		if owner, err := u.userRepo.GetByID(ctx, *vendor.OwnerUser); err == nil {
			ownerName = owner.Name
		}
	}
	notified := *vendor
	sendMailAsync(func() error {
		return u.mail.SendVendorStatusChanged(notified.Email, ownerName, &notified, input.Notes)
	})

	return vendor, nil
}

// GetVendor returns a vendor by id
func (u *VendorUsecase) GetVendor(ctx context.Context, id primitive.ObjectID) (*entities.Vendor, error) {
	return u.vendorRepo.GetByID(ctx, id)
}

// GetVendorByOwner resolves the vendor account owned by the given user.
// Returns Forbidden rather than NotFound so vendor-scoped endpoints reject
// callers without a linked store.
func (u *VendorUsecase) GetVendorByOwner(ctx context.Context, userID primitive.ObjectID) (*entities.Vendor, error) {
	vendor, err := u.vendorRepo.GetByOwnerUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("no vendor account linked to this user")
		}
		return nil, err
	}
	return vendor, nil
}

// GetVendorBySlug returns a vendor by store slug
func (u *VendorUsecase) GetVendorBySlug(ctx context.Context, slug string) (*entities.Vendor, error) {
	return u.vendorRepo.GetBySlug(ctx, utils.NormalizeSlug(slug))
}

// ListVendors lists vendors, optionally filtered by status
func (u *VendorUsecase) ListVendors(ctx context.Context, status entities.VendorStatus, limit, offset int) ([]*entities.Vendor, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, domainerrors.BadRequest("invalid vendor status")
	}
	return u.vendorRepo.List(ctx, status, limit, offset)
}

// DeleteVendor removes the vendor and its payouts and detaches the owner
// user, leaving products and the user account intact
func (u *VendorUsecase) DeleteVendor(ctx context.Context, actorID, vendorID primitive.ObjectID) error {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.payoutRepo.DeleteByVendor(txCtx, vendorID); err != nil {
			return err
		}
		if err := u.vendorRepo.Delete(txCtx, vendorID); err != nil {
			return err
		}
		if vendor.OwnerUser != nil {
			return u.userRepo.ClearVendorLink(txCtx, *vendor.OwnerUser)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.audit(ctx, actorID, entities.AuditVendorDeleted, &vendorID, map[string]interface{}{
		"storeSlug": vendor.StoreSlug,
		"permanent": false,
	})
	return nil
}

// DeleteVendorPermanent removes the vendor with its payouts and products,
// and optionally the owner user account
func (u *VendorUsecase) DeleteVendorPermanent(ctx context.Context, actorID, vendorID primitive.ObjectID, deleteUser bool) error {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.payoutRepo.DeleteByVendor(txCtx, vendorID); err != nil {
			return err
		}
		if _, err := u.productRepo.DeleteByVendor(txCtx, vendorID); err != nil {
			return err
		}
		if err := u.vendorRepo.Delete(txCtx, vendorID); err != nil {
			return err
		}
		if vendor.OwnerUser == nil {
			return nil
		}
		if deleteUser {
			return u.userRepo.Delete(txCtx, *vendor.OwnerUser)
		}
		return u.userRepo.ClearVendorLink(txCtx, *vendor.OwnerUser)
	})
	if err != nil {
		return err
	}

	u.audit(ctx, actorID, entities.AuditVendorDeleted, &vendorID, map[string]interface{}{
		"storeSlug":   vendor.StoreSlug,
		"permanent":   true,
		"userDeleted": deleteUser,
	})
	return nil
}

// DeleteAllVendors wipes every vendor and payout and demotes all owner
// users back to customers
func (u *VendorUsecase) DeleteAllVendors(ctx context.Context, actorID primitive.ObjectID) (int64, error) {
	var removed int64
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.payoutRepo.DeleteAll(txCtx); err != nil {
			return err
		}
		n, err := u.vendorRepo.DeleteAll(txCtx)
		if err != nil {
			return err
		}
		removed = n
		_, err = u.userRepo.ClearAllVendorLinks(txCtx)
		return err
	})
	if err != nil {
		return 0, err
	}

	u.audit(ctx, actorID, entities.AuditVendorsWiped, nil, map[string]interface{}{
		"removed": removed,
	})
	return removed, nil
}

// ImpersonateVendor mints a short-lived vendor session for the admin. The
// token carries the acting admin's id and cannot be refreshed.
func (u *VendorUsecase) ImpersonateVendor(ctx context.Context, adminID, vendorID primitive.ObjectID) (*entities.ImpersonationResponse, error) {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.OwnerUser == nil {
		return nil, domainerrors.BadRequest("vendor has no owner user to impersonate")
	}

	owner, err := u.userRepo.GetByID(ctx, *vendor.OwnerUser)
	if err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateImpersonationToken(
		owner.ID.Hex(), owner.Email, string(entities.UserRoleVendor), adminID.Hex())
	if err != nil {
		return nil, err
	}

	u.audit(ctx, adminID, entities.AuditVendorImpersonated, &vendorID, map[string]interface{}{
		"ownerUser": owner.ID.Hex(),
	})

	return &entities.ImpersonationResponse{
		AccessToken: token,
		ExpiresIn:   int64(jwt.MaxImpersonationExpiry.Seconds()),
		VendorID:    vendor.ID,
		UserID:      owner.ID,
	}, nil
}

// FixVendorIndexes runs the idempotent index repair and returns the list of
// actions performed
func (u *VendorUsecase) FixVendorIndexes(ctx context.Context) ([]string, error) {
	return u.maintenanceRepo.FixVendorIndexes(ctx)
}

// audit writes a best-effort audit record; the triggering operation has
// already committed, so a write failure is only logged
func (u *VendorUsecase) audit(ctx context.Context, actorID primitive.ObjectID, action entities.AuditAction, targetID *primitive.ObjectID, metadata map[string]interface{}) {
	entry := &entities.AuditLog{
		ActorID:  actorID,
		Action:   action,
		TargetID: targetID,
		Metadata: metadata,
	}
	if err := u.auditRepo.Create(ctx, entry); err != nil {
		logger.Error(ctx, "failed to write audit log: "+err.Error())
	}
}
