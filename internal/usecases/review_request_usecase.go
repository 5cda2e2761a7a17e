package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
	"market-hub.backend/pkg/crypto"
	"market-hub.backend/pkg/utils"
)

// timeNow is swapped in tests that exercise token expiry
var timeNow = time.Now

// ReviewRequestUsecase handles the review request lifecycle: minting
// tokenized invitations for delivered orders, token access with lazy
// expiry, review submission, and admin moderation.
type ReviewRequestUsecase struct {
	reviewRequestRepo repositories.ReviewRequestRepository
	reviewRepo        repositories.ReviewRepository
	orderRepo         repositories.OrderRepository
	productRepo       repositories.ProductRepository
	userRepo          repositories.UserRepository
	mail              MailSender
}

// NewReviewRequestUsecase creates a new review request usecase
func NewReviewRequestUsecase(
	reviewRequestRepo repositories.ReviewRequestRepository,
	reviewRepo repositories.ReviewRepository,
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	mail MailSender,
) *ReviewRequestUsecase {
	return &ReviewRequestUsecase{
		reviewRequestRepo: reviewRequestRepo,
		reviewRepo:        reviewRepo,
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		userRepo:          userRepo,
		mail:              mail,
	}
}

// SendReviewRequests processes delivered orders into review invitations.
// Explicit orderIds narrow the candidates; productIds narrow the line items.
// Pairs that already have an active request or an approved review are
// skipped. A request flips to sent only when its email actually went out.
func (u *ReviewRequestUsecase) SendReviewRequests(ctx context.Context, input *entities.SendReviewRequestsInput) (*entities.SendReviewRequestsResult, error) {
	var orderIDs []primitive.ObjectID
	for _, raw := range input.OrderIDs {
		id, err := utils.ParseObjectID(raw)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid orderId: " + raw)
		}
		orderIDs = append(orderIDs, id)
	}

	productFilter := map[primitive.ObjectID]bool{}
	for _, raw := range input.ProductIDs {
		id, err := utils.ParseObjectID(raw)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid productId: " + raw)
		}
		productFilter[id] = true
	}

	orders, err := u.orderRepo.ListReviewCandidates(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	result := &entities.SendReviewRequestsResult{Errors: []string{}}
	now := timeNow()

	for _, order := range orders {
		customerName, customerEmail, err := u.resolveCustomer(ctx, order)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", order.ID.Hex(), err))
			continue
		}

		orderComplete := len(productFilter) == 0

		for _, item := range order.Items {
			if len(productFilter) > 0 && !productFilter[item.ProductID] {
				continue
			}

			sent, err := u.processItem(ctx, order, item, customerName, customerEmail, now)
			if err != nil {
				orderComplete = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("order %s product %s: %v", order.ID.Hex(), item.ProductID.Hex(), err))
				continue
			}
			if sent {
				result.Sent++
			} else {
				result.Skipped++
			}
		}

		// The order is marked processed only when every line item ended up
		// with a request or a skip, so a partial run can be retried.
		if orderComplete {
			if err := u.orderRepo.SetReviewRequestsSent(ctx, order.ID, true); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("order %s: %v", order.ID.Hex(), err))
			}
		}
	}

	return result, nil
}

// processItem handles one (order, product) pair. Returns true when a new
// request was sent, false when the pair was skipped.
func (u *ReviewRequestUsecase) processItem(ctx context.Context, order *entities.Order, item entities.OrderItem, customerName, customerEmail string, now time.Time) (bool, error) {
	if _, err := u.reviewRequestRepo.GetActiveByOrderProduct(ctx, order.ID, item.ProductID); err == nil {
		return false, nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return false, err
	}

	reviewed, err := u.reviewRepo.HasApprovedReview(ctx, item.ProductID, order.UserID, customerEmail)
	if err != nil {
		return false, err
	}
	if reviewed {
		return false, nil
	}

	token, err := crypto.GenerateReviewToken()
	if err != nil {
		return false, err
	}

	request := &entities.ReviewRequest{
		OrderID:       order.ID,
		ProductID:     item.ProductID,
		VendorID:      item.VendorID,
		UserID:        order.UserID,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		ProductName:   item.Name,
		ReviewToken:   token,
		Status:        entities.ReviewRequestPending,
		AdminStatus:   entities.ReviewRequestAdminPending,
		ExpiresAt:     now.Add(entities.ReviewRequestTTL),
	}
	if err := u.reviewRequestRepo.Create(ctx, request); err != nil {
		return false, err
	}

	if err := u.mail.SendReviewRequest(request); err != nil {
		// Request stays pending; the next run retries the email without
		// minting a second token for the pair.
		return false, err
	}

	if err := u.reviewRequestRepo.MarkSent(ctx, request.ID, now); err != nil {
		return false, err
	}
	return true, nil
}

// GetReviewRequestByToken resolves a token for the public review page.
// Requests past their window flip to expired on first access, and email
// opens are recorded once.
func (u *ReviewRequestUsecase) GetReviewRequestByToken(ctx context.Context, token string) (*entities.ReviewRequest, error) {
	request, err := u.reviewRequestRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	now := timeNow()
	if request.Expired(now) &&
		(request.Status == entities.ReviewRequestPending || request.Status == entities.ReviewRequestSent) {
		if err := u.reviewRequestRepo.MarkExpired(ctx, request.ID); err != nil {
			return nil, err
		}
		request.Status = entities.ReviewRequestExpired
	}

	if !request.EmailOpened {
		if err := u.reviewRequestRepo.MarkOpened(ctx, request.ID, now); err != nil {
			return nil, err
		}
		request.EmailOpened = true
		request.EmailOpenedAt = &now
	}

	return request, nil
}

// TrackEmailOpen records the tracking-pixel hit for a token. Unknown tokens
// are ignored so the pixel endpoint never errors.
func (u *ReviewRequestUsecase) TrackEmailOpen(ctx context.Context, token string) error {
	request, err := u.reviewRequestRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if request.EmailOpened {
		return nil
	}
	return u.reviewRequestRepo.MarkOpened(ctx, request.ID, timeNow())
}

// SubmitReviewFromRequest turns a valid token into a verified-purchase
// review and closes the request. Submission is idempotent: a second attempt
// is rejected with a reviewSubmitted flag.
func (u *ReviewRequestUsecase) SubmitReviewFromRequest(ctx context.Context, token string, input *entities.SubmitReviewInput) (*entities.Review, error) {
	request, err := u.reviewRequestRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	switch request.Status {
	case entities.ReviewRequestReviewed:
		return nil, domainerrors.Conflict("review already submitted for this request").WithData("reviewSubmitted", true)
	case entities.ReviewRequestCancelled:
		return nil, domainerrors.BadRequest("review request was cancelled")
	case entities.ReviewRequestExpired:
		return nil, expiredRequestError()
	}

	now := timeNow()
	if request.Expired(now) {
		if err := u.reviewRequestRepo.MarkExpired(ctx, request.ID); err != nil {
			return nil, err
		}
		return nil, expiredRequestError()
	}

	existing, err := u.reviewRepo.GetByProductAndReviewer(ctx, request.ProductID, request.UserID, request.CustomerEmail)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.Conflict("customer already reviewed this product").WithData("reviewSubmitted", true)
	}

	reviewerName := input.Name
	if reviewerName == "" {
		reviewerName = request.CustomerName
	}

	review := &entities.Review{
		ProductID:        request.ProductID,
		OrderID:          request.OrderID,
		VendorID:         request.VendorID,
		UserID:           request.UserID,
		ReviewerName:     reviewerName,
		ReviewerEmail:    request.CustomerEmail,
		Rating:           input.Rating,
		Comment:          input.Review,
		VerifiedPurchase: true,
		Status:           entities.ReviewStatusPending,
	}
	if err := u.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := u.reviewRequestRepo.MarkReviewed(ctx, request.ID, review.ID, now); err != nil {
		return nil, err
	}
	return review, nil
}

func expiredRequestError() *domainerrors.AppError {
	return domainerrors.NewAppError(
		http.StatusBadRequest,
		domainerrors.CodeBadRequest,
		"review request has expired",
		domainerrors.ErrRequestExpired,
	)
}

// ListReviewRequests lists requests for the admin panel, optionally
// filtered on either axis
func (u *ReviewRequestUsecase) ListReviewRequests(ctx context.Context, status entities.ReviewRequestStatus, adminStatus entities.ReviewRequestAdminStatus, limit, offset int) ([]*entities.ReviewRequest, int64, error) {
	return u.reviewRequestRepo.List(ctx, status, adminStatus, limit, offset)
}

// GetReviewRequest returns a request by id
func (u *ReviewRequestUsecase) GetReviewRequest(ctx context.Context, id primitive.ObjectID) (*entities.ReviewRequest, error) {
	return u.reviewRequestRepo.GetByID(ctx, id)
}

// ApproveReviewRequest approves the attached review and refreshes the
// product's rating aggregate
func (u *ReviewRequestUsecase) ApproveReviewRequest(ctx context.Context, id primitive.ObjectID) error {
	return u.moderate(ctx, id, entities.ReviewRequestAdminApproved)
}

// RejectReviewRequest rejects the attached review and refreshes the
// product's rating aggregate
func (u *ReviewRequestUsecase) RejectReviewRequest(ctx context.Context, id primitive.ObjectID) error {
	return u.moderate(ctx, id, entities.ReviewRequestAdminRejected)
}

func (u *ReviewRequestUsecase) moderate(ctx context.Context, id primitive.ObjectID, decision entities.ReviewRequestAdminStatus) error {
	request, err := u.reviewRequestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.ReviewID == nil {
		return domainerrors.BadRequest("review request has no submitted review to moderate")
	}

	if err := u.reviewRequestRepo.SetAdminStatus(ctx, id, decision); err != nil {
		return err
	}

	reviewStatus := entities.ReviewStatusApproved
	approved := true
	if decision == entities.ReviewRequestAdminRejected {
		reviewStatus = entities.ReviewStatusRejected
		approved = false
	}
	if err := u.reviewRepo.SetStatus(ctx, *request.ReviewID, reviewStatus, approved); err != nil {
		return err
	}

	return u.recomputeProductRating(ctx, request.ProductID)
}

// CancelReviewRequest withdraws a request that has not been answered yet
func (u *ReviewRequestUsecase) CancelReviewRequest(ctx context.Context, id primitive.ObjectID) error {
	request, err := u.reviewRequestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != entities.ReviewRequestPending && request.Status != entities.ReviewRequestSent {
		return domainerrors.BadRequest("only pending or sent requests can be cancelled")
	}
	return u.reviewRequestRepo.SetStatus(ctx, id, entities.ReviewRequestCancelled)
}

func (u *ReviewRequestUsecase) recomputeProductRating(ctx context.Context, productID primitive.ObjectID) error {
	average, count, err := u.reviewRepo.RatingStats(ctx, productID)
	if err != nil {
		return err
	}
	return u.productRepo.SetRating(ctx, productID, average, count)
}

func (u *ReviewRequestUsecase) resolveCustomer(ctx context.Context, order *entities.Order) (name, email string, err error) {
	if order.UserID != nil {
		user, err := u.userRepo.GetByID(ctx, *order.UserID)
		if err != nil {
			return "", "", err
		}
		return user.Name, user.Email, nil
	}
	if order.GuestCustomer == nil || order.GuestCustomer.Email == "" {
		return "", "", domainerrors.BadRequest("order has no customer email")
	}
	return order.GuestCustomer.Name, order.GuestCustomer.Email, nil
}
