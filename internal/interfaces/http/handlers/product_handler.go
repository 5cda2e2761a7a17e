package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/interfaces/http/middleware"
	"market-hub.backend/internal/interfaces/http/response"
	"market-hub.backend/internal/usecases"
	"market-hub.backend/pkg/utils"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productUsecase *usecases.ProductUsecase
	vendorUsecase  *usecases.VendorUsecase
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase *usecases.ProductUsecase, vendorUsecase *usecases.VendorUsecase) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, vendorUsecase: vendorUsecase}
}

func (h *ProductHandler) callerVendor(c *gin.Context) (*entities.Vendor, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return h.vendorUsecase.GetVendorByOwner(c.Request.Context(), userID)
}

// ListProducts lists the storefront catalog
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	p := pagination(c)

	products, total, err := h.productUsecase.ListProducts(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", products, utils.CalculateMeta(total, p.Page, p.Limit))
}

// GetProduct returns a single product
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	product, err := h.productUsecase.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", product)
}

// ListProductReviews returns the approved reviews of a product
// GET /api/v1/products/:id/reviews
func (h *ProductHandler) ListProductReviews(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	p := pagination(c)

	reviews, total, err := h.productUsecase.ListProductReviews(c.Request.Context(), id, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", reviews, utils.CalculateMeta(total, p.Page, p.Limit))
}

// CreateProduct lists an item in the caller's store
// POST /api/v1/vendor/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	product, err := h.productUsecase.CreateProduct(c.Request.Context(), vendor.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "product created", product)
}

// UpdateProduct edits an item in the caller's store
// PATCH /api/v1/vendor/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	product, err := h.productUsecase.UpdateProduct(c.Request.Context(), vendor.ID, productID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "product updated", product)
}

// DeleteProduct delists an item from the caller's store
// DELETE /api/v1/vendor/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	productID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.productUsecase.DeleteProduct(c.Request.Context(), vendor.ID, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "product deleted", nil)
}

// ListMyProducts lists the caller's own catalog including inactive items
// GET /api/v1/vendor/products
func (h *ProductHandler) ListMyProducts(c *gin.Context) {
	vendor, err := h.callerVendor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	p := pagination(c)

	products, total, err := h.productUsecase.ListVendorProducts(c.Request.Context(), vendor.ID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "ok", products, utils.CalculateMeta(total, p.Page, p.Limit))
}
