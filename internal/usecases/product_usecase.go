package usecases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"market-hub.backend/internal/domain/entities"
	domainerrors "market-hub.backend/internal/domain/errors"
	"market-hub.backend/internal/domain/repositories"
)

// ProductUsecase handles the vendor-scoped catalog
type ProductUsecase struct {
	productRepo repositories.ProductRepository
	vendorRepo  repositories.VendorRepository
	reviewRepo  repositories.ReviewRepository
}

// NewProductUsecase creates a new product usecase
func NewProductUsecase(
	productRepo repositories.ProductRepository,
	vendorRepo repositories.VendorRepository,
	reviewRepo repositories.ReviewRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		reviewRepo:  reviewRepo,
	}
}

// CreateProduct lists a new item in the vendor's store. Only approved
// vendors can sell.
func (u *ProductUsecase) CreateProduct(ctx context.Context, vendorID primitive.ObjectID, input *entities.CreateProductInput) (*entities.Product, error) {
	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != entities.VendorStatusApproved {
		return nil, domainerrors.Forbidden("vendor is not approved for selling")
	}

	product := &entities.Product{
		VendorID:    vendorID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Categories:  input.Categories,
		Images:      input.Images,
		Active:      true,
	}
	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial update to the vendor's own product
func (u *ProductUsecase) UpdateProduct(ctx context.Context, vendorID, productID primitive.ObjectID, input *entities.UpdateProductInput) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.VendorID != vendorID {
		return nil, domainerrors.Forbidden("product belongs to another vendor")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return nil, domainerrors.BadRequest("price must be positive")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.BadRequest("stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Categories != nil {
		product.Categories = input.Categories
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the vendor's own product
func (u *ProductUsecase) DeleteProduct(ctx context.Context, vendorID, productID primitive.ObjectID) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.VendorID != vendorID {
		return domainerrors.Forbidden("product belongs to another vendor")
	}
	return u.productRepo.Delete(ctx, productID)
}

// GetProduct returns a product by id
func (u *ProductUsecase) GetProduct(ctx context.Context, id primitive.ObjectID) (*entities.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// ListProducts lists the storefront catalog
func (u *ProductUsecase) ListProducts(ctx context.Context, limit, offset int) ([]*entities.Product, int64, error) {
	return u.productRepo.List(ctx, limit, offset)
}

// ListVendorProducts lists one store's catalog
func (u *ProductUsecase) ListVendorProducts(ctx context.Context, vendorID primitive.ObjectID, limit, offset int) ([]*entities.Product, int64, error) {
	return u.productRepo.ListByVendor(ctx, vendorID, limit, offset)
}

// ListProductReviews lists a product's reviews
func (u *ProductUsecase) ListProductReviews(ctx context.Context, productID primitive.ObjectID, limit, offset int) ([]*entities.Review, int64, error) {
	return u.reviewRepo.ListByProduct(ctx, productID, limit, offset)
}
