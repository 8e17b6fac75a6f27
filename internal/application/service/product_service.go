package service

import (
	"context"
	"log"
	"math"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/apperror"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

// toCents converts a decimal money value to cents
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// SaleRecalculator recomputes stored sale costs after a product's cost basis
// changes. Implemented by SalesService.
type SaleRecalculator interface {
	RecalculateForProduct(ctx context.Context, productID uuid.UUID) (*RecalculationResult, error)
}

// ProductService handles product catalog operations
type ProductService struct {
	productRepo  repository.ProductRepository
	recalculator SaleRecalculator
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, recalculator SaleRecalculator) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		recalculator: recalculator,
	}
}

// CreateProductInput represents the create product input. Money values are
// decimals and converted to cents on the entity.
type CreateProductInput struct {
	Name             string
	AnimalType       enum.AnimalType
	Category         enum.ProductCategory
	Description      *string
	PricePerSack     float64
	PricePerKilo     float64
	PricePerHalfKilo float64
	Price            float64
	CostPerSack      float64
	Cost             float64
	StockSacks       float64
	Stock            float64
	MaxStock         float64
	NetWeightPerSack float64
	IsActive         *bool
	IsFeatured       bool
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := validateProductPricing(input.Category, input.PricePerSack, input.PricePerKilo, input.Price); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:             input.Name,
		AnimalType:       input.AnimalType,
		Category:         input.Category,
		Description:      input.Description,
		PricePerSack:     toCents(input.PricePerSack),
		PricePerKilo:     toCents(input.PricePerKilo),
		PricePerHalfKilo: toCents(input.PricePerHalfKilo),
		Price:            toCents(input.Price),
		CostPerSack:      toCents(input.CostPerSack),
		Cost:             toCents(input.Cost),
		StockSacks:       input.StockSacks,
		Stock:            input.Stock,
		MaxStock:         input.MaxStock,
		NetWeightPerSack: input.NetWeightPerSack,
		IsActive:         true,
		IsFeatured:       input.IsFeatured,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// validateProductPricing rejects products that cannot be sold: feeds need a
// sack and kilo price, supplements need a piece price.
func validateProductPricing(category enum.ProductCategory, pricePerSack, pricePerKilo, price float64) error {
	var fieldErrors []apperror.FieldError
	if category == enum.CategorySupplements {
		if price <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price is required for supplements"})
		}
	} else {
		if pricePerSack <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price_per_sack", Message: "Price per sack is required for feeds"})
		}
		if pricePerKilo <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price_per_kilo", Message: "Price per kilo is required for feeds"})
		}
	}
	if len(fieldErrors) > 0 {
		return &apperror.AppError{Code: 400, Message: "Invalid product pricing", Errors: fieldErrors}
	}
	return nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListActiveProducts returns the catalog visible to customers
func (s *ProductService) ListActiveProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.ListActive(ctx)
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductID        uuid.UUID
	Name             *string
	AnimalType       *enum.AnimalType
	Category         *enum.ProductCategory
	Description      *string
	PricePerSack     *float64
	PricePerKilo     *float64
	PricePerHalfKilo *float64
	Price            *float64
	CostPerSack      *float64
	Cost             *float64
	StockSacks       *float64
	Stock            *float64
	MaxStock         *float64
	NetWeightPerSack *float64
	IsActive         *bool
	IsFeatured       *bool
}

// UpdateProduct updates a product. If the cost basis changes, stored sale
// records for the product are recalculated.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	costChanged := false

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.AnimalType != nil {
		product.AnimalType = *input.AnimalType
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.PricePerSack != nil {
		product.PricePerSack = toCents(*input.PricePerSack)
	}
	if input.PricePerKilo != nil {
		product.PricePerKilo = toCents(*input.PricePerKilo)
	}
	if input.PricePerHalfKilo != nil {
		product.PricePerHalfKilo = toCents(*input.PricePerHalfKilo)
	}
	if input.Price != nil {
		product.Price = toCents(*input.Price)
	}
	if input.CostPerSack != nil {
		newCost := toCents(*input.CostPerSack)
		if newCost != product.CostPerSack {
			costChanged = true
		}
		product.CostPerSack = newCost
	}
	if input.Cost != nil {
		newCost := toCents(*input.Cost)
		if newCost != product.Cost {
			costChanged = true
		}
		product.Cost = newCost
	}
	if input.StockSacks != nil {
		product.StockSacks = *input.StockSacks
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.MaxStock != nil {
		product.MaxStock = *input.MaxStock
	}
	if input.NetWeightPerSack != nil {
		product.NetWeightPerSack = *input.NetWeightPerSack
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}

	if err := validateProductPricing(product.Category,
		float64(product.PricePerSack)/100,
		float64(product.PricePerKilo)/100,
		float64(product.Price)/100,
	); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	if costChanged && s.recalculator != nil {
		if _, err := s.recalculator.RecalculateForProduct(ctx, product.ID); err != nil {
			log.Printf("Failed to recalculate sales for product %s: %v", product.ID, err)
		}
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// SetProductImage stores the uploaded image path on the product
func (s *ProductService) SetProductImage(ctx context.Context, id uuid.UUID, path string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	product.ImagePath = &path
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns active products at or below their threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// BulkCostItem is one row of a bulk cost update
type BulkCostItem struct {
	ProductID   uuid.UUID
	CostPerSack *float64
	Cost        *float64
}

// BulkCostResult summarizes a bulk cost update
type BulkCostResult struct {
	Updated int                 `json:"updated"`
	Failed  int                 `json:"failed"`
	Errors  []BulkCostItemError `json:"errors,omitempty"`
}

// BulkCostItemError describes a failed row in a bulk cost update
type BulkCostItemError struct {
	ProductID uuid.UUID `json:"product_id"`
	Message   string    `json:"message"`
}

// BulkUpdateCosts updates cost fields for many products at once. Rows fail
// independently; updated products get their stored sales recalculated.
func (s *ProductService) BulkUpdateCosts(ctx context.Context, items []BulkCostItem) (*BulkCostResult, error) {
	result := &BulkCostResult{}

	for _, item := range items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkCostItemError{ProductID: item.ProductID, Message: err.Error()})
			continue
		}
		if product == nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkCostItemError{ProductID: item.ProductID, Message: "Product not found"})
			continue
		}

		if item.CostPerSack != nil {
			product.CostPerSack = toCents(*item.CostPerSack)
		}
		if item.Cost != nil {
			product.Cost = toCents(*item.Cost)
		}

		if err := s.productRepo.Update(ctx, product); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkCostItemError{ProductID: item.ProductID, Message: err.Error()})
			continue
		}

		result.Updated++

		if s.recalculator != nil {
			if _, err := s.recalculator.RecalculateForProduct(ctx, product.ID); err != nil {
				log.Printf("Failed to recalculate sales for product %s: %v", product.ID, err)
			}
		}
	}

	return result, nil
}
