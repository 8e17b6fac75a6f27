package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

// StockDecrement describes one product's stock consumption expressed in
// primary units: sacks for feeds, pieces for supplements. The category tells
// the implementation which counters to touch.
type StockDecrement struct {
	ProductID uuid.UUID
	Amount    float64
	Category  enum.ProductCategory
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListActive(ctx context.Context) ([]entity.Product, error)
	// GetLowStock returns active products at or below their low-stock threshold
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AtomicDecrementStock decrements a single product's stock only if
	// sufficient. Returns (true, nil) on success, (false, nil) when stock is
	// insufficient, (false, err) on error.
	AtomicDecrementStock(ctx context.Context, dec StockDecrement) (bool, error)
	// AtomicDecrementBatch applies all decrements inside one transaction.
	// Returns the product IDs that failed on insufficient stock; if any fail
	// the whole transaction is rolled back and no counter changes.
	AtomicDecrementBatch(ctx context.Context, decrements []StockDecrement) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch restores stock for cancellations and returns
	AtomicIncrementBatch(ctx context.Context, increments []StockDecrement) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	AnimalType *enum.AnimalType
	Category   *enum.ProductCategory
	ActiveOnly bool
	LowStock   bool
	SortBy     string
	SortOrder  string
}
