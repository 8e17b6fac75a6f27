package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/pkg/pagination"
)

// SaleRepository defines the interface for self-serve sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// ListCompleted returns every completed sale, for full recalculation
	ListCompleted(ctx context.Context) ([]entity.Sale, error)
	// ListCompletedByProduct returns completed sales of one product
	ListCompletedByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Sale, error)
	// ListByDateRange returns sales within a window, for analytics merging
	ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Sale, error)
	// DeleteAll clears every sale record. Admin reset only.
	DeleteAll(ctx context.Context) error
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	ProductID  *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
