package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	domainRepo "github.com/zymoune/feedstore-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.AnimalType != nil {
		query = query.Where("animal_type = ?", *params.AnimalType)
	}

	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	if params.ActiveOnly {
		query = query.Scopes(ActiveOnly())
	}

	if params.LowStock {
		query = query.Where(lowStockCondition)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListActive(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly()).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// lowStockCondition mirrors entity.Product.IsLowStock in SQL: the primary
// counter has fallen to or below 15% of the highest stock level observed.
const lowStockCondition = "GREATEST(max_stock, stock_sacks, stock) > 0 AND " +
	"(CASE WHEN category = 'supplements' THEN GREATEST(stock, stock_sacks) ELSE stock_sacks END) " +
	"<= CEIL(0.15 * GREATEST(max_stock, stock_sacks, stock))"

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Scopes(ActiveOnly()).
		Where(lowStockCondition).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// decrementStock runs one conditional decrement on the given DB handle.
// Feeds decrement sacks and rederive the weight counters from the same
// UPDATE (the right-hand sides all see the pre-update row). Supplements
// scale both legacy counters by their ratio to the larger one, so the
// larger counter drops by exactly the sold amount and the smaller one
// shrinks proportionally. Returns false when stock was insufficient.
func decrementStock(tx *gorm.DB, dec domainRepo.StockDecrement) (bool, error) {
	var result *gorm.DB

	if dec.Category == enum.CategorySupplements {
		result = tx.Model(&entity.Product{}).
			Where("id = ? AND GREATEST(stock, stock_sacks) >= ?", dec.ProductID, dec.Amount).
			Updates(map[string]interface{}{
				"stock": gorm.Expr(
					"ROUND(GREATEST(stock - ? * stock / NULLIF(GREATEST(stock, stock_sacks), 0), 0)::numeric, 2)",
					dec.Amount),
				"stock_sacks": gorm.Expr(
					"ROUND(GREATEST(stock_sacks - ? * stock_sacks / NULLIF(GREATEST(stock, stock_sacks), 0), 0)::numeric, 2)",
					dec.Amount),
			})
	} else {
		result = tx.Model(&entity.Product{}).
			Where("id = ? AND stock_sacks >= ?", dec.ProductID, dec.Amount).
			Updates(map[string]interface{}{
				"stock_sacks": gorm.Expr(
					"ROUND((stock_sacks - ?)::numeric, 2)", dec.Amount),
				"stock_kilos": gorm.Expr(
					"ROUND(((stock_sacks - ?) * net_weight_per_sack)::numeric, 2)", dec.Amount),
				"stock_half_kilos": gorm.Expr(
					"ROUND(((stock_sacks - ?) * net_weight_per_sack * 2)::numeric, 2)", dec.Amount),
			})
	}

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AtomicDecrementStock decrements one product's stock only if sufficient.
func (r *productRepository) AtomicDecrementStock(ctx context.Context, dec domainRepo.StockDecrement) (bool, error) {
	return decrementStock(r.db.WithContext(ctx), dec)
}

// AtomicDecrementBatch applies all decrements inside one transaction.
// If any product has insufficient stock, the entire transaction is rolled back.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements []domainRepo.StockDecrement) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dec := range decrements {
			ok, err := decrementStock(tx, dec)
			if err != nil {
				return err
			}
			if !ok {
				failedIDs = append(failedIDs, dec.ProductID)
			}
		}

		// If any products failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// Rolled back on insufficient stock: report the failed IDs without the transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch restores stock for multiple products (cancellations/returns).
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments []domainRepo.StockDecrement) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, inc := range increments {
			var err error
			if inc.Category == enum.CategorySupplements {
				// Both legacy counters get the full amount back; availability
				// runs on their maximum.
				err = tx.Model(&entity.Product{}).
					Where("id = ?", inc.ProductID).
					Updates(map[string]interface{}{
						"stock":       gorm.Expr("ROUND((stock + ?)::numeric, 2)", inc.Amount),
						"stock_sacks": gorm.Expr("ROUND((stock_sacks + ?)::numeric, 2)", inc.Amount),
					}).Error
			} else {
				err = tx.Model(&entity.Product{}).
					Where("id = ?", inc.ProductID).
					Updates(map[string]interface{}{
						"stock_sacks": gorm.Expr(
							"ROUND((stock_sacks + ?)::numeric, 2)", inc.Amount),
						"stock_kilos": gorm.Expr(
							"ROUND(((stock_sacks + ?) * net_weight_per_sack)::numeric, 2)", inc.Amount),
						"stock_half_kilos": gorm.Expr(
							"ROUND(((stock_sacks + ?) * net_weight_per_sack * 2)::numeric, 2)", inc.Amount),
					}).Error
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
