package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name             string   `json:"name" binding:"required,min=2,max=255"`
	AnimalType       string   `json:"animal_type" binding:"required,oneof=chicken pig"`
	Category         string   `json:"category" binding:"required,oneof=feeds supplements"`
	Description      *string  `json:"description"`
	PricePerSack     float64  `json:"price_per_sack" binding:"min=0"`
	PricePerKilo     float64  `json:"price_per_kilo" binding:"min=0"`
	PricePerHalfKilo float64  `json:"price_per_half_kilo" binding:"min=0"`
	Price            float64  `json:"price" binding:"min=0"`
	CostPerSack      float64  `json:"cost_per_sack" binding:"min=0"`
	Cost             float64  `json:"cost" binding:"min=0"`
	StockSacks       float64  `json:"stock_sacks" binding:"min=0"`
	Stock            float64  `json:"stock" binding:"min=0"`
	MaxStock         float64  `json:"max_stock" binding:"min=0"`
	NetWeightPerSack float64  `json:"net_weight_per_sack" binding:"min=0"`
	IsActive         *bool    `json:"is_active"`
	IsFeatured       bool     `json:"is_featured"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=2,max=255"`
	AnimalType       *string  `json:"animal_type" binding:"omitempty,oneof=chicken pig"`
	Category         *string  `json:"category" binding:"omitempty,oneof=feeds supplements"`
	Description      *string  `json:"description"`
	PricePerSack     *float64 `json:"price_per_sack" binding:"omitempty,min=0"`
	PricePerKilo     *float64 `json:"price_per_kilo" binding:"omitempty,min=0"`
	PricePerHalfKilo *float64 `json:"price_per_half_kilo" binding:"omitempty,min=0"`
	Price            *float64 `json:"price" binding:"omitempty,min=0"`
	CostPerSack      *float64 `json:"cost_per_sack" binding:"omitempty,min=0"`
	Cost             *float64 `json:"cost" binding:"omitempty,min=0"`
	StockSacks       *float64 `json:"stock_sacks" binding:"omitempty,min=0"`
	Stock            *float64 `json:"stock" binding:"omitempty,min=0"`
	MaxStock         *float64 `json:"max_stock" binding:"omitempty,min=0"`
	NetWeightPerSack *float64 `json:"net_weight_per_sack" binding:"omitempty,min=0"`
	IsActive         *bool    `json:"is_active"`
	IsFeatured       *bool    `json:"is_featured"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	AnimalType string `form:"animal_type" binding:"omitempty,oneof=chicken pig"`
	Category   string `form:"category" binding:"omitempty,oneof=feeds supplements"`
	ActiveOnly bool   `form:"active_only"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// BulkCostUpdateRequest represents a bulk cost update request
type BulkCostUpdateRequest struct {
	Items []BulkCostItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BulkCostItemRequest is one row of a bulk cost update
type BulkCostItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	CostPerSack *float64  `json:"cost_per_sack" binding:"omitempty,min=0"`
	Cost        *float64  `json:"cost" binding:"omitempty,min=0"`
}
