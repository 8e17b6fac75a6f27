package request

import "github.com/google/uuid"

// RecordSaleRequest represents a self-serve sale from the QR flow
type RecordSaleRequest struct {
	ProductID     uuid.UUID `json:"product_id" binding:"required"`
	Quantity      float64   `json:"quantity" binding:"required,gt=0"`
	Unit          string    `json:"unit" binding:"required,oneof=sack kilo half_kilo piece"`
	CustomerName  string    `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone string    `json:"customer_phone" binding:"omitempty,max=50"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	ProductID string `form:"product_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// AnalyticsRequest represents a sales analytics window
type AnalyticsRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
