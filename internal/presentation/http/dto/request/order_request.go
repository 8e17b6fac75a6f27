package request

import "github.com/google/uuid"

// OrderItemRequest is one line of a checkout
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
	Unit      string    `json:"unit" binding:"required,oneof=sack kilo half_kilo piece"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	CustomerName  string             `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone string             `json:"customer_phone" binding:"omitempty,max=50"`
	CustomerEmail string             `json:"customer_email" binding:"omitempty,email"`
	Tax           float64            `json:"tax" binding:"min=0"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=pending completed cancelled"`
	StaffID   string `form:"staff_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
