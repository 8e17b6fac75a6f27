package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a staff checkout transaction. Orders are immutable after
// creation except for status transitions and a backfilled order date.
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber   string           `gorm:"size:100;unique;not null" json:"order_number"`
	StaffID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"staff_id"`
	CustomerName  string           `gorm:"size:255" json:"customer_name"`
	CustomerPhone string           `gorm:"size:50" json:"customer_phone"`
	CustomerEmail string           `gorm:"size:255" json:"customer_email"`
	Status        enum.OrderStatus `gorm:"size:20;default:'pending';index" json:"status"`
	SubTotal      int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Tax           int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	// DedupKey mirrors the analytics de-duplication heuristic so future
	// consumers can match on a stored key instead of recomputing it.
	DedupKey  string         `gorm:"size:512;index" json:"-"`
	OrderDate time.Time      `gorm:"not null;index" json:"order_date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Staff User        `gorm:"foreignKey:StaffID" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"sub_total"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(o),
		SubTotal: float64(o.SubTotal) / 100,
		Tax:      float64(o.Tax) / 100,
		Total:    float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// OrderItem is a line item carrying a snapshot of the product name and unit
// price at the time the order was created.
type OrderItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    float64        `gorm:"not null" json:"quantity"`
	Unit        enum.SaleUnit  `gorm:"size:20;not null" json:"unit"`
	Price       int64          `gorm:"not null" json:"-"` // Unit price in cents, excluded from JSON
	Total       int64          `gorm:"not null" json:"-"` // Line total in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		Total float64 `json:"total"`
	}{
		Alias: Alias(oi),
		Price: float64(oi.Price) / 100,
		Total: float64(oi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
