package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is a single-item transaction recorded by the QR/self-serve flow.
// Product fields are snapshots; cost and profit are recomputed whenever the
// product's cost basis changes.
type Sale struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string               `gorm:"size:255;not null" json:"product_name"`
	AnimalType    enum.AnimalType      `gorm:"size:20;not null" json:"animal_type"`
	Category      enum.ProductCategory `gorm:"size:20;not null" json:"category"`
	Quantity      float64              `gorm:"not null" json:"quantity"`
	Unit          enum.SaleUnit        `gorm:"size:20;not null" json:"unit"`
	PricePerUnit  int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalAmount   int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CostPerUnit   int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalCost     int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Profit        int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CustomerName  string               `gorm:"size:255" json:"customer_name"`
	CustomerPhone string               `gorm:"size:50" json:"customer_phone"`
	Status        enum.OrderStatus     `gorm:"size:20;default:'completed';index" json:"status"`
	SaleDate      time.Time            `gorm:"not null;index" json:"sale_date"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		PricePerUnit float64 `json:"price_per_unit"`
		TotalAmount  float64 `json:"total_amount"`
		CostPerUnit  float64 `json:"cost_per_unit"`
		TotalCost    float64 `json:"total_cost"`
		Profit       float64 `json:"profit"`
	}{
		Alias:        Alias(s),
		PricePerUnit: float64(s.PricePerUnit) / 100,
		TotalAmount:  float64(s.TotalAmount) / 100,
		CostPerUnit:  float64(s.CostPerUnit) / 100,
		TotalCost:    float64(s.TotalCost) / 100,
		Profit:       float64(s.Profit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
