package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Product represents a catalog entry. Feeds track stock in three coupled
// units (sacks, kilos, half-kilos); supplements track a flat piece count in
// the legacy Stock and StockSacks counters.
type Product struct {
	ID               uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name             string               `gorm:"size:255;not null" json:"name"`
	AnimalType       enum.AnimalType      `gorm:"size:20;not null;index" json:"animal_type"`
	Category         enum.ProductCategory `gorm:"size:20;not null;index" json:"category"`
	Description      *string              `gorm:"type:text" json:"description,omitempty"`
	PricePerSack     int64                `gorm:"default:0" json:"price_per_sack"`      // Stored in cents
	PricePerKilo     int64                `gorm:"default:0" json:"price_per_kilo"`      // Stored in cents
	PricePerHalfKilo int64                `gorm:"default:0" json:"price_per_half_kilo"` // Stored in cents
	Price            int64                `gorm:"default:0" json:"price"`               // Flat supplement price, cents
	CostPerSack      int64                `gorm:"default:0" json:"cost_per_sack"`       // Stored in cents
	Cost             int64                `gorm:"default:0" json:"cost"`                // Flat supplement cost, cents
	StockSacks       float64              `gorm:"default:0" json:"stock_sacks"`
	StockKilos       float64              `gorm:"default:0" json:"stock_kilos"`
	StockHalfKilos   float64              `gorm:"default:0" json:"stock_half_kilos"`
	Stock            float64              `gorm:"default:0" json:"stock"`
	MaxStock         float64              `gorm:"default:0" json:"max_stock"`
	NetWeightPerSack float64              `gorm:"default:25" json:"net_weight_per_sack"`
	ImagePath        *string              `gorm:"size:255" json:"image_path,omitempty"`
	IsActive         bool                 `gorm:"default:true" json:"is_active"`
	IsFeatured       bool                 `gorm:"default:false" json:"is_featured"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
	DeletedAt        gorm.DeletedAt       `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the coupled stock counters consistent on every write
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.NormalizeStock()
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// round2 rounds to 2 decimal places to keep the derived counters free of
// floating-point drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NormalizeStock enforces the stock invariants. For feeds, kilos and
// half-kilos are derived from sacks (kilo = sack x net weight, half-kilo =
// kilo x 2). For supplements the two legacy counters are reconciled to their
// maximum and the weight counters forced to zero. All counters clamp to >= 0
// and MaxStock ratchets up to the largest primary counter observed.
func (p *Product) NormalizeStock() {
	if p.NetWeightPerSack <= 0 {
		p.NetWeightPerSack = DefaultNetWeightPerSack
	}
	if p.StockSacks < 0 {
		p.StockSacks = 0
	}
	if p.Stock < 0 {
		p.Stock = 0
	}

	switch p.Category {
	case enum.CategorySupplements:
		combined := math.Max(p.Stock, p.StockSacks)
		p.Stock = round2(combined)
		p.StockSacks = round2(combined)
		p.StockKilos = 0
		p.StockHalfKilos = 0
	default:
		p.StockSacks = round2(p.StockSacks)
		p.StockKilos = round2(p.StockSacks * p.NetWeightPerSack)
		p.StockHalfKilos = round2(p.StockKilos * 2)
	}

	if primary := p.PrimaryStock(); primary > p.MaxStock {
		p.MaxStock = primary
	}
}

// DefaultNetWeightPerSack is the sack net weight in kilograms assumed when a
// product does not specify one.
const DefaultNetWeightPerSack = 25

// PrimaryStock is the counter low-stock checks and availability run against:
// sacks for feeds, the larger of the two legacy counters for supplements.
func (p *Product) PrimaryStock() float64 {
	if p.Category == enum.CategorySupplements {
		return math.Max(p.Stock, p.StockSacks)
	}
	return p.StockSacks
}

// SackEquivalent converts a sold quantity into sack units using the
// product's net weight. Supplements sell by piece, where one piece is one
// stock unit.
func (p *Product) SackEquivalent(quantity float64, unit enum.SaleUnit) float64 {
	netWeight := p.NetWeightPerSack
	if netWeight <= 0 {
		netWeight = DefaultNetWeightPerSack
	}
	switch unit {
	case enum.UnitKilo:
		return quantity / netWeight
	case enum.UnitHalfKilo:
		return quantity / (netWeight * 2)
	default:
		return quantity
	}
}

// AvailableInUnit reports how much stock is available expressed in the given
// sale unit.
func (p *Product) AvailableInUnit(unit enum.SaleUnit) float64 {
	if p.Category == enum.CategorySupplements {
		return p.PrimaryStock()
	}
	switch unit {
	case enum.UnitKilo:
		return p.StockKilos
	case enum.UnitHalfKilo:
		return p.StockHalfKilos
	default:
		return p.StockSacks
	}
}

// PricePerUnit returns the selling price in cents for one unit
func (p *Product) PricePerUnit(unit enum.SaleUnit) int64 {
	if p.Category == enum.CategorySupplements {
		return p.Price
	}
	switch unit {
	case enum.UnitKilo:
		return p.PricePerKilo
	case enum.UnitHalfKilo:
		if p.PricePerHalfKilo > 0 {
			return p.PricePerHalfKilo
		}
		return p.PricePerKilo / 2
	default:
		return p.PricePerSack
	}
}

// CostPerUnit derives the cost basis in cents for one unit, rounded to the
// nearest cent. Kilo and half-kilo costs divide the sack cost by the
// standard 25 kg sack, matching how recorded sales are recalculated.
func (p *Product) CostPerUnit(unit enum.SaleUnit) int64 {
	return int64(math.Round(p.costPerUnit(unit)))
}

// costPerUnit is the unrounded per-unit cost basis in cents
func (p *Product) costPerUnit(unit enum.SaleUnit) float64 {
	switch unit {
	case enum.UnitSack:
		return float64(p.CostPerSack)
	case enum.UnitKilo:
		return float64(p.CostPerSack) / DefaultNetWeightPerSack
	case enum.UnitHalfKilo:
		return float64(p.CostPerSack) / (DefaultNetWeightPerSack * 2)
	default:
		return float64(p.Cost)
	}
}

// LineCost computes the cost in cents of selling quantity units. Only the
// final amount is rounded, so fractional per-unit costs do not accumulate
// truncation error across the quantity.
func (p *Product) LineCost(unit enum.SaleUnit, quantity float64) int64 {
	return int64(math.Round(p.costPerUnit(unit) * quantity))
}

// LowStockThreshold is 15% of the highest stock level seen for the product
func (p *Product) LowStockThreshold() float64 {
	reference := math.Max(p.MaxStock, math.Max(p.StockSacks, p.Stock))
	return math.Ceil(0.15 * reference)
}

// IsLowStock reports whether the primary counter has fallen to or below the
// low-stock threshold.
func (p *Product) IsLowStock() bool {
	threshold := p.LowStockThreshold()
	if threshold <= 0 {
		return false
	}
	return p.PrimaryStock() <= threshold
}

// GetPricePerSackDecimal returns the sack price as a decimal (for display)
func (p *Product) GetPricePerSackDecimal() float64 {
	return float64(p.PricePerSack) / 100
}

// GetCostPerSackDecimal returns the sack cost as a decimal (for display)
func (p *Product) GetCostPerSackDecimal() float64 {
	return float64(p.CostPerSack) / 100
}

// SetPricePerSackFromDecimal sets the sack price from a decimal value
func (p *Product) SetPricePerSackFromDecimal(price float64) {
	p.PricePerSack = int64(math.Round(price * 100))
}

// SetCostPerSackFromDecimal sets the sack cost from a decimal value
func (p *Product) SetCostPerSackFromDecimal(cost float64) {
	p.CostPerSack = int64(math.Round(cost * 100))
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	AnimalType       enum.AnimalType      `json:"animal_type"`
	Category         enum.ProductCategory `json:"category"`
	Description      *string              `json:"description,omitempty"`
	PricePerSack     float64              `json:"price_per_sack"`      // Decimal value for JSON
	PricePerKilo     float64              `json:"price_per_kilo"`      // Decimal value for JSON
	PricePerHalfKilo float64              `json:"price_per_half_kilo"` // Decimal value for JSON
	Price            float64              `json:"price"`               // Decimal value for JSON
	CostPerSack      float64              `json:"cost_per_sack"`       // Decimal value for JSON
	Cost             float64              `json:"cost"`                // Decimal value for JSON
	StockSacks       float64              `json:"stock_sacks"`
	StockKilos       float64              `json:"stock_kilos"`
	StockHalfKilos   float64              `json:"stock_half_kilos"`
	Stock            float64              `json:"stock"`
	MaxStock         float64              `json:"max_stock"`
	NetWeightPerSack float64              `json:"net_weight_per_sack"`
	ImagePath        *string              `json:"image_path,omitempty"`
	IsActive         bool                 `json:"is_active"`
	IsFeatured       bool                 `json:"is_featured"`
	IsLowStock       bool                 `json:"is_low_stock"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:               p.ID,
		Name:             p.Name,
		AnimalType:       p.AnimalType,
		Category:         p.Category,
		Description:      p.Description,
		PricePerSack:     float64(p.PricePerSack) / 100,
		PricePerKilo:     float64(p.PricePerKilo) / 100,
		PricePerHalfKilo: float64(p.PricePerHalfKilo) / 100,
		Price:            float64(p.Price) / 100,
		CostPerSack:      float64(p.CostPerSack) / 100,
		Cost:             float64(p.Cost) / 100,
		StockSacks:       p.StockSacks,
		StockKilos:       p.StockKilos,
		StockHalfKilos:   p.StockHalfKilos,
		Stock:            p.Stock,
		MaxStock:         p.MaxStock,
		NetWeightPerSack: p.NetWeightPerSack,
		ImagePath:        p.ImagePath,
		IsActive:         p.IsActive,
		IsFeatured:       p.IsFeatured,
		IsLowStock:       p.IsLowStock(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	})
}
