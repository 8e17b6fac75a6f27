package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
)

func feedProduct() *Product {
	return &Product{
		Name:             "Layers Mash",
		AnimalType:       enum.AnimalTypeChicken,
		Category:         enum.CategoryFeeds,
		PricePerSack:     300000,
		PricePerKilo:     13000,
		CostPerSack:      250000,
		StockSacks:       10,
		NetWeightPerSack: 25,
	}
}

func supplementProduct() *Product {
	return &Product{
		Name:       "Pig Booster",
		AnimalType: enum.AnimalTypePig,
		Category:   enum.CategorySupplements,
		Price:      50000,
		Cost:       35000,
		Stock:      40,
		StockSacks: 40,
	}
}

func TestNormalizeStockDerivesFeedCounters(t *testing.T) {
	p := feedProduct()
	p.NormalizeStock()

	assert.Equal(t, 10.0, p.StockSacks)
	assert.Equal(t, 250.0, p.StockKilos)
	assert.Equal(t, 500.0, p.StockHalfKilos)
	assert.Equal(t, 10.0, p.MaxStock)

	p.StockSacks = 9
	p.NormalizeStock()

	assert.Equal(t, 225.0, p.StockKilos)
	assert.Equal(t, 450.0, p.StockHalfKilos)
	// MaxStock ratchets, it never falls with stock
	assert.Equal(t, 10.0, p.MaxStock)
}

func TestNormalizeStockReconcilesSupplementCounters(t *testing.T) {
	p := supplementProduct()
	p.Stock = 12
	p.StockSacks = 30
	p.NormalizeStock()

	assert.Equal(t, 30.0, p.Stock)
	assert.Equal(t, 30.0, p.StockSacks)
	assert.Zero(t, p.StockKilos)
	assert.Zero(t, p.StockHalfKilos)
}

func TestNormalizeStockClampsNegatives(t *testing.T) {
	p := feedProduct()
	p.StockSacks = -3
	p.NormalizeStock()

	assert.Zero(t, p.StockSacks)
	assert.Zero(t, p.StockKilos)
}

func TestNormalizeStockDefaultsNetWeight(t *testing.T) {
	p := feedProduct()
	p.NetWeightPerSack = 0
	p.NormalizeStock()

	assert.Equal(t, float64(DefaultNetWeightPerSack), p.NetWeightPerSack)
	assert.Equal(t, 250.0, p.StockKilos)
}

func TestSackEquivalent(t *testing.T) {
	p := feedProduct()

	assert.Equal(t, 2.0, p.SackEquivalent(2, enum.UnitSack))
	assert.Equal(t, 1.0, p.SackEquivalent(25, enum.UnitKilo))
	assert.Equal(t, 0.5, p.SackEquivalent(25, enum.UnitHalfKilo))

	s := supplementProduct()
	assert.Equal(t, 3.0, s.SackEquivalent(3, enum.UnitPiece))
}

func TestPricePerUnit(t *testing.T) {
	p := feedProduct()

	assert.Equal(t, int64(300000), p.PricePerUnit(enum.UnitSack))
	assert.Equal(t, int64(13000), p.PricePerUnit(enum.UnitKilo))
	// No explicit half-kilo price, falls back to half the kilo price
	assert.Equal(t, int64(6500), p.PricePerUnit(enum.UnitHalfKilo))

	p.PricePerHalfKilo = 7000
	assert.Equal(t, int64(7000), p.PricePerUnit(enum.UnitHalfKilo))

	s := supplementProduct()
	assert.Equal(t, int64(50000), s.PricePerUnit(enum.UnitPiece))
}

func TestCostPerUnit(t *testing.T) {
	p := feedProduct()

	assert.Equal(t, int64(250000), p.CostPerUnit(enum.UnitSack))
	assert.Equal(t, int64(10000), p.CostPerUnit(enum.UnitKilo))
	assert.Equal(t, int64(5000), p.CostPerUnit(enum.UnitHalfKilo))

	s := supplementProduct()
	assert.Equal(t, int64(35000), s.CostPerUnit(enum.UnitPiece))
}

func TestLineCostRoundsOnlyTheFinalAmount(t *testing.T) {
	p := feedProduct()
	p.CostPerSack = 10990 // 439.6 cents per kilo

	// Per-unit snapshot rounds to the nearest cent
	assert.Equal(t, int64(440), p.CostPerUnit(enum.UnitKilo))

	// 25 kilos cost exactly one sack; truncating the per-kilo cost first
	// would lose 15 cents here
	assert.Equal(t, int64(10990), p.LineCost(enum.UnitKilo, 25))
	assert.Equal(t, int64(10990), p.LineCost(enum.UnitHalfKilo, 50))
	assert.Equal(t, int64(1099), p.LineCost(enum.UnitKilo, 2.5))
}

func TestLowStockThreshold(t *testing.T) {
	p := feedProduct()
	p.MaxStock = 20
	// ceil(0.15 * 20) = 3
	assert.Equal(t, 3.0, p.LowStockThreshold())

	p.StockSacks = 4
	assert.False(t, p.IsLowStock())

	p.StockSacks = 3
	assert.True(t, p.IsLowStock())
}

func TestIsLowStockIgnoresEmptyHistory(t *testing.T) {
	p := feedProduct()
	p.StockSacks = 0
	p.MaxStock = 0
	p.Stock = 0

	assert.False(t, p.IsLowStock())
}

func TestAvailableInUnit(t *testing.T) {
	p := feedProduct()
	p.NormalizeStock()

	assert.Equal(t, 10.0, p.AvailableInUnit(enum.UnitSack))
	assert.Equal(t, 250.0, p.AvailableInUnit(enum.UnitKilo))
	assert.Equal(t, 500.0, p.AvailableInUnit(enum.UnitHalfKilo))

	s := supplementProduct()
	assert.Equal(t, 40.0, s.AvailableInUnit(enum.UnitPiece))
}
