package repository

import (
	"time"

	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"gorm.io/gorm"
)

// DateBetween returns a GORM scope filtering a timestamp column to a window.
// Nil bounds are skipped, so the same scope serves open-ended filters.
func DateBetween(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", *start)
		}
		if end != nil {
			db = db.Where(column+" <= ?", *end)
		}
		return db
	}
}

// CompletedOnly returns a GORM scope keeping completed records
func CompletedOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", enum.OrderStatusCompleted)
	}
}

// ActiveOnly returns a GORM scope keeping active catalog entries
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}
