package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationSettings is a singleton record holding where operational
// alerts are delivered. Exactly one row exists; the seeder creates it.
type NotificationSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	LowStockRecipient string `gorm:"size:255" json:"low_stock_recipient"`
	LowStockEnabled   bool   `gorm:"default:true" json:"low_stock_enabled"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *NotificationSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the NotificationSettings model
func (NotificationSettings) TableName() string {
	return "notification_settings"
}
