package request

// UpdateSettingsRequest represents a notification settings update
type UpdateSettingsRequest struct {
	LowStockRecipient *string `json:"low_stock_recipient" binding:"omitempty,email"`
	LowStockEnabled   *bool   `json:"low_stock_enabled"`
}
