package request

// InviteStaffRequest represents a staff invitation request
type InviteStaffRequest struct {
	FirstName string `json:"first_name" binding:"required,min=2,max=255"`
	LastName  string `json:"last_name" binding:"required,min=2,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,max=50"`
	Position  string `json:"position" binding:"omitempty,max=255"`
	Role      string `json:"role" binding:"required,oneof=manager cashier staff"`
}

// UpdateStaffRequest represents a staff update request
type UpdateStaffRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Position  *string `json:"position" binding:"omitempty,max=255"`
	Role      *string `json:"role" binding:"omitempty,oneof=manager cashier staff"`
}

// StaffFilterRequest represents staff list parameters
type StaffFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
