package request

// CreateExpenseRequest represents a create expense request
type CreateExpenseRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Category string  `json:"category" binding:"max=100"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Notes    string  `json:"notes"`
}

// UpdateExpenseRequest represents an update expense request. Nil fields
// are left unchanged.
type UpdateExpenseRequest struct {
	Title    *string  `json:"title" binding:"omitempty,max=255"`
	Category *string  `json:"category" binding:"omitempty,max=100"`
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	Notes    *string  `json:"notes"`
}
