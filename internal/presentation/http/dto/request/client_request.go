package request

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	Document *string `json:"document" binding:"omitempty,max=20"` // CPF or CNPJ
	Type     string  `json:"type" binding:"omitempty,oneof=fisica juridica"`
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address"`
	Document *string `json:"document" binding:"omitempty,max=20"`
	Type     *string `json:"type" binding:"omitempty,oneof=fisica juridica"`
}
