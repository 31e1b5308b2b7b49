package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateColorRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=50"`
	HexCode     *string `json:"hexCode"     validate:"omitempty,rrggbb"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type UpdateColorRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1,max=50"`
	HexCode     *string `json:"hexCode"     validate:"omitempty,rrggbb"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type ColorFilter struct {
	Search   string `form:"search"`
	IsActive string `form:"isActive"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ColorResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	HexCode     *string `json:"hexCode,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
	CreatedBy   string  `json:"createdBy"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type ColorListResponse struct {
	Items      []ColorResponse `json:"items"`
	Pagination Pagination      `json:"pagination"`
}
