package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMaterialRequest struct {
	Name         string          `json:"name"         validate:"required,min=2,max=50"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit" validate:"required,gt=0,max=999999999"`
	Unit         string          `json:"unit"         validate:"required,oneof=meter yard roll pcs kg"`
}

type UpdateMaterialRequest struct {
	Name         *string          `json:"name"         validate:"omitempty,min=2,max=50"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit" validate:"omitempty,gt=0,max=999999999"`
	Unit         *string          `json:"unit"         validate:"omitempty,oneof=meter yard roll pcs kg"`
}

type MaterialFilter struct {
	Search   string `form:"search"`
	IsActive string `form:"isActive"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Unit         string          `json:"unit"`
	IsActive     bool            `json:"isActive"`
	CreatedBy    string          `json:"createdBy"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

type MaterialListResponse struct {
	Items      []MaterialResponse `json:"items"`
	Pagination Pagination         `json:"pagination"`
}
