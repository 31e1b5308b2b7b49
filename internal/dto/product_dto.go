package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Code        string          `json:"code"        validate:"required,productcode"`
	Name        string          `json:"name"        validate:"required,min=1,max=100"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	CategoryID  string          `json:"categoryId"  validate:"required,uuid"`
	MaterialID  *string         `json:"materialId"  validate:"omitempty,uuid"`
	ColorID     *string         `json:"colorId"     validate:"omitempty,uuid"`
	ModalAwal   decimal.Decimal `json:"modalAwal"   validate:"required,gt=0,max=999999999"`
	HargaSewa   decimal.Decimal `json:"hargaSewa"   validate:"required,gt=0,max=999999999"`
	Quantity    int             `json:"quantity"    validate:"min=0,max=9999"`

	// Image accompanies the request when a photo is attached; nil means no file.
	Image *FileUpload `json:"-"`
}

type UpdateProductRequest struct {
	Code        *string          `json:"code"        validate:"omitempty,productcode"`
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	CategoryID  *string          `json:"categoryId"  validate:"omitempty,uuid"`
	MaterialID  *string          `json:"materialId"  validate:"omitempty,uuid"`
	ColorID     *string          `json:"colorId"     validate:"omitempty,uuid"`
	ModalAwal   *decimal.Decimal `json:"modalAwal"   validate:"omitempty,gt=0,max=999999999"`
	HargaSewa   *decimal.Decimal `json:"hargaSewa"   validate:"omitempty,gt=0,max=999999999"`
	Quantity    *int             `json:"quantity"    validate:"omitempty,min=0,max=9999"`

	Image *FileUpload `json:"-"`
}

type UpdateProductStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE RENTED MAINTENANCE"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	// Search matches name or code, case-insensitive substring.
	Search     string `form:"search"`
	CategoryID string `form:"categoryId" validate:"omitempty,uuid"`
	MaterialID string `form:"materialId" validate:"omitempty,uuid"`
	ColorID    string `form:"colorId"    validate:"omitempty,uuid"`
	Status     string `form:"status"     validate:"omitempty,oneof=AVAILABLE RENTED MAINTENANCE"`
	// IsActive: "false" = inactive only, "all" = everything, default active only.
	IsActive string `form:"isActive"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	CategoryID      string            `json:"categoryId"`
	Category        *CategoryResponse `json:"category,omitempty"`
	MaterialID      *string           `json:"materialId,omitempty"`
	ColorID         *string           `json:"colorId,omitempty"`
	ModalAwal       decimal.Decimal   `json:"modalAwal"`
	HargaSewa       decimal.Decimal   `json:"hargaSewa"`
	Quantity        int               `json:"quantity"`
	Status          string            `json:"status"`
	ImageURL        *string           `json:"imageUrl,omitempty"`
	TotalPendapatan decimal.Decimal   `json:"totalPendapatan"`
	IsActive        bool              `json:"isActive"`
	CreatedBy       string            `json:"createdBy"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}
