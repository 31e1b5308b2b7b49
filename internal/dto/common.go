package dto

import "github.com/shopspring/decimal"

func init() {
	// Monetary values must serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Pagination is the envelope metadata every list response carries.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination derives the metadata from the applied filter and total count.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}
