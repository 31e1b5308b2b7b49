package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a fabric type referenced by products. Name uniqueness is
// case-insensitive among active materials.
type Material struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"index;not null"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	IsActive     bool            `gorm:"not null;default:true"`
	CreatedBy    string          `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Material) TableName() string { return "materials" }
