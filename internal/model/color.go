package model

import (
	"time"

	"github.com/google/uuid"
)

// Color is a garment color referenced by products. Name uniqueness is
// case-insensitive among active colors.
type Color struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	HexCode     *string   `gorm:"type:varchar(7)"`
	Description *string
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedBy   string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Color) TableName() string { return "colors" }
