package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies products for the rental catalog. Unlike the other
// reference entities it has no soft-delete flag: deletion is a hard delete
// gated by the dependency guard.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
	// Color is the display color used by the admin UI, #RRGGBB.
	Color     string `gorm:"type:varchar(7);not null"`
	CreatedBy string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []Product `gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string { return "categories" }
