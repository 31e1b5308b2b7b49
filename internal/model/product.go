package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product status values. Transitions between them are unrestricted.
const (
	StatusAvailable   = "AVAILABLE"
	StatusRented      = "RENTED"
	StatusMaintenance = "MAINTENANCE"
)

// Product is a rentable garment. Category is a required reference;
// Material and Color are optional. The 4-char Code is unique among
// active products (enforced in the service layer, backed by a partial
// unique index as the authoritative guard).
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"type:varchar(4);not null;index"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	MaterialID  *uuid.UUID `gorm:"type:uuid;index"`
	ColorID     *uuid.UUID `gorm:"type:uuid;index"`
	// ModalAwal is the acquisition cost, HargaSewa the rental price per period.
	ModalAwal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	HargaSewa decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	Status    string          `gorm:"type:varchar(20);not null;default:'AVAILABLE'"`
	ImageURL  *string
	// TotalPendapatan accumulates rental revenue over the product's lifetime.
	TotalPendapatan decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`
	CreatedBy       string          `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Material *Material `gorm:"foreignKey:MaterialID"`
	Color    *Color    `gorm:"foreignKey:ColorID"`
}

func (Product) TableName() string { return "products" }
