package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt ("prijemnica") records an inbound delivery that increases a
// material's total stock.
type Receipt struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	MaterialName string          `gorm:"not null"`
	ReceiptDate  time.Time       `gorm:"index;not null"`
	ReceiptTime  string          `gorm:"not null"` // HH:MM
	Transporter  string          `gorm:"not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit         string          `gorm:"not null;default:'kg'"`
	Notes        string          `gorm:"default:''"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
	Creator  *User     `gorm:"foreignKey:CreatedBy"`
}
