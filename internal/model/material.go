package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is the catalog record for a raw input stock tracked by weight.
// AvailableWeight is always TotalWeight - ConsumedWeight; every write path
// recomputes it (the ledger does so inside the same UPDATE statement).
type Material struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string          `gorm:"uniqueIndex;not null"`
	TotalWeight     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	ConsumedWeight  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	AvailableWeight decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit            string          `gorm:"not null;default:'kg'"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	UpdatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Creator *User `gorm:"foreignKey:CreatedBy"`
	Updater *User `gorm:"foreignKey:UpdatedBy"`
}
