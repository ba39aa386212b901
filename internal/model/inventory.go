package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inventory is the live stock mirror of a Material. The ledger keeps it
// numerically in lockstep with the Material row on every mutating
// transaction; at most one Inventory exists per material (enforced by the
// inventory service, not by a DB constraint, matching the source system).
type Inventory struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	MaterialName    string          `gorm:"not null"`
	TotalWeight     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	ConsumedWeight  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	AvailableWeight decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit            string          `gorm:"not null;default:'kg'"`
	LastUpdated     time.Time       `gorm:"not null"`
}

// TableName overrides GORM's pluralization (inventories → inventory).
func (Inventory) TableName() string { return "inventory" }
