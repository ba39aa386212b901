package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resin ("sarza") is a batch recipe: how much of one material a single
// production usage consumes. MaterialName is denormalized at write time.
type Resin struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	MaterialName string          `gorm:"not null"`
	Weight       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
}
