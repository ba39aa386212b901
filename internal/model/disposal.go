package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DisposalReasons is the closed set of accepted write-off reasons.
var DisposalReasons = []string{
	"silos_pukao",
	"cev_pukla",
	"curenje",
	"ostecenje_opreme",
	"gubitak_pri_transportu",
	"kontaminacija",
	"istek_roka",
	"ostalo",
}

// Disposal ("rashodovanje") records a write-off that decreases a material's
// available stock without production use.
type Disposal struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MaterialID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	MaterialName string          `gorm:"not null"`
	DisposalDate time.Time       `gorm:"index;not null"`
	DisposalTime string          `gorm:"not null"` // HH:MM
	Reason       string          `gorm:"type:varchar(30);index;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit         string          `gorm:"not null;default:'kg'"`
	Description  string          `gorm:"default:''"`
	Location     string          `gorm:"default:''"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Material *Material `gorm:"foreignKey:MaterialID"`
	Creator  *User     `gorm:"foreignKey:CreatedBy"`
}
