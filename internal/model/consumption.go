package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shift values accepted on consumption records.
const (
	ShiftFirst  = "first"
	ShiftSecond = "second"
	ShiftThird  = "third"
)

// Consumption is one production event that consumes material through a
// resin recipe. ResinName, MaterialID, MaterialName and ResinWeight are
// frozen at creation time: renaming a resin or material later never
// rewrites historical records.
type Consumption struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date             string          `gorm:"index;not null"` // YYYY-MM-DD
	Shift            string          `gorm:"type:varchar(10);not null"`
	EmployeeName     string          `gorm:"not null"`
	ResinID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	ResinName        string          `gorm:"not null"`
	MaterialID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	MaterialName     string          `gorm:"not null"`
	ResinWeight      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UsageCount       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	TotalConsumption decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName matches the original collection name (singular endpoint).
func (Consumption) TableName() string { return "consumptions" }
