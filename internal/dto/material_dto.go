package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMaterialRequest struct {
	Name        string          `json:"name"        validate:"required,min=1,max=120"`
	TotalWeight decimal.Decimal `json:"totalWeight" validate:"min=0"`
	Unit        string          `json:"unit"        validate:"omitempty,max=10"`
}

type UpdateMaterialRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=120"`
	TotalWeight *decimal.Decimal `json:"totalWeight" validate:"omitempty,min=0"`
	Unit        *string          `json:"unit"        validate:"omitempty,max=10"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TotalWeight     decimal.Decimal `json:"totalWeight"`
	ConsumedWeight  decimal.Decimal `json:"consumedWeight"`
	AvailableWeight decimal.Decimal `json:"availableWeight"`
	Unit            string          `json:"unit"`
	CreatedBy       *UserRef        `json:"createdBy,omitempty"`
	UpdatedBy       *UserRef        `json:"updatedBy,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}
