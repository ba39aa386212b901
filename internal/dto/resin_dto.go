package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateResinRequest struct {
	Name       string          `json:"name"       validate:"required,min=1,max=120"`
	MaterialID string          `json:"materialId" validate:"required,uuid"`
	Weight     decimal.Decimal `json:"weight"     validate:"min=0"`
}

type UpdateResinRequest struct {
	Name       *string          `json:"name"       validate:"omitempty,min=1,max=120"`
	MaterialID *string          `json:"materialId" validate:"omitempty,uuid"`
	Weight     *decimal.Decimal `json:"weight"     validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ResinResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	Weight       decimal.Decimal `json:"weight"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}
