package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateInventoryRequest struct {
	TotalWeight decimal.Decimal `json:"totalWeight" validate:"min=0"`
}

type UpdateInventoryRequest struct {
	TotalWeight decimal.Decimal `json:"totalWeight" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InventoryResponse struct {
	ID              string          `json:"id"`
	MaterialID      string          `json:"materialId"`
	MaterialName    string          `json:"materialName"`
	TotalWeight     decimal.Decimal `json:"totalWeight"`
	ConsumedWeight  decimal.Decimal `json:"consumedWeight"`
	AvailableWeight decimal.Decimal `json:"availableWeight"`
	Unit            string          `json:"unit"`
	LastUpdated     string          `json:"lastUpdated"`
}
