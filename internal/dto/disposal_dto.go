package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateDisposalRequest struct {
	MaterialID   string          `json:"materialId"   validate:"required,uuid"`
	DisposalDate string          `json:"disposalDate" validate:"required,datetime=2006-01-02"`
	DisposalTime string          `json:"disposalTime" validate:"required"`
	Reason       string          `json:"reason"       validate:"required,oneof=silos_pukao cev_pukla curenje ostecenje_opreme gubitak_pri_transportu kontaminacija istek_roka ostalo"`
	Quantity     decimal.Decimal `json:"quantity"     validate:"min=0"`
	Unit         string          `json:"unit"         validate:"omitempty,max=10"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
}

type UpdateDisposalRequest struct {
	MaterialID   *string          `json:"materialId"   validate:"omitempty,uuid"`
	DisposalDate *string          `json:"disposalDate" validate:"omitempty,datetime=2006-01-02"`
	DisposalTime *string          `json:"disposalTime"`
	Reason       *string          `json:"reason"       validate:"omitempty,oneof=silos_pukao cev_pukla curenje ostecenje_opreme gubitak_pri_transportu kontaminacija istek_roka ostalo"`
	Quantity     *decimal.Decimal `json:"quantity"     validate:"omitempty,min=0"`
	Unit         *string          `json:"unit"         validate:"omitempty,max=10"`
	Description  *string          `json:"description"`
	Location     *string          `json:"location"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DisposalResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	DisposalDate string          `json:"disposalDate"`
	DisposalTime string          `json:"disposalTime"`
	Reason       string          `json:"reason"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Description  string          `json:"description"`
	Location     string          `json:"location"`
	CreatedBy    *UserRef        `json:"createdBy,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}
