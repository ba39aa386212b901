package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateReceiptRequest struct {
	MaterialID  string          `json:"materialId"  validate:"required,uuid"`
	ReceiptDate string          `json:"receiptDate" validate:"required,datetime=2006-01-02"`
	ReceiptTime string          `json:"receiptTime" validate:"required"`
	Transporter string          `json:"transporter" validate:"required,min=1"`
	Quantity    decimal.Decimal `json:"quantity"    validate:"min=0"`
	Unit        string          `json:"unit"        validate:"omitempty,max=10"`
	Notes       string          `json:"notes"`
}

type UpdateReceiptRequest struct {
	MaterialID  *string          `json:"materialId"  validate:"omitempty,uuid"`
	ReceiptDate *string          `json:"receiptDate" validate:"omitempty,datetime=2006-01-02"`
	ReceiptTime *string          `json:"receiptTime"`
	Transporter *string          `json:"transporter" validate:"omitempty,min=1"`
	Quantity    *decimal.Decimal `json:"quantity"    validate:"omitempty,min=0"`
	Unit        *string          `json:"unit"        validate:"omitempty,max=10"`
	Notes       *string          `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReceiptResponse struct {
	ID           string          `json:"id"`
	MaterialID   string          `json:"materialId"`
	MaterialName string          `json:"materialName"`
	ReceiptDate  string          `json:"receiptDate"`
	ReceiptTime  string          `json:"receiptTime"`
	Transporter  string          `json:"transporter"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Notes        string          `json:"notes"`
	CreatedBy    *UserRef        `json:"createdBy,omitempty"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}
