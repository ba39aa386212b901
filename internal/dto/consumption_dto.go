package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateConsumptionRequest struct {
	Date         string          `json:"date"         validate:"required,datetime=2006-01-02"`
	Shift        string          `json:"shift"        validate:"required,oneof=first second third"`
	EmployeeName string          `json:"employeeName" validate:"required,min=1"`
	ResinID      string          `json:"resinId"      validate:"required,uuid"`
	UsageCount   decimal.Decimal `json:"usageCount"   validate:"min=0"`
}

type UpdateConsumptionRequest struct {
	Date         *string          `json:"date"         validate:"omitempty,datetime=2006-01-02"`
	Shift        *string          `json:"shift"        validate:"omitempty,oneof=first second third"`
	EmployeeName *string          `json:"employeeName" validate:"omitempty,min=1"`
	ResinID      *string          `json:"resinId"      validate:"omitempty,uuid"`
	UsageCount   *decimal.Decimal `json:"usageCount"   validate:"omitempty,min=0"`
}

// ConsumptionFilter narrows list queries.
type ConsumptionFilter struct {
	Date string `form:"date"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConsumptionResponse struct {
	ID               string          `json:"id"`
	Date             string          `json:"date"`
	Shift            string          `json:"shift"`
	EmployeeName     string          `json:"employeeName"`
	ResinID          string          `json:"resinId"`
	ResinName        string          `json:"resinName"`
	MaterialID       string          `json:"materialId"`
	MaterialName     string          `json:"materialName"`
	ResinWeight      decimal.Decimal `json:"resinWeight"`
	UsageCount       decimal.Decimal `json:"usageCount"`
	TotalConsumption decimal.Decimal `json:"totalConsumption"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}
