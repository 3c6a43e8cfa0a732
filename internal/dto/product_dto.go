package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type BOMLineRequest struct {
	Name       string          `json:"name"`
	AmountUsed decimal.Decimal `json:"amount_used" validate:"omitempty"`
}

type CreateProductRequest struct {
	Name             string           `json:"name"    validate:"required,min=1,max=160"`
	Variant          string           `json:"variant" validate:"max=160"`
	SKU              string           `json:"sku"     validate:"max=64"`
	Size             string           `json:"size"    validate:"max=64"`
	LabelUsed        string           `json:"label_used"`
	PackagingUsed    string           `json:"packaging_used"`
	RawMaterialsUsed []BOMLineRequest `json:"raw_materials_used"`
	InsertApplied    bool             `json:"insert_applied"`
	SellingPrice     decimal.Decimal  `json:"selling_price" validate:"min=0"`
	VATRate          *decimal.Decimal `json:"vat_rate"      validate:"omitempty,min=0,max=100"`
	Note             string           `json:"note"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name"    validate:"omitempty,min=1,max=160"`
	Variant      *string          `json:"variant" validate:"omitempty,max=160"`
	SKU          *string          `json:"sku"     validate:"omitempty,max=64"`
	Size         *string          `json:"size"    validate:"omitempty,max=64"`
	SellingPrice *decimal.Decimal `json:"selling_price" validate:"omitempty,min=0"`
	VATRate      *decimal.Decimal `json:"vat_rate"      validate:"omitempty,min=0,max=100"`
}

type SetLabelRequest struct {
	Label string `json:"label"`
}

type SetPackagingRequest struct {
	Packaging string `json:"packaging"`
}

type SellingPriceRequest struct {
	SellingPrice decimal.Decimal `json:"selling_price" validate:"min=0"`
}

type NoteRequest struct {
	Note string `json:"note"`
}

// UpdateBOMLineRequest addresses a line by position. Setting the name resets
// the amount so a stale quantity never prices the new material.
type UpdateBOMLineRequest struct {
	Name       *string          `json:"name"`
	AmountUsed *decimal.Decimal `json:"amount_used" validate:"omitempty,min=0"`
}

type ProductFilter struct {
	Search string `form:"search"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BOMLineResponse struct {
	Name       string          `json:"name"`
	AmountUsed decimal.Decimal `json:"amount_used"`
}

type ProductResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Variant          string            `json:"variant"`
	SKU              string            `json:"sku"`
	Size             string            `json:"size"`
	LabelUsed        string            `json:"label_used"`
	PackagingUsed    string            `json:"packaging_used"`
	RawMaterialsUsed []BOMLineResponse `json:"raw_materials_used"`
	InsertApplied    bool              `json:"insert_applied"`
	SellingPrice     decimal.Decimal   `json:"selling_price"`
	VATRate          decimal.Decimal   `json:"vat_rate"`
	LabelCost        decimal.Decimal   `json:"label_cost"`
	BasePackageCost  decimal.Decimal   `json:"base_package_cost"`
	PackageCost      decimal.Decimal   `json:"package_cost"`
	RawMaterialCost  decimal.Decimal   `json:"raw_material_cost"`
	UnitCost         decimal.Decimal   `json:"unit_cost"`
	VATAmount        decimal.Decimal   `json:"vat_amount"`
	ExVAT            decimal.Decimal   `json:"ex_vat"`
	GPAmount         decimal.Decimal   `json:"gp_amount"`
	GPPercentage     decimal.Decimal   `json:"gp_percentage"`
	Note             string            `json:"note"`
	LastUpdated      time.Time         `json:"last_updated"`
	UpdatedBy        string            `json:"updated_by"`
}

type ArchivedProductResponse struct {
	ProductResponse
	ArchivedAt *time.Time `json:"archived_at"`
}
