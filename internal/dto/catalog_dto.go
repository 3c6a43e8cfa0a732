package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Raw materials ───────────────────────────────────────────────────────────

type CreateRawMaterialRequest struct {
	Product        string          `json:"product" validate:"required,min=1,max=160"`
	SKU            string          `json:"sku"     validate:"max=64"`
	Variant        string          `json:"variant" validate:"max=160"`
	Size           decimal.Decimal `json:"size"        validate:"min=0"`
	Measurement    string          `json:"measurement" validate:"omitempty,oneof=kg g ml unit"`
	Supplier       string          `json:"supplier"`
	CostPrice      decimal.Decimal `json:"cost_price" validate:"min=0"`
	MainProductSKU string          `json:"main_product_sku" validate:"max=64"`
}

type UpdateRawMaterialRequest struct {
	Product        *string          `json:"product" validate:"omitempty,min=1,max=160"`
	SKU            *string          `json:"sku"     validate:"omitempty,max=64"`
	Variant        *string          `json:"variant"`
	Size           *decimal.Decimal `json:"size"        validate:"omitempty,min=0"`
	Measurement    *string          `json:"measurement" validate:"omitempty,oneof=kg g ml unit"`
	Supplier       *string          `json:"supplier"`
	CostPrice      *decimal.Decimal `json:"cost_price" validate:"omitempty,min=0"`
	MainProductSKU *string          `json:"main_product_sku" validate:"omitempty,max=64"`
}

type MeasurementRequest struct {
	Measurement string `json:"measurement" validate:"required,oneof=kg g ml unit"`
}

type RawMaterialResponse struct {
	ID             string          `json:"id"`
	Product        string          `json:"product"`
	SKU            string          `json:"sku"`
	Variant        string          `json:"variant"`
	Size           decimal.Decimal `json:"size"`
	Measurement    string          `json:"measurement"`
	Supplier       string          `json:"supplier"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	MainProductSKU string          `json:"main_product_sku"`
	LastUpdated    time.Time       `json:"last_updated"`
	UpdatedBy      string          `json:"updated_by"`
}

// ─── Labels ──────────────────────────────────────────────────────────────────

type CreateLabelRequest struct {
	Product        string          `json:"product" validate:"required,min=1,max=160"`
	SKU            string          `json:"sku"     validate:"max=64"`
	Supplier       string          `json:"supplier"`
	CostPrice      decimal.Decimal `json:"cost_price" validate:"min=0"`
	MainProductSKU string          `json:"main_product_sku" validate:"max=64"`
}

type UpdateLabelRequest struct {
	Product        *string          `json:"product" validate:"omitempty,min=1,max=160"`
	SKU            *string          `json:"sku"     validate:"omitempty,max=64"`
	Supplier       *string          `json:"supplier"`
	CostPrice      *decimal.Decimal `json:"cost_price" validate:"omitempty,min=0"`
	MainProductSKU *string          `json:"main_product_sku" validate:"omitempty,max=64"`
}

type LabelResponse struct {
	ID             string          `json:"id"`
	Product        string          `json:"product"`
	SKU            string          `json:"sku"`
	Supplier       string          `json:"supplier"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	MainProductSKU string          `json:"main_product_sku"`
	LastUpdated    time.Time       `json:"last_updated"`
	UpdatedBy      string          `json:"updated_by"`
}

// ─── Packaging ───────────────────────────────────────────────────────────────

type CreatePackagingRequest struct {
	Product        string                     `json:"product" validate:"required,min=1,max=160"`
	SKU            string                     `json:"sku"     validate:"max=64"`
	Supplier       string                     `json:"supplier"`
	StockAvailable int                        `json:"stock_available" validate:"min=0"`
	BaseCost       decimal.Decimal            `json:"base_cost" validate:"min=0"`
	Extras         map[string]decimal.Decimal `json:"extras"`
}

type UpdatePackagingRequest struct {
	Product        *string                    `json:"product" validate:"omitempty,min=1,max=160"`
	SKU            *string                    `json:"sku"     validate:"omitempty,max=64"`
	Supplier       *string                    `json:"supplier"`
	StockAvailable *int                       `json:"stock_available" validate:"omitempty,min=0"`
	BaseCost       *decimal.Decimal           `json:"base_cost" validate:"omitempty,min=0"`
	Extras         map[string]decimal.Decimal `json:"extras"`
}

// AddExtraRequest adds one named surcharge to a packaging entry. The name
// "Other" is the form's free-text sentinel and is rejected as a stored name.
type AddExtraRequest struct {
	Name   string          `json:"name"   validate:"required,min=1,max=64"`
	Amount decimal.Decimal `json:"amount" validate:"min=0"`
}

type PackagingResponse struct {
	ID             string                     `json:"id"`
	Product        string                     `json:"product"`
	SKU            string                     `json:"sku"`
	Supplier       string                     `json:"supplier"`
	StockAvailable int                        `json:"stock_available"`
	BaseCost       decimal.Decimal            `json:"base_cost"`
	Extras         map[string]decimal.Decimal `json:"extras"`
	CostPrice      decimal.Decimal            `json:"cost_price"`
	LastUpdated    time.Time                  `json:"last_updated"`
	UpdatedBy      string                     `json:"updated_by"`
}
