package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawMaterial is a price-list entry for an ingredient or component.
// Product is the human-readable name that BOM lines match against — the soft
// reference target, not the ID. Size is the package quantity the CostPrice
// buys (e.g. 500 ml); a product's BOM line is prorated against it.
type RawMaterial struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Product     string    `gorm:"index;not null"`
	SKU         string    `gorm:"column:sku"`
	Variant     string
	Size        decimal.Decimal `gorm:"type:decimal(10,2)"`
	Measurement string          // kg | g | ml | unit
	Supplier    string
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2)"`

	// MainProductSKU joins a price edit to the one ledger product whose SKU
	// matches, for cost fan-out. A different key than the name match used
	// for BOM resolution; the two are intentionally not unified.
	MainProductSKU string `gorm:"column:main_product_sku"`

	LastUpdated time.Time `gorm:"column:last_updated"`
	UpdatedBy   string    `gorm:"column:updated_by"`
	CreatedAt   time.Time
}

func (RawMaterial) TableName() string { return "raw_material_catalog" }
