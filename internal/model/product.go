package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOMLine is a single raw-material usage on a product's bill of materials.
// Name soft-references RawMaterial.Product — an empty or unmatched name is
// valid and contributes zero cost.
type BOMLine struct {
	Name       string          `json:"name"`
	AmountUsed decimal.Decimal `json:"amount_used"`
}

// BOMLines is stored as a JSONB column so the product row stays a flat
// document.
type BOMLines []BOMLine

func (b BOMLines) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(b)
	return string(raw), err
}

func (b *BOMLines) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = BOMLines{}
		return nil
	}
	return errors.New("bom lines: unsupported scan type")
}

// Product is the ledger row: user-chosen inputs plus the derived cost and
// profit fields the engine maintains. UnitCost must equal
// LabelCost + PackageCost + RawMaterialCost after every mutation.
type Product struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"column:name;index;not null"`
	Variant string
	SKU     string `gorm:"column:sku;index"`
	Size    string

	// Inputs
	LabelUsed        string          `gorm:"column:label_used"`
	PackagingUsed    string          `gorm:"column:packaging_used"`
	RawMaterialsUsed BOMLines        `gorm:"column:raw_materials_used;type:jsonb;not null;default:'[]'"`
	InsertApplied    bool            `gorm:"not null;default:false"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(10,2)"`
	VATRate          decimal.Decimal `gorm:"column:vat_rate;type:decimal(5,2);not null;default:15"`

	// Derived
	LabelCost       decimal.Decimal `gorm:"type:decimal(10,2)"`
	BasePackageCost decimal.Decimal `gorm:"type:decimal(10,2)"`
	PackageCost     decimal.Decimal `gorm:"type:decimal(10,2)"`
	RawMaterialCost decimal.Decimal `gorm:"type:decimal(10,2)"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(10,2)"`
	VATAmount       decimal.Decimal `gorm:"column:vat_amount;type:decimal(10,2)"`
	ExVAT           decimal.Decimal `gorm:"column:ex_vat;type:decimal(10,2)"`
	GPAmount        decimal.Decimal `gorm:"column:gp_amount;type:decimal(10,2)"`
	GPPercentage    decimal.Decimal `gorm:"column:gp_percentage;type:decimal(10,2)"`

	// Audit
	Note        string
	LastUpdated time.Time `gorm:"column:last_updated"`
	UpdatedBy   string    `gorm:"column:updated_by"`
	CreatedAt   time.Time
}

func (Product) TableName() string { return "products" }

// ArchivedProduct is a product moved out of the ledger. All fields are
// preserved verbatim so a restore is lossless apart from ArchivedAt.
type ArchivedProduct struct {
	Product
	ArchivedAt *time.Time `gorm:"column:archived_at"`
}

func (ArchivedProduct) TableName() string { return "archived_products" }
