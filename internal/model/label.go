package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Label is a price-list entry for product labelling. Product is the name the
// ledger's labelUsed field matches against.
type Label struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Product        string    `gorm:"index;not null"`
	SKU            string    `gorm:"column:sku"`
	Supplier       string
	CostPrice      decimal.Decimal `gorm:"type:decimal(10,2)"`
	MainProductSKU string          `gorm:"column:main_product_sku"`

	LastUpdated time.Time `gorm:"column:last_updated"`
	UpdatedBy   string    `gorm:"column:updated_by"`
	CreatedAt   time.Time
}

func (Label) TableName() string { return "label_catalog" }
