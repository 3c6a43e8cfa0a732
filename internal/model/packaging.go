package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExtrasMap maps a surcharge name (Carton, Insert, Scoop, a custom name…) to
// its cost. Stored as JSONB on the packaging row.
type ExtrasMap map[string]decimal.Decimal

func (e ExtrasMap) Value() (driver.Value, error) {
	if e == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(e)
	return string(raw), err
}

func (e *ExtrasMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = ExtrasMap{}
		return nil
	}
	return errors.New("extras map: unsupported scan type")
}

// Packaging is a price-list entry for a packaging option. CostPrice is
// derived: BaseCost plus the sum of all extras. The fan-out join key for
// packaging price edits is the entry's own SKU, unlike labels and raw
// materials which carry a separate MainProductSKU.
type Packaging struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Product        string    `gorm:"index;not null"`
	SKU            string    `gorm:"column:sku"`
	Supplier       string
	StockAvailable int             `gorm:"not null;default:0"`
	BaseCost       decimal.Decimal `gorm:"type:decimal(10,2)"`
	Extras         ExtrasMap       `gorm:"type:jsonb;not null;default:'{}'"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(10,2)"`

	LastUpdated time.Time `gorm:"column:last_updated"`
	UpdatedBy   string    `gorm:"column:updated_by"`
	CreatedAt   time.Time
}

func (Packaging) TableName() string { return "packaging_catalog" }
