// Package costing implements the pure cost derivation rules: raw-material
// proration over a bill of materials, packaging cost with the fixed insert
// surcharge, unit cost, VAT splitting, and gross-profit figures.
//
// Every function is side-effect free and treats a failed catalog lookup or a
// zero/negative divisor as a zero contribution — never as an error. Values
// keep full decimal precision here; callers round to 2 places only when
// persisting.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/SallyAnnCreed/Costing-App/internal/model"
)

// InsertSurcharge is the fixed amount added to a product's package cost when
// its insert flag is on. Deliberately not configurable per catalog entry.
var InsertSurcharge = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// ResolveRawMaterial finds the catalog entry whose Product name equals name.
// Returns nil on a miss — absence is not an error.
func ResolveRawMaterial(catalog []model.RawMaterial, name string) *model.RawMaterial {
	for i := range catalog {
		if catalog[i].Product == name {
			return &catalog[i]
		}
	}
	return nil
}

// ResolveLabel finds a label catalog entry by Product name, nil on a miss.
func ResolveLabel(catalog []model.Label, name string) *model.Label {
	for i := range catalog {
		if catalog[i].Product == name {
			return &catalog[i]
		}
	}
	return nil
}

// ResolvePackaging finds a packaging catalog entry by Product name, nil on a miss.
func ResolvePackaging(catalog []model.Packaging, name string) *model.Packaging {
	for i := range catalog {
		if catalog[i].Product == name {
			return &catalog[i]
		}
	}
	return nil
}

// RawMaterialCost sums the prorated catalog cost of every BOM line:
// (amountUsed / size) * costPrice. Lines whose name resolves to nothing, or
// whose catalog entry has a zero/negative size or zero cost, contribute zero.
func RawMaterialCost(bom []model.BOMLine, catalog []model.RawMaterial) decimal.Decimal {
	total := decimal.Zero
	for _, line := range bom {
		mat := ResolveRawMaterial(catalog, line.Name)
		if mat == nil || mat.Size.Sign() <= 0 || mat.CostPrice.IsZero() {
			continue
		}
		total = total.Add(line.AmountUsed.Div(mat.Size).Mul(mat.CostPrice))
	}
	return total
}

// PackageCost applies the fixed insert surcharge on top of the stored base
// packaging cost when the flag is on.
func PackageCost(basePackageCost decimal.Decimal, insertApplied bool) decimal.Decimal {
	if insertApplied {
		return basePackageCost.Add(InsertSurcharge)
	}
	return basePackageCost
}

// UnitCost is the plain sum of the three cost contributors. Negative inputs
// are summed as-is — no clamping.
func UnitCost(labelCost, packageCost, rawMaterialCost decimal.Decimal) decimal.Decimal {
	return labelCost.Add(packageCost).Add(rawMaterialCost)
}

// SplitSellingPrice divides a VAT-inclusive selling price into its ex-VAT
// portion and the VAT amount, for a rate given in percent.
func SplitSellingPrice(sellingPrice, vatRatePercent decimal.Decimal) (exVAT, vatAmount decimal.Decimal) {
	exVAT = sellingPrice.Div(decimal.NewFromInt(1).Add(vatRatePercent.Div(hundred)))
	vatAmount = sellingPrice.Sub(exVAT)
	return exVAT, vatAmount
}

// ProfitFromExVAT computes the gross-profit amount and percentage of a unit
// cost against an ex-VAT price. A zero ex-VAT yields a zero percentage.
func ProfitFromExVAT(unitCost, exVAT decimal.Decimal) (gpAmount, gpPercentage decimal.Decimal) {
	gpAmount = exVAT.Sub(unitCost)
	if exVAT.IsZero() {
		return gpAmount, decimal.Zero
	}
	return gpAmount, gpAmount.Div(exVAT).Mul(hundred)
}

// PackagingCost is the catalog-side derivation for a packaging entry: base
// cost plus the sum of its surcharges. Independent of the product-level
// insert flag, which always adds the fixed InsertSurcharge instead.
func PackagingCost(baseCost decimal.Decimal, extras model.ExtrasMap) decimal.Decimal {
	total := baseCost
	for _, amount := range extras {
		total = total.Add(amount)
	}
	return total
}

// RecalculateCosts refreshes the cost side of a product — RawMaterialCost,
// PackageCost and UnitCost — from its inputs and the given catalog snapshots.
// Profit fields are intentionally left untouched: a unit-cost change alone
// never refreshes GP (see RecalculateProfit).
func RecalculateCosts(p *model.Product, rawMaterials []model.RawMaterial) {
	p.RawMaterialCost = RawMaterialCost(p.RawMaterialsUsed, rawMaterials)
	p.PackageCost = PackageCost(p.BasePackageCost, p.InsertApplied)
	p.UnitCost = UnitCost(p.LabelCost, p.PackageCost, p.RawMaterialCost)
}

// RecalculateProfit refreshes UnitCost, GPAmount and GPPercentage from the
// stored cost fields and ex-VAT price. This is the explicit "Update" action:
// the only path by which a cost change reaches the GP figures.
func RecalculateProfit(p *model.Product) {
	p.UnitCost = UnitCost(p.LabelCost, p.PackageCost, p.RawMaterialCost)
	p.GPAmount, p.GPPercentage = ProfitFromExVAT(p.UnitCost, p.ExVAT)
}

// RecalculateAll runs the full derivation: costs from the catalog snapshots,
// the VAT split from the selling price, then the profit figures.
func RecalculateAll(p *model.Product, rawMaterials []model.RawMaterial) {
	RecalculateCosts(p, rawMaterials)
	p.ExVAT, p.VATAmount = SplitSellingPrice(p.SellingPrice, p.VATRate)
	p.GPAmount, p.GPPercentage = ProfitFromExVAT(p.UnitCost, p.ExVAT)
}
