package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SallyAnnCreed/Costing-App/internal/model"
	"github.com/SallyAnnCreed/Costing-App/internal/repository"
)

// ── Product stub ──────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository. It applies partial field
// maps the way the store would and records the last map written, so tests can
// assert exactly which fields a mutation persisted.
type stubProductRepo struct {
	products   map[uuid.UUID]*model.Product
	lastFields map[string]interface{}
	updateErr  error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			clone := *p
			return &clone, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	r.lastFields = fields
	applyProductFields(p, fields)
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return errors.New("not found")
	}
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

func applyProductFields(p *model.Product, fields map[string]interface{}) {
	for key, value := range fields {
		switch key {
		case "name":
			p.Name = value.(string)
		case "variant":
			p.Variant = value.(string)
		case "sku":
			p.SKU = value.(string)
		case "size":
			p.Size = value.(string)
		case "vat_rate":
			p.VATRate = value.(decimal.Decimal)
		case "label_used":
			p.LabelUsed = value.(string)
		case "label_cost":
			p.LabelCost = value.(decimal.Decimal)
		case "packaging_used":
			p.PackagingUsed = value.(string)
		case "base_package_cost":
			p.BasePackageCost = value.(decimal.Decimal)
		case "package_cost":
			p.PackageCost = value.(decimal.Decimal)
		case "insert_applied":
			p.InsertApplied = value.(bool)
		case "raw_materials_used":
			p.RawMaterialsUsed = value.(model.BOMLines)
		case "raw_material_cost":
			p.RawMaterialCost = value.(decimal.Decimal)
		case "unit_cost":
			p.UnitCost = value.(decimal.Decimal)
		case "selling_price":
			p.SellingPrice = value.(decimal.Decimal)
		case "ex_vat":
			p.ExVAT = value.(decimal.Decimal)
		case "vat_amount":
			p.VATAmount = value.(decimal.Decimal)
		case "gp_amount":
			p.GPAmount = value.(decimal.Decimal)
		case "gp_percentage":
			p.GPPercentage = value.(decimal.Decimal)
		case "note":
			p.Note = value.(string)
		case "last_updated":
			p.LastUpdated = value.(time.Time)
		case "updated_by":
			p.UpdatedBy = value.(string)
		}
	}
}

// ── Archive stub ──────────────────────────────────────────────────────────────

type stubArchiveRepo struct {
	archived  map[uuid.UUID]*model.ArchivedProduct
	createErr error
	deleteErr error
}

func newStubArchiveRepo() *stubArchiveRepo {
	return &stubArchiveRepo{archived: make(map[uuid.UUID]*model.ArchivedProduct)}
}

func (r *stubArchiveRepo) ListAll(_ context.Context) ([]model.ArchivedProduct, error) {
	out := make([]model.ArchivedProduct, 0, len(r.archived))
	for _, a := range r.archived {
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubArchiveRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ArchivedProduct, error) {
	a, ok := r.archived[id]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *a
	return &clone, nil
}

func (r *stubArchiveRepo) Create(_ context.Context, a *model.ArchivedProduct) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *a
	r.archived[a.ID] = &clone
	return nil
}

func (r *stubArchiveRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.archived, id)
	return nil
}

var _ repository.ArchiveRepository = (*stubArchiveRepo)(nil)

// ── Catalog repo stubs ────────────────────────────────────────────────────────

type stubLabelRepo struct {
	labels map[uuid.UUID]*model.Label
}

func newStubLabelRepo() *stubLabelRepo {
	return &stubLabelRepo{labels: make(map[uuid.UUID]*model.Label)}
}

func (r *stubLabelRepo) ListAll(_ context.Context) ([]model.Label, error) {
	out := make([]model.Label, 0, len(r.labels))
	for _, l := range r.labels {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubLabelRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Label, error) {
	l, ok := r.labels[id]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *l
	return &clone, nil
}

func (r *stubLabelRepo) Create(_ context.Context, l *model.Label) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	clone := *l
	r.labels[l.ID] = &clone
	return nil
}

func (r *stubLabelRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	l, ok := r.labels[id]
	if !ok {
		return errors.New("not found")
	}
	for key, value := range fields {
		switch key {
		case "product":
			l.Product = value.(string)
		case "sku":
			l.SKU = value.(string)
		case "supplier":
			l.Supplier = value.(string)
		case "cost_price":
			l.CostPrice = value.(decimal.Decimal)
		case "main_product_sku":
			l.MainProductSKU = value.(string)
		case "last_updated":
			l.LastUpdated = value.(time.Time)
		case "updated_by":
			l.UpdatedBy = value.(string)
		}
	}
	return nil
}

func (r *stubLabelRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.labels, id)
	return nil
}

var _ repository.LabelRepository = (*stubLabelRepo)(nil)

type stubPackagingRepo struct {
	entries map[uuid.UUID]*model.Packaging
}

func newStubPackagingRepo() *stubPackagingRepo {
	return &stubPackagingRepo{entries: make(map[uuid.UUID]*model.Packaging)}
}

func (r *stubPackagingRepo) ListAll(_ context.Context) ([]model.Packaging, error) {
	out := make([]model.Packaging, 0, len(r.entries))
	for _, p := range r.entries {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPackagingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Packaging, error) {
	p, ok := r.entries[id]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *p
	return &clone, nil
}

func (r *stubPackagingRepo) Create(_ context.Context, p *model.Packaging) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	clone := *p
	r.entries[p.ID] = &clone
	return nil
}

func (r *stubPackagingRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	p, ok := r.entries[id]
	if !ok {
		return errors.New("not found")
	}
	for key, value := range fields {
		switch key {
		case "product":
			p.Product = value.(string)
		case "sku":
			p.SKU = value.(string)
		case "supplier":
			p.Supplier = value.(string)
		case "stock_available":
			p.StockAvailable = value.(int)
		case "base_cost":
			p.BaseCost = value.(decimal.Decimal)
		case "extras":
			p.Extras = value.(model.ExtrasMap)
		case "cost_price":
			p.CostPrice = value.(decimal.Decimal)
		case "last_updated":
			p.LastUpdated = value.(time.Time)
		case "updated_by":
			p.UpdatedBy = value.(string)
		}
	}
	return nil
}

func (r *stubPackagingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	return nil
}

var _ repository.PackagingRepository = (*stubPackagingRepo)(nil)

type stubRawMaterialRepo struct {
	materials map[uuid.UUID]*model.RawMaterial
}

func newStubRawMaterialRepo() *stubRawMaterialRepo {
	return &stubRawMaterialRepo{materials: make(map[uuid.UUID]*model.RawMaterial)}
}

func (r *stubRawMaterialRepo) ListAll(_ context.Context) ([]model.RawMaterial, error) {
	out := make([]model.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, *m)
	}
	return out, nil
}

func (r *stubRawMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, errors.New("not found")
	}
	clone := *m
	return &clone, nil
}

func (r *stubRawMaterialRepo) Create(_ context.Context, m *model.RawMaterial) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	clone := *m
	r.materials[m.ID] = &clone
	return nil
}

func (r *stubRawMaterialRepo) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	m, ok := r.materials[id]
	if !ok {
		return errors.New("not found")
	}
	for key, value := range fields {
		switch key {
		case "product":
			m.Product = value.(string)
		case "sku":
			m.SKU = value.(string)
		case "variant":
			m.Variant = value.(string)
		case "size":
			m.Size = value.(decimal.Decimal)
		case "measurement":
			m.Measurement = value.(string)
		case "supplier":
			m.Supplier = value.(string)
		case "cost_price":
			m.CostPrice = value.(decimal.Decimal)
		case "main_product_sku":
			m.MainProductSKU = value.(string)
		case "last_updated":
			m.LastUpdated = value.(time.Time)
		case "updated_by":
			m.UpdatedBy = value.(string)
		}
	}
	return nil
}

func (r *stubRawMaterialRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.materials, id)
	return nil
}

var _ repository.RawMaterialRepository = (*stubRawMaterialRepo)(nil)

// ── Catalog provider stub ─────────────────────────────────────────────────────

// stubCatalogs serves fixed catalog snapshots and records invalidations.
type stubCatalogs struct {
	labels       []model.Label
	packaging    []model.Packaging
	rawMaterials []model.RawMaterial
	invalidated  []string
}

func (c *stubCatalogs) Labels(_ context.Context) ([]model.Label, error) {
	return c.labels, nil
}

func (c *stubCatalogs) Packaging(_ context.Context) ([]model.Packaging, error) {
	return c.packaging, nil
}

func (c *stubCatalogs) RawMaterials(_ context.Context) ([]model.RawMaterial, error) {
	return c.rawMaterials, nil
}

func (c *stubCatalogs) Invalidate(_ context.Context, collection string) {
	c.invalidated = append(c.invalidated, collection)
}

var _ CatalogProvider = (*stubCatalogs)(nil)
