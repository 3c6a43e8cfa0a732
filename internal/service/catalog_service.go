package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/SallyAnnCreed/Costing-App/internal/costing"
	"github.com/SallyAnnCreed/Costing-App/internal/dto"
	"github.com/SallyAnnCreed/Costing-App/internal/model"
	"github.com/SallyAnnCreed/Costing-App/internal/repository"
)

const (
	labelsCollection       = "labels"
	packagingCollection    = "packaging"
	rawMaterialsCollection = "raw_materials"
)

// CatalogService maintains the three reference price lists. A cost-affecting
// edit additionally ripples to the one product whose SKU matches the entry's
// join key; that ripple joins on SKU while product-side selection resolves by
// name, and the two keys are intentionally kept distinct.
type CatalogService interface {
	ListLabels(ctx context.Context) ([]dto.LabelResponse, error)
	CreateLabel(ctx context.Context, req dto.CreateLabelRequest, editor string) (*dto.LabelResponse, error)
	UpdateLabel(ctx context.Context, id uuid.UUID, req dto.UpdateLabelRequest, editor string) (*dto.LabelResponse, error)
	DeleteLabel(ctx context.Context, id uuid.UUID) error

	ListPackaging(ctx context.Context) ([]dto.PackagingResponse, error)
	CreatePackaging(ctx context.Context, req dto.CreatePackagingRequest, editor string) (*dto.PackagingResponse, error)
	UpdatePackaging(ctx context.Context, id uuid.UUID, req dto.UpdatePackagingRequest, editor string) (*dto.PackagingResponse, error)
	AddPackagingExtra(ctx context.Context, id uuid.UUID, req dto.AddExtraRequest, editor string) (*dto.PackagingResponse, error)
	DeletePackaging(ctx context.Context, id uuid.UUID) error

	ListRawMaterials(ctx context.Context) ([]dto.RawMaterialResponse, error)
	CreateRawMaterial(ctx context.Context, req dto.CreateRawMaterialRequest, editor string) (*dto.RawMaterialResponse, error)
	UpdateRawMaterial(ctx context.Context, id uuid.UUID, req dto.UpdateRawMaterialRequest, editor string) (*dto.RawMaterialResponse, error)
	SetMeasurement(ctx context.Context, id uuid.UUID, measurement string, editor string) (*dto.RawMaterialResponse, error)
	DeleteRawMaterial(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	labels       repository.LabelRepository
	packaging    repository.PackagingRepository
	rawMaterials repository.RawMaterialRepository
	products     repository.ProductRepository
	cache        CatalogProvider
}

func NewCatalogService(
	labels repository.LabelRepository,
	packaging repository.PackagingRepository,
	rawMaterials repository.RawMaterialRepository,
	products repository.ProductRepository,
	cache CatalogProvider,
) CatalogService {
	return &catalogService{
		labels:       labels,
		packaging:    packaging,
		rawMaterials: rawMaterials,
		products:     products,
		cache:        cache,
	}
}

// ── Labels ───────────────────────────────────────────────────────────────────

func (s *catalogService) ListLabels(ctx context.Context) ([]dto.LabelResponse, error) {
	labels, err := s.cache.Labels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LabelResponse, 0, len(labels))
	for i := range labels {
		out = append(out, labelToResponse(&labels[i]))
	}
	return out, nil
}

func (s *catalogService) CreateLabel(ctx context.Context, req dto.CreateLabelRequest, editor string) (*dto.LabelResponse, error) {
	l := &model.Label{
		Product:        req.Product,
		SKU:            req.SKU,
		Supplier:       req.Supplier,
		CostPrice:      req.CostPrice.Round(2),
		MainProductSKU: req.MainProductSKU,
		LastUpdated:    time.Now(),
		UpdatedBy:      editor,
	}
	if err := s.labels.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("saving label: %w", err)
	}
	s.cache.Invalidate(ctx, labelsCollection)
	resp := labelToResponse(l)
	return &resp, nil
}

func (s *catalogService) UpdateLabel(ctx context.Context, id uuid.UUID, req dto.UpdateLabelRequest, editor string) (*dto.LabelResponse, error) {
	l, err := s.labels.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("label %s not found", id)
	}

	priceChanged := false
	if req.Product != nil {
		l.Product = *req.Product
	}
	if req.SKU != nil {
		l.SKU = *req.SKU
	}
	if req.Supplier != nil {
		l.Supplier = *req.Supplier
	}
	if req.MainProductSKU != nil {
		l.MainProductSKU = *req.MainProductSKU
	}
	if req.CostPrice != nil && !req.CostPrice.Equal(l.CostPrice) {
		l.CostPrice = req.CostPrice.Round(2)
		priceChanged = true
	}
	l.LastUpdated = time.Now()
	l.UpdatedBy = editor

	fields := map[string]interface{}{
		"product":          l.Product,
		"sku":              l.SKU,
		"supplier":         l.Supplier,
		"cost_price":       l.CostPrice,
		"main_product_sku": l.MainProductSKU,
		"last_updated":     l.LastUpdated,
		"updated_by":       l.UpdatedBy,
	}
	if err := s.labels.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("saving label: %w", err)
	}
	s.cache.Invalidate(ctx, labelsCollection)

	// A price edit ripples to the main product's stored label cost. UnitCost
	// is left as-is; it only catches up through the product's explicit
	// recalculate action.
	if priceChanged && l.MainProductSKU != "" {
		if err := s.fanOutLabelCost(ctx, l.MainProductSKU, l.CostPrice); err != nil {
			return nil, err
		}
	}
	resp := labelToResponse(l)
	return &resp, nil
}

func (s *catalogService) DeleteLabel(ctx context.Context, id uuid.UUID) error {
	if err := s.labels.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting label: %w", err)
	}
	s.cache.Invalidate(ctx, labelsCollection)
	return nil
}

func (s *catalogService) fanOutLabelCost(ctx context.Context, sku string, costPrice decimal.Decimal) error {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		log.Debug().Str("sku", sku).Msg("label price edit: no product with matching sku")
		return nil
	}
	log.Info().Str("sku", sku).Str("product_id", p.ID.String()).
		Str("label_cost", costPrice.String()).Msg("propagating label price to product")
	if err := s.products.Update(ctx, p.ID, map[string]interface{}{
		"label_cost": costPrice,
	}); err != nil {
		return fmt.Errorf("label saved but product %s not updated: %w", p.ID, err)
	}
	return nil
}

// ── Packaging ────────────────────────────────────────────────────────────────

func (s *catalogService) ListPackaging(ctx context.Context) ([]dto.PackagingResponse, error) {
	entries, err := s.cache.Packaging(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackagingResponse, 0, len(entries))
	for i := range entries {
		out = append(out, packagingToResponse(&entries[i]))
	}
	return out, nil
}

func (s *catalogService) CreatePackaging(ctx context.Context, req dto.CreatePackagingRequest, editor string) (*dto.PackagingResponse, error) {
	p := &model.Packaging{
		Product:        req.Product,
		SKU:            req.SKU,
		Supplier:       req.Supplier,
		StockAvailable: req.StockAvailable,
		BaseCost:       req.BaseCost.Round(2),
		Extras:         model.ExtrasMap(req.Extras),
		LastUpdated:    time.Now(),
		UpdatedBy:      editor,
	}
	if p.Extras == nil {
		p.Extras = model.ExtrasMap{}
	}
	p.CostPrice = costing.PackagingCost(p.BaseCost, p.Extras).Round(2)

	if err := s.packaging.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("saving packaging: %w", err)
	}
	s.cache.Invalidate(ctx, packagingCollection)
	resp := packagingToResponse(p)
	return &resp, nil
}

func (s *catalogService) UpdatePackaging(ctx context.Context, id uuid.UUID, req dto.UpdatePackagingRequest, editor string) (*dto.PackagingResponse, error) {
	p, err := s.packaging.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("packaging %s not found", id)
	}

	if req.Product != nil {
		p.Product = *req.Product
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Supplier != nil {
		p.Supplier = *req.Supplier
	}
	if req.StockAvailable != nil {
		p.StockAvailable = *req.StockAvailable
	}
	if req.BaseCost != nil {
		p.BaseCost = req.BaseCost.Round(2)
	}
	if req.Extras != nil {
		p.Extras = model.ExtrasMap(req.Extras)
	}

	return s.persistPackaging(ctx, p, editor)
}

// AddPackagingExtra appends one named surcharge. "Other" is the edit form's
// free-text sentinel, never a stored name, and names must not collide
// (case-sensitive exact match). Rejection happens before any write.
func (s *catalogService) AddPackagingExtra(ctx context.Context, id uuid.UUID, req dto.AddExtraRequest, editor string) (*dto.PackagingResponse, error) {
	p, err := s.packaging.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("packaging %s not found", id)
	}
	if req.Name == "Other" {
		return nil, fmt.Errorf("extra name %q is reserved", req.Name)
	}
	if _, exists := p.Extras[req.Name]; exists {
		return nil, fmt.Errorf("extra %q already exists", req.Name)
	}

	if p.Extras == nil {
		p.Extras = model.ExtrasMap{}
	}
	p.Extras[req.Name] = req.Amount.Round(2)

	return s.persistPackaging(ctx, p, editor)
}

func (s *catalogService) DeletePackaging(ctx context.Context, id uuid.UUID) error {
	if err := s.packaging.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting packaging: %w", err)
	}
	s.cache.Invalidate(ctx, packagingCollection)
	return nil
}

// persistPackaging rederives CostPrice from the base cost and surcharge set,
// writes the entry, and fans the new price out to the product sharing the
// entry's own SKU. UnitCost on that product is not recomputed here.
func (s *catalogService) persistPackaging(ctx context.Context, p *model.Packaging, editor string) (*dto.PackagingResponse, error) {
	previous := p.CostPrice
	p.CostPrice = costing.PackagingCost(p.BaseCost, p.Extras).Round(2)
	p.LastUpdated = time.Now()
	p.UpdatedBy = editor

	fields := map[string]interface{}{
		"product":         p.Product,
		"sku":             p.SKU,
		"supplier":        p.Supplier,
		"stock_available": p.StockAvailable,
		"base_cost":       p.BaseCost,
		"extras":          p.Extras,
		"cost_price":      p.CostPrice,
		"last_updated":    p.LastUpdated,
		"updated_by":      p.UpdatedBy,
	}
	if err := s.packaging.Update(ctx, p.ID, fields); err != nil {
		return nil, fmt.Errorf("saving packaging: %w", err)
	}
	s.cache.Invalidate(ctx, packagingCollection)

	if !p.CostPrice.Equal(previous) && p.SKU != "" {
		if err := s.fanOutPackagingCost(ctx, p.SKU, p.CostPrice); err != nil {
			return nil, err
		}
	}
	resp := packagingToResponse(p)
	return &resp, nil
}

func (s *catalogService) fanOutPackagingCost(ctx context.Context, sku string, costPrice decimal.Decimal) error {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		log.Debug().Str("sku", sku).Msg("packaging price edit: no product with matching sku")
		return nil
	}
	log.Info().Str("sku", sku).Str("product_id", p.ID.String()).
		Str("package_cost", costPrice.String()).Msg("propagating packaging price to product")
	if err := s.products.Update(ctx, p.ID, map[string]interface{}{
		"package_cost": costPrice,
	}); err != nil {
		return fmt.Errorf("packaging saved but product %s not updated: %w", p.ID, err)
	}
	return nil
}

// ── Raw materials ────────────────────────────────────────────────────────────

func (s *catalogService) ListRawMaterials(ctx context.Context) ([]dto.RawMaterialResponse, error) {
	materials, err := s.cache.RawMaterials(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RawMaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, rawMaterialToResponse(&materials[i]))
	}
	return out, nil
}

func (s *catalogService) CreateRawMaterial(ctx context.Context, req dto.CreateRawMaterialRequest, editor string) (*dto.RawMaterialResponse, error) {
	m := &model.RawMaterial{
		Product:        req.Product,
		SKU:            req.SKU,
		Variant:        req.Variant,
		Size:           req.Size,
		Measurement:    req.Measurement,
		Supplier:       req.Supplier,
		CostPrice:      req.CostPrice.Round(2),
		MainProductSKU: req.MainProductSKU,
		LastUpdated:    time.Now(),
		UpdatedBy:      editor,
	}
	if err := s.rawMaterials.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("saving raw material: %w", err)
	}
	s.cache.Invalidate(ctx, rawMaterialsCollection)
	resp := rawMaterialToResponse(m)
	return &resp, nil
}

func (s *catalogService) UpdateRawMaterial(ctx context.Context, id uuid.UUID, req dto.UpdateRawMaterialRequest, editor string) (*dto.RawMaterialResponse, error) {
	m, err := s.rawMaterials.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("raw material %s not found", id)
	}

	priceChanged := false
	if req.Product != nil {
		m.Product = *req.Product
	}
	if req.SKU != nil {
		m.SKU = *req.SKU
	}
	if req.Variant != nil {
		m.Variant = *req.Variant
	}
	if req.Size != nil {
		m.Size = *req.Size
	}
	if req.Measurement != nil {
		m.Measurement = *req.Measurement
	}
	if req.Supplier != nil {
		m.Supplier = *req.Supplier
	}
	if req.MainProductSKU != nil {
		m.MainProductSKU = *req.MainProductSKU
	}
	if req.CostPrice != nil && !req.CostPrice.Equal(m.CostPrice) {
		m.CostPrice = req.CostPrice.Round(2)
		priceChanged = true
	}
	m.LastUpdated = time.Now()
	m.UpdatedBy = editor

	fields := map[string]interface{}{
		"product":          m.Product,
		"sku":              m.SKU,
		"variant":          m.Variant,
		"size":             m.Size,
		"measurement":      m.Measurement,
		"supplier":         m.Supplier,
		"cost_price":       m.CostPrice,
		"main_product_sku": m.MainProductSKU,
		"last_updated":     m.LastUpdated,
		"updated_by":       m.UpdatedBy,
	}
	if err := s.rawMaterials.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("saving raw material: %w", err)
	}
	s.cache.Invalidate(ctx, rawMaterialsCollection)

	// Unlike the label and packaging paths, a raw-material price ripple also
	// refreshes the product's UnitCost.
	if priceChanged && m.MainProductSKU != "" {
		if err := s.fanOutRawMaterialCost(ctx, m.MainProductSKU, m.CostPrice); err != nil {
			return nil, err
		}
	}
	resp := rawMaterialToResponse(m)
	return &resp, nil
}

// SetMeasurement changes only the unit of measure on an entry. Cost fields
// are untouched, so nothing ripples.
func (s *catalogService) SetMeasurement(ctx context.Context, id uuid.UUID, measurement string, editor string) (*dto.RawMaterialResponse, error) {
	m, err := s.rawMaterials.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("raw material %s not found", id)
	}

	m.Measurement = measurement
	m.LastUpdated = time.Now()
	m.UpdatedBy = editor

	if err := s.rawMaterials.Update(ctx, id, map[string]interface{}{
		"measurement":  m.Measurement,
		"last_updated": m.LastUpdated,
		"updated_by":   m.UpdatedBy,
	}); err != nil {
		return nil, fmt.Errorf("saving raw material: %w", err)
	}
	s.cache.Invalidate(ctx, rawMaterialsCollection)
	resp := rawMaterialToResponse(m)
	return &resp, nil
}

func (s *catalogService) DeleteRawMaterial(ctx context.Context, id uuid.UUID) error {
	if err := s.rawMaterials.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting raw material: %w", err)
	}
	s.cache.Invalidate(ctx, rawMaterialsCollection)
	return nil
}

func (s *catalogService) fanOutRawMaterialCost(ctx context.Context, sku string, costPrice decimal.Decimal) error {
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		log.Debug().Str("sku", sku).Msg("raw material price edit: no product with matching sku")
		return nil
	}
	unitCost := costing.UnitCost(p.LabelCost, p.PackageCost, costPrice)
	log.Info().Str("sku", sku).Str("product_id", p.ID.String()).
		Str("raw_material_cost", costPrice.String()).Msg("propagating raw material price to product")
	if err := s.products.Update(ctx, p.ID, map[string]interface{}{
		"raw_material_cost": costPrice,
		"unit_cost":         unitCost.Round(2),
	}); err != nil {
		return fmt.Errorf("raw material saved but product %s not updated: %w", p.ID, err)
	}
	return nil
}

// ── Response mapping ─────────────────────────────────────────────────────────

func labelToResponse(l *model.Label) dto.LabelResponse {
	return dto.LabelResponse{
		ID:             l.ID.String(),
		Product:        l.Product,
		SKU:            l.SKU,
		Supplier:       l.Supplier,
		CostPrice:      l.CostPrice,
		MainProductSKU: l.MainProductSKU,
		LastUpdated:    l.LastUpdated,
		UpdatedBy:      l.UpdatedBy,
	}
}

func packagingToResponse(p *model.Packaging) dto.PackagingResponse {
	return dto.PackagingResponse{
		ID:             p.ID.String(),
		Product:        p.Product,
		SKU:            p.SKU,
		Supplier:       p.Supplier,
		StockAvailable: p.StockAvailable,
		BaseCost:       p.BaseCost,
		Extras:         p.Extras,
		CostPrice:      p.CostPrice,
		LastUpdated:    p.LastUpdated,
		UpdatedBy:      p.UpdatedBy,
	}
}

func rawMaterialToResponse(m *model.RawMaterial) dto.RawMaterialResponse {
	return dto.RawMaterialResponse{
		ID:             m.ID.String(),
		Product:        m.Product,
		SKU:            m.SKU,
		Variant:        m.Variant,
		Size:           m.Size,
		Measurement:    m.Measurement,
		Supplier:       m.Supplier,
		CostPrice:      m.CostPrice,
		MainProductSKU: m.MainProductSKU,
		LastUpdated:    m.LastUpdated,
		UpdatedBy:      m.UpdatedBy,
	}
}
