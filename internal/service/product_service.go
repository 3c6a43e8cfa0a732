package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/SallyAnnCreed/Costing-App/internal/costing"
	"github.com/SallyAnnCreed/Costing-App/internal/dto"
	"github.com/SallyAnnCreed/Costing-App/internal/model"
	"github.com/SallyAnnCreed/Costing-App/internal/repository"
)

// ProductService owns the product ledger and keeps its derived fields
// consistent with every input mutation. Each operation recomputes only the
// fields causally downstream of what changed: cost edits never refresh the
// GP figures — that happens solely through the explicit Recalculate action.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest, editor string) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest, editor string) (*dto.ProductResponse, error)

	// Recalculate is the explicit "Update" action: refreshes UnitCost and the
	// GP figures from the stored inputs.
	Recalculate(ctx context.Context, id uuid.UUID, editor string) (*dto.ProductResponse, error)

	SetLabel(ctx context.Context, id uuid.UUID, labelName string) error
	SetPackaging(ctx context.Context, id uuid.UUID, packagingName string) error
	ToggleInsert(ctx context.Context, id uuid.UUID) error
	AddBOMLine(ctx context.Context, id uuid.UUID) error
	UpdateBOMLine(ctx context.Context, id uuid.UUID, index int, req dto.UpdateBOMLineRequest) error
	RemoveBOMLine(ctx context.Context, id uuid.UUID, index int) error
	SetSellingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	SetNote(ctx context.Context, id uuid.UUID, note string) error

	Archive(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListArchived(ctx context.Context) ([]dto.ArchivedProductResponse, error)
	Restore(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	DeleteArchived(ctx context.Context, id uuid.UUID) error
}

var defaultVATRate = decimal.NewFromInt(15)

type productService struct {
	repo     repository.ProductRepository
	archive  repository.ArchiveRepository
	catalogs CatalogProvider
}

func NewProductService(repo repository.ProductRepository, archive repository.ArchiveRepository, catalogs CatalogProvider) ProductService {
	return &productService{repo: repo, archive: archive, catalogs: catalogs}
}

// ── Create / read / form edit ────────────────────────────────────────────────

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest, editor string) (*dto.ProductResponse, error) {
	p := &model.Product{
		Name:          req.Name,
		Variant:       req.Variant,
		SKU:           req.SKU,
		Size:          req.Size,
		LabelUsed:     req.LabelUsed,
		PackagingUsed: req.PackagingUsed,
		InsertApplied: req.InsertApplied,
		SellingPrice:  req.SellingPrice,
		VATRate:       defaultVATRate,
		Note:          req.Note,
		LastUpdated:   time.Now(),
		UpdatedBy:     editor,
	}
	if req.VATRate != nil && !req.VATRate.IsZero() {
		p.VATRate = *req.VATRate
	}
	for _, line := range req.RawMaterialsUsed {
		p.RawMaterialsUsed = append(p.RawMaterialsUsed, model.BOMLine{Name: line.Name, AmountUsed: line.AmountUsed})
	}
	if p.RawMaterialsUsed == nil {
		p.RawMaterialsUsed = model.BOMLines{}
	}

	// Derive everything present at creation time; missing inputs fall out as
	// zero contributions.
	if req.LabelUsed != "" {
		labels, err := s.catalogs.Labels(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading label catalog: %w", err)
		}
		if entry := costing.ResolveLabel(labels, req.LabelUsed); entry != nil {
			p.LabelCost = entry.CostPrice
		}
	}
	if req.PackagingUsed != "" {
		packaging, err := s.catalogs.Packaging(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading packaging catalog: %w", err)
		}
		if entry := costing.ResolvePackaging(packaging, req.PackagingUsed); entry != nil {
			p.BasePackageCost = entry.CostPrice
		}
	}
	rawMaterials, err := s.catalogs.RawMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading raw material catalog: %w", err)
	}
	costing.RecalculateAll(p, rawMaterials)
	roundProduct(p)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}
	return productToResponse(p), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s not found", id)
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		if filter.Search != "" && !matchesSearch(&products[i], filter.Search) {
			continue
		}
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

// Update handles the edit form: descriptive fields and selling price. A
// selling-price change re-splits VAT, and the profit fields are refreshed the
// same way the explicit Recalculate action does.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest, editor string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s not found", id)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Variant != nil {
		p.Variant = *req.Variant
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Size != nil {
		p.Size = *req.Size
	}
	if req.VATRate != nil {
		p.VATRate = *req.VATRate
	}
	if req.SellingPrice != nil {
		p.SellingPrice = *req.SellingPrice
		p.ExVAT, p.VATAmount = costing.SplitSellingPrice(p.SellingPrice, p.VATRate)
	}
	costing.RecalculateProfit(p)
	p.LastUpdated = time.Now()
	p.UpdatedBy = editor
	roundProduct(p)

	fields := map[string]interface{}{
		"name":          p.Name,
		"variant":       p.Variant,
		"sku":           p.SKU,
		"size":          p.Size,
		"vat_rate":      p.VATRate,
		"selling_price": p.SellingPrice,
		"ex_vat":        p.ExVAT,
		"vat_amount":    p.VATAmount,
		"unit_cost":     p.UnitCost,
		"gp_amount":     p.GPAmount,
		"gp_percentage": p.GPPercentage,
		"last_updated":  p.LastUpdated,
		"updated_by":    p.UpdatedBy,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}
	return productToResponse(p), nil
}

// ── Explicit recalculate ─────────────────────────────────────────────────────

func (s *productService) Recalculate(ctx context.Context, id uuid.UUID, editor string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s not found", id)
	}

	costing.RecalculateProfit(p)
	p.LastUpdated = time.Now()
	p.UpdatedBy = editor
	roundProduct(p)

	fields := map[string]interface{}{
		"unit_cost":     p.UnitCost,
		"selling_price": p.SellingPrice,
		"gp_amount":     p.GPAmount,
		"gp_percentage": p.GPPercentage,
		"last_updated":  p.LastUpdated,
		"updated_by":    p.UpdatedBy,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}
	return productToResponse(p), nil
}

// ── Field-level propagation ──────────────────────────────────────────────────

func (s *productService) SetLabel(ctx context.Context, id uuid.UUID, labelName string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}
	labels, err := s.catalogs.Labels(ctx)
	if err != nil {
		return fmt.Errorf("loading label catalog: %w", err)
	}

	p.LabelUsed = labelName
	p.LabelCost = decimal.Zero
	if entry := costing.ResolveLabel(labels, labelName); entry != nil {
		p.LabelCost = entry.CostPrice
	}
	p.UnitCost = costing.UnitCost(p.LabelCost, p.PackageCost, p.RawMaterialCost)

	return s.persist(ctx, id, map[string]interface{}{
		"label_used": p.LabelUsed,
		"label_cost": p.LabelCost.Round(2),
		"unit_cost":  p.UnitCost.Round(2),
	})
}

func (s *productService) SetPackaging(ctx context.Context, id uuid.UUID, packagingName string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}
	packaging, err := s.catalogs.Packaging(ctx)
	if err != nil {
		return fmt.Errorf("loading packaging catalog: %w", err)
	}

	p.PackagingUsed = packagingName
	p.BasePackageCost = decimal.Zero
	if entry := costing.ResolvePackaging(packaging, packagingName); entry != nil {
		p.BasePackageCost = entry.CostPrice
	}
	p.PackageCost = costing.PackageCost(p.BasePackageCost, p.InsertApplied)
	p.UnitCost = costing.UnitCost(p.LabelCost, p.PackageCost, p.RawMaterialCost)

	return s.persist(ctx, id, map[string]interface{}{
		"packaging_used":    p.PackagingUsed,
		"base_package_cost": p.BasePackageCost.Round(2),
		"package_cost":      p.PackageCost.Round(2),
		"unit_cost":         p.UnitCost.Round(2),
	})
}

func (s *productService) ToggleInsert(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}

	p.InsertApplied = !p.InsertApplied
	p.PackageCost = costing.PackageCost(p.BasePackageCost, p.InsertApplied)
	p.UnitCost = costing.UnitCost(p.LabelCost, p.PackageCost, p.RawMaterialCost)

	return s.persist(ctx, id, map[string]interface{}{
		"insert_applied": p.InsertApplied,
		"package_cost":   p.PackageCost.Round(2),
		"unit_cost":      p.UnitCost.Round(2),
	})
}

func (s *productService) AddBOMLine(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}

	// A fresh line is empty and contributes zero cost, so only the line list
	// changes here.
	p.RawMaterialsUsed = append(p.RawMaterialsUsed, model.BOMLine{})

	return s.persist(ctx, id, map[string]interface{}{
		"raw_materials_used": p.RawMaterialsUsed,
	})
}

func (s *productService) UpdateBOMLine(ctx context.Context, id uuid.UUID, index int, req dto.UpdateBOMLineRequest) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}
	if index < 0 || index >= len(p.RawMaterialsUsed) {
		return fmt.Errorf("bill of materials line %d out of range", index)
	}

	if req.Name != nil {
		p.RawMaterialsUsed[index].Name = *req.Name
		p.RawMaterialsUsed[index].AmountUsed = decimal.Zero
	}
	if req.AmountUsed != nil {
		p.RawMaterialsUsed[index].AmountUsed = *req.AmountUsed
	}

	return s.recalcBOM(ctx, id, p)
}

func (s *productService) RemoveBOMLine(ctx context.Context, id uuid.UUID, index int) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}
	if index < 0 || index >= len(p.RawMaterialsUsed) {
		return fmt.Errorf("bill of materials line %d out of range", index)
	}

	p.RawMaterialsUsed = append(p.RawMaterialsUsed[:index], p.RawMaterialsUsed[index+1:]...)

	return s.recalcBOM(ctx, id, p)
}

func (s *productService) recalcBOM(ctx context.Context, id uuid.UUID, p *model.Product) error {
	rawMaterials, err := s.catalogs.RawMaterials(ctx)
	if err != nil {
		return fmt.Errorf("loading raw material catalog: %w", err)
	}
	p.RawMaterialCost = costing.RawMaterialCost(p.RawMaterialsUsed, rawMaterials)
	p.UnitCost = costing.UnitCost(p.LabelCost, p.PackageCost, p.RawMaterialCost)

	return s.persist(ctx, id, map[string]interface{}{
		"raw_materials_used": p.RawMaterialsUsed,
		"raw_material_cost":  p.RawMaterialCost.Round(2),
		"unit_cost":          p.UnitCost.Round(2),
	})
}

// SetSellingPrice re-splits VAT but leaves the GP figures untouched: profit
// only refreshes through the explicit Recalculate action.
func (s *productService) SetSellingPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}

	exVAT, vatAmount := costing.SplitSellingPrice(price, p.VATRate)

	return s.persist(ctx, id, map[string]interface{}{
		"selling_price": price.Round(2),
		"ex_vat":        exVAT.Round(2),
		"vat_amount":    vatAmount.Round(2),
	})
}

func (s *productService) SetNote(ctx context.Context, id uuid.UUID, note string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("product %s not found", id)
	}
	return s.persist(ctx, id, map[string]interface{}{"note": note})
}

// ── Lifecycle ────────────────────────────────────────────────────────────────

// Archive copies the product into the archive collection, then removes it
// from the ledger. The two writes are independent: a failed delete after a
// successful copy leaves the product in both collections until retried.
func (s *productService) Archive(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product %s not found", id)
	}

	now := time.Now()
	archived := &model.ArchivedProduct{Product: *p, ArchivedAt: &now}
	if err := s.archive.Create(ctx, archived); err != nil {
		return fmt.Errorf("archiving product: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("product_id", id.String()).
			Msg("product archived but not removed from ledger")
		return fmt.Errorf("removing archived product from ledger: %w", err)
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

func (s *productService) ListArchived(ctx context.Context) ([]dto.ArchivedProductResponse, error) {
	archived, err := s.archive.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ArchivedProductResponse, 0, len(archived))
	for i := range archived {
		out = append(out, dto.ArchivedProductResponse{
			ProductResponse: *productToResponse(&archived[i].Product),
			ArchivedAt:      archived[i].ArchivedAt,
		})
	}
	return out, nil
}

// Restore moves an archived product back into the ledger under its original
// ID, so links to it keep working across an archive round trip.
func (s *productService) Restore(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	archived, err := s.archive.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("archived product %s not found", id)
	}

	restored := archived.Product
	if err := s.repo.Create(ctx, &restored); err != nil {
		return nil, fmt.Errorf("restoring product: %w", err)
	}
	if err := s.archive.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("product_id", id.String()).
			Msg("product restored but not removed from archive")
		return nil, fmt.Errorf("removing restored product from archive: %w", err)
	}
	return productToResponse(&restored), nil
}

func (s *productService) DeleteArchived(ctx context.Context, id uuid.UUID) error {
	if err := s.archive.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting archived product: %w", err)
	}
	return nil
}

// persist wraps a partial-field write with the caller-facing error message.
// Failed writes surface to the caller; there is no rollback of whatever the
// caller already computed in memory.
func (s *productService) persist(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func matchesSearch(p *model.Product, query string) bool {
	return containsFold(p.Name, query) || containsFold(p.SKU, query)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// roundProduct rounds every monetary field to 2 places — the persistence
// boundary; intermediates keep full precision.
func roundProduct(p *model.Product) {
	p.SellingPrice = p.SellingPrice.Round(2)
	p.LabelCost = p.LabelCost.Round(2)
	p.BasePackageCost = p.BasePackageCost.Round(2)
	p.PackageCost = p.PackageCost.Round(2)
	p.RawMaterialCost = p.RawMaterialCost.Round(2)
	p.UnitCost = p.UnitCost.Round(2)
	p.VATAmount = p.VATAmount.Round(2)
	p.ExVAT = p.ExVAT.Round(2)
	p.GPAmount = p.GPAmount.Round(2)
	p.GPPercentage = p.GPPercentage.Round(2)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	lines := make([]dto.BOMLineResponse, 0, len(p.RawMaterialsUsed))
	for _, line := range p.RawMaterialsUsed {
		lines = append(lines, dto.BOMLineResponse{Name: line.Name, AmountUsed: line.AmountUsed})
	}
	return &dto.ProductResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		Variant:          p.Variant,
		SKU:              p.SKU,
		Size:             p.Size,
		LabelUsed:        p.LabelUsed,
		PackagingUsed:    p.PackagingUsed,
		RawMaterialsUsed: lines,
		InsertApplied:    p.InsertApplied,
		SellingPrice:     p.SellingPrice,
		VATRate:          p.VATRate,
		LabelCost:        p.LabelCost,
		BasePackageCost:  p.BasePackageCost,
		PackageCost:      p.PackageCost,
		RawMaterialCost:  p.RawMaterialCost,
		UnitCost:         p.UnitCost,
		VATAmount:        p.VATAmount,
		ExVAT:            p.ExVAT,
		GPAmount:         p.GPAmount,
		GPPercentage:     p.GPPercentage,
		Note:             p.Note,
		LastUpdated:      p.LastUpdated,
		UpdatedBy:        p.UpdatedBy,
	}
}
