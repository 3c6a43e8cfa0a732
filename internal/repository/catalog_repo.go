package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SallyAnnCreed/Costing-App/internal/model"
)

// The three reference catalogs share the same record-store contract; each
// gets its own interface so services and stubs stay explicit about which
// price list they touch.

type LabelRepository interface {
	ListAll(ctx context.Context) ([]model.Label, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Label, error)
	Create(ctx context.Context, l *model.Label) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PackagingRepository interface {
	ListAll(ctx context.Context) ([]model.Packaging, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Packaging, error)
	Create(ctx context.Context, p *model.Packaging) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RawMaterialRepository interface {
	ListAll(ctx context.Context) ([]model.RawMaterial, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error)
	Create(ctx context.Context, m *model.RawMaterial) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ── GORM implementations ─────────────────────────────────────────────────────

type labelRepo struct{ db *gorm.DB }

func NewLabelRepository(db *gorm.DB) LabelRepository { return &labelRepo{db: db} }

func (r *labelRepo) ListAll(ctx context.Context) ([]model.Label, error) {
	var labels []model.Label
	err := r.db.WithContext(ctx).Order("product ASC").Find(&labels).Error
	return labels, err
}

func (r *labelRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Label, error) {
	var l model.Label
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *labelRepo) Create(ctx context.Context, l *model.Label) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *labelRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Label{}).Where("id = ?", id).Updates(fields).Error
}

func (r *labelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Label{}, "id = ?", id).Error
}

type packagingRepo struct{ db *gorm.DB }

func NewPackagingRepository(db *gorm.DB) PackagingRepository { return &packagingRepo{db: db} }

func (r *packagingRepo) ListAll(ctx context.Context) ([]model.Packaging, error) {
	var entries []model.Packaging
	err := r.db.WithContext(ctx).Order("product ASC").Find(&entries).Error
	return entries, err
}

func (r *packagingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Packaging, error) {
	var p model.Packaging
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *packagingRepo) Create(ctx context.Context, p *model.Packaging) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *packagingRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Packaging{}).Where("id = ?", id).Updates(fields).Error
}

func (r *packagingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Packaging{}, "id = ?", id).Error
}

type rawMaterialRepo struct{ db *gorm.DB }

func NewRawMaterialRepository(db *gorm.DB) RawMaterialRepository { return &rawMaterialRepo{db: db} }

func (r *rawMaterialRepo) ListAll(ctx context.Context) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.WithContext(ctx).Order("product ASC").Find(&materials).Error
	return materials, err
}

func (r *rawMaterialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *rawMaterialRepo) Create(ctx context.Context, m *model.RawMaterial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *rawMaterialRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.RawMaterial{}).Where("id = ?", id).Updates(fields).Error
}

func (r *rawMaterialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RawMaterial{}, "id = ?", id).Error
}
