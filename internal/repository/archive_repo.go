package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SallyAnnCreed/Costing-App/internal/model"
)

// ArchiveRepository stores products moved out of the ledger. Archive and
// restore are two independent writes against two collections — there is no
// transaction spanning them (the backing store gives none).
type ArchiveRepository interface {
	ListAll(ctx context.Context) ([]model.ArchivedProduct, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ArchivedProduct, error)
	Create(ctx context.Context, a *model.ArchivedProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type archiveRepo struct{ db *gorm.DB }

func NewArchiveRepository(db *gorm.DB) ArchiveRepository { return &archiveRepo{db: db} }

func (r *archiveRepo) ListAll(ctx context.Context) ([]model.ArchivedProduct, error) {
	var archived []model.ArchivedProduct
	err := r.db.WithContext(ctx).Order("archived_at DESC").Find(&archived).Error
	return archived, err
}

func (r *archiveRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ArchivedProduct, error) {
	var a model.ArchivedProduct
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *archiveRepo) Create(ctx context.Context, a *model.ArchivedProduct) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *archiveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ArchivedProduct{}, "id = ?", id).Error
}
