package repository

import (
	"context"

	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialRepository defines CRUD operations for Material.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	// FindActiveByName folds case: "Kain Katun" and "kain katun" collide.
	FindActiveByName(ctx context.Context, name string) (*model.Material, error)
	List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error)
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).First(&m, "id = ? AND is_active = true", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) FindActiveByName(ctx context.Context, name string) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?) AND is_active = true", name).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepo) List(ctx context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	var materials []model.Material
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Material{})

	switch filter.IsActive {
	case "false":
		q = q.Where("is_active = false")
	case "all":
	default:
		q = q.Where("is_active = true")
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&materials).Error
	return materials, total, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ?", id).Update("is_active", false).Error
}

func (r *materialRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Material{}).
		Where("id = ?", id).Update("is_active", true).Error
}
