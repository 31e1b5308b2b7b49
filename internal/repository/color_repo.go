package repository

import (
	"context"

	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColorRepository defines CRUD operations for Color.
type ColorRepository interface {
	Create(ctx context.Context, c *model.Color) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Color, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Color, error)
	FindActiveByName(ctx context.Context, name string) (*model.Color, error)
	List(ctx context.Context, filter dto.ColorFilter) ([]model.Color, int64, error)
	Update(ctx context.Context, c *model.Color) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type colorRepo struct{ db *gorm.DB }

func NewColorRepository(db *gorm.DB) ColorRepository { return &colorRepo{db: db} }

func (r *colorRepo) Create(ctx context.Context, c *model.Color) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *colorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Color, error) {
	var c model.Color
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colorRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Color, error) {
	var c model.Color
	err := r.db.WithContext(ctx).First(&c, "id = ? AND is_active = true", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colorRepo) FindActiveByName(ctx context.Context, name string) (*model.Color, error) {
	var c model.Color
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?) AND is_active = true", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colorRepo) List(ctx context.Context, filter dto.ColorFilter) ([]model.Color, int64, error) {
	var colors []model.Color
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Color{})

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
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&colors).Error
	return colors, total, err
}

func (r *colorRepo) Update(ctx context.Context, c *model.Color) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *colorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Color{}).
		Where("id = ?", id).Update("is_active", false).Error
}

func (r *colorRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Color{}).
		Where("id = ?", id).Update("is_active", true).Error
}
