package repository

import (
	"context"

	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	// FindByID returns the product regardless of isActive (audit retrieval),
	// with its Category reference expanded.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindActiveByID returns the product only when isActive is true.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindActiveByCode looks up an active product by its exact 4-char code.
	FindActiveByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	// SoftDelete flips isActive=false and parks the product in MAINTENANCE.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Dependency guard counts: active products referencing the given entity.
	CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	CountActiveByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error)
	CountActiveByColor(ctx context.Context, colorID uuid.UUID) (int64, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Material").Preload("Color").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Material").Preload("Color").
		First(&p, "id = ? AND is_active = true", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindActiveByCode(ctx context.Context, code string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = true", code).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	// isActive filter: "false" = inactive, "all" = everything, default = active
	switch filter.IsActive {
	case "false":
		q = q.Where("is_active = false")
	case "all":
		// no filter
	default:
		q = q.Where("is_active = true")
	}

	if filter.Search != "" {
		q = q.Where("name ILIKE ? OR code ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MaterialID != "" {
		q = q.Where("material_id = ?", filter.MaterialID)
	}
	if filter.ColorID != "" {
		q = q.Where("color_id = ?", filter.ColorID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Category").
		Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active": false,
			"status":    model.StatusMaintenance,
		}).Error
}

func (r *productRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active": true,
			"status":    model.StatusAvailable,
		}).Error
}

func (r *productRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND is_active = true", id).
		Update("status", status).Error
}

func (r *productRepo) CountActiveByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ? AND is_active = true", categoryID).Count(&n).Error
	return n, err
}

func (r *productRepo) CountActiveByMaterial(ctx context.Context, materialID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("material_id = ? AND is_active = true", materialID).Count(&n).Error
	return n, err
}

func (r *productRepo) CountActiveByColor(ctx context.Context, colorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("color_id = ? AND is_active = true", colorID).Count(&n).Error
	return n, err
}
