package service

import (
	"context"
	"errors"
	"strings"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"
	"rentalbaju/internal/repository"
	"rentalbaju/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// CategoryService defines business operations for product categories.
// Categories differ from the other reference entities: the name match is
// case-sensitive and deletion is permanent.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest, actorID string) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context, filter dto.CategoryFilter) (*dto.CategoryListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository, log zerolog.Logger) CategoryService {
	return &categoryService{repo: repo, productRepo: productRepo, log: log}
}

func mapCategory(c *model.Category, productCount int64) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Color:        c.Color,
		ProductCount: productCount,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:    c.UpdatedAt.UTC().Format(timeFormat),
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest, actorID string) (*dto.CategoryResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// Exact-match uniqueness: "Dress" and "dress" are different categories.
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapDB("find category by name", err)
	}
	if existing != nil {
		return nil, apierror.NewConflict("Kategori dengan nama %q sudah ada", req.Name)
	}

	c := &model.Category{
		Name:      strings.TrimSpace(req.Name),
		Color:     req.Color,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.WrapDB("create category", err)
	}
	s.log.Info().Str("category_id", c.ID.String()).Str("name", c.Name).Msg("category created")
	return mapCategory(c, 0), nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Kategori tidak ditemukan")
		}
		return nil, apierror.WrapDB("find category", err)
	}
	count, err := s.productRepo.CountActiveByCategory(ctx, id)
	if err != nil {
		return nil, apierror.WrapDB("count products by category", err)
	}
	return mapCategory(c, count), nil
}

func (s *categoryService) List(ctx context.Context, filter dto.CategoryFilter) (*dto.CategoryListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.WrapDB("list categories", err)
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		count, err := s.productRepo.CountActiveByCategory(ctx, categories[i].ID)
		if err != nil {
			return nil, apierror.WrapDB("count products by category", err)
		}
		items = append(items, *mapCategory(&categories[i], count))
	}
	return &dto.CategoryListResponse{
		Items:      items,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Kategori tidak ditemukan")
		}
		return nil, apierror.WrapDB("find category", err)
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapDB("find category by name", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.NewConflict("Kategori dengan nama %q sudah ada", *req.Name)
		}
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		c.Color = *req.Color
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.WrapDB("update category", err)
	}
	count, err := s.productRepo.CountActiveByCategory(ctx, id)
	if err != nil {
		return nil, apierror.WrapDB("count products by category", err)
	}
	return mapCategory(c, count), nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Kategori tidak ditemukan")
		}
		return apierror.WrapDB("find category", err)
	}

	// Dependency guard runs against active products only; the row is removed
	// permanently once it passes.
	count, err := s.productRepo.CountActiveByCategory(ctx, id)
	if err != nil {
		return apierror.WrapDB("count products by category", err)
	}
	if count > 0 {
		return apierror.NewConflict("Kategori tidak dapat dihapus karena sedang digunakan oleh %d produk", count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.WrapDB("delete category", err)
	}
	s.log.Info().Str("category_id", id.String()).Msg("category deleted")
	return nil
}
