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

// ColorService defines business operations for garment colors.
type ColorService interface {
	Create(ctx context.Context, req dto.CreateColorRequest, actorID string) (*dto.ColorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ColorResponse, error)
	List(ctx context.Context, filter dto.ColorFilter) (*dto.ColorListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateColorRequest) (*dto.ColorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type colorService struct {
	repo        repository.ColorRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

func NewColorService(repo repository.ColorRepository, productRepo repository.ProductRepository, log zerolog.Logger) ColorService {
	return &colorService{repo: repo, productRepo: productRepo, log: log}
}

func mapColor(c *model.Color) *dto.ColorResponse {
	return &dto.ColorResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		HexCode:     c.HexCode,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:   c.UpdatedAt.UTC().Format(timeFormat),
	}
}

func (s *colorService) Create(ctx context.Context, req dto.CreateColorRequest, actorID string) (*dto.ColorResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// Case-insensitive uniqueness among active colors.
	existing, err := s.repo.FindActiveByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapDB("find color by name", err)
	}
	if existing != nil {
		return nil, apierror.NewConflict("Warna dengan nama %q sudah ada", req.Name)
	}

	c := &model.Color{
		Name:        strings.TrimSpace(req.Name),
		HexCode:     req.HexCode,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apierror.WrapDB("create color", err)
	}
	s.log.Info().Str("color_id", c.ID.String()).Str("name", c.Name).Msg("color created")
	return mapColor(c), nil
}

func (s *colorService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ColorResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Warna tidak ditemukan")
		}
		return nil, apierror.WrapDB("find color", err)
	}
	return mapColor(c), nil
}

func (s *colorService) List(ctx context.Context, filter dto.ColorFilter) (*dto.ColorListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	colors, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.WrapDB("list colors", err)
	}
	items := make([]dto.ColorResponse, 0, len(colors))
	for i := range colors {
		items = append(items, *mapColor(&colors[i]))
	}
	return &dto.ColorListResponse{
		Items:      items,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *colorService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateColorRequest) (*dto.ColorResponse, error) {
	c, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Warna tidak ditemukan")
		}
		return nil, apierror.WrapDB("find color", err)
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, c.Name) {
		existing, err := s.repo.FindActiveByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapDB("find color by name", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.NewConflict("Warna dengan nama %q sudah ada", *req.Name)
		}
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.HexCode != nil {
		c.HexCode = req.HexCode
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.WrapDB("update color", err)
	}
	return mapColor(c), nil
}

func (s *colorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindActiveByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Warna tidak ditemukan")
		}
		return apierror.WrapDB("find color", err)
	}

	count, err := s.productRepo.CountActiveByColor(ctx, id)
	if err != nil {
		return apierror.WrapDB("count products by color", err)
	}
	if count > 0 {
		return apierror.NewConflict("Warna tidak dapat dihapus karena sedang digunakan oleh %d produk", count)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.WrapDB("soft-delete color", err)
	}
	s.log.Info().Str("color_id", id.String()).Msg("color deactivated")
	return nil
}

func (s *colorService) Reactivate(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Warna tidak ditemukan")
		}
		return apierror.WrapDB("find color", err)
	}
	existing, err := s.repo.FindActiveByName(ctx, c.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.WrapDB("find color by name", err)
	}
	if existing != nil && existing.ID != id {
		return apierror.NewConflict("Warna dengan nama %q sudah ada", c.Name)
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apierror.WrapDB("reactivate color", err)
	}
	return nil
}
