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

// MaterialService defines business operations for fabric materials.
type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest, actorID string) (*dto.MaterialResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	List(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type materialService struct {
	repo        repository.MaterialRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

func NewMaterialService(repo repository.MaterialRepository, productRepo repository.ProductRepository, log zerolog.Logger) MaterialService {
	return &materialService{repo: repo, productRepo: productRepo, log: log}
}

func mapMaterial(m *model.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		PricePerUnit: m.PricePerUnit,
		Unit:         m.Unit,
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy,
		CreatedAt:    m.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:    m.UpdatedAt.UTC().Format(timeFormat),
	}
}

func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest, actorID string) (*dto.MaterialResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// Uniqueness guard: case-insensitive among active materials.
	// Check-then-act — see the concurrency note in DESIGN.md.
	existing, err := s.repo.FindActiveByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapDB("find material by name", err)
	}
	if existing != nil {
		return nil, apierror.NewConflict("Material dengan nama %q sudah ada", req.Name)
	}

	m := &model.Material{
		Name:         strings.TrimSpace(req.Name),
		PricePerUnit: req.PricePerUnit,
		Unit:         req.Unit,
		IsActive:     true,
		CreatedBy:    actorID,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, apierror.WrapDB("create material", err)
	}
	s.log.Info().Str("material_id", m.ID.String()).Str("name", m.Name).Msg("material created")
	return mapMaterial(m), nil
}

func (s *materialService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	// Inactive materials stay retrievable by ID for audit purposes.
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Material tidak ditemukan")
		}
		return nil, apierror.WrapDB("find material", err)
	}
	return mapMaterial(m), nil
}

func (s *materialService) List(ctx context.Context, filter dto.MaterialFilter) (*dto.MaterialListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	materials, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.WrapDB("list materials", err)
	}
	items := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		items = append(items, *mapMaterial(&materials[i]))
	}
	return &dto.MaterialListResponse{
		Items:      items,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *materialService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Material tidak ditemukan")
		}
		return nil, apierror.WrapDB("find material", err)
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Name != nil && !strings.EqualFold(*req.Name, m.Name) {
		existing, err := s.repo.FindActiveByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapDB("find material by name", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.NewConflict("Material dengan nama %q sudah ada", *req.Name)
		}
	}

	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.PricePerUnit != nil {
		m.PricePerUnit = *req.PricePerUnit
	}
	if req.Unit != nil {
		m.Unit = *req.Unit
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, apierror.WrapDB("update material", err)
	}
	return mapMaterial(m), nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	// Already-inactive materials are "not found among active records":
	// deleting twice is an error, not a silent no-op.
	if _, err := s.repo.FindActiveByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Material tidak ditemukan")
		}
		return apierror.WrapDB("find material", err)
	}

	count, err := s.productRepo.CountActiveByMaterial(ctx, id)
	if err != nil {
		return apierror.WrapDB("count products by material", err)
	}
	if count > 0 {
		return apierror.NewConflict("Material tidak dapat dihapus karena sedang digunakan oleh %d produk", count)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.WrapDB("soft-delete material", err)
	}
	s.log.Info().Str("material_id", id.String()).Msg("material deactivated")
	return nil
}

func (s *materialService) Reactivate(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Material tidak ditemukan")
		}
		return apierror.WrapDB("find material", err)
	}
	// Reactivation re-enters the uniqueness scope; guard against a name that
	// was reused while this record was inactive.
	existing, err := s.repo.FindActiveByName(ctx, m.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.WrapDB("find material by name", err)
	}
	if existing != nil && existing.ID != id {
		return apierror.NewConflict("Material dengan nama %q sudah ada", m.Name)
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apierror.WrapDB("reactivate material", err)
	}
	return nil
}
