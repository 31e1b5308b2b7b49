package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"
	"rentalbaju/internal/repository"
	"rentalbaju/internal/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const productCacheTTL = 5 * time.Minute

// ProductService defines business operations for rental products. It composes
// the validation layer, the uniqueness and dependency guards, the media
// protocol, and the repository into the lifecycle operations.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest, actorID string) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest, actorID string) (*dto.ProductResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateProductStatusRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	uploads      UploadService
	// cache is optional; nil disables caching entirely.
	cache *redis.Client
	log   zerolog.Logger
}

func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	uploads UploadService,
	cache *redis.Client,
	log zerolog.Logger,
) ProductService {
	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
		uploads:      uploads,
		cache:        cache,
		log:          log,
	}
}

func mapProduct(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:              p.ID.String(),
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID.String(),
		ModalAwal:       p.ModalAwal,
		HargaSewa:       p.HargaSewa,
		Quantity:        p.Quantity,
		Status:          p.Status,
		ImageURL:        p.ImageURL,
		TotalPendapatan: p.TotalPendapatan,
		IsActive:        p.IsActive,
		CreatedBy:       p.CreatedBy,
		CreatedAt:       p.CreatedAt.UTC().Format(timeFormat),
		UpdatedAt:       p.UpdatedAt.UTC().Format(timeFormat),
	}
	if p.MaterialID != nil {
		s := p.MaterialID.String()
		resp.MaterialID = &s
	}
	if p.ColorID != nil {
		s := p.ColorID.String()
		resp.ColorID = &s
	}
	if p.Category != nil {
		resp.Category = mapCategory(p.Category, 0)
	}
	return resp
}

func productCacheKey(id uuid.UUID) string { return fmt.Sprintf("product:%s", id) }

// cacheGet / cacheSet / cacheInvalidate are best-effort: a Redis failure is
// logged and the request proceeds against the database.
func (s *productService) cacheGet(ctx context.Context, id uuid.UUID) *dto.ProductResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, productCacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("product cache read failed")
		}
		return nil
	}
	var resp dto.ProductResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *productService) cacheSet(ctx context.Context, id uuid.UUID, resp *dto.ProductResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCacheKey(id), raw, productCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("product cache write failed")
	}
}

func (s *productService) cacheInvalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCacheKey(id)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("product cache invalidation failed")
	}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest, actorID string) (*dto.ProductResponse, error) {
	// Validation runs before any repository or storage access: a malformed
	// code never reaches the uniqueness check.
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := validateFile(req.Image); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindActiveByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.WrapDB("find product by code", err)
	}
	if existing != nil {
		return nil, apierror.NewConflict("Produk dengan kode %q sudah ada", req.Code)
	}

	categoryID := uuid.MustParse(req.CategoryID)
	// Only the category reference is resolved on create; material and color
	// are taken as given.
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Kategori tidak ditemukan")
		}
		return nil, apierror.WrapDB("find category", err)
	}

	p := &model.Product{
		Code:        req.Code,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CategoryID:  categoryID,
		ModalAwal:   req.ModalAwal,
		HargaSewa:   req.HargaSewa,
		Quantity:    req.Quantity,
		Status:      model.StatusAvailable,
		IsActive:    true,
		CreatedBy:   actorID,
	}
	if req.MaterialID != nil {
		id := uuid.MustParse(*req.MaterialID)
		p.MaterialID = &id
	}
	if req.ColorID != nil {
		id := uuid.MustParse(*req.ColorID)
		p.ColorID = &id
	}

	// Image first, row second: an upload failure aborts the create and no
	// partial product is ever persisted.
	if req.Image != nil {
		result, err := s.uploads.Upload(ctx, req.Image, req.Code, actorID)
		if err != nil {
			return nil, err
		}
		p.ImageURL = &result.URL
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.WrapDB("create product", err)
	}
	s.log.Info().
		Str("product_id", p.ID.String()).
		Str("code", p.Code).
		Msg("product created")
	return mapProduct(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Produk tidak ditemukan")
		}
		return nil, apierror.WrapDB("find product", err)
	}
	resp := mapProduct(p)
	s.cacheSet(ctx, id, resp)
	return resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if err := validation.Struct(filter); err != nil {
		return nil, err
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apierror.WrapDB("list products", err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *mapProduct(&products[i]))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest, actorID string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Produk tidak ditemukan")
		}
		return nil, apierror.WrapDB("find product", err)
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := validateFile(req.Image); err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != p.Code {
		existing, err := s.repo.FindActiveByCode(ctx, *req.Code)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.WrapDB("find product by code", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apierror.NewConflict("Produk dengan kode %q sudah ada", *req.Code)
		}
	}

	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NewNotFound("Kategori tidak ditemukan")
			}
			return nil, apierror.WrapDB("find category", err)
		}
		p.CategoryID = categoryID
		p.Category = nil
	}

	// New image: upload first, and only on success swap the URL and schedule
	// the old object for best-effort cleanup. An upload failure aborts the
	// whole update with no field committed.
	if req.Image != nil {
		code := p.Code
		if req.Code != nil {
			code = *req.Code
		}
		oldPath := ""
		if p.ImageURL != nil {
			if extracted, err := s.uploads.ExtractPath(*p.ImageURL); err == nil {
				oldPath = extracted
			}
		}
		result, err := s.uploads.Replace(ctx, req.Image, code, actorID, oldPath)
		if err != nil {
			return nil, err
		}
		p.ImageURL = &result.URL
	}

	if req.Code != nil {
		p.Code = *req.Code
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.MaterialID != nil {
		mid := uuid.MustParse(*req.MaterialID)
		p.MaterialID = &mid
		p.Material = nil
	}
	if req.ColorID != nil {
		cid := uuid.MustParse(*req.ColorID)
		p.ColorID = &cid
		p.Color = nil
	}
	if req.ModalAwal != nil {
		p.ModalAwal = *req.ModalAwal
	}
	if req.HargaSewa != nil {
		p.HargaSewa = *req.HargaSewa
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.WrapDB("update product", err)
	}
	s.cacheInvalidate(ctx, id)
	return mapProduct(p), nil
}

func (s *productService) UpdateStatus(ctx context.Context, id uuid.UUID, req dto.UpdateProductStatusRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindActiveByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NewNotFound("Produk tidak ditemukan")
		}
		return nil, apierror.WrapDB("find product", err)
	}
	// Any status can move to any other; the rental workflow upstream decides
	// what makes sense.
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, apierror.WrapDB("update product status", err)
	}
	s.cacheInvalidate(ctx, id)

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.WrapDB("find product", err)
	}
	return mapProduct(p), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Produk tidak ditemukan")
		}
		return apierror.WrapDB("find product", err)
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return apierror.WrapDB("soft-delete product", err)
	}
	s.cacheInvalidate(ctx, id)

	// Image cleanup never blocks or fails the delete.
	if p.ImageURL != nil {
		path, err := s.uploads.ExtractPath(*p.ImageURL)
		if err == nil {
			if _, err := s.uploads.Delete(ctx, path); err != nil {
				s.log.Warn().
					Str("product_id", id.String()).
					Str("path", path).
					Err(err).
					Msg("cleanup of product image failed")
			}
		}
	}

	s.log.Info().Str("product_id", id.String()).Msg("product deactivated")
	return nil
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NewNotFound("Produk tidak ditemukan")
		}
		return apierror.WrapDB("find product", err)
	}
	existing, err := s.repo.FindActiveByCode(ctx, p.Code)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apierror.WrapDB("find product by code", err)
	}
	if existing != nil && existing.ID != id {
		return apierror.NewConflict("Produk dengan kode %q sudah ada", p.Code)
	}
	if err := s.repo.Reactivate(ctx, id); err != nil {
		return apierror.WrapDB("reactivate product", err)
	}
	s.cacheInvalidate(ctx, id)
	return nil
}
