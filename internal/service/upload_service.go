package service

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/storage"

	"github.com/rs/zerolog"
)

const (
	maxUploadAttempts = 3
	maxImageSizeBytes = 5 * 1024 * 1024
)

// allowedImageTypes maps accepted MIME types to the extension used in the
// generated storage path.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadService implements the product photo upload/cleanup protocol:
// validate → upload with bounded retry → best-effort cleanup of superseded
// objects. Lifecycle services compose it; they must treat Delete failures as
// non-fatal while Upload failures abort the surrounding operation.
type UploadService interface {
	// Upload validates file and writes it under a generated path, retrying up
	// to 3 attempts total. A nil file means "no file" and returns (nil, nil).
	Upload(ctx context.Context, file *dto.FileUpload, productCode, ownerScope string) (*dto.UploadResult, error)
	// Replace uploads the new file, then best-effort deletes oldPath. The
	// delete failure is swallowed and logged; the upload failure propagates.
	Replace(ctx context.Context, file *dto.FileUpload, productCode, ownerScope, oldPath string) (*dto.UploadResult, error)
	// Delete removes the object at path in a single attempt. An empty path
	// returns (false, nil). A storage failure is returned to the caller, who
	// decides whether it may abort the surrounding operation.
	Delete(ctx context.Context, path string) (bool, error)
	// ExtractPath returns the storage path encoded in a public object URL.
	ExtractPath(rawURL string) (string, error)
}

type uploadService struct {
	store storage.ObjectStorage
	log   zerolog.Logger
	// sleep and now are swapped out in tests
	sleep func(time.Duration)
	now   func() time.Time
}

func NewUploadService(store storage.ObjectStorage, log zerolog.Logger) UploadService {
	return &uploadService{
		store: store,
		log:   log,
		sleep: time.Sleep,
		now:   time.Now,
	}
}

// validateFile enforces size and MIME constraints. A nil file is valid and
// means "no file attached".
func validateFile(file *dto.FileUpload) error {
	if file == nil {
		return nil
	}
	var problems []string
	if len(file.Data) == 0 {
		problems = append(problems, "file kosong")
	} else if file.Size() > maxImageSizeBytes {
		problems = append(problems, "ukuran file melebihi 5MB")
	}
	if _, ok := allowedImageTypes[file.ContentType]; !ok {
		problems = append(problems, "tipe file harus jpeg, png, atau webp")
	}
	if len(problems) > 0 {
		return apierror.NewValidation(map[string]string{"image": strings.Join(problems, "; ")})
	}
	return nil
}

// generatePath builds products/<ownerScope>/<code>/<timestamp>.<ext>.
// The millisecond timestamp keeps paths collision-resistant without needing
// coordination.
func (s *uploadService) generatePath(file *dto.FileUpload, productCode, ownerScope string) string {
	ext, ok := allowedImageTypes[file.ContentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(file.Filename))
	}
	return fmt.Sprintf("products/%s/%s/%d%s", ownerScope, productCode, s.now().UnixMilli(), ext)
}

func (s *uploadService) Upload(ctx context.Context, file *dto.FileUpload, productCode, ownerScope string) (*dto.UploadResult, error) {
	if file == nil {
		return nil, nil
	}
	if err := validateFile(file); err != nil {
		return nil, err
	}

	path := s.generatePath(file, productCode, ownerScope)

	// Synchronous wait-then-retry: attempt n sleeps n seconds before the next
	// try (linear backoff, documented choice). The call blocks the request;
	// there is no cancellation between attempts once started.
	var lastErr error
	for attempt := 1; attempt <= maxUploadAttempts; attempt++ {
		err := s.store.Upload(ctx, path, file.Data, file.ContentType)
		if err == nil {
			s.log.Info().
				Str("path", path).
				Str("product_code", productCode).
				Int("attempt", attempt).
				Msg("image uploaded")
			return &dto.UploadResult{URL: s.store.PublicURL(path), Path: path}, nil
		}
		lastErr = err
		s.log.Warn().
			Str("path", path).
			Int("attempt", attempt).
			Err(err).
			Msg("image upload attempt failed")
		if attempt < maxUploadAttempts {
			s.sleep(time.Duration(attempt) * time.Second)
		}
	}
	return nil, apierror.NewUpload(lastErr)
}

func (s *uploadService) Replace(ctx context.Context, file *dto.FileUpload, productCode, ownerScope, oldPath string) (*dto.UploadResult, error) {
	result, err := s.Upload(ctx, file, productCode, ownerScope)
	if err != nil {
		return nil, err
	}
	// Old object cleanup is best-effort: a failure here must never undo the
	// upload that already succeeded.
	if oldPath != "" {
		if _, delErr := s.Delete(ctx, oldPath); delErr != nil {
			s.log.Warn().Str("path", oldPath).Err(delErr).Msg("cleanup of replaced image failed")
		}
	}
	return result, nil
}

func (s *uploadService) Delete(ctx context.Context, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := s.store.Remove(ctx, path); err != nil {
		return false, fmt.Errorf("hapus objek %s: %w", path, err)
	}
	return true, nil
}

func (s *uploadService) ExtractPath(rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("URL kosong")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("URL tidak valid: %s", rawURL)
	}

	bucket := s.store.Bucket()
	p := strings.TrimLeft(u.Path, "/")

	// Path-style URL: <endpoint>/<bucket>/<path>
	if strings.HasPrefix(p, bucket+"/") {
		return strings.TrimPrefix(p, bucket+"/"), nil
	}
	// Virtual-host style: <bucket>.s3.<region>... — the whole path is the key.
	if strings.HasPrefix(u.Host, bucket+".") {
		if p == "" {
			return "", fmt.Errorf("URL tidak memuat path objek: %s", rawURL)
		}
		return p, nil
	}
	return "", fmt.Errorf("URL tidak berada di bucket %s: %s", bucket, rawURL)
}
