package service

// In-memory repository and storage stubs shared by the service tests.

import (
	"context"
	"strings"
	"sync"
	"time"

	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"
	"rentalbaju/internal/repository"
	"rentalbaju/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var testLog = zerolog.Nop()

// ── Product repository stub ──────────────────────────────────────────────────

type stubProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
	// createCalls counts Create invocations so tests can assert that aborted
	// operations never reached the persistence layer.
	createCalls int
	findCalls   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindActiveByCode(_ context.Context, code string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	for _, p := range r.products {
		if p.IsActive && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		switch filter.IsActive {
		case "false":
			if p.IsActive {
				continue
			}
		case "all":
		default:
			if !p.IsActive {
				continue
			}
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(p.Code), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	p.Status = model.StatusMaintenance
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = true
	p.Status = model.StatusAvailable
	return nil
}

func (r *stubProductRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *stubProductRepo) CountActiveByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.IsActive && p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountActiveByMaterial(_ context.Context, materialID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.IsActive && p.MaterialID != nil && *p.MaterialID == materialID {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) CountActiveByColor(_ context.Context, colorID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if p.IsActive && p.ColorID != nil && *p.ColorID == colorID {
			n++
		}
	}
	return n, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Category repository stub ─────────────────────────────────────────────────

type stubCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		// exact, case-sensitive
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context, filter dto.CategoryFilter) ([]model.Category, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Category
	for _, c := range r.categories {
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Material repository stub ─────────────────────────────────────────────────

type stubMaterialRepo struct {
	mu        sync.Mutex
	materials map[uuid.UUID]*model.Material
	// nameGate, when set, blocks FindActiveByName until the channel is closed;
	// the concurrency test uses it to hold both requests inside the
	// check-then-act window. Each blocked call announces itself on nameArrived
	// first, so the test knows when everyone is parked before opening the gate.
	nameGate    chan struct{}
	nameArrived chan struct{}
}

func newStubMaterialRepo() *stubMaterialRepo {
	return &stubMaterialRepo{materials: make(map[uuid.UUID]*model.Material)}
}

func (r *stubMaterialRepo) Create(_ context.Context, m *model.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	r.materials[m.ID] = &cp
	return nil
}

func (r *stubMaterialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMaterialRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*model.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok || !m.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMaterialRepo) FindActiveByName(_ context.Context, name string) (*model.Material, error) {
	r.mu.Lock()
	var found *model.Material
	for _, m := range r.materials {
		if m.IsActive && strings.EqualFold(m.Name, name) {
			cp := *m
			found = &cp
			break
		}
	}
	gate := r.nameGate
	arrived := r.nameArrived
	r.mu.Unlock()

	if gate != nil {
		if arrived != nil {
			arrived <- struct{}{}
		}
		<-gate
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return found, nil
}

func (r *stubMaterialRepo) List(_ context.Context, filter dto.MaterialFilter) ([]model.Material, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Material
	for _, m := range r.materials {
		switch filter.IsActive {
		case "false":
			if m.IsActive {
				continue
			}
		case "all":
		default:
			if !m.IsActive {
				continue
			}
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMaterialRepo) Update(_ context.Context, m *model.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *m
	r.materials[m.ID] = &cp
	return nil
}

func (r *stubMaterialRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.IsActive = false
	return nil
}

func (r *stubMaterialRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.materials[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.IsActive = true
	return nil
}

var _ repository.MaterialRepository = (*stubMaterialRepo)(nil)

// ── Color repository stub ────────────────────────────────────────────────────

type stubColorRepo struct {
	mu     sync.Mutex
	colors map[uuid.UUID]*model.Color
}

func newStubColorRepo() *stubColorRepo {
	return &stubColorRepo{colors: make(map[uuid.UUID]*model.Color)}
}

func (r *stubColorRepo) Create(_ context.Context, c *model.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.colors[c.ID] = &cp
	return nil
}

func (r *stubColorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.colors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubColorRepo) FindActiveByID(_ context.Context, id uuid.UUID) (*model.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.colors[id]
	if !ok || !c.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubColorRepo) FindActiveByName(_ context.Context, name string) (*model.Color, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.colors {
		if c.IsActive && strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubColorRepo) List(_ context.Context, filter dto.ColorFilter) ([]model.Color, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Color
	for _, c := range r.colors {
		switch filter.IsActive {
		case "false":
			if c.IsActive {
				continue
			}
		case "all":
		default:
			if !c.IsActive {
				continue
			}
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubColorRepo) Update(_ context.Context, c *model.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.colors[c.ID] = &cp
	return nil
}

func (r *stubColorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.colors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = false
	return nil
}

func (r *stubColorRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.colors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = true
	return nil
}

var _ repository.ColorRepository = (*stubColorRepo)(nil)

// ── Object storage fake ──────────────────────────────────────────────────────

const testBucket = "rentalbaju-test"

// fakeStore is an in-memory ObjectStorage. uploadErrs is consumed one error
// per Upload call; once drained, uploads succeed.
type fakeStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	uploadErrs  []error
	uploadCalls int
	removeErr   error
	removed     []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(_ context.Context, path string, body []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if len(f.uploadErrs) > 0 {
		err := f.uploadErrs[0]
		f.uploadErrs = f.uploadErrs[1:]
		return err
	}
	f.objects[path] = body
	return nil
}

func (f *fakeStore) Remove(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, path)
	delete(f.objects, path)
	return nil
}

func (f *fakeStore) PublicURL(path string) string {
	return "https://" + testBucket + ".s3.ap-southeast-1.amazonaws.com/" + path
}

func (f *fakeStore) Bucket() string { return testBucket }

var _ storage.ObjectStorage = (*fakeStore)(nil)

// newTestUploadService returns an upload service whose sleeps are recorded
// instead of executed.
func newTestUploadService(store storage.ObjectStorage) (*uploadService, *[]time.Duration) {
	sleeps := &[]time.Duration{}
	svc := &uploadService{
		store: store,
		log:   testLog,
		sleep: func(d time.Duration) { *sleeps = append(*sleeps, d) },
		now:   func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) },
	}
	return svc, sleeps
}
