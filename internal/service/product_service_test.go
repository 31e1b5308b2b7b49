package service

import (
	"context"
	"errors"
	"testing"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildProductSvc() (ProductService, *stubProductRepo, *stubCategoryRepo, *fakeStore) {
	prodRepo := newStubProductRepo()
	catRepo := newStubCategoryRepo()
	store := newFakeStore()
	uploads, _ := newTestUploadService(store)
	svc := NewProductService(prodRepo, catRepo, uploads, nil, testLog)
	return svc, prodRepo, catRepo, store
}

func validCreateReq(categoryID string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Code:       "DRS1",
		Name:       "Dress Pesta Merah",
		CategoryID: categoryID,
		ModalAwal:  decimal.NewFromInt(150000),
		HargaSewa:  decimal.NewFromInt(50000),
		Quantity:   5,
	}
}

func TestCreateProduct_WithoutImage(t *testing.T) {
	svc, _, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	resp, err := svc.Create(context.Background(), validCreateReq(cat.ID.String()), "actor-1")
	require.NoError(t, err)
	assert.Equal(t, "DRS1", resp.Code)
	assert.Equal(t, model.StatusAvailable, resp.Status)
	assert.Nil(t, resp.ImageURL)
	assert.True(t, resp.ModalAwal.Equal(decimal.NewFromInt(150000)))
	assert.True(t, resp.IsActive)
}

func TestCreateProduct_LowercaseCodeRejectedBeforeAnyLookup(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	req := validCreateReq(cat.ID.String())
	req.Code = "drs1"

	_, err := svc.Create(context.Background(), req, "actor")
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "code")

	// Format validation fires before the uniqueness guard or any persistence.
	assert.Equal(t, 0, prodRepo.findCalls)
	assert.Equal(t, 0, prodRepo.createCalls)
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	prodRepo.products[uuid.New()] = &model.Product{
		ID: uuid.New(), Code: "DRS1", IsActive: true, CategoryID: cat.ID,
	}

	_, err := svc.Create(context.Background(), validCreateReq(cat.ID.String()), "actor")
	var ce *apierror.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Detail, "DRS1")
}

func TestCreateProduct_SoftDeletedCodeIsReusable(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	old := &model.Product{ID: uuid.New(), Code: "DRS1", IsActive: false, CategoryID: cat.ID}
	prodRepo.products[old.ID] = old

	_, err := svc.Create(context.Background(), validCreateReq(cat.ID.String()), "actor")
	require.NoError(t, err)
}

func TestCreateProduct_MissingCategory(t *testing.T) {
	svc, _, _, _ := buildProductSvc()

	_, err := svc.Create(context.Background(), validCreateReq(uuid.NewString()), "actor")
	var ne *apierror.NotFoundError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "Kategori tidak ditemukan", ne.Detail)
}

func TestCreateProduct_UploadFailureAbortsEntityWrite(t *testing.T) {
	svc, prodRepo, catRepo, store := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	store.uploadErrs = []error{
		errors.New("timeout"), errors.New("timeout"), errors.New("timeout"),
	}

	req := validCreateReq(cat.ID.String())
	req.Image = jpegFile(2048)

	_, err := svc.Create(context.Background(), req, "actor")
	var ue *apierror.UploadError
	require.ErrorAs(t, err, &ue)

	// No partial product row survives a failed upload.
	assert.Equal(t, 0, prodRepo.createCalls)
}

func TestCreateProduct_WithImage(t *testing.T) {
	svc, _, catRepo, store := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	req := validCreateReq(cat.ID.String())
	req.Image = jpegFile(2048)

	resp, err := svc.Create(context.Background(), req, "actor-1")
	require.NoError(t, err)
	require.NotNil(t, resp.ImageURL)
	assert.Contains(t, *resp.ImageURL, "products/actor-1/DRS1/")
	assert.Len(t, store.objects, 1)
}

func TestUpdateProduct_ImageUploadFailureLeavesEntityUntouched(t *testing.T) {
	svc, prodRepo, catRepo, store := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	oldURL := store.PublicURL("products/actor/DRS1/old.jpg")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", Name: "Dress Pesta Merah",
		CategoryID: cat.ID, IsActive: true, Status: model.StatusAvailable,
		ImageURL: &oldURL,
	}
	prodRepo.products[p.ID] = p

	store.uploadErrs = []error{
		errors.New("Network error"), errors.New("Network error"), errors.New("Network error"),
	}

	name := "Dress Pesta Biru"
	_, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Name:  &name,
		Image: jpegFile(100),
	}, "actor")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gagal mengupload file")

	// Pre-update name and imageUrl survive the aborted operation.
	current := prodRepo.products[p.ID]
	assert.Equal(t, "Dress Pesta Merah", current.Name)
	assert.Equal(t, oldURL, *current.ImageURL)
}

func TestUpdateProduct_CleanupFailureDoesNotFailUpdate(t *testing.T) {
	svc, prodRepo, catRepo, store := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	oldURL := store.PublicURL("products/actor/DRS1/old.jpg")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", Name: "Dress Pesta Merah",
		CategoryID: cat.ID, IsActive: true, Status: model.StatusAvailable,
		ImageURL: &oldURL,
	}
	prodRepo.products[p.ID] = p

	// Deleting the superseded object blows up, but the swap already happened.
	store.removeErr = errors.New("access denied")

	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		Image: jpegFile(100),
	}, "actor")
	require.NoError(t, err)
	require.NotNil(t, resp.ImageURL)
	assert.NotEqual(t, oldURL, *resp.ImageURL)
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", Name: "Dress Pesta Merah",
		CategoryID: cat.ID, IsActive: true, Status: model.StatusAvailable,
		HargaSewa: decimal.NewFromInt(50000),
	}
	prodRepo.products[p.ID] = p

	harga := decimal.NewFromInt(75000)
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{
		HargaSewa: &harga,
	}, "actor")
	require.NoError(t, err)
	assert.True(t, resp.HargaSewa.Equal(harga))
	assert.Equal(t, "Dress Pesta Merah", resp.Name)
	assert.Equal(t, "DRS1", resp.Code)
}

func TestDeleteProduct_SetsMaintenanceAndDeactivates(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", CategoryID: cat.ID,
		IsActive: true, Status: model.StatusAvailable,
	}
	prodRepo.products[p.ID] = p

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	current := prodRepo.products[p.ID]
	assert.False(t, current.IsActive)
	assert.Equal(t, model.StatusMaintenance, current.Status)

	// Deleting again: not found among active records.
	err := svc.Delete(context.Background(), p.ID)
	var ne *apierror.NotFoundError
	require.ErrorAs(t, err, &ne)
}

func TestDeleteProduct_ImageCleanupIsBestEffort(t *testing.T) {
	svc, prodRepo, catRepo, store := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	url := store.PublicURL("products/actor/DRS1/1.jpg")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", CategoryID: cat.ID,
		IsActive: true, Status: model.StatusAvailable, ImageURL: &url,
	}
	prodRepo.products[p.ID] = p
	store.removeErr = errors.New("503")

	// The storage failure is logged, never surfaced.
	require.NoError(t, svc.Delete(context.Background(), p.ID))
	assert.False(t, prodRepo.products[p.ID].IsActive)
}

func TestUpdateProductStatus_TransitionsArePermissive(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", CategoryID: cat.ID,
		IsActive: true, Status: model.StatusMaintenance,
	}
	prodRepo.products[p.ID] = p

	// MAINTENANCE → RENTED directly: allowed.
	resp, err := svc.UpdateStatus(context.Background(), p.ID, dto.UpdateProductStatusRequest{
		Status: model.StatusRented,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusRented, resp.Status)
}

func TestUpdateProductStatus_RejectsUnknownStatus(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")
	p := &model.Product{
		ID: uuid.New(), Code: "DRS1", CategoryID: cat.ID,
		IsActive: true, Status: model.StatusAvailable,
	}
	prodRepo.products[p.ID] = p

	_, err := svc.UpdateStatus(context.Background(), p.ID, dto.UpdateProductStatusRequest{
		Status: "SOLD",
	})
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestGetProductByID_NotFound(t *testing.T) {
	svc, _, _, _ := buildProductSvc()

	_, err := svc.GetByID(context.Background(), uuid.New())
	var ne *apierror.NotFoundError
	require.ErrorAs(t, err, &ne)
}

func TestListProducts_SearchAndActiveFilter(t *testing.T) {
	svc, prodRepo, catRepo, _ := buildProductSvc()
	cat := seedCategory(catRepo, "Dress")

	prodRepo.products[uuid.New()] = &model.Product{
		ID: uuid.New(), Code: "DRS1", Name: "Dress Pesta", CategoryID: cat.ID,
		IsActive: true, Status: model.StatusAvailable,
	}
	prodRepo.products[uuid.New()] = &model.Product{
		ID: uuid.New(), Code: "KBY1", Name: "Kebaya Modern", CategoryID: cat.ID,
		IsActive: false, Status: model.StatusMaintenance,
	}

	resp, err := svc.List(context.Background(), dto.ProductFilter{Search: "dress", Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "DRS1", resp.Items[0].Code)

	all, err := svc.List(context.Background(), dto.ProductFilter{IsActive: "all", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.Equal(t, 1, all.Pagination.TotalPages)
}
