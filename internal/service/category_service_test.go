package service

import (
	"context"
	"testing"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCategorySvc() (CategoryService, *stubCategoryRepo, *stubProductRepo) {
	catRepo := newStubCategoryRepo()
	prodRepo := newStubProductRepo()
	return NewCategoryService(catRepo, prodRepo, testLog), catRepo, prodRepo
}

func seedCategory(repo *stubCategoryRepo, name string) *model.Category {
	c := &model.Category{ID: uuid.New(), Name: name, Color: "#FF0000"}
	repo.categories[c.ID] = c
	return c
}

func TestCreateCategory(t *testing.T) {
	svc, _, _ := buildCategorySvc()

	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:  "Dress",
		Color: "#A1B2C3",
	}, "actor-1")

	require.NoError(t, err)
	assert.Equal(t, "Dress", resp.Name)
	assert.Equal(t, "#A1B2C3", resp.Color)
	assert.Zero(t, resp.ProductCount)
}

func TestCreateCategory_UniquenessIsCaseSensitive(t *testing.T) {
	svc, catRepo, _ := buildCategorySvc()
	seedCategory(catRepo, "Dress")

	// Exact duplicate conflicts…
	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name: "Dress", Color: "#000000",
	}, "actor")
	var ce *apierror.ConflictError
	require.ErrorAs(t, err, &ce)

	// …while a different casing is a different category.
	resp, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name: "dress", Color: "#000000",
	}, "actor")
	require.NoError(t, err)
	assert.Equal(t, "dress", resp.Name)
}

func TestCreateCategory_InvalidColor(t *testing.T) {
	svc, _, _ := buildCategorySvc()

	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name: "Dress", Color: "merah",
	}, "actor")
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "color")
}

func TestCreateCategory_RejectsShorthandHexColor(t *testing.T) {
	svc, catRepo, _ := buildCategorySvc()

	// The #RGB shorthand is not a valid color here; only #RRGGBB is.
	_, err := svc.Create(context.Background(), dto.CreateCategoryRequest{
		Name: "Dress", Color: "#FFF",
	}, "actor")
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "color")
	assert.Empty(t, catRepo.categories)
}

func TestDeleteCategory_BlockedByActiveProducts(t *testing.T) {
	svc, catRepo, prodRepo := buildCategorySvc()
	c := seedCategory(catRepo, "Dress")

	for i := 0; i < 3; i++ {
		p := &model.Product{ID: uuid.New(), IsActive: true, CategoryID: c.ID}
		prodRepo.products[p.ID] = p
	}

	err := svc.Delete(context.Background(), c.ID)
	var ce *apierror.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "Kategori tidak dapat dihapus karena sedang digunakan oleh 3 produk", ce.Detail)
	assert.Contains(t, catRepo.categories, c.ID)
}

func TestDeleteCategory_IgnoresInactiveProducts(t *testing.T) {
	svc, catRepo, prodRepo := buildCategorySvc()
	c := seedCategory(catRepo, "Dress")

	// Soft-deleted products do not hold the category hostage.
	p := &model.Product{ID: uuid.New(), IsActive: false, CategoryID: c.ID}
	prodRepo.products[p.ID] = p

	require.NoError(t, svc.Delete(context.Background(), c.ID))
	assert.NotContains(t, catRepo.categories, c.ID, "hard delete removes the row")
}

func TestDeleteCategory_NotFound(t *testing.T) {
	svc, _, _ := buildCategorySvc()

	err := svc.Delete(context.Background(), uuid.New())
	var ne *apierror.NotFoundError
	require.ErrorAs(t, err, &ne)
}

func TestGetCategoryByID_IncludesProductCount(t *testing.T) {
	svc, catRepo, prodRepo := buildCategorySvc()
	c := seedCategory(catRepo, "Dress")
	p := &model.Product{ID: uuid.New(), IsActive: true, CategoryID: c.ID}
	prodRepo.products[p.ID] = p

	resp, err := svc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ProductCount)
}

func TestUpdateCategory_RenameConflict(t *testing.T) {
	svc, catRepo, _ := buildCategorySvc()
	seedCategory(catRepo, "Dress")
	c := seedCategory(catRepo, "Kebaya")

	name := "Dress"
	_, err := svc.Update(context.Background(), c.ID, dto.UpdateCategoryRequest{Name: &name})
	var ce *apierror.ConflictError
	require.ErrorAs(t, err, &ce)
}
