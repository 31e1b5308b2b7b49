package handler

import (
	"net/http"
	"strconv"
	"strings"

	"rentalbaju/internal/apierror"
	"rentalbaju/internal/dto"
	"rentalbaju/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// Create godoc
// @Summary Tambah produk baru
// @Tags products
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} dto.ProductResponse
// @Failure 422 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if isMultipart(c) {
		ok, err := bindCreateProductForm(c, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			return
		}
	} else if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parameter query tidak valid"))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if isMultipart(c) {
		ok, err := bindUpdateProductForm(c, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			return
		}
	} else if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductsHandler) Reactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Multipart form binding ───────────────────────────────────────────────────
// Product create/update also accept multipart/form-data so a photo can ride
// along in the "image" field. Field-level constraint checks still happen in
// the service; here we only convert the form's string values.

func bindCreateProductForm(c *gin.Context, req *dto.CreateProductRequest) (bool, error) {
	req.Code = c.PostForm("code")
	req.Name = c.PostForm("name")
	req.CategoryID = c.PostForm("categoryId")
	if v := c.PostForm("description"); v != "" {
		req.Description = &v
	}
	if v := c.PostForm("materialId"); v != "" {
		req.MaterialID = &v
	}
	if v := c.PostForm("colorId"); v != "" {
		req.ColorID = &v
	}

	var perr error
	req.ModalAwal, perr = formDecimal(c, "modalAwal", perr)
	req.HargaSewa, perr = formDecimal(c, "hargaSewa", perr)
	if v := c.PostForm("quantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			perr = apierror.NewValidation(map[string]string{"quantity": "harus berupa angka"})
		}
		req.Quantity = n
	}
	if perr != nil {
		return false, perr
	}

	file, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("File tidak dapat dibaca"))
		return false, nil
	}
	req.Image = file
	return true, nil
}

func bindUpdateProductForm(c *gin.Context, req *dto.UpdateProductRequest) (bool, error) {
	if v := c.PostForm("code"); v != "" {
		req.Code = &v
	}
	if v := c.PostForm("name"); v != "" {
		req.Name = &v
	}
	if v := c.PostForm("description"); v != "" {
		req.Description = &v
	}
	if v := c.PostForm("categoryId"); v != "" {
		req.CategoryID = &v
	}
	if v := c.PostForm("materialId"); v != "" {
		req.MaterialID = &v
	}
	if v := c.PostForm("colorId"); v != "" {
		req.ColorID = &v
	}
	if v := c.PostForm("modalAwal"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return false, apierror.NewValidation(map[string]string{"modalAwal": "harus berupa angka"})
		}
		req.ModalAwal = &d
	}
	if v := c.PostForm("hargaSewa"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return false, apierror.NewValidation(map[string]string{"hargaSewa": "harus berupa angka"})
		}
		req.HargaSewa = &d
	}
	if v := c.PostForm("quantity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return false, apierror.NewValidation(map[string]string{"quantity": "harus berupa angka"})
		}
		req.Quantity = &n
	}

	file, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("File tidak dapat dibaca"))
		return false, nil
	}
	req.Image = file
	return true, nil
}

func formDecimal(c *gin.Context, field string, prev error) (decimal.Decimal, error) {
	if prev != nil {
		return decimal.Zero, prev
	}
	v := c.PostForm(field)
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, apierror.NewValidation(map[string]string{field: "harus berupa angka"})
	}
	return d, nil
}
