package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"storefront-catalog/internal/apperror"
	"storefront-catalog/internal/media"
	"storefront-catalog/internal/models"
	"storefront-catalog/internal/repository"
)

// --- Métodos auxiliares ---

// getPaginationParams obtiene y valida los parámetros de paginación
func (h *ProductHandler) getPaginationParams(c *gin.Context) (page, pageSize int, err error) {
	page, err = pageParam(c)
	if err != nil {
		return 0, 0, err
	}
	pageSize = positiveInt(c.Query("limit"), defaultPageSize)

	if pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return page, pageSize, nil
}

// pageParam rechaza páginas fuera de rango para que el skip no desborde
func pageParam(c *gin.Context) (int, error) {
	page := positiveInt(c.Query("page"), defaultPage)
	if page > maxPage {
		return 0, apperror.BadRequest("Invalid page parameter")
	}
	return page, nil
}

// buildSearchQuery arma la búsqueda a partir de los query params
func (h *ProductHandler) buildSearchQuery(c *gin.Context) (repository.SearchQuery, error) {
	page, err := pageParam(c)
	if err != nil {
		return repository.SearchQuery{}, err
	}
	q := repository.SearchQuery{
		Page:     page,
		PageSize: h.perPage,
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		q.Name = &search
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q.Category = &category
	}

	price, err := models.ParsePriceRange(c.Query("price"))
	if err != nil {
		return q, apperror.BadRequest("Invalid price range")
	}
	q.Price = price

	sort, err := models.ParseSearchSort(c.Query("sort"))
	if err != nil {
		return q, apperror.BadRequest("Invalid sort option")
	}
	q.Sort = sort

	return q, nil
}

// positiveInt devuelve fallback si raw no es un entero positivo
func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// bindError traduce los errores de binding de gin a BadRequest
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.BadRequest("Invalid request body")
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return apperror.BadRequest("Please fill all fields")
		}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "gte":
		return apperror.BadRequest(fmt.Sprintf("%s cannot be negative", strings.ToLower(fe.Field())))
	default:
		return apperror.BadRequest(fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
	}
}

// validateUpdate impide dejar vacíos los campos de texto obligatorios
func validateUpdate(u models.ProductUpdate) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", u.Name},
		{"category", u.Category},
		{"description", u.Description},
	}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return apperror.BadRequest(f.name + " cannot be empty")
		}
	}
	return nil
}

// blankFormField devuelve el primer campo enviado en el formulario con valor vacío.
// El binder de gin convierte "price=" en 0, así que hay que mirarlo antes.
func blankFormField(c *gin.Context, fields ...string) (string, bool) {
	for _, field := range fields {
		if v, ok := c.GetPostForm(field); ok && strings.TrimSpace(v) == "" {
			return field, true
		}
	}
	return "", false
}

// validateInput exige texto no vacío además del required del binding
func validateInput(c *gin.Context, in models.ProductInput) error {
	for _, v := range []string{in.Name, in.Category, in.Description} {
		if strings.TrimSpace(v) == "" {
			return apperror.BadRequest("Please fill all fields")
		}
	}
	if _, blank := blankFormField(c, "price", "stock"); blank {
		return apperror.BadRequest("Please fill all fields")
	}
	return nil
}

// optionalFormFile distingue "no se envió archivo" de un multipart inválido
func optionalFormFile(c *gin.Context, field string) (*multipart.FileHeader, bool, error) {
	file, err := c.FormFile(field)
	switch {
	case err == nil:
		return file, true, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, false, nil
	default:
		return nil, false, apperror.BadRequest("Invalid photo upload")
	}
}

func (h *ProductHandler) uploadPhoto(ctx context.Context, fh *multipart.FileHeader) (media.Asset, error) {
	f, err := fh.Open()
	if err != nil {
		return media.Asset{}, apperror.BadRequest("Invalid photo upload")
	}
	defer f.Close()

	asset, err := h.media.Upload(ctx, fh.Filename, f)
	if err != nil {
		return media.Asset{}, apperror.Internal("upload photo", err)
	}
	return asset, nil
}

// discardAsset borra una foto recién subida que no llegó a guardarse.
// Si falla, el asset queda huérfano y sólo se registra.
func (h *ProductHandler) discardAsset(ctx context.Context, publicID string) {
	if err := h.media.Delete(ctx, publicID); err != nil {
		h.logger.Warn("orphaned photo", "public_id", publicID, "err", err)
	}
}
