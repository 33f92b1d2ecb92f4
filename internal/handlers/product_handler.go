package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-catalog/internal/apperror"
	"storefront-catalog/internal/media"
	"storefront-catalog/internal/models"
	"storefront-catalog/internal/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 8
	maxPageSize     = 100
	maxPage         = 1_000_000
	latestLimit     = 5
	photoField      = "photo"
)

// ProductStore es lo que los handlers necesitan del repositorio
type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Latest(ctx context.Context, n int) ([]models.Product, error)
	Featured(ctx context.Context) ([]models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	List(ctx context.Context, page, pageSize int, sortBy models.SortBy) (models.Page, error)
	Search(ctx context.Context, q repository.SearchQuery) (models.Page, error)
	Save(ctx context.Context, product *models.Product) error
	ToggleFeatured(ctx context.Context, id string) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	repo    ProductStore
	media   media.Store
	perPage int
	logger  *slog.Logger
}

// NewProductHandler recibe perPage, el tamaño de página de la búsqueda
func NewProductHandler(repo ProductStore, store media.Store, perPage int, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		repo:    repo,
		media:   store,
		perPage: perPage,
		logger:  logger,
	}
}

// GET /products/latest
func (h *ProductHandler) GetLatestProducts(c *gin.Context) {
	products, err := h.repo.Latest(c.Request.Context(), latestLimit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// GET /products/categories
func (h *ProductHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.repo.Categories(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// GET /products?page=1&limit=8&sortBy={"id":"price","desc":true}
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	page, limit, err := h.getPaginationParams(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	sortBy, err := models.ParseSortBy(c.Query("sortBy"))
	if err != nil {
		_ = c.Error(apperror.BadRequest("Invalid sortBy parameter"))
		return
	}

	result, err := h.repo.List(c.Request.Context(), page, limit, sortBy)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"products":      result.Products,
		"totalProducts": result.Total,
		"totalPages":    models.TotalPages(result.Total, limit),
		"currentPage":   page,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProductDetails(c *gin.Context) {
	product, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(notFoundOr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

// POST /products (multipart/form-data con el archivo en "photo")
func (h *ProductHandler) CreateNewProduct(c *gin.Context) {
	ctx := c.Request.Context()

	var input models.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	if err := validateInput(c, input); err != nil {
		_ = c.Error(err)
		return
	}

	file, err := c.FormFile(photoField)
	if err != nil {
		_ = c.Error(apperror.BadRequest("Please upload a photo"))
		return
	}

	asset, err := h.uploadPhoto(ctx, file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	product := &models.Product{
		Name:        input.Name,
		Category:    models.NormalizeCategory(input.Category),
		Description: input.Description,
		Price:       *input.Price,
		Stock:       *input.Stock,
	}
	product.SetPhoto(asset.URL, asset.PublicID)

	if err := h.repo.Create(ctx, product); err != nil {
		h.discardAsset(ctx, asset.PublicID)
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

// PUT /products/:id
// Sólo se modifican los campos presentes en el request. Si llega una foto
// nueva se sube, se borra la anterior y se guardan URL y public id juntos.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	product, err := h.repo.FindByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(notFoundOr(err))
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBind(&update); err != nil {
		_ = c.Error(bindError(err))
		return
	}
	if err := validateUpdate(update); err != nil {
		_ = c.Error(err)
		return
	}
	if field, blank := blankFormField(c, "price", "stock"); blank {
		_ = c.Error(apperror.BadRequest(field + " cannot be empty"))
		return
	}

	file, hasFile, err := optionalFormFile(c, photoField)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if update.Empty() && !hasFile {
		_ = c.Error(apperror.BadRequest("No fields to update"))
		return
	}

	if hasFile {
		asset, err := h.uploadPhoto(ctx, file)
		if err != nil {
			_ = c.Error(err)
			return
		}
		if product.PhotoPublicID != "" {
			if err := h.media.Delete(ctx, product.PhotoPublicID); err != nil {
				h.discardAsset(ctx, asset.PublicID)
				_ = c.Error(apperror.Internal("delete previous photo", err))
				return
			}
		}
		product.SetPhoto(asset.URL, asset.PublicID)
	}

	update.Apply(product)

	if err := h.repo.Save(ctx, product); err != nil {
		_ = c.Error(notFoundOr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	product, err := h.repo.FindByID(ctx, id)
	if err != nil {
		_ = c.Error(notFoundOr(err))
		return
	}

	if product.PhotoPublicID != "" {
		if err := h.media.Delete(ctx, product.PhotoPublicID); err != nil {
			_ = c.Error(apperror.Internal("delete photo", err))
			return
		}
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		_ = c.Error(notFoundOr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// PATCH /products/:id/featured
func (h *ProductHandler) ToggleFeaturedStatus(c *gin.Context) {
	product, err := h.repo.ToggleFeatured(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(notFoundOr(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product featured status updated successfully",
		"product": product,
	})
}

// GET /products/search?search=&category=&sort=asc&price=10,20&page=1
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	q, err := h.buildSearchQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.repo.Search(c.Request.Context(), q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"products":  result.Products,
		"totalPage": models.TotalPages(result.Total, q.PageSize),
	})
}

// GET /products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	products, err := h.repo.Featured(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("Product not found")
	}
	return err
}
