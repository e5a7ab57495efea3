package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/ginutil"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// ListProducts godoc
// @Summary      Public product catalog
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Category filter"
// @Param        page      query  int     false  "Page number"
// @Param        limit     query  int     false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.Product}
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	products, meta, err := h.service.ListPublic(c.Request.Context(), c.Query("category"), page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch products", err)
		return
	}

	common.SuccessResponse(c, products, meta)
}

// GetProduct godoc
// @Summary      Product detail
// @Tags         products
// @Produce      json
// @Param        slug  path  string  true  "Product slug"
// @Success      200  {object}  common.APIResponse{data=domain.Product}
// @Failure      404  {object}  common.APIResponse
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, common.ErrProductNotFound) {
			common.ErrorResponse(c, 404, "Product not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to fetch product", err)
		return
	}

	common.SuccessResponse(c, product, nil)
}

// ListAllProducts godoc
// @Summary      Admin product list (includes inactive)
// @Tags         products
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Items per page"
// @Success      200  {object}  common.APIResponse{data=[]domain.Product}
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *ProductHandler) ListAllProducts(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	products, meta, err := h.service.ListAll(page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to fetch products", err)
		return
	}

	common.SuccessResponse(c, products, meta)
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ProductRequest  true  "Product"
// @Success      201  {object}  common.APIResponse{data=domain.Product}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	product := req.ToProduct()
	if err := h.service.Create(c.Request.Context(), product); err != nil {
		common.ErrorResponse(c, 500, "Failed to create product", err)
		return
	}

	common.CreatedResponse(c, product)
}

// UpdateProduct godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path  int                    true  "Product ID"
// @Param        request  body  domain.ProductRequest  true  "Product"
// @Success      200  {object}  common.APIResponse{data=domain.Product}
// @Failure      400  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid product ID", err)
		return
	}

	var req domain.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}
	product := req.ToProduct()
	product.ID = id

	if err := h.service.Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, common.ErrProductNotFound) {
			common.ErrorResponse(c, 404, "Product not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to update product", err)
		return
	}

	common.SuccessResponse(c, product, nil)
}

// DeleteProduct godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id  path  int  true  "Product ID"
// @Success      200  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid product ID", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, common.ErrProductNotFound) {
			common.ErrorResponse(c, 404, "Product not found", err)
			return
		}
		common.ErrorResponse(c, 500, "Failed to delete product", err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "Product deleted"}, nil)
}
