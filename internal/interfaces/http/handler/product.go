package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/portal/backend/internal/application/catalog"
	"github.com/portal/backend/internal/interfaces/http/dto"
)

// ProductHandler handles catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductServiceImpl
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductServiceImpl) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "Product"
// @Success      201 {object} dto.Response{data=dto.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, req.ToCreateInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewProductResponse(product))
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body dto.UpdateProductRequest true "Product"
// @Success      200 {object} dto.Response{data=dto.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), tenantID, productID, req.ToUpdateInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductResponse(product))
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), tenantID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=dto.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductResponse(product))
}

// ListVariants godoc
// @Summary      List the variants of a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=[]dto.VariantResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/{id}/variants [get]
func (h *ProductHandler) ListVariants(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	variants, err := h.productService.ListVariants(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVariantListResponse(variants))
}

// BatchVariants godoc
// @Summary      Look up variants for a batch of products
// @Description  Returns the variants of every listed product in one call,
// @Description  each row carrying its product_id.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body dto.BatchVariantsRequest true "Product IDs"
// @Success      200 {object} dto.Response{data=[]dto.VariantResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /products/variants [post]
func (h *ProductHandler) BatchVariants(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.BatchVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID: "+raw)
			return
		}
		productIDs = append(productIDs, id)
	}

	variants, err := h.productService.BatchVariants(c.Request.Context(), tenantID, productIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVariantListResponse(variants))
}

// List godoc
// @Summary      List products
// @Description  Lists the tenant's products. When store_id is supplied each
// @Description  product carries its push linkage against that store.
// @Tags         products
// @Produce      json
// @Param        store_id query string false "Store ID for linkage view"
// @Success      200 {object} dto.Response{data=[]dto.ProductResponse}
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	if raw := c.Query("store_id"); raw != "" {
		storeID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid store ID")
			return
		}
		linked, err := h.productService.ListWithLinkage(c.Request.Context(), tenantID, storeID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		resp := make([]dto.ProductWithLinkageResponse, 0, len(linked))
		for _, entry := range linked {
			resp = append(resp, dto.NewProductWithLinkageResponse(entry.Product, entry.Links))
		}
		h.Success(c, resp)
		return
	}

	products, err := h.productService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewProductListResponse(products))
}
