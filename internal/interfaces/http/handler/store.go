package handler

import (
	"github.com/gin-gonic/gin"

	storeapp "github.com/portal/backend/internal/application/store"
	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/interfaces/http/dto"
)

// StoreHandler handles store connection API endpoints
type StoreHandler struct {
	BaseHandler
	storeService *storeapp.StoreServiceImpl
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService *storeapp.StoreServiceImpl) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// List godoc
// @Summary      List connected stores
// @Tags         stores
// @Produce      json
// @Success      200 {object} dto.Response{data=[]dto.StoreResponse}
// @Security     BearerAuth
// @Router       /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	stores, err := h.storeService.ListStores(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewStoreListResponse(stores))
}

// Get godoc
// @Summary      Get a connected store
// @Tags         stores
// @Produce      json
// @Param        domain path string true "Store domain"
// @Success      200 {object} dto.Response{data=dto.StoreResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{domain} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	st, err := h.storeService.GetStore(c.Request.Context(), tenantID, c.Param("domain"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewStoreResponse(st))
}

// Connect godoc
// @Summary      Connect a storefront
// @Description  Binds the tenant to a storefront domain. Connecting an
// @Description  already-connected store adds the tenant as a member.
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request body dto.ConnectStoreRequest true "Store connection request"
// @Success      201 {object} dto.Response{data=dto.StoreResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores [post]
func (h *StoreHandler) Connect(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.ConnectStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	st, err := h.storeService.Connect(c.Request.Context(), tenantID, req.Name, req.Domain, req.AccessToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.NewStoreResponse(st))
}

// ExchangeToken godoc
// @Summary      Complete an OAuth installation
// @Description  Exchanges the authorization code from the install callback
// @Description  for an access token and connects the store.
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        request body dto.ExchangeTokenRequest true "OAuth exchange request"
// @Success      200 {object} dto.Response{data=dto.StoreResponse}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/exchange-token [post]
func (h *StoreHandler) ExchangeToken(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	st, err := h.storeService.ExchangeToken(c.Request.Context(), tenantID, req.Domain, req.Code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewStoreResponse(st))
}

// AddMember godoc
// @Summary      Add a member to a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        domain path string true "Store domain"
// @Param        request body dto.AddMemberRequest true "Member request"
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /stores/{domain}/members [post]
func (h *StoreHandler) AddMember(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	domain := c.Param("domain")
	if err := h.storeService.AddMember(c.Request.Context(), tenantID, domain, req.TenantID, store.StoreRole(req.Role)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
