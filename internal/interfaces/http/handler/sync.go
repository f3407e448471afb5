package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	syncapp "github.com/portal/backend/internal/application/sync"
	"github.com/portal/backend/internal/interfaces/http/dto"
)

// SyncHandler handles bidirectional platform sync endpoints. Pulls and
// pushes run synchronously within the request: the bulk job polling that
// backs them is bounded by the configured poll budget.
type SyncHandler struct {
	BaseHandler
	syncService *syncapp.SyncServiceImpl
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *syncapp.SyncServiceImpl) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// PullOrders godoc
// @Summary      Import orders from a connected store
// @Description  Runs a bulk order export on the platform, streams the result
// @Description  and upserts orders and line items for the store.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body dto.SyncRequest true "Sync request"
// @Success      200 {object} dto.Response{data=dto.SyncResultResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      504 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sync/orders [post]
func (h *SyncHandler) PullOrders(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.syncService.PullOrders(c.Request.Context(), tenantID, req.Domain)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewSyncResultResponse(result))
}

// PullProducts godoc
// @Summary      Import the product catalog from a connected store
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body dto.SyncRequest true "Sync request"
// @Success      200 {object} dto.Response{data=dto.SyncResultResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      504 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sync/products [post]
func (h *SyncHandler) PullProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.syncService.PullProducts(c.Request.Context(), tenantID, req.Domain)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewSyncResultResponse(result))
}

// PushProduct godoc
// @Summary      Publish a local product to a connected store
// @Description  Creates the product on the platform and records the external
// @Description  variant linkage. A product already linked to the store is
// @Description  rejected; updates are not supported.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        request body dto.PushProductRequest true "Push request"
// @Success      200 {object} dto.Response{data=dto.SyncResultResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /sync/push [post]
func (h *SyncHandler) PushProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant not identified")
		return
	}

	var req dto.PushProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.syncService.PushProduct(c.Request.Context(), tenantID, req.Domain, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewSyncResultResponse(result))
}
