package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	storeapp "github.com/portal/backend/internal/application/store"
	"github.com/portal/backend/internal/infrastructure/config"
	"github.com/portal/backend/internal/infrastructure/logger"
)

// Shopify webhook headers
const (
	HeaderWebhookHMAC  = "X-Shopify-Hmac-Sha256"
	HeaderWebhookShop  = "X-Shopify-Shop-Domain"
	HeaderWebhookTopic = "X-Shopify-Topic"
)

// WebhookHandler receives platform webhooks. Only app/uninstalled carries
// behavior today; fulfillment and tracking notifications are acknowledged
// and logged so the platform does not retry them.
type WebhookHandler struct {
	BaseHandler
	storeService *storeapp.StoreServiceImpl
	secret       string
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(storeService *storeapp.StoreServiceImpl, cfg config.ShopifyConfig) *WebhookHandler {
	return &WebhookHandler{storeService: storeService, secret: cfg.WebhookSecret}
}

// verify reads the body and checks the platform HMAC signature. When no
// webhook secret is configured verification is skipped, which keeps local
// development working against unsigned test payloads.
func (h *WebhookHandler) verify(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Failed to read webhook body")
		return nil, false
	}
	if h.secret == "" {
		return body, true
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(c.GetHeader(HeaderWebhookHMAC))) {
		h.Unauthorized(c, "Webhook signature verification failed")
		return nil, false
	}
	return body, true
}

// AppUninstalled godoc
// @Summary      Handle the app/uninstalled webhook
// @Description  Drops the stored credential for the shop so later sync
// @Description  attempts fail fast instead of calling a revoked token.
// @Tags         webhooks
// @Accept       json
// @Success      200
// @Router       /webhooks/app-uninstalled [post]
func (h *WebhookHandler) AppUninstalled(c *gin.Context) {
	if _, ok := h.verify(c); !ok {
		return
	}

	domain := c.GetHeader(HeaderWebhookShop)
	if domain == "" {
		h.BadRequest(c, "Missing shop domain header")
		return
	}

	log := logger.FromContext(c.Request.Context())
	if err := h.storeService.Disconnect(c.Request.Context(), domain); err != nil {
		// Webhooks are retried on non-2xx; an unknown shop is not worth a retry storm.
		log.Warn("app uninstall cleanup failed",
			zap.String("domain", domain),
			zap.Error(err))
	}
	c.Status(http.StatusOK)
}

// FulfillmentNotification godoc
// @Summary      Acknowledge a fulfillment order notification
// @Tags         webhooks
// @Accept       json
// @Success      200
// @Router       /webhooks/fulfillments [post]
func (h *WebhookHandler) FulfillmentNotification(c *gin.Context) {
	if _, ok := h.verify(c); !ok {
		return
	}

	logger.FromContext(c.Request.Context()).Info("fulfillment notification received",
		zap.String("domain", c.GetHeader(HeaderWebhookShop)),
		zap.String("topic", c.GetHeader(HeaderWebhookTopic)))
	c.Status(http.StatusOK)
}

// TrackingUpdate godoc
// @Summary      Acknowledge a tracking update
// @Tags         webhooks
// @Accept       json
// @Success      200
// @Router       /webhooks/tracking [post]
func (h *WebhookHandler) TrackingUpdate(c *gin.Context) {
	if _, ok := h.verify(c); !ok {
		return
	}

	logger.FromContext(c.Request.Context()).Info("tracking update received",
		zap.String("domain", c.GetHeader(HeaderWebhookShop)))
	c.Status(http.StatusOK)
}
