// Package handler implements the HTTP endpoints of the public API.
// Handlers bind requests, call the application services and translate
// domain errors into the response envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portal/backend/internal/domain/order"
	"github.com/portal/backend/internal/domain/shared"
	"github.com/portal/backend/internal/domain/store"
	"github.com/portal/backend/internal/domain/sync"
	"github.com/portal/backend/internal/interfaces/http/dto"
	"github.com/portal/backend/internal/interfaces/http/middleware"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// getTenantID extracts the tenant ID from JWT claims
func getTenantID(c *gin.Context) (string, error) {
	tenantID := middleware.GetJWTTenantID(c)
	if tenantID == "" {
		// Fallback to header for development
		tenantID = c.GetHeader("X-Tenant-ID")
	}
	if tenantID == "" {
		return "", errors.New("tenant ID not found in context")
	}
	return tenantID, nil
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	statusCode := dto.GetHTTPStatus(code)
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Conflict sends a 409 conflict response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.Error(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError translates a domain error into the right response
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var platformErr *sync.PlatformError
	var submissionErr *sync.SubmissionError
	var jobErr *sync.JobFailedError
	var domainErr *shared.DomainError

	switch {
	case errors.Is(err, shared.ErrNotFound),
		errors.Is(err, store.ErrStoreNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		h.NotFound(c, "Resource not found")
	case errors.Is(err, store.ErrCredentialNotFound):
		h.ErrorWithCode(c, dto.ErrCodeStoreNotConnected, "Store has no usable credentials")
	case errors.Is(err, store.ErrInvalidDomain):
		h.BadRequest(c, "Invalid store domain")
	case errors.Is(err, store.ErrMemberAlreadyExists):
		h.Conflict(c, "User is already a member of this store")
	case errors.Is(err, store.ErrInvalidRole):
		h.BadRequest(c, "Invalid store role")
	case errors.Is(err, sync.ErrUpdateNotSupported):
		h.ErrorWithCode(c, dto.ErrCodeAlreadyLinked, "Product is already pushed; updates are not supported")
	case errors.Is(err, sync.ErrPollTimeout):
		h.ErrorWithCode(c, dto.ErrCodeSyncTimeout, "Bulk export did not finish in time")
	case errors.As(err, &platformErr),
		errors.As(err, &submissionErr),
		errors.As(err, &jobErr):
		h.ErrorWithCode(c, dto.ErrCodeExternalPlatform, err.Error())
	case errors.As(err, &domainErr):
		h.ErrorWithCode(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
