package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// findRequestLog returns the "HTTP Request" entry from the recorded logs.
func findRequestLog(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()
	for _, entry := range recorded.All() {
		if entry.Message == "HTTP Request" {
			e := entry
			return &e
		}
	}
	t.Fatal("HTTP Request log entry not found")
	return nil
}

func serveWithMiddleware(t *testing.T, handler gin.HandlerFunc, target string) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", handler)
	router.GET("/search", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w, recorded
}

func TestGinMiddleware(t *testing.T) {
	w, recorded := serveWithMiddleware(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}, "/test")

	assert.Equal(t, http.StatusOK, w.Code)
	entry := findRequestLog(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
}

func TestGinMiddleware_WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	// Simulate the RequestID middleware running first
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	entry := findRequestLog(t, recorded)
	found := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "test-req-123", field.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestGinMiddleware_ClientErrorLogsWarn(t *testing.T) {
	_, recorded := serveWithMiddleware(t, func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
	}, "/test")

	entry := findRequestLog(t, recorded)
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
}

func TestGinMiddleware_ServerErrorLogsError(t *testing.T) {
	_, recorded := serveWithMiddleware(t, func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}, "/test")

	entry := findRequestLog(t, recorded)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}

func TestGinMiddleware_LogsQueryString(t *testing.T) {
	_, recorded := serveWithMiddleware(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}, "/search?q=test&page=1")

	entry := findRequestLog(t, recorded)
	found := false
	for _, field := range entry.Context {
		if field.Key == "query" {
			found = true
			assert.Contains(t, field.String, "q=test")
		}
	}
	assert.True(t, found, "query should be in log fields")
}

func TestGinMiddleware_AttachesLoggerToRequestContext(t *testing.T) {
	var ctxLogger *zap.Logger
	_, _ = serveWithMiddleware(t, func(c *gin.Context) {
		ctxLogger = FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}, "/test")

	// The request-scoped logger must be reachable via the request context,
	// which is what the webhook handlers rely on.
	require.NotNil(t, ctxLogger)
	assert.NotEqual(t, zap.NewNop(), ctxLogger)
}

func TestGinMiddleware_LogsCoreFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.POST("/api/stores", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": 1})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/stores", nil)
	req.Header.Set("User-Agent", "Test-Agent/1.0")
	router.ServeHTTP(w, req)

	entry := findRequestLog(t, recorded)
	keys := make(map[string]bool)
	for _, field := range entry.Context {
		keys[field.Key] = true
	}
	for _, key := range []string{"status", "latency", "client_ip", "user_agent", "method", "path"} {
		assert.True(t, keys[key], "missing field %s", key)
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[0].Message, "Panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	var retrieved *zap.Logger
	_, _ = serveWithMiddleware(t, func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}, "/test")

	assert.NotNil(t, retrieved)
}

func TestGetGinLogger_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var retrieved *zap.Logger
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		retrieved = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	// Falls back to a no-op logger rather than nil
	require.NotNil(t, retrieved)
	assert.NotPanics(t, func() {
		retrieved.Info("test")
	})
}
