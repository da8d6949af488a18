package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogHandler recibe eventos de log del frontend y los enruta a zap.
type LogHandler struct {
	logger *zap.Logger
}

func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// Ingest maneja POST /api/logs.
func (h *LogHandler) Ingest(c *gin.Context) {
	var req struct {
		Level     string `json:"level"`
		Message   string `json:"message"`
		Source    string `json:"source"`
		Timestamp string `json:"timestamp"`
		URL       string `json:"url"`
		UserAgent string `json:"userAgent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fields := []zap.Field{
		zap.String("source", req.Source),
		zap.String("frontend_timestamp", req.Timestamp),
		zap.String("url", req.URL),
		zap.String("user_agent", req.UserAgent),
	}

	switch strings.ToUpper(req.Level) {
	case "ERROR":
		h.logger.Error(req.Message, fields...)
	case "WARN":
		h.logger.Warn(req.Message, fields...)
	case "DEBUG":
		h.logger.Debug(req.Message, fields...)
	default:
		h.logger.Info(req.Message, fields...)
	}

	c.Status(http.StatusOK)
}
