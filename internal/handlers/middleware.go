package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-catalog/internal/apperror"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
	internalMessage = "Internal Server Error"
)

// RequestID propaga X-Request-ID o genera uno nuevo
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog registra cada request con slog
func AccessLog(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"bytes_written", c.Writer.Size(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// Recovery convierte un panic en la misma respuesta 500 que ErrorHandler
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(internalMessage))
	})
}

// ErrorHandler es el único lugar donde los errores de los handlers se
// convierten en respuestas. Los errores internos no exponen detalles.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := apperror.From(c.Errors.Last().Err)
		message := appErr.Message
		if appErr.Kind == apperror.KindInternal {
			logger.Error("request failed",
				"op", c.HandlerName(),
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
				"err", appErr,
			)
			message = internalMessage
		}

		c.JSON(appErr.Status(), errorBody(message))
	}
}

func errorBody(message string) gin.H {
	return gin.H{"success": false, "message": message}
}
