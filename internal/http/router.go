package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"doc-catalog/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	tokens *service.TokenService,
	authH *AuthHandler,
	authorH *AuthorHandler,
	docH *DocumentHandler,
	logH *LogHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	auth := r.Group("/api/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/social-login", authH.SocialLogin)
	auth.POST("/validate", authH.Validate)
	auth.GET("/users", JWTAuthMiddleware(tokens), RequireAdmin(), authH.ListUsers)

	authors := r.Group("/api/authors")
	authors.GET("", authorH.List)
	authors.GET("/search", authorH.Search)
	authors.GET("/:id", authorH.GetByID)
	authors.GET("/email/:email", authorH.GetByEmail)
	authors.GET("/name/:name", authorH.GetByName)
	authors.POST("", authorH.Create)
	authors.PUT("/:id", authorH.Update)
	authors.DELETE("/:id", authorH.Delete)

	docs := r.Group("/api/documents")
	docs.GET("", docH.List)
	docs.GET("/search", docH.Search)
	docs.GET("/:id", docH.GetByID)
	docs.POST("", docH.Create)
	docs.PUT("/:id", docH.Update)
	docs.DELETE("/:id", docH.Delete)

	r.POST("/api/logs", logH.Ingest)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
