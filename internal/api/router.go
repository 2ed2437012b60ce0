package api

import (
	"time"

	"probcalc/domain/core"
	"probcalc/internal"

	"github.com/gin-gonic/gin"
)

const requestIDKey = "requestID"

// NewRouter wires the calculator endpoints onto a gin engine
func NewRouter(handler *CalculatorHandler, logger *internal.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))

	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.POST("/evaluate", handler.Evaluate)
		api.POST("/sample", handler.Sample)
		api.GET("/defaults", handler.Defaults)
		api.GET("/history", handler.History)
		api.GET("/history/:id", handler.GetEvaluation)
	}

	return router
}

// RequestID tags every request with an identifier, reusing X-Request-ID when
// the caller supplies one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = core.NewRequestID().String()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs one line per request at debug level
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("[api] %s %s %d %s id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestID(c))
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
