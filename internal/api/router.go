package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/pollinator-abundance/internal/config"
	"github.com/jengzang/pollinator-abundance/internal/handler"
	"github.com/jengzang/pollinator-abundance/internal/middleware"
	"github.com/jengzang/pollinator-abundance/pkg/response"
)

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	Calculations handler.CalculationService
	// Optional; nil disables rate limiting
	Limiter *middleware.RateLimiter
	Logger  *zap.Logger
}

// SetupRouter builds the HTTP API
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{
			"status":  "ok",
			"message": "Pollinator abundance API is running",
		})
	})

	calc := handler.NewCalculationHandler(deps.Calculations)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(deps.Limiter), middleware.Auth(cfg.JWTSecret))
	{
		v1.POST("/calculate", calc.Calculate)
		v1.GET("/calculate/default", calc.CalculateDefault)
	}

	return r
}
