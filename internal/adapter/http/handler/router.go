package handler

import (
	"loyalty-token-ledger/internal/adapter/http/middleware"
	redisStore "loyalty-token-ledger/internal/adapter/storage/redis"
	"loyalty-token-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LoyaltySvc     ports.LoyaltyService
	TokenSvc       ports.TokenService
	Journal        ports.EventJournal         // nil = events endpoint disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	programHandler := NewProgramHandler(deps.LoyaltySvc, deps.Journal)
	rewardHandler := NewRewardHandler(deps.LoyaltySvc)

	// --- Public queries (ungated reads) ---
	v1.GET("/program/status", rl("queries"), programHandler.GetStatus)
	v1.GET("/program/merchants/:address", rl("queries"), programHandler.IsMerchant)
	v1.GET("/accounts/:address/balance", rl("queries"), rewardHandler.GetBalance)
	v1.GET("/supply", rl("queries"), rewardHandler.GetSupply)
	if deps.Journal != nil {
		v1.GET("/events", rl("queries"), programHandler.ListEvents)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	program := v1.Group("/program", jwtAuth)
	{
		program.POST("/merchants", rl("admin"), programHandler.AddMerchant)
		program.DELETE("/merchants/:address", rl("admin"), programHandler.RemoveMerchant)
		program.POST("/pause", rl("admin"), programHandler.Pause)
		program.POST("/unpause", rl("admin"), programHandler.Unpause)
	}

	rewards := v1.Group("/rewards", jwtAuth)
	{
		rewards.POST("", rl("rewards"), rewardHandler.Reward)
		rewards.POST("/batch", rl("rewards"), rewardHandler.RewardBatch)
	}

	redemptions := v1.Group("/redemptions", jwtAuth)
	{
		redemptions.POST("", rl("redemptions"), rewardHandler.Redeem)
	}

	return r
}
