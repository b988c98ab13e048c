package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"creator-finance/internal/auth"
	"creator-finance/internal/config"
	"creator-finance/internal/ledger"
	"creator-finance/internal/platforms"
	"creator-finance/internal/users"
)

// Deps are the components the API routes to. All are required.
type Deps struct {
	Tokens    *auth.Tokens
	Users     *users.Store
	Ledger    *ledger.Service
	Platforms *platforms.Service
}

type Server struct {
	schemas   *schemas
	tokens    *auth.Tokens
	users     *users.Store
	ledger    *ledger.Service
	platforms *platforms.Service
}

func NewServer(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	if deps.Tokens == nil || deps.Users == nil || deps.Ledger == nil || deps.Platforms == nil {
		return nil, errors.New("http: missing dependency")
	}
	sch, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(logging())
	r.Use(cors(cfg))
	r.Use(rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(requestTimeout(time.Duration(cfg.ReqTimeoutSec) * time.Second))

	s := &Server{
		schemas:   sch,
		tokens:    deps.Tokens,
		users:     deps.Users,
		ledger:    deps.Ledger,
		platforms: deps.Platforms,
	}

	api := r.Group("/api")
	// Auth
	api.POST("/register", s.register)
	api.POST("/login", s.login)

	// Protected Routes (bearer token)
	authorized := api.Group("")
	authorized.Use(AuthMiddleware(s.tokens))
	{
		authorized.GET("/dashboard", s.dashboard)
		authorized.GET("/monthly-trend", s.monthlyTrend)
		authorized.GET("/profile", s.profile)

		authorized.GET("/platforms", s.listPlatforms)
		authorized.POST("/platforms", s.reportPlatform)

		authorized.GET("/transactions", s.listTransactions)
		authorized.POST("/transactions", s.addTransaction)
		authorized.PUT("/transactions/:id", s.updateTransaction)
		authorized.DELETE("/transactions/:id", s.deleteTransaction)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "OK", "message": "Server is running"}) })
	return r, nil
}
