package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	UserUC          domain.UserUsecase
	RecruiterUC     domain.RecruiterUsecase
	JobUC           domain.JobUsecase
	UserAuthUC      domain.AuthUsecase
	RecruiterAuthUC domain.AuthUsecase
	Tokens          *auth.TokenService

	Cookie         CookieConfig
	AllowedOrigins []string
	Production     bool

	// Rate limiters for login and password recovery. Nil disables them.
	LoginLimit    gin.HandlerFunc
	PasswordLimit gin.HandlerFunc

	// Reports backing service status on /health. Nil always reports healthy.
	HealthUC domain.HealthUsecase

	Logger *zap.Logger
}

func passThrough(c *gin.Context) { c.Next() }

func NewRouter(deps RouterDeps) *gin.Engine {
	middleware.RegisterValidators()

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Production))
	r.Use(middleware.ErrorHandler(logger))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, err := deps.HealthUC.Check(c.Request.Context())
		if err != nil {
			logger.Warn("health check failed", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, "Service degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protect := middleware.Protect(deps.Tokens, map[domain.AccountKind]middleware.AccountLoader{
		domain.KindUser:      deps.UserAuthUC,
		domain.KindRecruiter: deps.RecruiterAuthUC,
	})

	authRoutes := AuthRoutes{
		Protect:       protect,
		LoginLimit:    deps.LoginLimit,
		PasswordLimit: deps.PasswordLimit,
	}
	if authRoutes.LoginLimit == nil {
		authRoutes.LoginLimit = passThrough
	}
	if authRoutes.PasswordLimit == nil {
		authRoutes.PasswordLimit = passThrough
	}

	users := v1.Group("/users")
	{
		NewAuthHandler(users, domain.KindUser, authRoutes, deps.UserAuthUC, deps.Cookie)
		NewUserHandler(users, protect, deps.UserUC, deps.Cookie)
	}

	recruiters := v1.Group("/recruiters")
	{
		NewAuthHandler(recruiters, domain.KindRecruiter, authRoutes, deps.RecruiterAuthUC, deps.Cookie)
		NewRecruiterHandler(recruiters, protect, deps.RecruiterUC, deps.Cookie)
	}

	NewJobHandler(v1.Group("/jobs"), protect, deps.JobUC)

	return r
}
