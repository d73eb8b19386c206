package v1

import (
	"go-cookmate-backend/config"
	"go-cookmate-backend/internal/delivery/http/middleware"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/auth"
	"go-cookmate-backend/pkg/media"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	UserUC         domain.UserUsecase
	PostUC         domain.PostUsecase
	PlanUC         domain.LearningPlanUsecase
	NotificationUC domain.NotificationUsecase
	MediaStore     media.Store
	Tokens         *auth.TokenManager
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidations()

	r := gin.New()

	// Global middlewares. Identify only resolves the principal; anonymous
	// requests pass through and RequireAuth gates the protected group.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.Identify(deps.Tokens))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Login and registration get the strict fail-closed limiter.
	authGroup := v1.Group("")
	authGroup.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	NewAuthHandler(authGroup, deps.AuthUC)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth())
	{
		NewUserHandler(v1, protected, deps.UserUC)
		NewPostHandler(v1, protected, deps.PostUC)
		NewPlanHandler(v1, protected, deps.PlanUC)
		NewNotificationHandler(protected, deps.NotificationUC)
		NewMediaHandler(v1, protected, deps.MediaStore)
	}

	return r
}
