package v1

import (
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/oauth/google", handler.GoogleLogin)
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", gin.H{"user_id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

// GoogleLogin accepts the verified profile handed back by the OAuth
// gateway and resolves it to a local account plus a session token.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var identity domain.ExternalIdentity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.OAuthLogin(c.Request.Context(), &identity)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{"token": token})
}
