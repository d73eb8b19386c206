package v1

import (
	"go-cookmate-backend/internal/delivery/http/middleware"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := public.Group("/users")
	{
		users.GET("", handler.List)
		users.GET("/search", handler.Search)
		users.GET("/:id", handler.GetByID)
	}

	me := protected.Group("/users/me")
	{
		me.GET("", handler.Me)
		me.PUT("", handler.UpdateProfile)
		me.DELETE("", handler.DeleteAccount)
	}

	follow := protected.Group("/users/:id")
	{
		follow.POST("/follow", handler.Follow)
		follow.DELETE("/follow", handler.Unfollow)
		follow.GET("/follow", handler.IsFollowing)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users", users)
}

func (h *UserHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.Error(apperror.BadRequest("Query parameter 'q' is required"))
		return
	}

	users, err := h.userUC.SearchByName(c.Request.Context(), term)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users found", users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User found", user)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userUC.GetByEmail(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), middleware.Principal(c), &patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.userUC.DeleteAccount(c.Request.Context(), middleware.Principal(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account deleted", nil)
}

func (h *UserHandler) Follow(c *gin.Context) {
	user, err := h.userUC.Follow(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Following", user)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	user, err := h.userUC.Unfollow(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unfollowed", user)
}

func (h *UserHandler) IsFollowing(c *gin.Context) {
	following, err := h.userUC.IsFollowing(c.Request.Context(), middleware.Principal(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Follow status", gin.H{"following": following})
}
