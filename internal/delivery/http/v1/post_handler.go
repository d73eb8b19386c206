package v1

import (
	"go-cookmate-backend/internal/delivery/http/middleware"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUC domain.PostUsecase
}

func NewPostHandler(public *gin.RouterGroup, protected *gin.RouterGroup, postUC domain.PostUsecase) {
	handler := &PostHandler{postUC: postUC}

	posts := public.Group("/posts")
	{
		posts.GET("", handler.List)
		posts.GET("/:id", handler.GetByID)
	}

	protectedPosts := protected.Group("/posts")
	{
		protectedPosts.GET("/mine", handler.ListMine)
		protectedPosts.POST("", handler.Create)
		protectedPosts.PUT("/:id", handler.Update)
		protectedPosts.DELETE("/:id", handler.Delete)
		protectedPosts.POST("/:id/like", handler.Like)
		protectedPosts.POST("/:id/comments", handler.AddComment)
		protectedPosts.PUT("/:id/comments/:ref", handler.EditComment)
		protectedPosts.DELETE("/:id/comments/:ref", handler.DeleteComment)
	}
}

type PostRequest struct {
	Title        string   `json:"title" binding:"required,notblank,min=3,max=100"`
	Description  string   `json:"description" binding:"max=1000"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	MediaURLs    []string `json:"media_urls"`
	Tags         []string `json:"tags"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posts", posts)
}

func (h *PostHandler) GetByID(c *gin.Context) {
	post, err := h.postUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post", post)
}

func (h *PostHandler) ListMine(c *gin.Context) {
	posts, err := h.postUC.ListByOwner(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posts", posts)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	post := &domain.Post{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		MediaURLs:    req.MediaURLs,
		Tags:         req.Tags,
	}
	created, err := h.postUC.Create(c.Request.Context(), post, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Post created", created)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	post := &domain.Post{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		MediaURLs:    req.MediaURLs,
		Tags:         req.Tags,
	}
	updated, err := h.postUC.Update(c.Request.Context(), c.Param("id"), post, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post updated", updated)
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.postUC.Delete(c.Request.Context(), c.Param("id"), middleware.Principal(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post deleted", nil)
}

func (h *PostHandler) Like(c *gin.Context) {
	post, err := h.postUC.Like(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Like toggled", post)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	post, err := h.postUC.AddComment(c.Request.Context(), c.Param("id"), req.Content, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment added", post)
}

func (h *PostHandler) EditComment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	post, err := h.postUC.EditComment(c.Request.Context(), c.Param("id"), c.Param("ref"), req.Content, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment updated", post)
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	post, err := h.postUC.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("ref"), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment deleted", post)
}
