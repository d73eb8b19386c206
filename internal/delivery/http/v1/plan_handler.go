package v1

import (
	"go-cookmate-backend/internal/delivery/http/middleware"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"go-cookmate-backend/pkg/apperror"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	planUC domain.LearningPlanUsecase
}

func NewPlanHandler(public *gin.RouterGroup, protected *gin.RouterGroup, planUC domain.LearningPlanUsecase) {
	handler := &PlanHandler{planUC: planUC}

	public.GET("/plans/public", handler.ListPublic)

	plans := protected.Group("/plans")
	{
		plans.GET("", handler.ListMine)
		plans.GET("/:id", handler.GetByID)
		plans.POST("", handler.Create)
		plans.PUT("/:id", handler.Update)
		plans.DELETE("/:id", handler.Delete)
	}

	progress := protected.Group("/progress-updates")
	{
		progress.POST("", handler.RecordProgress)
		progress.GET("/user", handler.ListAllProgress)
		progress.GET("/plan/:planId", handler.ListProgress)
		progress.DELETE("/:id", handler.DeleteProgress)
	}
}

type PlanRequest struct {
	Title            string         `json:"title" binding:"required,notblank"`
	Description      string         `json:"description"`
	Topics           []domain.Topic `json:"topics"`
	StartDate        time.Time      `json:"start_date"`
	EstimatedEndDate time.Time      `json:"estimated_end_date"`
	Public           bool           `json:"public"`
}

type ProgressUpdateRequest struct {
	PlanID             string `json:"plan_id" binding:"required"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	ProgressPercentage int    `json:"progress_percentage" binding:"min=0,max=100"`
}

func (h *PlanHandler) ListPublic(c *gin.Context) {
	plans, err := h.planUC.GetPublicPlans(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Public plans", plans)
}

func (h *PlanHandler) ListMine(c *gin.Context) {
	plans, err := h.planUC.GetUserPlans(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Plans", plans)
}

// GetByID serves a plan to its owner, or to anyone when flagged public.
func (h *PlanHandler) GetByID(c *gin.Context) {
	plan, err := h.planUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if !plan.Public && plan.UserEmail != middleware.Principal(c) {
		c.Error(apperror.Forbidden("This learning plan is private"))
		return
	}
	response.Success(c, http.StatusOK, "Plan", plan)
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	plan := planFromRequest(&req)
	created, err := h.planUC.Create(c.Request.Context(), plan, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Plan created", created)
}

func (h *PlanHandler) Update(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	plan := planFromRequest(&req)
	updated, err := h.planUC.Update(c.Request.Context(), c.Param("id"), plan, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Plan updated", updated)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.planUC.Delete(c.Request.Context(), c.Param("id"), middleware.Principal(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Plan deleted", nil)
}

func (h *PlanHandler) RecordProgress(c *gin.Context) {
	var req ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	update := &domain.ProgressUpdate{
		PlanID:             req.PlanID,
		Title:              req.Title,
		Description:        req.Description,
		ProgressPercentage: req.ProgressPercentage,
	}
	created, err := h.planUC.RecordProgressUpdate(c.Request.Context(), update, middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Progress recorded", created)
}

func (h *PlanHandler) ListProgress(c *gin.Context) {
	updates, err := h.planUC.ListProgressUpdates(c.Request.Context(), c.Param("planId"), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Progress updates", updates)
}

func (h *PlanHandler) ListAllProgress(c *gin.Context) {
	updates, err := h.planUC.ListAllProgressUpdates(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Progress updates", updates)
}

func (h *PlanHandler) DeleteProgress(c *gin.Context) {
	if err := h.planUC.DeleteProgressUpdate(c.Request.Context(), c.Param("id"), middleware.Principal(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Progress update deleted", nil)
}

func planFromRequest(req *PlanRequest) *domain.LearningPlan {
	return &domain.LearningPlan{
		Title:            req.Title,
		Description:      req.Description,
		Topics:           req.Topics,
		StartDate:        req.StartDate,
		EstimatedEndDate: req.EstimatedEndDate,
		Public:           req.Public,
	}
}
