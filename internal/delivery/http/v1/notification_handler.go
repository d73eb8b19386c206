package v1

import (
	"go-cookmate-backend/internal/delivery/http/middleware"
	"go-cookmate-backend/internal/delivery/http/response"
	"go-cookmate-backend/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

func NewNotificationHandler(protected *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.PUT("/:id/read", handler.MarkRead)
		notifications.PUT("/read-all", handler.MarkAllRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationUC.ListForUser(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications", notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.notificationUC.MarkRead(c.Request.Context(), c.Param("id"), middleware.Principal(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationUC.MarkAllRead(c.Request.Context(), middleware.Principal(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "All notifications marked as read", nil)
}
