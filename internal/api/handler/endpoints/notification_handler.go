package endpoints

import (
	"net/http"
	"strconv"

	"studio"
	"studio/internal/api/handler/middleware"
	"studio/internal/api/handler/response"
	"studio/internal/api/service"
	"studio/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type notificationHandler struct {
	notificationService *service.NotificationService
	config              studio.AppConfig
	logger              zerolog.Logger
}

func newNotificationHandler() *notificationHandler {
	return &notificationHandler{
		notificationService: service.NewNotificationService(),
		config:              studio.GetConfig(),
		logger:              studio.Logger,
	}
}

// NotificationHandler registers the notification routes. They are scoped to
// the session user, so authentication alone is enough.
func NotificationHandler(router *graceful.Graceful) {
	h := newNotificationHandler()

	routes := router.Group("/api/v1/notifications")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.list)
		routes.GET("/unread-count", h.unreadCount)
		routes.POST("/:id/read", h.markRead)
		routes.POST("/read-all", h.markAllRead)
	}
}

func (slf *notificationHandler) list(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notifications, err := slf.notificationService.FindForUser(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (slf *notificationHandler) unreadCount(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	count, err := slf.notificationService.CountUnread(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to count notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (slf *notificationHandler) markRead(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	if err := slf.notificationService.MarkRead(uint(id), userID); err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to mark notification read"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (slf *notificationHandler) markAllRead(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}

	if err := slf.notificationService.MarkAllRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to mark notifications read"})
		return
	}
	c.Status(http.StatusNoContent)
}
