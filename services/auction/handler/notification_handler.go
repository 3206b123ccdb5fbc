package handler

import (
	"net/http"

	model "moto-auction/internal/models"
	"moto-auction/internal/notifications"
	"moto-auction/services/auction/helpers"
	"moto-auction/utils"

	"github.com/gin-gonic/gin"
)

// NotificationService is the inbox surface for authenticated users
type NotificationService interface {
	List(userID int64) (notifications.Inbox, error)
	MarkRead(userID, notificationID int64) (model.Notification, error)
	MarkAllRead(userID int64) (int, error)
}

// NotificationHandler serves the caller's notification inbox
type NotificationHandler struct {
	service NotificationService
}

func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// ListNotificationsHandler handles GET /notifications
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	actor, ok := requireActor(c, "ListNotificationsHandler")
	if !ok {
		return
	}

	inbox, err := h.service.List(actor.UserID)
	if err != nil {
		helpers.RespondError(c, "ListNotificationsHandler", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, inbox, "notifications retrieved successfully")
	helpers.LogSuccess("ListNotificationsHandler", "notifications retrieved successfully", map[string]any{
		"user_id": actor.UserID,
		"count":   len(inbox.Notifications),
		"unread":  inbox.Unread,
	})
}

// MarkReadHandler handles POST /notifications/:notification_id/read
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	actor, ok := requireActor(c, "MarkReadHandler")
	if !ok {
		return
	}
	notificationID, err := helpers.ParseID(c, "notification_id")
	if err != nil {
		helpers.RespondError(c, "MarkReadHandler", err, nil)
		return
	}

	n, err := h.service.MarkRead(actor.UserID, notificationID)
	if err != nil {
		helpers.RespondError(c, "MarkReadHandler", err, map[string]any{
			"user_id":         actor.UserID,
			"notification_id": notificationID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, n, "notification marked read")
	helpers.LogSuccess("MarkReadHandler", "notification marked read", map[string]any{"notification_id": notificationID})
}

// MarkAllReadHandler handles POST /notifications/read-all
func (h *NotificationHandler) MarkAllReadHandler(c *gin.Context) {
	actor, ok := requireActor(c, "MarkAllReadHandler")
	if !ok {
		return
	}

	n, err := h.service.MarkAllRead(actor.UserID)
	if err != nil {
		helpers.RespondError(c, "MarkAllReadHandler", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"updated": n}, "notifications marked read")
	helpers.LogSuccess("MarkAllReadHandler", "notifications marked read", map[string]any{
		"user_id": actor.UserID,
		"updated": n,
	})
}
