package handler

import (
	"net/http"

	"nuovo/internal/delivery/http/middleware"
	"nuovo/internal/delivery/http/response"
	"nuovo/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NotificationHandler holds dependencies for in-app notification handlers.
type NotificationHandler struct {
	store *store.Store
}

// NewNotificationHandler is the constructor for NotificationHandler,
// injected by Fx.
func NewNotificationHandler(st *store.Store) *NotificationHandler {
	return &NotificationHandler{store: st}
}

// GetNotifications lists the caller's notifications.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.store.Notifications(middleware.CallerEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "")
}

// MarkAsRead flips one notification to read.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	err := h.store.MarkNotificationRead(c.Request().Context(), middleware.CallerEmail(c), c.Param("notification_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// MarkAllAsRead flips every notification of the caller to read.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	err := h.store.MarkAllNotificationsRead(c.Request().Context(), middleware.CallerEmail(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "All notifications marked as read")
}

// DeleteNotification removes one notification of the caller.
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	err := h.store.DeleteNotification(c.Request().Context(), middleware.CallerEmail(c), c.Param("notification_id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification deleted")
}
