package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

const notificationLimit = 50

// NotificationHandler exposes the caller's publish notifications.
type NotificationHandler struct {
	notifications ports.NotificationRepository
}

func NewNotificationHandler(notifications ports.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /api/notifications — newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  okEnvelope
// @Failure      401  {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID := actorID(c)
	if userID == "" {
		return domain.ErrUnauthorized
	}

	items, err := h.notifications.ListByUser(c.Request().Context(), userID, notificationLimit)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, items)
}
