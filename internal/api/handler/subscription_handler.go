package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/api/metrics"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// SubscriptionHandler handles the follow-edge endpoints.
type SubscriptionHandler struct {
	service ports.SubscriptionService
}

func NewSubscriptionHandler(service ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type subscriptionRequest struct {
	AuthorUserID string `json:"authorUserId"`
}

type subscriptionResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	AuthorUserID string `json:"authorUserId"`
}

type subscriptionStatusResponse struct {
	IsSubscribed bool `json:"isSubscribed"`
}

// Subscribe handles POST /api/subscription. Duplicate calls succeed and
// return the same edge.
//
// @Summary      Subscribe to an author
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body      subscriptionRequest  true  "Author to follow"
// @Success      200   {object}  okEnvelope{data=subscriptionResponse}
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/subscription [post]
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be valid JSON")
	}

	sub, err := h.service.Subscribe(c.Request().Context(), actorID(c), req.AuthorUserID)
	if err != nil {
		return err
	}

	metrics.SubscriptionOpsTotal.WithLabelValues("subscribe").Inc()
	return ok(c, http.StatusOK, subscriptionResponse{
		ID:           sub.ID,
		UserID:       sub.UserID,
		AuthorUserID: sub.AuthorUserID,
	})
}

// Unsubscribe handles DELETE /api/subscription. Removing a non-existent edge
// still returns 204.
//
// @Summary      Unsubscribe from an author
// @Tags         subscriptions
// @Accept       json
// @Param        body  body  subscriptionRequest  true  "Author to unfollow"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/subscription [delete]
func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	var req subscriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "request body must be valid JSON")
	}

	if err := h.service.Unsubscribe(c.Request().Context(), actorID(c), req.AuthorUserID); err != nil {
		return err
	}

	metrics.SubscriptionOpsTotal.WithLabelValues("unsubscribe").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Status handles GET /api/subscription?authorUserId=…
//
// @Summary      Subscription status
// @Tags         subscriptions
// @Produce      json
// @Param        authorUserId  query     string  true  "Author user id"
// @Success      200           {object}  okEnvelope{data=subscriptionStatusResponse}
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Router       /api/subscription [get]
func (h *SubscriptionHandler) Status(c echo.Context) error {
	isSubscribed, err := h.service.IsSubscribed(c.Request().Context(), actorID(c), c.QueryParam("authorUserId"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, subscriptionStatusResponse{IsSubscribed: isSubscribed})
}
