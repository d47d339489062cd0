package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/api/metrics"
	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// AdminHandler handles the privileged mutation endpoints and admin listings.
type AdminHandler struct {
	articles ports.ArticleService
	profiles ports.ProfileService
}

func NewAdminHandler(articles ports.ArticleService, profiles ports.ProfileService) *AdminHandler {
	return &AdminHandler{articles: articles, profiles: profiles}
}

// togglePublishRequest uses a pointer so a missing or non-boolean field is
// distinguishable from an explicit false.
type togglePublishRequest struct {
	Published *bool `json:"published"`
}

type togglePublishResponse struct {
	ID        string    `json:"id"`
	Published bool      `json:"published"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

type assignRoleResponse struct {
	Role string `json:"role"`
}

// TogglePublish handles POST /api/admin/articles/:id/publish. The owning
// author or an admin may flip the published flag.
//
// @Summary      Toggle article publication
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Article id"
// @Param        body  body      togglePublishRequest  true  "Target state"
// @Success      200   {object}  togglePublishResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/articles/{id}/publish [post]
func (h *AdminHandler) TogglePublish(c echo.Context) error {
	var req togglePublishRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Published == nil {
		return domain.NewValidationError("published", "published must be a boolean")
	}

	result, err := h.articles.TogglePublish(c.Request().Context(), ports.TogglePublishInput{
		ActorUserID: actorID(c),
		ArticleID:   c.Param("id"),
		Published:   *req.Published,
	})
	if err != nil {
		return err
	}

	metrics.PublishTogglesTotal.WithLabelValues(strconv.FormatBool(result.Published)).Inc()
	return c.JSON(http.StatusOK, togglePublishResponse{
		ID:        result.ID,
		Published: result.Published,
		UpdatedAt: result.UpdatedAt,
	})
}

// AssignRole handles POST /api/admin/users/:id/role. Admin only; the target
// profile is created when absent.
//
// @Summary      Assign a profile role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      assignRoleRequest  true  "New role"
// @Success      200   {object}  assignRoleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users/{id}/role [post]
func (h *AdminHandler) AssignRole(c echo.Context) error {
	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	role, err := h.profiles.AssignRole(c.Request().Context(), actorID(c), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignRoleResponse{Role: string(role)})
}

// ListArticles handles GET /admin/articles — all articles across authors.
//
// @Summary      List all articles (admin)
// @Tags         admin
// @Produce      json
// @Param        page    query     int     false  "Page (1-based)"
// @Param        q       query     string  false  "Search in title/content"
// @Param        status  query     string  false  "all | published | draft"
// @Success      200     {object}  listArticlesResponse
// @Failure      403     {object}  errorResponse
// @Router       /admin/articles [get]
func (h *AdminHandler) ListArticles(c echo.Context) error {
	result, err := h.articles.ListAll(c.Request().Context(), actorID(c), ports.ListArticlesInput{
		Search: strings.TrimSpace(c.QueryParam("q")),
		Status: statusParam(c),
		Page:   pageParam(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListArticles(result))
}

type listUsersResponse struct {
	Users      []*profileResponse `json:"users"`
	Pagination paginationResponse `json:"pagination"`
}

// ListUsers handles GET /admin/users.
//
// @Summary      List user profiles (admin)
// @Tags         admin
// @Produce      json
// @Param        page  query     int     false  "Page (1-based)"
// @Param        q     query     string  false  "Search in displayName/userId"
// @Success      200   {object}  listUsersResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	result, err := h.profiles.ListUsers(c.Request().Context(), actorID(c), ports.ListProfilesInput{
		Search: strings.TrimSpace(c.QueryParam("q")),
		Page:   pageParam(c),
	})
	if err != nil {
		return err
	}

	users := make([]*profileResponse, 0, len(result.Items))
	for _, p := range result.Items {
		users = append(users, toProfile(p))
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Users: users,
		Pagination: paginationResponse{
			Total:    result.Total,
			Page:     result.Page,
			PageSize: result.PageSize,
		},
	})
}
