package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// ProfileHandler handles self-service profile endpoints and the public author
// directory.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	DisplayName     string `json:"displayName"`
	Bio             string `json:"bio"`
	ProfileImageURL string `json:"profileImageUrl"`
	RequestedRole   string `json:"requestedRole"`
}

type profileEnvelope struct {
	Profile *profileResponse `json:"profile"`
}

// Get handles GET /user/profile. Profile is null until the first edit.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  profileEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /user/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.service.Get(c.Request().Context(), actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileEnvelope{Profile: toProfile(profile)})
}

// Update handles PUT /user/profile — lazily creates the profile on first
// edit. Role self-selection is limited to READER and AUTHOR.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /user/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.service.Update(c.Request().Context(), ports.UpdateProfileInput{
		UserID:        actorID(c),
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		ProfileImage:  req.ProfileImageURL,
		RequestedRole: req.RequestedRole,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileEnvelope{Profile: toProfile(profile)})
}

type listAuthorsResponse struct {
	Authors []authorSummaryResponse `json:"authors"`
	Total   int64                   `json:"total"`
}

// ListAuthors handles GET /authors — the public author directory.
//
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Param        page  query     int  false  "Page (1-based)"
// @Success      200   {object}  listAuthorsResponse
// @Router       /authors [get]
func (h *ProfileHandler) ListAuthors(c echo.Context) error {
	summaries, total, err := h.service.ListAuthors(c.Request().Context(), pageParam(c))
	if err != nil {
		return err
	}

	authors := make([]authorSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		authors = append(authors, toAuthorSummary(s))
	}
	return c.JSON(http.StatusOK, listAuthorsResponse{Authors: authors, Total: total})
}

type authorDetailResponse struct {
	authorSummaryResponse
	Articles []articleSummaryResponse `json:"articles"`
}

// GetAuthor handles GET /authors/:id — public author page with published work.
//
// @Summary      Get an author
// @Tags         authors
// @Produce      json
// @Param        id   path      string  true  "Author user id"
// @Success      200  {object}  authorDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /authors/{id} [get]
func (h *ProfileHandler) GetAuthor(c echo.Context) error {
	detail, err := h.service.GetAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	resp := authorDetailResponse{
		authorSummaryResponse: toAuthorSummary(&detail.AuthorSummary),
		Articles:              make([]articleSummaryResponse, 0, len(detail.Articles)),
	}
	ref := &ports.AuthorRef{UserID: detail.Profile.UserID, DisplayName: detail.Profile.DisplayName}
	for _, a := range detail.Articles {
		resp.Articles = append(resp.Articles, toArticleSummary(a, ref))
	}
	return c.JSON(http.StatusOK, resp)
}

func toAuthorSummary(s *ports.AuthorSummary) authorSummaryResponse {
	return authorSummaryResponse{
		profileResponse: *toProfile(s.Profile),
		ArticleCount:    s.ArticleCount,
		SubscriberCount: s.SubscriberCount,
	}
}
