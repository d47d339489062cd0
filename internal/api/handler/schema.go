package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// errorResponse documents the standard error envelope in swagger output.
// The actual rendering happens in the central error handler.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// okEnvelope is the success envelope used by the JSON API endpoints.
type okEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, okEnvelope{Status: "ok", Data: data})
}

type paginationResponse struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type authorRefResponse struct {
	UserID      string  `json:"userId"`
	DisplayName *string `json:"displayName"`
}

type articleSummaryResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	ImageURL     *string            `json:"imageUrl,omitempty"`
	Published    bool               `json:"published"`
	AuthorUserID string             `json:"authorUserId"`
	Author       *authorRefResponse `json:"author"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type articleDetailResponse struct {
	articleSummaryResponse
	Content string                   `json:"content"`
	Related []articleSummaryResponse `json:"related"`
}

type listArticlesResponse struct {
	Articles   []articleSummaryResponse `json:"articles"`
	Pagination paginationResponse       `json:"pagination"`
}

type profileResponse struct {
	UserID       string    `json:"userId"`
	Role         string    `json:"role"`
	DisplayName  *string   `json:"displayName"`
	Bio          *string   `json:"bio"`
	ProfileImage *string   `json:"profileImage"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type authorSummaryResponse struct {
	profileResponse
	ArticleCount    int64 `json:"articleCount"`
	SubscriberCount int64 `json:"subscriberCount"`
}

func toAuthorRef(ref *ports.AuthorRef) *authorRefResponse {
	if ref == nil {
		return nil
	}
	return &authorRefResponse{UserID: ref.UserID, DisplayName: ref.DisplayName}
}

func toArticleSummary(a *domain.Article, author *ports.AuthorRef) articleSummaryResponse {
	return articleSummaryResponse{
		ID:           a.ID,
		Title:        a.Title,
		ImageURL:     a.ImageURL,
		Published:    a.Published,
		AuthorUserID: a.AuthorUserID,
		Author:       toAuthorRef(author),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func toListArticles(result *ports.ListArticlesResult) listArticlesResponse {
	items := make([]articleSummaryResponse, 0, len(result.Items))
	for _, view := range result.Items {
		items = append(items, toArticleSummary(view.Article, view.Author))
	}
	return listArticlesResponse{
		Articles: items,
		Pagination: paginationResponse{
			Total:    result.Total,
			Page:     result.Page,
			PageSize: result.PageSize,
		},
	}
}

func toProfile(p *domain.Profile) *profileResponse {
	if p == nil {
		return nil
	}
	return &profileResponse{
		UserID:       p.UserID,
		Role:         string(p.Role),
		DisplayName:  p.DisplayName,
		Bio:          p.Bio,
		ProfileImage: p.ProfileImage,
		UpdatedAt:    p.UpdatedAt,
	}
}
