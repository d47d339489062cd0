package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/api/metrics"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type createArticleRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl"`
	Published bool   `json:"published"`
}

// ListPublic handles GET /articles — the public listing of published articles.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Param        page  query     int     false  "Page (1-based)"
// @Param        q     query     string  false  "Search in title/content"
// @Success      200   {object}  listArticlesResponse
// @Router       /articles [get]
func (h *ArticleHandler) ListPublic(c echo.Context) error {
	result, err := h.service.ListPublished(c.Request().Context(), ports.ListArticlesInput{
		Search: strings.TrimSpace(c.QueryParam("q")),
		Page:   pageParam(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListArticles(result))
}

// Get handles GET /articles/:id — article detail with author and related
// articles. Drafts are only visible to their owner or an admin.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), ports.GetArticleInput{
		ID:           c.Param("id"),
		ViewerUserID: actorID(c),
	})
	if err != nil {
		return err
	}

	resp := articleDetailResponse{
		articleSummaryResponse: toArticleSummary(detail.Article, detail.Author),
		Content:                detail.Article.Content,
		Related:                make([]articleSummaryResponse, 0, len(detail.Related)),
	}
	for _, related := range detail.Related {
		resp.Related = append(resp.Related, toArticleSummary(related, detail.Author))
	}
	return c.JSON(http.StatusOK, resp)
}

// ListOwn handles GET /user/articles — the acting author's articles, drafts
// included, with search and status filters.
//
// @Summary      List own articles
// @Tags         articles
// @Produce      json
// @Param        page    query     int     false  "Page (1-based)"
// @Param        q       query     string  false  "Search in title/content"
// @Param        status  query     string  false  "all | published | draft"
// @Success      200     {object}  listArticlesResponse
// @Failure      401     {object}  errorResponse
// @Router       /user/articles [get]
func (h *ArticleHandler) ListOwn(c echo.Context) error {
	result, err := h.service.ListOwn(c.Request().Context(), actorID(c), ports.ListArticlesInput{
		Search: strings.TrimSpace(c.QueryParam("q")),
		Status: statusParam(c),
		Page:   pageParam(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListArticles(result))
}

// Create handles POST /user/articles.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      createArticleRequest  true  "Article details"
// @Success      201   {object}  articleSummaryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /user/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	article, err := h.service.Create(c.Request().Context(), ports.CreateArticleInput{
		ActorUserID: actorID(c),
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Published:   req.Published,
	})
	if err != nil {
		return err
	}

	metrics.ArticlesCreatedTotal.WithLabelValues(strconv.FormatBool(article.Published)).Inc()
	return c.JSON(http.StatusCreated, toArticleSummary(article, nil))
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func statusParam(c echo.Context) ports.ArticleStatusFilter {
	switch c.QueryParam("status") {
	case "published":
		return ports.ArticleStatusPublished
	case "draft":
		return ports.ArticleStatusDraft
	default:
		return ports.ArticleStatusAll
	}
}
