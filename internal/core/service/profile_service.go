package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

const profilePageSize = 10

// ProfileService implements profile self-service, the admin role-assignment
// operation, and the public author directory.
type ProfileService struct {
	profiles      ports.ProfileRepository
	articles      ports.ArticleRepository
	subscriptions ports.SubscriptionRepository
	authz         ports.Authz
	sanitizer     *bluemonday.Policy
	log           zerolog.Logger
}

func NewProfileService(
	profiles ports.ProfileRepository,
	articles ports.ArticleRepository,
	subscriptions ports.SubscriptionRepository,
	authz ports.Authz,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles:      profiles,
		articles:      articles,
		subscriptions: subscriptions,
		authz:         authz,
		sanitizer:     bluemonday.UGCPolicy(),
		log:           log,
	}
}

// Get returns the caller's own profile, nil when none exists yet so first
// visits render an empty form. Any authenticated user may read their own
// profile; no role check, since the profile is what carries the role.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Update upserts the caller's profile from the self-service form. Role
// self-selection is limited to READER and AUTHOR; ADMIN can only be granted
// through AssignRole.
func (s *ProfileService) Update(ctx context.Context, input ports.UpdateProfileInput) (*domain.Profile, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return nil, domain.NewValidationError("displayName", "Display name is required")
	}

	role := domain.RoleReader
	if strings.ToUpper(strings.TrimSpace(input.RequestedRole)) == string(domain.RoleAuthor) {
		role = domain.RoleAuthor
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		UserID:      input.UserID,
		Role:        role,
		DisplayName: &displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if bio := strings.TrimSpace(input.Bio); bio != "" {
		clean := s.sanitizer.Sanitize(bio)
		profile.Bio = &clean
	}
	if image := strings.TrimSpace(input.ProfileImage); image != "" {
		profile.ProfileImage = &image
	}

	updated, err := s.profiles.Upsert(ctx, profile)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to upsert profile")
		return nil, err
	}
	return updated, nil
}

// AssignRole sets the target profile's role, creating the profile with null
// display fields when absent. Requires ADMIN; this is the only path that can
// grant ADMIN. The role is validated before any store write.
func (s *ProfileService) AssignRole(ctx context.Context, actorUserID, targetUserID, role string) (domain.Role, error) {
	if err := s.authz.EnsureRole(ctx, actorUserID, domain.RoleAdmin); err != nil {
		return "", err
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return "", err
	}

	updated, err := s.profiles.UpsertRole(ctx, targetUserID, parsed)
	if err != nil {
		s.log.Error().Err(err).Str("actor_user_id", actorUserID).Str("target_user_id", targetUserID).Msg("failed to assign role")
		return "", err
	}

	s.log.Info().Str("actor_user_id", actorUserID).Str("target_user_id", targetUserID).Str("role", string(updated.Role)).Msg("role assigned")
	return updated.Role, nil
}

// ListUsers is the admin user listing with search over displayName/userId.
func (s *ProfileService) ListUsers(ctx context.Context, actorUserID string, input ports.ListProfilesInput) (*ports.ListProfilesResult, error) {
	if err := s.authz.EnsureRole(ctx, actorUserID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}

	profiles, total, err := s.profiles.List(ctx, ports.ListProfilesFilter{
		Search: input.Search,
		Page:   page,
		Limit:  profilePageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListProfilesResult{
		Items:    profiles,
		Total:    total,
		Page:     page,
		PageSize: profilePageSize,
	}, nil
}

// ListAuthors is the public author directory with article and subscriber
// counts.
func (s *ProfileService) ListAuthors(ctx context.Context, page int) ([]*ports.AuthorSummary, int64, error) {
	if page < 1 {
		page = 1
	}

	profiles, total, err := s.profiles.List(ctx, ports.ListProfilesFilter{
		Role:  domain.RoleAuthor,
		Page:  page,
		Limit: profilePageSize,
	})
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*ports.AuthorSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, s.summarize(ctx, p))
	}
	return summaries, total, nil
}

// GetAuthor is the public author page: profile, counts, and published work.
func (s *ProfileService) GetAuthor(ctx context.Context, authorUserID string) (*ports.AuthorDetail, error) {
	profile, err := s.profiles.FindByUserID(ctx, authorUserID)
	if err != nil {
		return nil, err
	}

	articles, _, err := s.articles.List(ctx, ports.ListArticlesFilter{
		AuthorUserID: authorUserID,
		Status:       ports.ArticleStatusPublished,
		Page:         1,
		Limit:        articlePageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.AuthorDetail{
		AuthorSummary: *s.summarize(ctx, profile),
		Articles:      articles,
	}, nil
}

// summarize attaches counts to a profile; count failures degrade to zero.
func (s *ProfileService) summarize(ctx context.Context, p *domain.Profile) *ports.AuthorSummary {
	articleCount, err := s.articles.CountByAuthor(ctx, p.UserID, true)
	if err != nil {
		s.log.Warn().Err(err).Str("author_user_id", p.UserID).Msg("failed to count articles")
	}
	subscriberCount, err := s.subscriptions.CountByAuthor(ctx, p.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("author_user_id", p.UserID).Msg("failed to count subscribers")
	}
	return &ports.AuthorSummary{
		Profile:         p,
		ArticleCount:    articleCount,
		SubscriberCount: subscriberCount,
	}
}
