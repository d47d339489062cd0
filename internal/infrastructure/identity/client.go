// Package identity implements the client side of the external identity
// provider's REST API (GoTrue-compatible): authoritative user lookup, session
// refresh, OTP verification, and sign-out, plus the cookie plumbing that keeps
// the browser-held session in sync with rotated provider tokens.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/inkwell/publishing-platform/internal/core/domain"
	"github.com/inkwell/publishing-platform/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	// refreshSkew refreshes tokens slightly before their hard expiry so a
	// token does not die mid-request.
	refreshSkew = 30 * time.Second
)

// Config captures the settings for the identity provider connection.
type Config struct {
	// BaseURL is the provider root, e.g. https://project.example.co
	BaseURL string
	// AnonKey is the public API key sent with every user-scoped call.
	AnonKey string
	// CookieName is the session cookie holding the token pair.
	CookieName string
	Timeout    time.Duration
}

// Factory is the process-owned identity client factory. It is constructed
// once at startup and injected; per-request clients are created by Bind.
type Factory struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewFactory(cfg Config, log zerolog.Logger) *Factory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Factory{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Bind creates a client scoped to one request's cookie state. Rotated tokens
// are written back through w on every rotation.
func (f *Factory) Bind(r ports.CookieReader, w ports.CookieWriter) ports.IdentityClient {
	c := &requestClient{factory: f, writer: w}
	if stored, ok := readSessionCookie(r, f.cfg.CookieName); ok {
		c.tokens = &stored
	}
	return c
}

// Health reports provider reachability for readiness probes.
func (f *Factory) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.BaseURL+"/auth/v1/health", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", f.cfg.AnonKey)

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity health: status %d", resp.StatusCode)
	}
	return nil
}

// requestClient is bound to a single request. Not safe for concurrent use,
// which is fine: a request pipeline resolves identity sequentially.
type requestClient struct {
	factory *Factory
	writer  ports.CookieWriter
	tokens  *storedSession
}

// GetUser re-validates the access token against the provider and returns the
// authenticated user. (nil, nil) means anonymous: no cookie, or a token the
// provider rejected. Expired tokens are refreshed first; the rotated pair is
// written back onto the response.
func (c *requestClient) GetUser(ctx context.Context) (*domain.User, error) {
	if c.tokens == nil {
		return nil, nil
	}
	if err := c.refreshIfNeeded(ctx); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.factory.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity get user: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("identity get user: decode: %w", err)
		}
		if user.ID == "" {
			return nil, nil
		}
		return &domain.User{ID: user.ID, Email: user.Email}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		// Rejected token: an anonymous request, not a provider failure.
		return nil, nil
	default:
		return nil, providerError(resp)
	}
}

// GetSession returns the current token pair as a Session. Callers must have
// validated the user first (see service.SessionResolver); the session object
// itself carries no authority.
func (c *requestClient) GetSession(ctx context.Context) (*domain.Session, error) {
	if c.tokens == nil {
		return nil, nil
	}
	if err := c.refreshIfNeeded(ctx); err != nil {
		return nil, err
	}

	return &domain.Session{
		AccessToken:  c.tokens.AccessToken,
		RefreshToken: c.tokens.RefreshToken,
		ExpiresAt:    tokenExpiry(c.tokens.AccessToken),
	}, nil
}

// VerifyOTP exchanges an email-confirmation token hash for a session. On
// success the new session cookie is written onto the response.
func (c *requestClient) VerifyOTP(ctx context.Context, tokenHash, otpType string) error {
	body, _ := json.Marshal(map[string]string{
		"type":       otpType,
		"token_hash": tokenHash,
	})

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/verify", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.factory.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity verify otp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providerError(resp)
	}

	var granted struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&granted); err != nil {
		return fmt.Errorf("identity verify otp: decode: %w", err)
	}

	c.tokens = &storedSession{AccessToken: granted.AccessToken, RefreshToken: granted.RefreshToken}
	c.writeCookie()
	return nil
}

// SignOut revokes the session at the provider and clears the session cookie.
// The cookie is cleared even when revocation fails.
func (c *requestClient) SignOut(ctx context.Context, scope string) error {
	defer c.clearCookie()

	if c.tokens == nil {
		return nil
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/logout?scope="+scope, nil)
	if err != nil {
		return err
	}

	resp, err := c.factory.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity sign out: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return providerError(resp)
	}
	return nil
}

// refreshIfNeeded rotates the token pair when the access token is at or past
// expiry. The expiry claim is read without signature verification — it only
// schedules the refresh; authority always comes from the provider round-trip.
func (c *requestClient) refreshIfNeeded(ctx context.Context) error {
	expiry := tokenExpiry(c.tokens.AccessToken)
	if !expiry.IsZero() && time.Now().Add(refreshSkew).Before(expiry) {
		return nil
	}

	body, _ := json.Marshal(map[string]string{"refresh_token": c.tokens.RefreshToken})

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.factory.http.Do(req)
	if err != nil {
		return fmt.Errorf("identity refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providerError(resp)
	}

	var granted struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&granted); err != nil {
		return fmt.Errorf("identity refresh: decode: %w", err)
	}

	c.tokens = &storedSession{AccessToken: granted.AccessToken, RefreshToken: granted.RefreshToken}
	c.writeCookie()
	return nil
}

func (c *requestClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.factory.cfg.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.factory.cfg.AnonKey)
	if c.tokens != nil {
		req.Header.Set("Authorization", "Bearer "+c.tokens.AccessToken)
	}
	return req, nil
}

func (c *requestClient) writeCookie() {
	if c.writer == nil || c.tokens == nil {
		return
	}
	c.writer.SetAll([]ports.Cookie{{
		Name:     c.factory.cfg.CookieName,
		Value:    encodeCookie(*c.tokens),
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HTTPOnly: true,
	}})
}

func (c *requestClient) clearCookie() {
	c.tokens = nil
	if c.writer == nil {
		return
	}
	c.writer.SetAll([]ports.Cookie{{
		Name:     c.factory.cfg.CookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
	}})
}

// tokenExpiry reads the exp claim without verifying the signature. Advisory
// only: it schedules refreshes, never grants access.
func tokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// providerError turns a non-2xx provider response into a typed error carrying
// the provider's machine-readable code.
func providerError(resp *http.Response) error {
	var body struct {
		ErrorCode        string `json:"error_code"`
		Code             string `json:"code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	code := body.ErrorCode
	if code == "" {
		code = body.Code
	}
	if code == "" {
		code = fmt.Sprintf("status_%d", resp.StatusCode)
	}

	message := body.Msg
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = body.ErrorDescription
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return &ports.ProviderError{Code: code, Message: message}
}
