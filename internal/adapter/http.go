package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-med-tracker/internal/logger"
	"github.com/MKhiriev/go-med-tracker/models"
	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 15 * time.Second
	retryWaitTime  = 200 * time.Millisecond
)

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the server address; "localhost:8080" is read as http.
	BaseURL string

	// Timeout bounds each request. Zero means 15s.
	Timeout time.Duration

	// Retries is how many times a request rejected with 429 is re-sent.
	Retries int
}

type httpAuthClient struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthClient returns an AuthClient backed by resty with its own
// cookie jar.
func NewHTTPAuthClient(cfg Config, logger *logger.Logger) (AuthClient, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json").
		SetError(&models.ErrorResponse{}).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(retryWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err == nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	return &httpAuthClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAuthClient) setToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *httpAuthClient) Register(ctx context.Context, req models.RegisterRequest) (models.UserResponse, error) {
	return h.signIn(ctx, "/auth/register", req)
}

func (h *httpAuthClient) Login(ctx context.Context, req models.LoginRequest) (models.UserResponse, error) {
	return h.signIn(ctx, "/auth/login", req)
}

func (h *httpAuthClient) StartDemo(ctx context.Context) (models.UserResponse, error) {
	return h.signIn(ctx, "/auth/demo", nil)
}

// signIn posts body to path and stores the bearer token from the response.
func (h *httpAuthClient) signIn(ctx context.Context, path string, body any) (models.UserResponse, error) {
	var user models.UserResponse

	req := h.client.R().SetContext(ctx).SetResult(&user)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Post(path)
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		h.logger.Warn().Err(err).Str("path", path).Msg("sign-in response carried no bearer token")
	} else {
		h.setToken(token)
	}

	return user, nil
}

func (h *httpAuthClient) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.setToken("")
	return nil
}

func (h *httpAuthClient) Me(ctx context.Context) (models.UserResponse, error) {
	var user models.UserResponse

	resp, err := h.authedRequest(ctx).SetResult(&user).Get("/auth/me")
	if err != nil {
		return models.UserResponse{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UserResponse{}, err
	}

	return user, nil
}

func (h *httpAuthClient) Session(ctx context.Context) (models.SessionResponse, error) {
	var session models.SessionResponse

	resp, err := h.authedRequest(ctx).SetResult(&session).Get("/auth/session")
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SessionResponse{}, err
	}

	return session, nil
}

func (h *httpAuthClient) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAuthClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("invalid authorization header %q", value)
	}
	return strings.TrimSpace(token), nil
}
