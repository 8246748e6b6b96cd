package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ScopeReadonly is the only Drive scope this application ever requests.
const ScopeReadonly = "https://www.googleapis.com/auth/drive.readonly"

const (
	// defaultRateLimit keeps one scan well under the per-user Drive
	// quota even with several scans running for different users.
	defaultRateLimit = 100 // requests per minute

	// defaultRetryWait applies when a throttling response carries no
	// Retry-After header.
	defaultRetryWait = 30 * time.Second
)

// Config holds the OAuth application credentials shared by every
// per-user client.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RateLimit    int // requests per minute, 0 means defaultRateLimit
}

// ConfigFromEnv reads the Google API credentials from the environment.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}
	return cfg, nil
}

// OAuth returns the oauth2 configuration used both for the consent flow
// and for refreshing stored tokens.
func (c *Config) OAuth() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURI,
		Scopes:       []string{ScopeReadonly},
		Endpoint:     google.Endpoint,
	}
}

// Client wraps the Drive v3 service for a single user. Every remote call
// waits on the rate limiter first and retries once when Drive answers
// with a throttling status.
type Client struct {
	service *gdrive.Service
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient builds a per-user client from a stored credential token.
func NewClient(ctx context.Context, cfg *Config, tokenJSON string, logger *zap.Logger) (*Client, error) {
	token, err := ParseToken(tokenJSON)
	if err != nil {
		return nil, fmt.Errorf("parsing stored credential: %w", err)
	}
	source := cfg.OAuth().TokenSource(ctx, token)
	service, err := gdrive.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	return newClient(service, limit, logger), nil
}

func newClient(service *gdrive.Service, requestsPerMinute int, logger *zap.Logger) *Client {
	return &Client{
		service: service,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
		logger:  logger,
	}
}

// List runs one page of a file listing query. Pagination is driven by
// the caller: pass the returned token back in until it comes back empty.
func (c *Client) List(ctx context.Context, query string, pageSize int64, pageToken string) ([]FileMeta, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	call := c.service.Files.List().
		Q(query).
		PageSize(pageSize).
		Fields("nextPageToken, files(id, name, mimeType, parents, size)").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	result, err := call.Do()
	if err != nil {
		if result, err = retryThrottled(ctx, c, err, call.Do); err != nil {
			return nil, "", fmt.Errorf("listing files: %w", err)
		}
	}

	files := make([]FileMeta, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, toFileMeta(f))
	}
	return files, result.NextPageToken, nil
}

// Get fetches metadata for a single file or folder.
func (c *Client) Get(ctx context.Context, fileID, fields string) (FileMeta, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return FileMeta{}, err
	}
	call := c.service.Files.Get(fileID).Fields(googleapi.Field(fields)).Context(ctx)

	f, err := call.Do()
	if err != nil {
		if f, err = retryThrottled(ctx, c, err, call.Do); err != nil {
			return FileMeta{}, fmt.Errorf("fetching file %s: %w", fileID, err)
		}
	}
	return toFileMeta(f), nil
}

// Download streams a file's content along with its length and content
// type as reported by the server. The caller owns the returned body.
func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, int64, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, "", err
	}
	resp, err := c.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, 0, "", fmt.Errorf("downloading file %s: %w", fileID, err)
	}
	return resp.Body, resp.ContentLength, resp.Header.Get("Content-Type"), nil
}

func toFileMeta(f *gdrive.File) FileMeta {
	return FileMeta{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Parents:  f.Parents,
		Size:     f.Size,
	}
}

// throttleWait extracts the backoff duration from a throttling error.
func throttleWait(err error) (time.Duration, bool) {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return 0, false
	}
	if apiErr.Code != http.StatusTooManyRequests && apiErr.Code != http.StatusServiceUnavailable {
		return 0, false
	}
	if h := apiErr.Header.Get("Retry-After"); h != "" {
		if seconds, convErr := strconv.Atoi(h); convErr == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second, true
		}
	}
	return defaultRetryWait, true
}

// retryThrottled waits out a throttling response and retries the call
// once. Any other error is returned unchanged.
func retryThrottled[T any](ctx context.Context, c *Client, err error, do func(...googleapi.CallOption) (T, error)) (T, error) {
	wait, ok := throttleWait(err)
	if !ok {
		var zero T
		return zero, err
	}
	c.logger.Warn("drive throttled request, backing off", zap.Duration("wait", wait))
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-time.After(wait):
	}
	return do()
}
