package perception

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MoLinesGitHub/NeuroViewss-sub002/pkg/frame"
)

// ClientConfig holds HTTP perception client configuration.
type ClientConfig struct {
	// BaseURL is the perception service base URL, e.g. "http://localhost:9400/v1".
	BaseURL string

	// APIKey is optional; local services typically run without auth.
	APIKey string

	// Timeout bounds each category request.
	Timeout time.Duration

	// Retry configuration for 429/5xx responses.
	MaxRetries int
	RetryDelay time.Duration

	// Logger for request diagnostics.
	Logger *slog.Logger
}

// DefaultClientConfig returns sensible defaults for a local service.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:    "http://localhost:9400/v1",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		RetryDelay: 50 * time.Millisecond,
		Logger:     slog.Default(),
	}
}

// Client is the HTTP perception provider. It speaks a simple JSON protocol:
// one POST per detection category, frame pixels inlined as base64.
type Client struct {
	baseURL string
	apiKey  string
	config  ClientConfig
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new perception HTTP client.
func NewClient(cfg ClientConfig) *Client {
	def := DefaultClientConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		config:  cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger.With("component", "perception.client"),
	}
}

// frameRequest is the wire format for a single-category detection request.
type frameRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Image  string `json:"image"` // base64-encoded pixel data
}

func encodeFrame(f *frame.Frame) (*frameRequest, error) {
	if f == nil || len(f.Pixels) == 0 {
		return nil, ErrNoFrame
	}
	return &frameRequest{
		Width:  f.Width,
		Height: f.Height,
		Format: f.Format.String(),
		Image:  base64.StdEncoding.EncodeToString(f.Pixels),
	}, nil
}

// DetectFaces requests face detections for the frame.
func (c *Client) DetectFaces(ctx context.Context, f *frame.Frame) ([]Face, error) {
	var out struct {
		Faces []Face `json:"faces"`
	}
	if err := c.detect(ctx, CategoryFaces, f, &out); err != nil {
		return nil, err
	}
	return out.Faces, nil
}

// DetectBodies requests body-pose detections for the frame.
func (c *Client) DetectBodies(ctx context.Context, f *frame.Frame) ([]BodyPose, error) {
	var out struct {
		Bodies []BodyPose `json:"bodies"`
	}
	if err := c.detect(ctx, CategoryBodies, f, &out); err != nil {
		return nil, err
	}
	return out.Bodies, nil
}

// DetectObjects requests generic object detections for the frame.
func (c *Client) DetectObjects(ctx context.Context, f *frame.Frame) ([]Object, error) {
	var out struct {
		Objects []Object `json:"objects"`
	}
	if err := c.detect(ctx, CategoryObjects, f, &out); err != nil {
		return nil, err
	}
	return out.Objects, nil
}

// DetectHorizon requests the horizon measurement for the frame.
// Returns (nil, nil) when no horizon is visible.
func (c *Client) DetectHorizon(ctx context.Context, f *frame.Frame) (*Horizon, error) {
	var out struct {
		Horizon *Horizon `json:"horizon"`
	}
	if err := c.detect(ctx, CategoryHorizon, f, &out); err != nil {
		return nil, err
	}
	return out.Horizon, nil
}

// MeasureLuminance requests the luminance summary for the frame.
func (c *Client) MeasureLuminance(ctx context.Context, f *frame.Frame) (*Luminance, error) {
	var out struct {
		Luminance *Luminance `json:"luminance"`
	}
	if err := c.detect(ctx, CategoryLuminance, f, &out); err != nil {
		return nil, err
	}
	if out.Luminance == nil {
		return nil, WrapCategory(CategoryLuminance, ErrUnavailable)
	}
	return out.Luminance, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// detect performs one category request and decodes the response into out.
func (c *Client) detect(ctx context.Context, category string, f *frame.Frame, out interface{}) error {
	payload, err := encodeFrame(f)
	if err != nil {
		return WrapCategory(category, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return WrapCategory(category, fmt.Errorf("marshal payload: %w", err))
	}

	url := c.baseURL + "/" + category
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return WrapCategory(category, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.doWithRetry(ctx, req, body, category)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Service does not implement this category.
		return WrapCategory(category, ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp, category)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return WrapCategory(category, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// doWithRetry performs the request with retry on 429/5xx.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, body []byte, category string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, WrapCategory(category, ctx.Err())
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			// Reset body for retry
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = WrapCategory(category, err)
			c.logger.Warn("request failed, retrying",
				"category", category,
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = c.parseError(resp, category)
			c.logger.Warn("retrying request",
				"category", category,
				"attempt", attempt+1,
				"status", resp.StatusCode,
			)
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// parseError reads and parses an error response.
func (c *Client) parseError(resp *http.Response, category string) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error string `json:"error"`
	}

	message := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		message = errResp.Error
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Category:   category,
	}
}

// Verify Client implements Provider at compile time.
var _ Provider = (*Client)(nil)
