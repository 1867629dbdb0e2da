// Package adapter talks to the league backend's panel API.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/league-panel/internal/credentials"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/logging"
)

// maxErrorBody caps how much of a failed response is read looking for a message
const maxErrorBody = 64 << 10

// RequestOptions customizes a single gateway call
type RequestOptions struct {
	Method  string            // defaults to GET
	Headers map[string]string // merged over the default Content-Type
	Body    interface{}       // JSON-encoded for non-GET methods
	Token   string            // bearer token; empty means read it from the context's credential store
	// Anonymous sends no Authorization header at all (sign-in)
	Anonymous bool
}

// Gateway performs authenticated JSON requests against the backend.
// It keeps no per-call state and never retries.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewGateway creates a gateway for baseURL with the given request timeout
func NewGateway(baseURL string, timeout time.Duration) *Gateway {
	return NewGatewayWithClient(baseURL, &http.Client{Timeout: timeout})
}

// NewGatewayWithClient creates a gateway using an existing http.Client
func NewGatewayWithClient(baseURL string, client *http.Client) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the backend origin requests are sent to
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Request calls endpoint and decodes a successful JSON body into out.
// Every failure is a *errors.RequestError whose message is the backend's
// "message" field when it sent one.
func (g *Gateway) Request(ctx context.Context, endpoint string, opts RequestOptions, out interface{}) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	logger := logging.FromContext(ctx).Component("gateway").WithFields(map[string]interface{}{
		"method":   method,
		"endpoint": endpoint,
	})

	var body io.Reader
	if opts.Body != nil && method != http.MethodGet {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			logger.WithError(err).Error("failed to encode request body")
			return apperrors.NewRequestError(apperrors.RequestFailed)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, body)
	if err != nil {
		logger.WithError(err).Error("failed to create request")
		return apperrors.NewRequestError(apperrors.RequestFailed)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	if token := g.resolveToken(ctx, opts); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Warn("backend unreachable")
		return apperrors.NewRequestError(apperrors.RequestFailed)
	}
	defer resp.Body.Close()

	logger = logger.WithFields(map[string]interface{}{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := failureFromBody(resp)
		logger.WithField("message", reqErr.Message).Warn("backend rejected request")
		return reqErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Warn("failed to read response body")
		return apperrors.NewRequestError(apperrors.RequestFailed)
	}
	logger.Debug("backend request completed")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.WithError(err).Warn("failed to decode response body")
		return apperrors.NewRequestError(apperrors.RequestFailed)
	}
	return nil
}

func (g *Gateway) resolveToken(ctx context.Context, opts RequestOptions) string {
	if opts.Anonymous {
		return ""
	}
	if opts.Token != "" {
		return opts.Token
	}
	token, _ := credentials.FromContext(ctx).Get(ctx, credentials.TokenKey)
	return token
}

// failureFromBody extracts the backend's "message"; anything else yields the generic status message.
func failureFromBody(resp *http.Response) *apperrors.RequestError {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apperrors.NewStatusError(resp.StatusCode)
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Message) == 0 {
		return apperrors.NewStatusError(resp.StatusCode)
	}

	var message string
	if err := json.Unmarshal(payload.Message, &message); err != nil || message == "" {
		return apperrors.NewStatusError(resp.StatusCode)
	}
	return apperrors.NewRequestError(message)
}

// Do is Request with the decoded type inferred from T
func Do[T any](ctx context.Context, g *Gateway, endpoint string, opts RequestOptions) (T, error) {
	var out T
	if err := g.Request(ctx, endpoint, opts, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Endpoint joins a collection path and an id: Endpoint("/panel/tokens/", 3) == "/panel/tokens/3"
func Endpoint(collection string, id int64, suffix ...string) string {
	path := fmt.Sprintf("%s%d", collection, id)
	for _, s := range suffix {
		path += "/" + s
	}
	return path
}
