package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/playerok-client/internal/auth"
	"github.com/fivetwenty-io/playerok-client/internal/constants"
	"github.com/fivetwenty-io/playerok-client/pkg/playerok"
)

// Static errors for err113 compliance.
var (
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Logger is the logging surface of the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client sends requests to the marketplace with the session cookie attached.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	tokenManager auth.TokenManager
	userAgent    string
	logger       Logger
	debug        bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries of 5xx, 429 and connection errors.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds every attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// NewClient creates a transport rooted at baseURL. A nil tokenManager sends
// requests without the session cookie.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.HTTPClient.Timeout = constants.DefaultRequestTimeout

	client := &Client{
		baseURL:      baseURL,
		httpClient:   retryClient,
		tokenManager: tokenManager,
		userAgent:    constants.DefaultUserAgents[rand.IntN(len(constants.DefaultUserAgents))], //nolint:gosec // not security sensitive
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// FormField is a plain multipart field.
type FormField struct {
	Name  string
	Value string
}

// FormFile is a multipart file part.
type FormFile struct {
	Field    string
	FileName string
	Reader   io.Reader
}

// Multipart is a multipart/form-data body. Fields are written before files,
// in order.
type Multipart struct {
	Fields []FormField
	Files  []FormFile
}

// Request represents an HTTP request.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      interface{}
	Multipart *Multipart
	Headers   map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Do sends req. The response is returned together with any status error so
// callers can inspect the body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.resolve(req.Path)
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting access token: %w", err)
		}

		httpReq.AddCookie(&http.Cookie{Name: constants.TokenCookieName, Value: token})
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	started := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &playerok.NetworkError{Err: err}
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &playerok.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(started).String(),
			"bytes":    len(respBody),
		})
	}

	return resp, checkResponse(resp)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// PostMultipart performs a POST request with a multipart/form-data body.
func (c *Client) PostMultipart(ctx context.Context, path string, form *Multipart) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Multipart: form})
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.HTTPClient.CloseIdleConnections()
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	return strings.TrimSuffix(c.baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// encodeBody buffers the body so retries can replay it.
func encodeBody(req *Request) ([]byte, string, error) {
	if req.Multipart != nil {
		return encodeMultipart(req.Multipart)
	}

	if req.Body == nil {
		return nil, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling request body: %w", err)
	}

	return data, "application/json", nil
}

func encodeMultipart(form *Multipart) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, field := range form.Fields {
		err := writer.WriteField(field.Name, field.Value)
		if err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", field.Name, err)
		}
	}

	for _, file := range form.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(file.Field), escapeQuotes(file.FileName)))
		header.Set("Content-Type", "application/octet-stream")

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file %s: %w", file.Field, err)
		}

		_, err = io.Copy(part, file.Reader)
		if err != nil {
			return nil, "", fmt.Errorf("writing form file %s: %w", file.Field, err)
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// checkResponse maps challenge pages and error statuses to upstream errors.
func checkResponse(resp *Response) error {
	if isCloudflareChallenge(resp.Body) {
		return &playerok.UpstreamError{StatusCode: resp.StatusCode, Err: playerok.ErrCloudflareDetected}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &playerok.UpstreamError{
			StatusCode: resp.StatusCode,
			Errors:     parseGraphQLErrors(resp.Body),
			Err:        playerok.ErrUnauthorized,
		}
	case resp.StatusCode >= http.StatusBadRequest:
		return &playerok.UpstreamError{
			StatusCode: resp.StatusCode,
			Errors:     parseGraphQLErrors(resp.Body),
			Err:        fmt.Errorf("%w: %s", ErrHTTPStatus, http.StatusText(resp.StatusCode)),
		}
	}

	return nil
}

func isCloudflareChallenge(body []byte) bool {
	for _, signature := range constants.CloudflareSignatures {
		if bytes.Contains(body, []byte(signature)) {
			return true
		}
	}

	return false
}

func parseGraphQLErrors(body []byte) []playerok.GraphQLError {
	var envelope struct {
		Errors []playerok.GraphQLError `json:"errors"`
	}

	if json.Unmarshal(body, &envelope) != nil {
		return nil
	}

	return envelope.Errors
}
