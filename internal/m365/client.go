// Package m365 contains the clients for Microsoft Graph and SharePoint Online.
// Graph requests go through the Graph SDK, SharePoint requests use a thin REST
// client. Responses are handed back as raw JSON so callers can pass them
// through to the output unchanged.
package m365

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	GraphBaseURL = "https://graph.microsoft.com"

	acceptSharePoint = "application/json;odata=nometadata"
)

// GraphClient issues requests against Microsoft Graph.
type GraphClient interface {
	// HealthIssues lists the service health issues of the tenant, following
	// all pages. An empty service lists the issues of every service.
	HealthIssues(ctx context.Context, service string) ([]json.RawMessage, error)
	// RootSiteURL returns the web URL of the root SharePoint site.
	RootSiteURL(ctx context.Context) (string, error)
}

// SharePointClient issues REST and CSOM requests against SharePoint Online.
type SharePointClient interface {
	Get(ctx context.Context, url string, out any, opts ...RequestOption) error
	Post(ctx context.Context, url string, body any, out any, opts ...RequestOption) error
	// ProcessQuery posts a CSOM request body to webURL and returns the parsed
	// response array. A CSOM error in the response is returned as *CSOMError.
	ProcessQuery(ctx context.Context, webURL string, body string) ([]json.RawMessage, error)
}

// FeedClient downloads public, unauthenticated documents.
type FeedClient interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ClientFactory creates clients bound to the signed-in connection.
type ClientFactory interface {
	Graph(ctx context.Context) (GraphClient, error)
	SharePoint(ctx context.Context, webURL string) (SharePointClient, error)
	Feed(ctx context.Context) (FeedClient, error)
}

// RequestOption modifies an outgoing request.
type RequestOption func(*http.Request)

// WithHeader sets header key to value.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithAccept overrides the default Accept header.
func WithAccept(value string) RequestOption {
	return WithHeader("Accept", value)
}

// WithContentType sets the Content-Type of the request body.
func WithContentType(value string) RequestOption {
	return WithHeader("Content-Type", value)
}

type restClient struct {
	http   *http.Client
	accept string
	digest *digestCache
}

func (c *restClient) Get(ctx context.Context, url string, out any, opts ...RequestOption) error {
	body, err := c.send(ctx, http.MethodGet, url, nil, opts...)
	if err != nil {
		return err
	}
	return decode(body, out)
}

func (c *restClient) Post(ctx context.Context, url string, body any, out any, opts ...RequestOption) error {
	var payload io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		payload = strings.NewReader(b)
	case []byte:
		payload = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	resp, err := c.send(ctx, http.MethodPost, url, payload, opts...)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *restClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, url, nil)
}

func (c *restClient) send(ctx context.Context, method, url string, body io.Reader, opts ...RequestOption) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.accept != "" {
		req.Header.Set("Accept", c.accept)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	zap.L().Sugar().Debugf("%s %s", method, url)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newRequestError(resp.StatusCode, data)
	}
	return data, nil
}

// decode stores data in out. A *json.RawMessage receives the body verbatim
// and a nil out discards it.
func decode(data []byte, out any) error {
	switch o := out.(type) {
	case nil:
		return nil
	case *json.RawMessage:
		*o = append((*o)[:0], data...)
		return nil
	case *[]byte:
		*o = append((*o)[:0], data...)
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
