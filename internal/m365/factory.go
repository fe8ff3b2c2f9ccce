package m365

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/oauth2"
)

// TokenSourceProvider returns token sources for a resource scope such as
// https://graph.microsoft.com/.default.
type TokenSourceProvider interface {
	TokenSource(ctx context.Context, scope string) (oauth2.TokenSource, error)
}

type FactoryOption func(*clientFactory)

// WithTrace dumps all HTTP traffic to w.
func WithTrace(w io.Writer) FactoryOption {
	return func(f *clientFactory) {
		f.trace = w
	}
}

// WithGraphURL points the Graph client at another endpoint, e.g. a national
// cloud.
func WithGraphURL(u string) FactoryOption {
	return func(f *clientFactory) {
		f.graphURL = u
	}
}

// WithTransport replaces the base transport, mainly for tests.
func WithTransport(rt http.RoundTripper) FactoryOption {
	return func(f *clientFactory) {
		f.base = rt
	}
}

type clientFactory struct {
	tokens   TokenSourceProvider
	graphURL string
	base     http.RoundTripper
	trace  io.Writer
	digest *digestCache

	limited *rateLimitedTransport

	mu      sync.Mutex
	sources map[string]oauth2.TokenSource
}

func NewClientFactory(tokens TokenSourceProvider, opts ...FactoryOption) ClientFactory {
	f := &clientFactory{
		tokens:   tokens,
		graphURL: GraphBaseURL + "/v1.0",
		base:     http.DefaultTransport,
		digest:   newDigestCache(),
		sources:  map[string]oauth2.TokenSource{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.limited = newRateLimitedTransport(f.base)
	return f
}

func (f *clientFactory) Graph(ctx context.Context) (GraphClient, error) {
	ts, err := f.tokenSource(ctx, GraphBaseURL+"/.default")
	if err != nil {
		return nil, err
	}
	sdk, err := newGraphServiceClient(ts, f.graphURL, &http.Client{Transport: f.transport()})
	if err != nil {
		return nil, err
	}
	return &graphClient{sdk: sdk}, nil
}

func (f *clientFactory) SharePoint(ctx context.Context, webURL string) (SharePointClient, error) {
	u, err := url.Parse(webURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid SharePoint URL %q", webURL)
	}
	return f.authenticated(ctx, fmt.Sprintf("%s://%s/.default", u.Scheme, u.Host), acceptSharePoint)
}

func (f *clientFactory) Feed(ctx context.Context) (FeedClient, error) {
	return &restClient{
		http: &http.Client{Transport: f.transport()},
	}, nil
}

func (f *clientFactory) authenticated(ctx context.Context, scope, accept string) (*restClient, error) {
	ts, err := f.tokenSource(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &restClient{
		http: &http.Client{
			Transport: &oauth2.Transport{
				Source: ts,
				Base:   f.transport(),
			},
		},
		accept: accept,
		digest: f.digest,
	}, nil
}

// tokenSource returns one reusing token source per scope, so a command that
// creates several clients signs in once.
func (f *clientFactory) tokenSource(ctx context.Context, scope string) (oauth2.TokenSource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ts, ok := f.sources[scope]; ok {
		return ts, nil
	}
	ts, err := f.tokens.TokenSource(ctx, scope)
	if err != nil {
		return nil, err
	}
	ts = oauth2.ReuseTokenSource(nil, ts)
	f.sources[scope] = ts
	return ts, nil
}

func (f *clientFactory) transport() http.RoundTripper {
	var rt http.RoundTripper = f.limited
	if f.trace != nil {
		rt = &traceTransport{base: rt, out: f.trace}
	}
	return rt
}
