package m365

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"regexp"

	"golang.org/x/time/rate"
)

// Microsoft Graph allows roughly 10.000 requests per 10 minutes per app and tenant.
const (
	requestsPerSecond = 10
	requestBurst      = 15
)

// rateLimitedTransport delays requests to stay below the service throttling limits.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func newRateLimitedTransport(base http.RoundTripper) *rateLimitedTransport {
	return &rateLimitedTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// traceTransport writes every request and response to out.
type traceTransport struct {
	base http.RoundTripper
	out  io.Writer
}

func (t *traceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		fmt.Fprintf(t.out, "> %s\n", redactAuthorization(dump))
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		fmt.Fprintf(t.out, "< error: %v\n", err)
		return nil, err
	}
	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		fmt.Fprintf(t.out, "< %s\n", dump)
	}
	return resp, nil
}

var authorizationRE = regexp.MustCompile(`(?mi)^Authorization: .*$`)

func redactAuthorization(dump []byte) []byte {
	return authorizationRE.ReplaceAll(dump, []byte("Authorization: [redacted]\r"))
}
