package m365

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spewerspew/spew"
	"github.com/tidwall/gjson"
	"github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

const (
	// CSOM error code SharePoint returns when the form digest is invalid or expired.
	invalidDigestCode = -2130575251
	// digests are refreshed this long before SharePoint considers them expired
	digestSafetyMargin = 60 * time.Second
)

type formDigest struct {
	value   string
	expires time.Time
}

// digestCache keeps one form digest per web URL.
type digestCache struct {
	mu      sync.Mutex
	now     func() time.Time
	digests map[string]formDigest
}

func newDigestCache() *digestCache {
	return &digestCache{
		now:     time.Now,
		digests: map[string]formDigest{},
	}
}

func (d *digestCache) get(webURL string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fd, ok := d.digests[digestKey(webURL)]
	if !ok || !d.now().Before(fd.expires) {
		return "", false
	}
	return fd.value, true
}

func (d *digestCache) put(webURL, value string, timeout time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.digests[digestKey(webURL)] = formDigest{
		value:   value,
		expires: d.now().Add(timeout - digestSafetyMargin),
	}
}

func (d *digestCache) invalidate(webURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.digests, digestKey(webURL))
}

func digestKey(webURL string) string {
	return util.NormalizeSiteURL(webURL)
}

// RequestDigest returns a form digest for webURL, requesting a new one from
// SharePoint when none is cached or the cached one is about to expire.
func (c *restClient) RequestDigest(ctx context.Context, webURL string) (string, error) {
	if v, ok := c.digest.get(webURL); ok {
		return v, nil
	}

	var info json.RawMessage
	if err := c.Post(ctx, strings.TrimRight(webURL, "/")+"/_api/contextinfo", nil, &info); err != nil {
		return "", fmt.Errorf("failed to request form digest: %w", err)
	}
	value := gjson.GetBytes(info, "FormDigestValue").String()
	if value == "" {
		return "", fmt.Errorf("failed to request form digest: response did not contain a digest")
	}
	timeout := time.Duration(gjson.GetBytes(info, "FormDigestTimeoutSeconds").Int()) * time.Second
	c.digest.put(webURL, value, timeout)
	return value, nil
}

func (c *restClient) ProcessQuery(ctx context.Context, webURL string, body string) ([]json.RawMessage, error) {
	for retried := false; ; retried = true {
		digest, err := c.RequestDigest(ctx, webURL)
		if err != nil {
			return nil, err
		}
		res, err := c.processQuery(ctx, webURL, digest, body)
		if !retried && isInvalidDigest(err) {
			zap.L().Sugar().Debugf("form digest for %s was rejected, requesting a new one", webURL)
			c.digest.invalidate(webURL)
			continue
		}
		return res, err
	}
}

func (c *restClient) processQuery(ctx context.Context, webURL, digest, body string) ([]json.RawMessage, error) {
	var raw json.RawMessage
	err := c.Post(ctx, strings.TrimRight(webURL, "/")+"/_vti_bin/client.svc/ProcessQuery", body, &raw,
		WithContentType("text/xml"),
		WithHeader("X-RequestDigest", digest))
	if err != nil {
		return nil, err
	}

	var res []json.RawMessage
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode CSOM response: %w", err)
	}
	if zap.L().Core().Enabled(zap.DebugLevel) {
		zap.L().Sugar().Debugf("CSOM response: %s", spew.Sdump(res))
	}
	if len(res) == 0 {
		return nil, errors.New("empty CSOM response")
	}
	if cerr := csomError(res[0]); cerr != nil {
		return nil, cerr
	}
	return res, nil
}

// isInvalidDigest reports whether SharePoint rejected the form digest of a
// ProcessQuery call, either with the CSOM error code or a 403 about security
// validation.
func isInvalidDigest(err error) bool {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode == http.StatusForbidden &&
			strings.Contains(strings.ToLower(re.Message), "security validation")
	}
	var ce *CSOMError
	return errors.As(err, &ce) && ce.Code == invalidDigestCode
}
