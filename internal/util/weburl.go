package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/purell"
)

var rxSharePointURL = regexp.MustCompile(`(?i)^https://[a-z0-9-]+(-admin|-my)?\.sharepoint\.(com|us|de|cn)(/.*)?$`)

// IsSharePointURL reports whether s is an absolute https URL of a SharePoint
// Online site.
func IsSharePointURL(s string) bool {
	return rxSharePointURL.MatchString(strings.TrimSpace(s))
}

// ValidateSharePointURL returns a descriptive error when s is not a SharePoint
// Online URL.
func ValidateSharePointURL(s string) error {
	if !IsSharePointURL(s) {
		return fmt.Errorf("%q is not a valid SharePoint Online site URL", s)
	}
	return nil
}

// TrimWebURL removes a trailing slash from a site URL.
func TrimWebURL(webURL string) string {
	return strings.TrimRight(strings.TrimSpace(webURL), "/")
}

// Origin returns scheme and host of u, e.g. https://contoso.sharepoint.com.
func Origin(u string) (string, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", u)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}

// ServerRelativePath combines the server relative path of webURL with a path
// that is either web relative or already server relative.
func ServerRelativePath(webURL, relativePath string) (string, error) {
	parsed, err := url.Parse(TrimWebURL(webURL))
	if err != nil {
		return "", err
	}
	webPath := strings.TrimRight(parsed.Path, "/")

	p := strings.TrimRight(relativePath, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if webPath != "" && strings.HasPrefix(strings.ToLower(p), strings.ToLower(webPath+"/")) {
		return p, nil
	}
	return webPath + p, nil
}

// NormalizeSiteURL returns the canonical form of a site URL used for
// comparisons and cache keys. Case, default ports, trailing slashes and user
// info are ignored.
func NormalizeSiteURL(s string) string {
	u, err := url.Parse(TrimWebURL(s))
	if err != nil {
		return strings.ToLower(TrimWebURL(s))
	}
	u.User = nil
	return strings.ToLower(purell.NormalizeURL(u, purell.FlagsUsuallySafeGreedy|purell.FlagSortQuery))
}

// SameSite reports whether a and b point to the same site.
func SameSite(a, b string) bool {
	return NormalizeSiteURL(a) == NormalizeSiteURL(b)
}

// EncodeURIComponent escapes s like the ECMAScript function of the same
// name, which is what SharePoint expects inside DecodedUrl parameters.
func EncodeURIComponent(s string) string {
	return uriComponentReplacer.Replace(url.QueryEscape(s))
}

var uriComponentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeQueryParameter doubles single quotes before escaping s, so the value
// can be embedded in an OData string literal.
func EncodeQueryParameter(s string) string {
	return EncodeURIComponent(strings.ReplaceAll(s, "'", "''"))
}
