package m365

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newGraphClient(t *testing.T, handler http.HandlerFunc) (GraphClient, *staticTokens) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := &staticTokens{}
	c, err := NewClientFactory(tokens, WithGraphURL(srv.URL+"/v1.0")).Graph(context.Background())
	require.NoError(t, err)
	return c, tokens
}

func TestGraphHealthIssuesFollowsNextLink(t *testing.T) {
	var srvURL string
	c, tokens := newGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1.0/admin/serviceAnnouncement/issues", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "":
			fmt.Fprintf(w, `{"value":[{"id":"EX1","title":"Mail delays"},{"id":"EX2"}],"@odata.nextLink":"%s/v1.0/admin/serviceAnnouncement/issues?page=2"}`, srvURL)
		case "2":
			fmt.Fprint(w, `{"value":[{"id":"SP3","isResolved":true}]}`)
		}
	})
	srvURL = graphServerURL(t, c)

	items, err := c.HealthIssues(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "EX1", gjson.GetBytes(items[0], "id").String())
	assert.Equal(t, "Mail delays", gjson.GetBytes(items[0], "title").String())
	assert.True(t, gjson.GetBytes(items[2], "isResolved").Bool())
	assert.Equal(t, []string{"https://graph.microsoft.com/.default"}, tokens.scopes)
}

func TestGraphHealthIssuesFiltersByService(t *testing.T) {
	c, _ := newGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "service eq 'Contoso''s Forms'", r.URL.Query().Get("$filter"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":[]}`)
	})

	items, err := c.HealthIssues(context.Background(), " Contoso's Forms ")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGraphRootSiteURL(t *testing.T) {
	c, _ := newGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1.0/sites/root", r.URL.Path)
		assert.Equal(t, "webUrl", r.URL.Query().Get("$select"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"webUrl":"https://contoso.sharepoint.com"}`)
	})

	u, err := c.RootSiteURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://contoso.sharepoint.com", u)
}

func TestGraphErrorsAreRequestErrors(t *testing.T) {
	c, _ := newGraphClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":"UnknownError","message":"Missing role ServiceHealth.Read.All"}}`)
	})

	_, err := c.HealthIssues(context.Background(), "")
	require.EqualError(t, err, "Missing role ServiceHealth.Read.All")
	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusForbidden, re.StatusCode)
}

// graphServerURL returns the origin the client was pointed at.
func graphServerURL(t *testing.T, c GraphClient) string {
	t.Helper()
	gc, ok := c.(*graphClient)
	require.True(t, ok)
	base := gc.sdk.GetAdapter().GetBaseUrl()
	return base[:len(base)-len("/v1.0")]
}
