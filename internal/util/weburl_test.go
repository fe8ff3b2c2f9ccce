package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmeckel/m365-cli/internal/util"
)

func TestIsSharePointURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://contoso.sharepoint.com", true},
		{"https://contoso.sharepoint.com/sites/apps", true},
		{"https://contoso-admin.sharepoint.com", true},
		{"https://contoso-my.sharepoint.com/personal/john", true},
		{"http://contoso.sharepoint.com", false},
		{"foo", false},
		{"https://contoso.com/sites/apps", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, util.IsSharePointURL(tt.url))
		})
	}
}

func TestServerRelativePath(t *testing.T) {
	tests := []struct {
		name   string
		webURL string
		path   string
		want   string
	}{
		{"root web", "https://contoso.sharepoint.com", "/Shared Documents/Folder", "/Shared Documents/Folder"},
		{"root web without slash", "https://contoso.sharepoint.com/", "Shared Documents", "/Shared Documents"},
		{"sub site web relative", "https://contoso.sharepoint.com/sites/team", "Shared Documents/", "/sites/team/Shared Documents"},
		{"sub site server relative", "https://contoso.sharepoint.com/sites/team", "/sites/team/Shared Documents", "/sites/team/Shared Documents"},
		{"sub site case insensitive", "https://contoso.sharepoint.com/sites/Team", "/sites/team/Docs", "/sites/team/Docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := util.ServerRelativePath(tt.webURL, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrigin(t *testing.T) {
	o, err := util.Origin("https://contoso.sharepoint.com/sites/team/Shared%20Documents")
	require.NoError(t, err)
	assert.Equal(t, "https://contoso.sharepoint.com", o)

	_, err = util.Origin("/sites/team")
	require.Error(t, err)
}

func TestSameSite(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"case and trailing slash", "https://Contoso.SharePoint.com/sites/a/", "https://contoso.sharepoint.com/sites/a", true},
		{"default port", "https://contoso.sharepoint.com:443", "https://contoso.sharepoint.com", true},
		{"different site", "https://contoso.sharepoint.com/sites/a", "https://contoso.sharepoint.com/sites/b", false},
		{"one empty", "", "https://contoso.sharepoint.com", false},
		{"user info", "https://admin@contoso.sharepoint.com/sites/A", "https://contoso.sharepoint.com/sites/a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, util.SameSite(tt.a, tt.b))
		})
	}
}

func TestNormalizeSiteURL(t *testing.T) {
	assert.Equal(t, "https://contoso.sharepoint.com/sites/team", util.NormalizeSiteURL("https://CONTOSO.sharepoint.com:443/sites/Team/"))
	assert.Equal(t, "https://contoso.sharepoint.com", util.NormalizeSiteURL(" https://contoso.sharepoint.com/ "))
}

func TestEncodeQueryParameter(t *testing.T) {
	assert.Equal(t, "%2FShared%20Documents%2FFo''lde''r", util.EncodeQueryParameter("/Shared Documents/Fo'lde'r"))
	assert.Equal(t, "a!b*(c)~", util.EncodeURIComponent("a!b*(c)~"))
	assert.Equal(t, "%2Fsites%2Fteam%2Fimage%20(1).png", util.EncodeURIComponent("/sites/team/image (1).png"))
}
