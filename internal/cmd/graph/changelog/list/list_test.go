package list

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/mocks"
	"go.uber.org/mock/gomock"
)

const feed = `
<rss version="2.0">
  <channel xmlns:atom="http://www.w3.org/2005/Atom">
    <title>Microsoft Graph Changelog</title>
    <lastBuildDate>Tue, 12 Jul 2022 09:58:42 Z</lastBuildDate>
    <item>
      <guid isPermaLink="false">7f1afeea-1c73-4e84-af08-8c9cd0fe27d5v1.0</guid>
      <category>prd</category>
      <category>v1.0</category>
      <title>Groups</title>
      <description>Added something.</description>
      <pubDate>2019-01-01T00:00:00.000Z</pubDate>
    </item>
    <item>
      <guid isPermaLink="false">7f1afeea-1c73-4e84-af08-8c9cd0fe27d5beta</guid>
      <category>prd</category>
      <category>beta</category>
      <title>Security</title>
      <description>Added _wellKnownName_ and _userConfigurations_ properties to the **mailFolder** entity.</description>
      <pubDate>2019-02-01T00:00:00.000Z</pubDate>
    </item>
    <item>
      <guid isPermaLink="false">a1</guid>
      <category>prd</category>
      <category>beta</category>
      <title>Mail</title>
      <description>Changed mail.</description>
      <pubDate>Mon, 04 Mar 2019 10:00:00 Z</pubDate>
    </item>
  </channel>
</rss>`

func setup(t *testing.T) (*mocks.MockCmdContext, *mocks.MockFeedClient, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)

	io, _, out, _ := iostreams.Test()
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	factory := mocks.NewMockClientFactory(ctrl)
	client := mocks.NewMockFeedClient(ctrl)

	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(factory).AnyTimes()
	factory.EXPECT().Feed(gomock.Any()).Return(client, nil).AnyTimes()

	return cmdCtx, client, out
}

func TestListChangelog(t *testing.T) {
	cmdCtx, client, out := setup(t)
	client.EXPECT().Fetch(gomock.Any(), changelogURL).Return([]byte(feed), nil)

	err := runCommand(cmdCtx, &listOptions{exporter: util.NewExporter(util.OutputJSON)})
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{
			"guid": "a1",
			"category": "beta",
			"title": "Mail",
			"description": "Changed mail.",
			"pubDate": "2019-03-04T10:00:00Z"
		},
		{
			"guid": "7f1afeea-1c73-4e84-af08-8c9cd0fe27d5beta",
			"category": "beta",
			"title": "Security",
			"description": "Added _wellKnownName_ and _userConfigurations_ properties to the **mailFolder** entity.",
			"pubDate": "2019-02-01T00:00:00Z"
		},
		{
			"guid": "7f1afeea-1c73-4e84-af08-8c9cd0fe27d5v1.0",
			"category": "v1.0",
			"title": "Groups",
			"description": "Added something.",
			"pubDate": "2019-01-01T00:00:00Z"
		}
	]`, out.String())
}

func TestListChangelogText(t *testing.T) {
	cmdCtx, client, out := setup(t)
	client.EXPECT().Fetch(gomock.Any(), changelogURL).Return([]byte(feed), nil)

	err := runCommand(cmdCtx, &listOptions{
		exporter: util.NewExporter(util.OutputText, "category", "title", "description"),
	})
	require.NoError(t, err)

	assert.Equal(t,
		"beta\tMail\tChanged mail.\n"+
			"beta\tSecurity\tAdded wellKnownName and userConfigurations prop...\n"+
			"v1.0\tGroups\tAdded something.\n",
		out.String())
}

func TestListChangelogByChangeType(t *testing.T) {
	cmdCtx, client, _ := setup(t)
	client.EXPECT().
		Fetch(gomock.Any(), "https://developer.microsoft.com/en-us/graph/changelog/rss/?filterBy=Addition").
		Return([]byte(feed), nil)

	cmd := NewCmd(cmdCtx)
	cmd.SetArgs([]string{"--changeType", "addition"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)
}

func TestListChangelogFilters(t *testing.T) {
	cmdCtx, client, out := setup(t)
	client.EXPECT().Fetch(gomock.Any(), changelogURL).Return([]byte(feed), nil)

	cmd := NewCmd(cmdCtx)
	cmd.SetArgs([]string{
		"--versions", "beta,v1.0",
		"--services", "groups, Security",
		"--startDate", "2018-12-01",
		"--endDate", "2019-03-01",
		"--json", "guid",
	})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"guid": "7f1afeea-1c73-4e84-af08-8c9cd0fe27d5beta"},
		{"guid": "7f1afeea-1c73-4e84-af08-8c9cd0fe27d5v1.0"}
	]`, out.String())
}

func TestListChangelogEndDateIncludesWholeDay(t *testing.T) {
	cmdCtx, client, out := setup(t)
	client.EXPECT().Fetch(gomock.Any(), changelogURL).Return([]byte(feed), nil)

	err := runCommand(cmdCtx, &listOptions{
		startDate: "2019-03-04",
		endDate:   "2019-03-04",
		exporter:  util.NewExporter(util.OutputText, "guid"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a1\n", out.String())
}

func TestListChangelogInvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "invalid version",
			args:    []string{"--versions", "v2.0"},
			wantErr: "valid values are {beta|v1.0}",
		},
		{
			name:    "invalid change type",
			args:    []string{"--changeType", "Removal"},
			wantErr: "valid values are {Addition|Change}",
		},
		{
			name:    "invalid service",
			args:    []string{"--services", "Groups,Planets"},
			wantErr: "valid values are",
		},
		{
			name:    "invalid start date",
			args:    []string{"--startDate", "invalid"},
			wantErr: "invalid is not a valid ISO date for --startDate",
		},
		{
			name:    "invalid end date",
			args:    []string{"--endDate", "invalid"},
			wantErr: "invalid is not a valid ISO date for --endDate",
		},
		{
			name:    "end before start",
			args:    []string{"--startDate", "2018-12-01", "--endDate", "2018-11-01"},
			wantErr: "--endDate cannot be before --startDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdCtx, _, _ := setup(t)

			cmd := NewCmd(cmdCtx)
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			_, err := cmd.ExecuteC()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestListChangelogDateErrorsAreFlagErrors(t *testing.T) {
	cmdCtx, _, _ := setup(t)

	err := runCommand(cmdCtx, &listOptions{startDate: "2019-13-01", exporter: util.NewExporter(util.OutputJSON)})

	var flagErr *util.ErrFlag
	require.True(t, errors.As(err, &flagErr))
}

func TestListChangelogFetchError(t *testing.T) {
	cmdCtx, client, _ := setup(t)
	client.EXPECT().Fetch(gomock.Any(), changelogURL).Return(nil, errors.New("An error has occurred"))

	err := runCommand(cmdCtx, &listOptions{exporter: util.NewExporter(util.OutputJSON)})
	assert.EqualError(t, err, "An error has occurred")
}

func TestListChangelogInvalidFeed(t *testing.T) {
	cmdCtx, client, _ := setup(t)
	client.EXPECT().Fetch(gomock.Any(), changelogURL).Return([]byte("<rss><channel>"), nil)

	err := runCommand(cmdCtx, &listOptions{exporter: util.NewExporter(util.OutputJSON)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse changelog feed")
}

func TestParseFeedSkipsByteOrderMark(t *testing.T) {
	items, err := parseFeed(append([]byte("\xef\xbb\xbf"), feed...))
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Groups", items[0].Title)
	assert.Equal(t, "v1.0", items[0].Category)
}

func TestParseFeed(t *testing.T) {
	items, err := parseFeed([]byte(feed))
	require.NoError(t, err)

	want := []item{
		{
			GUID:        "7f1afeea-1c73-4e84-af08-8c9cd0fe27d5v1.0",
			Category:    "v1.0",
			Title:       "Groups",
			Description: "Added something.",
			PubDate:     time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			GUID:        "7f1afeea-1c73-4e84-af08-8c9cd0fe27d5beta",
			Category:    "beta",
			Title:       "Security",
			Description: "Added _wellKnownName_ and _userConfigurations_ properties to the **mailFolder** entity.",
			PubDate:     time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			GUID:        "a1",
			Category:    "beta",
			Title:       "Mail",
			Description: "Changed mail.",
			PubDate:     time.Date(2019, 3, 4, 10, 0, 0, 0, time.UTC),
		},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("parseFeed() mismatch (-want +got):\n%s", diff)
	}
}
