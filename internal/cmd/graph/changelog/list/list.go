package list

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/text"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const changelogURL = "https://developer.microsoft.com/en-us/graph/changelog/rss"

var (
	versions    = []string{"beta", "v1.0"}
	changeTypes = []string{"Addition", "Change"}
	services    = []string{
		"Applications", "Calendar", "Change notifications", "Cloud communications",
		"Compliance", "Cross-device experiences", "Customer booking", "Device and app management",
		"Education", "Files", "Financials", "Groups",
		"Identity and access", "Mail", "Notes", "Notifications",
		"People and workplace intelligence", "Personal contacts", "Reports", "Search",
		"Security", "Sites and lists", "Tasks and plans", "Teamwork",
		"To-do tasks", "Users", "Workbooks and charts",
	}
)

type listOptions struct {
	versions   []string
	changeType string
	services   []string
	startDate  string
	endDate    string
	exporter   util.Exporter
}

// item is a single changelog entry as it is written to the output.
type item struct {
	GUID        string    `json:"guid"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PubDate     time.Time `json:"pubDate"`
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
	Title       string   `xml:"title"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the changes published in the Microsoft Graph changelog",
		Long: heredoc.Doc(`
			List the entries of the Microsoft Graph changelog, newest first.

			The changelog is read from the public RSS feed and does not require a sign-in.
		`),
		Example: heredoc.Doc(`
			# List all changes
			m365 graph changelog list

			# List additions to the beta endpoint for groups and security
			m365 graph changelog list --versions beta --changeType Addition --services Groups,Security

			# List the changes published in January 2024 as a table
			m365 graph changelog list --startDate 2024-01-01 --endDate 2024-01-31 -o text
		`),
		Aliases: []string{"ls"},
		Args:    util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	util.StringSliceEnumFlag(cmd, &opts.versions, "versions", "", nil, versions, "Only list changes of the given API `versions`")
	util.StringEnumFlag(cmd, &opts.changeType, "changeType", "", "", changeTypes, "Only list changes of this type")
	util.StringSliceEnumFlag(cmd, &opts.services, "services", "", nil, services, "Only list changes to the given `services`")
	cmd.Flags().StringVar(&opts.startDate, "startDate", "", "Only list changes published on or after this ISO `date`")
	cmd.Flags().StringVar(&opts.endDate, "endDate", "", "Only list changes published on or before this ISO `date`")

	util.DisableAuthCheck(cmd)
	util.AddOutputFlags(cmd, &opts.exporter, []string{
		"guid", "category", "title", "description", "pubDate",
	}, []string{"category", "title", "description"})

	return cmd
}

// dateRange holds the parsed start and end filters. end is exclusive.
type dateRange struct {
	start time.Time
	end   time.Time
}

func (r dateRange) contains(t time.Time) bool {
	if !r.start.IsZero() && t.Before(r.start) {
		return false
	}
	if !r.end.IsZero() && !t.Before(r.end) {
		return false
	}
	return true
}

func parseDateRange(startDate, endDate string) (dateRange, error) {
	var r dateRange
	var err error
	if startDate != "" {
		r.start, _, err = parseISODate(startDate)
		if err != nil {
			return r, util.FlagErrorf("%s is not a valid ISO date for --startDate", startDate)
		}
	}
	if endDate != "" {
		end, dateOnly, err := parseISODate(endDate)
		if err != nil {
			return r, util.FlagErrorf("%s is not a valid ISO date for --endDate", endDate)
		}
		if !r.start.IsZero() && end.Before(r.start) {
			return r, util.FlagErrorf("--endDate cannot be before --startDate")
		}
		if dateOnly {
			// a plain date includes the whole day
			end = end.AddDate(0, 0, 1)
		} else {
			end = end.Add(time.Nanosecond)
		}
		r.end = end
	}
	return r, nil
}

func parseISODate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}

var pubDateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 Z",
}

func parsePubDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", s)
}

func changelogRequestURL(changeType string) string {
	if changeType == "" {
		return changelogURL
	}
	return changelogURL + "/?filterBy=" + changeType
}

// parseFeed decodes the RSS document. A leading byte order mark selects the
// encoding, otherwise UTF-8 is assumed.
func parseFeed(data []byte) ([]item, error) {
	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode changelog feed: %w", err)
	}
	var feed rssFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse changelog feed: %w", err)
	}
	return lo.Map(feed.Channel.Items, func(ri rssItem, _ int) item {
		category, _ := lo.Find(ri.Categories, func(c string) bool { return c != "prd" })
		pubDate, err := parsePubDate(ri.PubDate)
		if err != nil {
			zap.L().Sugar().Debugf("changelog item %s: %v", ri.GUID, err)
		}
		return item{
			GUID:        strings.TrimSpace(ri.GUID),
			Category:    strings.TrimSpace(category),
			Title:       strings.TrimSpace(ri.Title),
			Description: strings.TrimSpace(ri.Description),
			PubDate:     pubDate,
		}
	}), nil
}

func filterItems(items []item, opts *listOptions, dates dateRange) []item {
	versionSet := hashset.New()
	for _, v := range opts.versions {
		versionSet.Add(strings.ToLower(v))
	}
	serviceSet := hashset.New()
	for _, s := range opts.services {
		serviceSet.Add(strings.ToLower(s))
	}

	return lo.Filter(items, func(i item, _ int) bool {
		if !versionSet.Empty() && !versionSet.Contains(strings.ToLower(i.Category)) {
			return false
		}
		if !serviceSet.Empty() && !serviceSet.Contains(strings.ToLower(i.Title)) {
			return false
		}
		return dates.contains(i.PubDate)
	})
}

func runCommand(ctx util.CmdContext, opts *listOptions) error {
	dates, err := parseDateRange(opts.startDate, opts.endDate)
	if err != nil {
		return err
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	client, err := ctx.ClientFactory().Feed(ctx.Context())
	if err != nil {
		return err
	}

	ios.StartProgressIndicator()
	defer ios.StopProgressIndicator()

	url := changelogRequestURL(opts.changeType)
	zap.L().Sugar().Debugf("retrieving changelog from %s", url)
	data, err := client.Fetch(ctx.Context(), url)
	if err != nil {
		return err
	}

	items, err := parseFeed(data)
	if err != nil {
		return err
	}
	items = filterItems(items, opts, dates)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PubDate.After(items[j].PubDate)
	})

	ios.StopProgressIndicator()
	ios.Verbosef("Found %d changelog entries\n", len(items))

	if opts.exporter.Format() == util.OutputText {
		for i := range items {
			items[i].Description = text.Shorten(50, text.StripEmphasis(items[i].Description))
		}
	}
	return opts.exporter.Write(ios, items)
}
