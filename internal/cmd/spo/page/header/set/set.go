package set

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/m365"
	iutil "github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

const (
	headerTypeNone    = "None"
	headerTypeDefault = "Default"
	headerTypeCustom  = "Custom"

	layoutNoImage = "NoImage"

	// web part id of the page title region
	titleRegionID = "cbe7b0a9-3504-44dd-a3a3-0e5cacd07788"

	imageSourceTypeDefault = 4
	imageSourceTypeCustom  = 2
)

var (
	headerTypes    = []string{headerTypeNone, headerTypeDefault, headerTypeCustom}
	layouts        = []string{"FullWidthImage", layoutNoImage, "ColorBlock", "CutInShape"}
	textAlignments = []string{"Left", "Center"}
)

type setOptions struct {
	pageName        string
	webURL          string
	headerType      string
	imageURL        string
	altText         string
	translateX      float64
	translateY      float64
	layout          string
	textAlignment   string
	showTopicHeader bool
	topicHeader     string
	showPublishDate bool
	authors         string
}

type headerControl struct {
	ID                     string                 `json:"id"`
	InstanceID             string                 `json:"instanceId"`
	Title                  string                 `json:"title"`
	Description            string                 `json:"description"`
	ServerProcessedContent serverProcessedContent `json:"serverProcessedContent"`
	DataVersion            string                 `json:"dataVersion"`
	Properties             headerProperties       `json:"properties"`
}

type serverProcessedContent struct {
	HTMLStrings          struct{}          `json:"htmlStrings"`
	SearchablePlainTexts struct{}          `json:"searchablePlainTexts"`
	ImageSources         map[string]string `json:"imageSources"`
	Links                struct{}          `json:"links"`
	CustomMetadata       *customMetadata   `json:"customMetadata,omitempty"`
}

type customMetadata struct {
	ImageSource imageIDs `json:"imageSource"`
}

type imageIDs struct {
	SiteID   string `json:"siteId"`
	WebID    string `json:"webId"`
	ListID   string `json:"listId"`
	UniqueID string `json:"uniqueId"`
}

type headerProperties struct {
	Title           string `json:"title,omitempty"`
	ImageSourceType int    `json:"imageSourceType"`
	LayoutType      string `json:"layoutType"`
	TextAlignment   string `json:"textAlignment"`
	ShowTopicHeader bool   `json:"showTopicHeader"`
	ShowPublishDate bool   `json:"showPublishDate"`
	TopicHeader     string `json:"topicHeader"`
	*customImage
}

// customImage holds the properties only present on headers of type Custom.
type customImage struct {
	Authors    []string `json:"authors"`
	AltText    string   `json:"altText"`
	WebID      string   `json:"webId"`
	SiteID     string   `json:"siteId"`
	ListID     string   `json:"listId"`
	UniqueID   string   `json:"uniqueId"`
	TranslateX float64  `json:"translateX"`
	TranslateY float64  `json:"translateY"`
}

type draft struct {
	LayoutWebpartsContent string    `json:"LayoutWebpartsContent"`
	Title                 string    `json:"Title,omitempty"`
	TopicHeader           string    `json:"TopicHeader,omitempty"`
	AuthorByline          *[]string `json:"AuthorByline,omitempty"`
	CanvasContent1        string    `json:"CanvasContent1,omitempty"`
}

type pageInfo struct {
	IsPageCheckedOutToCurrentUser bool   `json:"IsPageCheckedOutToCurrentUser"`
	Title                         string `json:"Title"`
}

type pageData struct {
	CanvasContent1 string `json:"CanvasContent1"`
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the header of a modern page",
		Long: heredoc.Docf(`
			Set the title region of a modern SharePoint page and save the page as a draft.

			The page is checked out when it is not checked out to you already. Use
			%[1]sm365 spo page publish%[1]s in the SharePoint UI to publish the changes.

			With %[1]s--type Custom%[1]s the header shows the image given with %[1]s--imageUrl%[1]s,
			focused on the point given by %[1]s--translateX%[1]s and %[1]s--translateY%[1]s.
		`, "`"),
		Example: heredoc.Doc(`
			# Reset the header of a page to the default
			m365 spo page header set --webUrl https://contoso.sharepoint.com/sites/team-a --pageName page.aspx

			# Use a custom image as header
			m365 spo page header set --webUrl https://contoso.sharepoint.com/sites/team-a --pageName page --type Custom --imageUrl /sites/team-a/SiteAssets/hero.jpg --altText "Sunset" --translateX 42.3 --translateY 56.4

			# Show the topic header and the authors
			m365 spo page header set --webUrl https://contoso.sharepoint.com/sites/team-a --pageName page.aspx --showTopicHeader --topicHeader "Team Awesome" --authors "Joe Doe, Jane Doe"
		`),
		Args: util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pageName, "pageName", "n", "", "Name of the page, e.g. home.aspx")
	cmd.Flags().StringVarP(&opts.webURL, "webUrl", "u", "", "Absolute URL of the site where the page is located")
	util.StringEnumFlag(cmd, &opts.headerType, "type", "", headerTypeDefault, headerTypes, "Type of the header")
	cmd.Flags().StringVar(&opts.imageURL, "imageUrl", "", "Server relative URL of the image for a custom header")
	cmd.Flags().StringVar(&opts.altText, "altText", "", "Alternative text of the header image")
	cmd.Flags().Float64Var(&opts.translateX, "translateX", 0, "X focus coordinate of the header image")
	cmd.Flags().Float64Var(&opts.translateY, "translateY", 0, "Y focus coordinate of the header image")
	util.StringEnumFlag(cmd, &opts.layout, "layout", "", layouts[0], layouts, "Layout of the header")
	util.StringEnumFlag(cmd, &opts.textAlignment, "textAlignment", "", textAlignments[0], textAlignments, "Alignment of the title")
	cmd.Flags().BoolVar(&opts.showTopicHeader, "showTopicHeader", false, "Show the topic header above the title")
	cmd.Flags().StringVar(&opts.topicHeader, "topicHeader", "", "Text of the topic header")
	cmd.Flags().BoolVar(&opts.showPublishDate, "showPublishDate", false, "Show the publish date below the title")
	cmd.Flags().StringVar(&opts.authors, "authors", "", "Comma separated list of page authors")

	_ = cmd.MarkFlagRequired("pageName")
	_ = cmd.MarkFlagRequired("webUrl")

	return cmd
}

func validate(opts *setOptions) error {
	if err := iutil.ValidateSharePointURL(opts.webURL); err != nil {
		return util.FlagErrorWrap(err)
	}
	if strings.TrimSpace(opts.pageName) == "" {
		return util.FlagErrorf("`--pageName` must not be empty")
	}
	checks := []struct {
		flag    string
		value   string
		allowed []string
	}{
		{"type", opts.headerType, headerTypes},
		{"layout", opts.layout, layouts},
		{"textAlignment", opts.textAlignment, textAlignments},
	}
	for _, c := range checks {
		if c.value != "" && !lo.Contains(c.allowed, c.value) {
			return util.FlagErrorf("%s is not a valid value for --%s, allowed values are %s", c.value, c.flag, strings.Join(c.allowed, ", "))
		}
	}
	return nil
}

func parseAuthors(s string) []string {
	return lo.Filter(lo.Map(strings.Split(s, ","), func(a string, _ int) string {
		return strings.TrimSpace(a)
	}), func(a string, _ int) bool {
		return a != ""
	})
}

func runCommand(ctx util.CmdContext, opts *setOptions) error {
	if err := validate(opts); err != nil {
		return err
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	webURL := iutil.TrimWebURL(opts.webURL)
	client, err := ctx.ClientFactory().SharePoint(ctx.Context(), webURL)
	if err != nil {
		return err
	}

	pageName := opts.pageName
	if !strings.HasSuffix(strings.ToLower(pageName), ".aspx") {
		pageName += ".aspx"
	}
	pageURL := fmt.Sprintf("%s/_api/sitepages/pages/GetByUrl('sitepages/%s')", webURL, iutil.EncodeQueryParameter(pageName))

	ios.StartProgressIndicator()
	defer ios.StopProgressIndicator()

	var page pageInfo
	if err := client.Get(ctx.Context(), pageURL+"?$select=IsPageCheckedOutToCurrentUser,Title", &page); err != nil {
		return err
	}

	var data *pageData
	if !page.IsPageCheckedOutToCurrentUser {
		ios.Verbosef("Checking out page %s...\n", pageName)
		if err := client.Post(ctx.Context(), pageURL+"/checkoutpage", nil, &data); err != nil {
			return err
		}
	}

	headerType := lo.Ternary(opts.headerType == "", headerTypeDefault, opts.headerType)
	var ids imageIDs
	if headerType == headerTypeCustom && opts.imageURL != "" {
		ids, err = resolveImage(ctx, client, webURL, opts.imageURL)
		if err != nil {
			return err
		}
	}

	if page.IsPageCheckedOutToCurrentUser {
		if err := client.Get(ctx.Context(), pageURL+"?$expand=ListItemAllFields", &data); err != nil {
			return err
		}
	}

	canvas := ""
	if data != nil {
		canvas = data.CanvasContent1
	}

	header := newHeader(opts, headerType, ids)
	body := draft{
		TopicHeader:    opts.topicHeader,
		CanvasContent1: canvas,
	}
	if canvas == "" {
		header.Properties.Title = page.Title
		body.Title = page.Title
		body.AuthorByline = &[]string{}
	}
	if opts.authors != "" {
		authors := parseAuthors(opts.authors)
		body.AuthorByline = &authors
	}

	content, err := marshalControls([]headerControl{header})
	if err != nil {
		return err
	}
	body.LayoutWebpartsContent = content

	zap.L().Sugar().Debugf("saving header of %s: %s", pageName, content)
	ios.Verbosef("Saving page %s...\n", pageName)
	return client.Post(ctx.Context(), pageURL+"/SavePageAsDraft", body, nil)
}

func resolveImage(ctx util.CmdContext, client m365.SharePointClient, webURL, imageURL string) (imageIDs, error) {
	var ids imageIDs
	var site, web struct {
		ID string `json:"Id"`
	}
	if err := client.Get(ctx.Context(), webURL+"/_api/site?$select=Id", &site); err != nil {
		return ids, err
	}
	if err := client.Get(ctx.Context(), webURL+"/_api/web?$select=Id", &web); err != nil {
		return ids, err
	}
	var file struct {
		ListID   string `json:"ListId"`
		UniqueID string `json:"UniqueId"`
	}
	url := fmt.Sprintf("%s/_api/web/GetFileByServerRelativePath(DecodedUrl='%s')?$select=ListId,UniqueId", webURL, iutil.EncodeURIComponent(imageURL))
	if err := client.Get(ctx.Context(), url, &file); err != nil {
		return ids, err
	}
	return imageIDs{
		SiteID:   site.ID,
		WebID:    web.ID,
		ListID:   file.ListID,
		UniqueID: file.UniqueID,
	}, nil
}

func newHeader(opts *setOptions, headerType string, ids imageIDs) headerControl {
	header := headerControl{
		ID:          titleRegionID,
		InstanceID:  titleRegionID,
		Title:       "Title Region",
		Description: "Title Region Description",
		ServerProcessedContent: serverProcessedContent{
			ImageSources: map[string]string{},
		},
		DataVersion: "1.4",
		Properties: headerProperties{
			ImageSourceType: imageSourceTypeDefault,
			LayoutType:      lo.Ternary(opts.layout == "", layouts[0], opts.layout),
			TextAlignment:   lo.Ternary(opts.textAlignment == "", textAlignments[0], opts.textAlignment),
			ShowTopicHeader: opts.showTopicHeader,
			ShowPublishDate: opts.showPublishDate,
			TopicHeader:     opts.topicHeader,
		},
	}

	switch headerType {
	case headerTypeNone:
		header.Properties.LayoutType = layoutNoImage
	case headerTypeCustom:
		header.ServerProcessedContent.ImageSources["imageSource"] = opts.imageURL
		header.ServerProcessedContent.CustomMetadata = &customMetadata{ImageSource: ids}
		header.Properties.ImageSourceType = imageSourceTypeCustom
		header.Properties.customImage = &customImage{
			Authors:    []string{},
			AltText:    opts.altText,
			WebID:      ids.WebID,
			SiteID:     ids.SiteID,
			ListID:     ids.ListID,
			UniqueID:   ids.UniqueID,
			TranslateX: opts.translateX,
			TranslateY: opts.translateY,
		}
	}
	return header
}

// marshalControls encodes the page layout without escaping HTML characters,
// matching what SharePoint stores.
func marshalControls(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode page header: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
