package m365

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/microsoft/kiota-abstractions-go/authentication"
	"github.com/microsoft/kiota-abstractions-go/serialization"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	msgraphcore "github.com/microsoftgraph/msgraph-sdk-go-core"
	"github.com/microsoftgraph/msgraph-sdk-go/admin"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
	"github.com/microsoftgraph/msgraph-sdk-go/sites"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// graphTokens hands the tokens of the signed-in connection to the Graph SDK.
type graphTokens struct {
	source oauth2.TokenSource
	hosts  *authentication.AllowedHostsValidator
}

func (g *graphTokens) GetAuthorizationToken(_ context.Context, u *url.URL, _ map[string]any) (string, error) {
	if !g.hosts.IsUrlHostValid(u) {
		return "", nil
	}
	tk, err := g.source.Token()
	if err != nil {
		return "", err
	}
	return tk.AccessToken, nil
}

func (g *graphTokens) GetAllowedHostsValidator() *authentication.AllowedHostsValidator {
	return g.hosts
}

func newGraphServiceClient(ts oauth2.TokenSource, baseURL string, httpClient *http.Client) (*msgraphsdk.GraphServiceClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Graph URL %q: %w", baseURL, err)
	}
	hosts, err := authentication.NewAllowedHostsValidatorErrorCheck([]string{u.Hostname()})
	if err != nil {
		return nil, err
	}
	adapter, err := msgraphsdk.NewGraphRequestAdapterWithParseNodeFactoryAndSerializationWriterFactoryAndHttpClient(
		authentication.NewBaseBearerTokenAuthenticationProvider(&graphTokens{source: ts, hosts: hosts}),
		nil, nil, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create Graph request adapter: %w", err)
	}
	client := msgraphsdk.NewGraphServiceClient(adapter)
	adapter.SetBaseUrl(strings.TrimRight(baseURL, "/"))
	return client, nil
}

type graphClient struct {
	sdk *msgraphsdk.GraphServiceClient
}

func (c *graphClient) HealthIssues(ctx context.Context, service string) ([]json.RawMessage, error) {
	cfg := &admin.ServiceAnnouncementIssuesRequestBuilderGetRequestConfiguration{}
	if service = strings.TrimSpace(service); service != "" {
		filter := fmt.Sprintf("service eq '%s'", strings.ReplaceAll(service, "'", "''"))
		cfg.QueryParameters = &admin.ServiceAnnouncementIssuesRequestBuilderGetQueryParameters{
			Filter: &filter,
		}
	}

	res, err := c.sdk.Admin().ServiceAnnouncement().Issues().Get(ctx, cfg)
	if err != nil {
		return nil, graphError(err)
	}
	pages, err := msgraphcore.NewPageIterator[models.ServiceHealthIssueable](res, c.sdk.GetAdapter(),
		models.CreateServiceHealthIssueCollectionResponseFromDiscriminatorValue)
	if err != nil {
		return nil, err
	}

	items := []json.RawMessage{}
	var encErr error
	err = pages.Iterate(ctx, func(issue models.ServiceHealthIssueable) bool {
		data, err := serialization.SerializeToJson(issue)
		if err != nil {
			encErr = fmt.Errorf("failed to encode health issue: %w", err)
			return false
		}
		items = append(items, data)
		return true
	})
	if err != nil {
		return nil, graphError(err)
	}
	if encErr != nil {
		return nil, encErr
	}
	zap.L().Sugar().Debugf("received %d health issues", len(items))
	return items, nil
}

func (c *graphClient) RootSiteURL(ctx context.Context) (string, error) {
	site, err := c.sdk.Sites().BySiteId("root").Get(ctx, &sites.SiteItemRequestBuilderGetRequestConfiguration{
		QueryParameters: &sites.SiteItemRequestBuilderGetQueryParameters{
			Select: []string{"webUrl"},
		},
	})
	if err != nil {
		return "", graphError(err)
	}
	if site == nil || site.GetWebUrl() == nil {
		return "", nil
	}
	return *site.GetWebUrl(), nil
}

// graphError turns an OData error of the Graph SDK into a *RequestError, so
// callers handle Graph and SharePoint failures alike.
func graphError(err error) error {
	var odataErr *odataerrors.ODataError
	if !errors.As(err, &odataErr) {
		return err
	}
	re := &RequestError{
		StatusCode: odataErr.ResponseStatusCode,
		Message:    odataErr.Error(),
	}
	if main := odataErr.GetErrorEscaped(); main != nil && main.GetMessage() != nil {
		re.Message = *main.GetMessage()
	}
	if re.Message == "" {
		re.Message = errorMessage(re.StatusCode, nil)
	}
	return re
}
