package deploy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/m365"
	iutil "github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

const (
	scopeTenant         = "tenant"
	scopeSiteCollection = "sitecollection"

	acceptJSON = "application/json;odata=nometadata"
)

type deployOptions struct {
	id                    string
	name                  string
	appCatalogScope       string
	appCatalogURL         string
	skipFeatureDeployment bool
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &deployOptions{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the specified app in the app catalog",
		Long: heredoc.Docf(`
			Deploy an app package that was added to the tenant or a site collection app catalog.

			When deploying to the tenant app catalog without %[1]s--appCatalogUrl%[1]s, its URL is
			read from the tenant settings of the SharePoint URL configured with %[1]sm365 spo set%[1]s.
		`, "`"),
		Example: heredoc.Doc(`
			# Deploy an app to the tenant app catalog
			m365 spo app deploy --id 058140e3-0e37-44fc-a1d3-79c487d371a3

			# Deploy an app by its file name, skipping feature deployment
			m365 spo app deploy --name solution.sppkg --skipFeatureDeployment

			# Deploy an app to a site collection app catalog
			m365 spo app deploy --name solution --appCatalogScope sitecollection --appCatalogUrl https://contoso.sharepoint.com/sites/apps
		`),
		Args: util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.id, "id", "i", "", "ID of the app to deploy")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "File name of the app package to deploy")
	util.StringEnumFlag(cmd, &opts.appCatalogScope, "appCatalogScope", "s", scopeTenant, []string{scopeTenant, scopeSiteCollection}, "Scope of the app catalog")
	cmd.Flags().StringVarP(&opts.appCatalogURL, "appCatalogUrl", "u", "", "Absolute URL of the app catalog site")
	cmd.Flags().BoolVar(&opts.skipFeatureDeployment, "skipFeatureDeployment", false, "Make the solution available to all sites without installing features")

	return cmd
}

func validate(opts *deployOptions) error {
	if err := util.ExactlyOne("specify either `--id` or `--name`", opts.id != "", opts.name != ""); err != nil {
		return err
	}
	if opts.id != "" && !iutil.IsValidGUID(opts.id) {
		return util.FlagErrorf("%s is not a valid GUID", opts.id)
	}
	switch strings.ToLower(opts.appCatalogScope) {
	case "", scopeTenant:
	case scopeSiteCollection:
		if opts.appCatalogURL == "" {
			return util.FlagErrorf("`--appCatalogUrl` is required when the scope is %s", scopeSiteCollection)
		}
	default:
		return util.FlagErrorf("%s is not a valid app catalog scope, allowed values are %s and %s", opts.appCatalogScope, scopeTenant, scopeSiteCollection)
	}
	if opts.appCatalogURL != "" {
		if err := iutil.ValidateSharePointURL(opts.appCatalogURL); err != nil {
			return util.FlagErrorWrap(err)
		}
	}
	return nil
}

func runCommand(ctx util.CmdContext, opts *deployOptions) error {
	if err := validate(opts); err != nil {
		return err
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	scope := strings.ToLower(opts.appCatalogScope)
	if scope == "" {
		scope = scopeTenant
	}

	catalogURL := iutil.TrimWebURL(opts.appCatalogURL)
	if catalogURL == "" {
		spoURL, err := util.SpoURL(ctx)
		if err != nil {
			return err
		}
		ios.StartProgressIndicator()
		catalogURL, err = tenantAppCatalogURL(ctx, spoURL)
		ios.StopProgressIndicator()
		if err != nil {
			return err
		}
		ios.Verbosef("Using tenant app catalog %s\n", catalogURL)
	}

	client, err := ctx.ClientFactory().SharePoint(ctx.Context(), catalogURL)
	if err != nil {
		return err
	}

	ios.StartProgressIndicator()
	defer ios.StopProgressIndicator()

	appID := opts.id
	if appID == "" {
		name := opts.name
		if !strings.HasSuffix(strings.ToLower(name), ".sppkg") {
			name += ".sppkg"
		}
		ios.Verbosef("Looking up app id for %s...\n", name)
		appID, err = appIDByName(ctx, client, catalogURL, name)
		if err != nil {
			return err
		}
	}

	url := fmt.Sprintf("%s/_api/web/%sappcatalog/AvailableApps/GetById('%s')/deploy", catalogURL, scope, iutil.EncodeQueryParameter(appID))
	zap.L().Sugar().Debugf("deploying app %s from %s", appID, catalogURL)
	body := map[string]bool{"skipFeatureDeployment": opts.skipFeatureDeployment}
	if err := client.Post(ctx.Context(), url, body, nil, m365.WithAccept(acceptJSON)); err != nil {
		return err
	}

	ios.StopProgressIndicator()
	ios.Verbosef("Deployed app %s\n", appID)
	return nil
}

func tenantAppCatalogURL(ctx util.CmdContext, spoURL string) (string, error) {
	client, err := ctx.ClientFactory().SharePoint(ctx.Context(), spoURL)
	if err != nil {
		return "", err
	}
	var settings struct {
		CorporateCatalogURL string `json:"CorporateCatalogUrl"`
	}
	if err := client.Get(ctx.Context(), spoURL+"/_api/SP_TenantSettings_Current", &settings); err != nil {
		return "", fmt.Errorf("failed to retrieve the tenant app catalog URL: %w", err)
	}
	if settings.CorporateCatalogURL == "" {
		return "", errors.New("tenant app catalog is not configured")
	}
	return iutil.TrimWebURL(settings.CorporateCatalogURL), nil
}

func appIDByName(ctx util.CmdContext, client m365.SharePointClient, catalogURL, name string) (string, error) {
	var file struct {
		UniqueID string `json:"UniqueId"`
	}
	url := fmt.Sprintf("%s/_api/web/GetFolderByServerRelativePath(DecodedUrl='AppCatalog')/files('%s')?$select=UniqueId",
		catalogURL, iutil.EncodeQueryParameter(name))
	if err := client.Get(ctx.Context(), url, &file); err != nil {
		return "", err
	}
	if file.UniqueID == "" {
		return "", util.NewNoResultsError(fmt.Sprintf("app %s not found in %s", name, catalogURL))
	}
	return file.UniqueID, nil
}
