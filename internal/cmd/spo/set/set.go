package set

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	iutil "github.com/tmeckel/m365-cli/internal/util"
)

type setOptions struct {
	url string
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the SharePoint root URL of the tenant",
		Long: heredoc.Doc(`
			Store the SharePoint Online root URL of the tenant in the configuration.

			Tenant level commands like deploying apps to the tenant app catalog use
			this URL. Only the origin of the given URL is stored.
		`),
		Example: heredoc.Doc(`
			$ m365 spo set --url https://contoso.sharepoint.com
		`),
		Args: util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "SharePoint root URL of the tenant")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func runCommand(ctx util.CmdContext, opts *setOptions) error {
	if err := iutil.ValidateSharePointURL(opts.url); err != nil {
		return util.FlagErrorWrap(err)
	}
	spoURL, err := iutil.Origin(opts.url)
	if err != nil {
		return util.FlagErrorWrap(err)
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	if current, _ := cfg.Get([]string{config.SpoURL}); current != "" && iutil.SameSite(current, spoURL) {
		ios.Verbosef("SharePoint URL is already set to %s\n", current)
		return nil
	}

	cfg.Set([]string{config.SpoURL}, spoURL)
	if err := cfg.Write(); err != nil {
		return fmt.Errorf("failed to save the SharePoint URL: %w", err)
	}

	ios.Verbosef("SharePoint URL set to %s\n", spoURL)
	return nil
}
