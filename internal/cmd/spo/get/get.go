package get

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

type getOptions struct {
	exporter util.Exporter
}

type spoInfo struct {
	SpoURL string `json:"SpoUrl"`
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the SharePoint root URL of the tenant",
		Long: heredoc.Doc(`
			Show the SharePoint Online root URL used by tenant level commands.

			When no URL is configured, it is discovered through Microsoft Graph and saved.
		`),
		Example: heredoc.Doc(`
			$ m365 spo get
			$ m365 spo get --output text
		`),
		Args: util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	util.AddOutputFlags(cmd, &opts.exporter, []string{"SpoUrl"}, nil)

	return cmd
}

func runCommand(ctx util.CmdContext, opts *getOptions) error {
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	ios.StartProgressIndicator()
	spoURL, err := util.SpoURL(ctx)
	ios.StopProgressIndicator()
	if err != nil {
		return err
	}

	exporter := opts.exporter
	if exporter == nil {
		exporter = util.NewExporter(util.OutputJSON)
	}
	return exporter.Write(ios, spoInfo{SpoURL: spoURL})
}
