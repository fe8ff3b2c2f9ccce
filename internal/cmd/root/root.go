package root

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/auth"
	"github.com/tmeckel/m365-cli/internal/cmd/config"
	"github.com/tmeckel/m365-cli/internal/cmd/graph"
	"github.com/tmeckel/m365-cli/internal/cmd/spo"
	"github.com/tmeckel/m365-cli/internal/cmd/tenant"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	versionCmd "github.com/tmeckel/m365-cli/internal/cmd/version"
	cfgpkg "github.com/tmeckel/m365-cli/internal/config"
	"go.uber.org/zap"
)

type AuthError struct {
	err error
}

func (ae *AuthError) Error() string {
	if ae.err == nil {
		return "not logged in"
	}
	return ae.err.Error()
}

func (ae *AuthError) Unwrap() error {
	return ae.err
}

func NewCmdRoot(ctx util.CmdContext, version, buildDate string) (*cobra.Command, error) {
	cfg, err := ctx.Config()
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}
	iostrms, err := ctx.IOStreams()
	if err != nil {
		return nil, fmt.Errorf("failed to get IOStreams: %w", err)
	}

	defaultOutput, _ := cfg.GetOrDefault([]string{cfgpkg.Output})
	if !lo.Contains(util.OutputFormats, defaultOutput) {
		zap.L().Sugar().Debugf("ignoring invalid output format %q from configuration", defaultOutput)
		defaultOutput = util.OutputJSON
	}

	cmd := &cobra.Command{
		Use:   "m365 <command> <subcommand> [flags]",
		Short: "Microsoft 365 CLI",
		Long:  `Manage Microsoft 365 tenants and SharePoint Online from the command line.`,
		Example: heredoc.Doc(`
			$ m365 auth login
			$ m365 tenant serviceannouncement healthissue list --service "Exchange Online"
			$ m365 spo app deploy --name solution.sppkg
		`),
		Annotations: map[string]string{
			"versionInfo": versionCmd.Format(version, buildDate),
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if !lo.Contains(util.OutputFormats, output) {
				return util.FlagErrorf("%s is not a valid output format, valid values are {%s}", output, formatValues(util.OutputFormats))
			}
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				util.EnableAPITrace(ctx)
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				iostrms.SetVerbose(true)
			}

			// require that the user is authenticated before running most commands
			if util.IsAuthCheckEnabled(cmd) && !util.CheckAuth(cfg) {
				fmt.Fprintf(iostrms.ErrOut, "To get started with m365, please run:  m365 auth login\n")
				return &AuthError{}
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("help", false, "Show help for command")
	cmd.PersistentFlags().StringP("output", "o", defaultOutput, fmt.Sprintf("Output format: {%s}", formatValues(util.OutputFormats)))
	cmd.PersistentFlags().Bool("debug", false, "Trace HTTP requests and responses on standard error")
	cmd.PersistentFlags().Bool("verbose", false, "Print progress messages on standard error")
	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return util.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Flags().Bool("version", false, "Show m365 version")

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		rootHelpFunc(iostrms, c, args)
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return rootUsageFunc(iostrms.ErrOut, c)
	})

	cmd.SetFlagErrorFunc(rootFlagErrorFunc)

	cmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core commands",
	})

	cmd.AddCommand(versionCmd.NewCmd(ctx))
	cmd.AddCommand(auth.NewCmd(ctx))
	cmd.AddCommand(config.NewCmd(ctx))
	cmd.AddCommand(graph.NewCmd(ctx))
	cmd.AddCommand(spo.NewCmd(ctx))
	cmd.AddCommand(tenant.NewCmd(ctx))

	for _, ht := range HelpTopics {
		cmd.AddCommand(NewCmdHelpTopic(iostrms, ht))
	}

	util.DisableAuthCheck(cmd)

	return cmd, nil
}

func formatValues(values []string) string {
	return strings.Join(values, "|")
}
