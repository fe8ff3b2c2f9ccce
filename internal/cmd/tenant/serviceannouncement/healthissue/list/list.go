package list

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"go.uber.org/zap"
)

type listOptions struct {
	service  string
	exporter util.Exporter
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the service health issues of the tenant",
		Long: heredoc.Doc(`
			List the service health issues reported for the services of the tenant.

			Requires the ServiceHealth.Read.All permission.
		`),
		Example: heredoc.Doc(`
			# List all health issues
			m365 tenant serviceannouncement healthissue list

			# List the health issues of Microsoft Forms as a table
			m365 tenant serviceannouncement healthissue list --service "Microsoft Forms" -o text

			# Show id and status of resolved issues only
			m365 tenant serviceannouncement healthissue list --jq '[.[] | select(.isResolved) | {id, status}]'
		`),
		Aliases: []string{"ls"},
		Args:    util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.service, "service", "", "Only list the issues of the named service, e.g. \"Exchange Online\"")

	util.AddOutputFlags(cmd, &opts.exporter, []string{
		"id", "title", "service", "feature", "featureGroup", "classification", "status", "origin",
		"isResolved", "highImpact", "impactDescription", "startDateTime", "endDateTime",
		"lastModifiedDateTime", "details", "posts",
	}, []string{"id", "title"})

	return cmd
}

func runCommand(ctx util.CmdContext, opts *listOptions) error {
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	client, err := ctx.ClientFactory().Graph(ctx.Context())
	if err != nil {
		return err
	}

	ios.StartProgressIndicator()
	defer ios.StopProgressIndicator()

	service := strings.TrimSpace(opts.service)
	zap.L().Sugar().Debugf("retrieving service health issues for service %q", service)
	issues, err := client.HealthIssues(ctx.Context(), service)
	if err != nil {
		return fmt.Errorf("failed to list service health issues: %w", err)
	}

	ios.StopProgressIndicator()
	ios.Verbosef("Found %d health issues\n", len(issues))

	return opts.exporter.Write(ios, issues)
}
