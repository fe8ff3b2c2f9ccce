package tenant

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/tenant/serviceannouncement"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

// NewCmd constructs the root command for tenant administration.
func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tenant <command>",
		Short:   "Work with Microsoft 365 tenant settings",
		GroupID: "core",
		Example: heredoc.Doc(`
			# List the open health issues of Exchange Online
			m365 tenant serviceannouncement healthissue list --service "Exchange Online"
		`),
	}

	cmd.AddCommand(serviceannouncement.NewCmd(ctx))

	return cmd
}
