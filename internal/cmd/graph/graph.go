package graph

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/graph/changelog"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph <command>",
		Short: "Work with Microsoft Graph",
		Long: heredoc.Doc(`
			Work with information published about the Microsoft Graph API.
		`),
		GroupID: "core",
	}

	cmd.AddCommand(changelog.NewCmd(ctx))
	return cmd
}
