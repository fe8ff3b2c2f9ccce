package changelog

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/graph/changelog/list"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog <command>",
		Short: "Inspect the Microsoft Graph changelog",
	}

	cmd.AddCommand(list.NewCmd(ctx))
	return cmd
}
