package page

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/page/header"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page <command>",
		Short: "Manage modern pages",
	}

	cmd.AddCommand(header.NewCmd(ctx))
	return cmd
}
