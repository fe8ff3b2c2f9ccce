package header

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/page/header/set"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "header <command>",
		Short: "Manage the header of modern pages",
	}

	cmd.AddCommand(set.NewCmd(ctx))
	return cmd
}
