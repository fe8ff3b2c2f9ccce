package field

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/field/set"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field <command>",
		Short: "Manage site and list columns",
	}

	cmd.AddCommand(set.NewCmd(ctx))
	return cmd
}
