package folder

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/folder/retentionlabel"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder <command>",
		Short: "Manage folders in document libraries",
	}

	cmd.AddCommand(retentionlabel.NewCmd(ctx))
	return cmd
}
