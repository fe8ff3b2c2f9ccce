package retentionlabel

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/folder/retentionlabel/remove"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retentionlabel <command>",
		Short: "Manage retention labels of folders",
	}

	cmd.AddCommand(remove.NewCmd(ctx))
	return cmd
}
