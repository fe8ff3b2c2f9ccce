package app

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/app/deploy"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app <command>",
		Short: "Manage apps in the app catalog",
	}

	cmd.AddCommand(deploy.NewCmd(ctx))
	return cmd
}
