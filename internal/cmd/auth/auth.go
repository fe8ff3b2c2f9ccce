package auth

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/auth/login"
	"github.com/tmeckel/m365-cli/internal/cmd/auth/logout"
	"github.com/tmeckel/m365-cli/internal/cmd/auth/status"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth <command>",
		Short:   "Authenticate m365 with Microsoft 365",
		GroupID: "core",
	}

	util.DisableAuthCheck(cmd)

	cmd.AddCommand(login.NewCmd(ctx))
	cmd.AddCommand(logout.NewCmd(ctx))
	cmd.AddCommand(status.NewCmd(ctx))

	return cmd
}
