package serviceannouncement

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/tenant/serviceannouncement/healthissue"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serviceannouncement <command>",
		Short: "Read Microsoft 365 service health and announcements",
		Aliases: []string{
			"service-announcement",
			"sa",
		},
	}

	cmd.AddCommand(healthissue.NewCmd(ctx))
	return cmd
}
