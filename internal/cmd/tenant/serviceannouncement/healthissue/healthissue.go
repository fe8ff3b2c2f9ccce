package healthissue

import (
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/tenant/serviceannouncement/healthissue/list"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "healthissue <command>",
		Short: "Inspect service health issues",
		Aliases: []string{
			"health-issue",
			"hi",
		},
	}

	cmd.AddCommand(list.NewCmd(ctx))
	return cmd
}
