package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/config/get"
	"github.com/tmeckel/m365-cli/internal/cmd/config/list"
	"github.com/tmeckel/m365-cli/internal/cmd/config/set"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	longDoc := strings.Builder{}
	longDoc.WriteString("Display or change configuration settings for m365.\n\n")
	longDoc.WriteString("Current respected settings:\n")
	for _, co := range config.Options() {
		longDoc.WriteString(fmt.Sprintf("- %s: %s", co.Key, co.Description))
		if co.DefaultValue != "" {
			longDoc.WriteString(fmt.Sprintf(" (default: %q)", co.DefaultValue))
		}
		longDoc.WriteRune('\n')
	}

	cmd := &cobra.Command{
		Use:     "config <command>",
		Short:   "Manage configuration for m365",
		Long:    longDoc.String(),
		GroupID: "core",
	}

	util.DisableAuthCheck(cmd)

	cmd.AddCommand(get.NewCmd(ctx))
	cmd.AddCommand(set.NewCmd(ctx))
	cmd.AddCommand(list.NewCmd(ctx))

	return cmd
}
