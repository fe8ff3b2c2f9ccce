package list

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
)

type listOptions struct {
	all bool
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "Print a list of configuration keys and values",
		Aliases: []string{"ls"},
		Args:    cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "Show config options which are not configured")
	return cmd
}

func runCommand(ctx util.CmdContext, opts *listOptions) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	for _, key := range config.Options() {
		val, err := cfg.GetOrDefault([]string{key.Key})
		if err != nil {
			return err
		}
		if val != "" || opts.all {
			fmt.Fprintf(ios.Out, "%s=%s\n", key.Key, val)
		}
	}

	return nil
}
