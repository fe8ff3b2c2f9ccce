package get

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

type getOptions struct {
	key string
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of a given configuration key",
		Example: heredoc.Doc(`
			$ m365 config get output
			json
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.key = args[0]

			return runCommand(ctx, opts)
		},
	}

	return cmd
}

func runCommand(ctx util.CmdContext, opts *getOptions) error {
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	val, err := cfg.GetOrDefault([]string{opts.key})
	if err != nil {
		return err
	}

	if val != "" {
		fmt.Fprintf(ios.Out, "%s\n", val)
	}
	return nil
}
