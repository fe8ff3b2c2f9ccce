package logout

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Args:  cobra.ExactArgs(0),
		Short: "Log out of Microsoft 365",
		Long: heredoc.Doc(`
			Remove the stored connection, the client secret and all cached tokens.
		`),
		Example: heredoc.Doc(`
			$ m365 auth logout
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx)
		},
	}

	return cmd
}

func runCommand(ctx util.CmdContext) error {
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	cs := ios.ColorScheme()
	if err := cfg.Authentication().Logout(); err != nil {
		if errors.Is(err, config.ErrNotLoggedIn) {
			fmt.Fprintf(ios.ErrOut, "You are not logged in to Microsoft 365.\n")
			return util.ErrSilent
		}
		return fmt.Errorf("failed to log out: %w", err)
	}

	if ios.IsStdoutTTY() {
		fmt.Fprintf(ios.ErrOut, "%s Logged out of Microsoft 365\n", cs.SuccessIcon())
	}
	return nil
}
