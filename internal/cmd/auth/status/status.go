package status

import (
	"errors"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/auth"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
)

// checkStatus is replaced in tests.
var checkStatus = auth.CheckStatus

type statusOptions struct {
	exporter util.Exporter
}

type connectionStatus struct {
	ConnectedAs string    `json:"connectedAs"`
	AuthType    string    `json:"authType"`
	AppID       string    `json:"appId"`
	AppTenant   string    `json:"appTenant"`
	ExpiresOn   time.Time `json:"expiresOn"`
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Args:  cobra.ExactArgs(0),
		Short: "View authentication status",
		Long: heredoc.Doc(`
			Verify and display information about the active connection.

			A token is requested for Microsoft Graph to make sure the stored credentials
			are still valid.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	util.AddOutputFlags(cmd, &opts.exporter, []string{"connectedAs", "authType", "appId", "appTenant", "expiresOn"}, nil)

	return cmd
}

func runCommand(ctx util.CmdContext, opts *statusOptions) error {
	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}
	cs := ios.ColorScheme()

	ios.StartProgressIndicator()
	st, err := checkStatus(ctx.Context(), cfg.Authentication())
	ios.StopProgressIndicator()
	if err != nil {
		switch {
		case errors.Is(err, config.ErrNotLoggedIn):
			fmt.Fprintf(ios.ErrOut, "You are not logged in to Microsoft 365. Run %s to authenticate.\n", cs.Bold("m365 auth login"))
			return util.ErrSilent
		case errors.Is(err, auth.ErrLoginRequired):
			fmt.Fprintf(ios.ErrOut, "%s Your session has expired: %v\nRun %s to authenticate again.\n", cs.FailureIcon(), err, cs.Bold("m365 auth login"))
			return util.ErrSilent
		}
		return err
	}

	status := connectionStatus{
		ConnectedAs: st.Account,
		AuthType:    st.Connection.AuthType,
		AppID:       st.Connection.AppID,
		AppTenant:   st.Connection.Tenant,
		ExpiresOn:   st.ExpiresOn,
	}

	if opts.exporter != nil && opts.exporter.Format() != util.OutputText {
		return opts.exporter.Write(ios, status)
	}

	fmt.Fprintf(ios.Out, "%s Logged in to Microsoft 365 as %s\n", cs.SuccessIcon(), cs.Bold(status.ConnectedAs))
	fmt.Fprintf(ios.Out, "  Authentication type: %s\n", status.AuthType)
	if status.AppID != "" {
		fmt.Fprintf(ios.Out, "  App id: %s\n", status.AppID)
	}
	fmt.Fprintf(ios.Out, "  Tenant: %s\n", status.AppTenant)
	if !status.ExpiresOn.IsZero() {
		fmt.Fprintf(ios.Out, "  Token expires %s\n", humanize.Time(status.ExpiresOn))
	}
	return nil
}
