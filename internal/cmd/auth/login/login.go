package login

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/auth"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	iutil "github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

var authTypes = []string{config.AuthTypeDeviceCode, config.AuthTypeSecret, config.AuthTypeIdentity, config.AuthTypeAzureCLI}

// signIn is replaced in tests.
var signIn = auth.Login

type loginOptions struct {
	authType        string
	appID           string
	tenant          string
	secret          string
	userName        string
	insecureStorage bool
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Args:  cobra.ExactArgs(0),
		Short: "Log in to Microsoft 365",
		Long: heredoc.Docf(`
			Log in to Microsoft 365.

			The default authentication type is %[1]sdeviceCode%[1]s: m365 prints a code which you enter
			at https://microsoft.com/devicelogin to sign in with your account. The resulting tokens
			are cached in the credential store of the operating system.

			Use %[1]s--authType secret%[1]s to log in as an app registration with a client secret,
			%[1]s--authType identity%[1]s to use the managed identity of an Azure resource, or
			%[1]s--authType azcli%[1]s to reuse the sign-in of the Azure CLI.

			For automation, the app id, tenant and client secret can be provided with the
			%[1]sM365_APP_ID%[1]s, %[1]sM365_TENANT%[1]s and %[1]sM365_CLIENT_SECRET%[1]s environment
			variables. See %[1]sm365 help environment%[1]s for more info.
		`, "`"),
		Example: heredoc.Doc(`
			# log in interactively using a device code
			$ m365 auth login

			# log in with a custom app registration in a specific tenant
			$ m365 auth login --appId 31359c7f-bd7e-475c-86db-fdb8c937548e --tenant contoso.onmicrosoft.com

			# log in as an app using a client secret
			$ m365 auth login --authType secret --appId 31359c7f-bd7e-475c-86db-fdb8c937548e --tenant contoso.onmicrosoft.com --secret "..."

			# log in with a user assigned managed identity
			$ m365 auth login --authType identity --userName 6f0d2c4b-1c4e-4cf7-bd2e-7aa1d6d9f5a1
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	util.StringEnumFlag(cmd, &opts.authType, "authType", "t", config.AuthTypeDeviceCode, authTypes, "Method used to log in")
	cmd.Flags().StringVar(&opts.appID, "appId", "", "Client id of the app registration used to log in")
	cmd.Flags().StringVar(&opts.tenant, "tenant", "", "ID or domain of the tenant to log in to")
	cmd.Flags().StringVarP(&opts.secret, "secret", "s", "", "Client secret of the app registration")
	cmd.Flags().StringVar(&opts.userName, "userName", "", "Client id of a user assigned managed identity")
	cmd.Flags().BoolVar(&opts.insecureStorage, "insecure-storage", false, "Save credentials in plain text instead of the credential store")

	return cmd
}

func validate(opts *loginOptions) error {
	if opts.appID != "" && !iutil.IsValidGUID(opts.appID) {
		return util.FlagErrorf("%s is not a valid GUID", opts.appID)
	}
	if opts.userName != "" {
		if opts.authType != config.AuthTypeIdentity {
			return util.FlagErrorf("`--userName` can only be used with `--authType %s`", config.AuthTypeIdentity)
		}
		if !iutil.IsValidGUID(opts.userName) {
			return util.FlagErrorf("%s is not a valid GUID", opts.userName)
		}
	}
	if opts.secret != "" && opts.authType != config.AuthTypeSecret {
		return util.FlagErrorf("`--secret` can only be used with `--authType %s`", config.AuthTypeSecret)
	}
	if opts.authType == config.AuthTypeSecret {
		if opts.appID == "" || opts.tenant == "" {
			return util.FlagErrorf("`--appId` and `--tenant` are required with `--authType %s`", config.AuthTypeSecret)
		}
	}
	return nil
}

func runCommand(ctx util.CmdContext, opts *loginOptions) error {
	if opts.authType == "" {
		opts.authType = config.AuthTypeDeviceCode
	}
	if err := validate(opts); err != nil {
		return err
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}
	cfg, err := ctx.Config()
	if err != nil {
		return err
	}

	secret := opts.secret
	if opts.authType == config.AuthTypeSecret && secret == "" {
		if _, ok := os.LookupEnv("M365_CLIENT_SECRET"); !ok {
			if !ios.CanPrompt() {
				return util.FlagErrorf("`--secret` required when not running interactively")
			}
			p, err := ctx.Prompter()
			if err != nil {
				return err
			}
			if secret, err = p.Password("Client secret:"); err != nil {
				return err
			}
		}
	}

	conn := config.ConnectionInfo{
		AuthType: opts.authType,
		AppID:    opts.appID,
		Tenant:   opts.tenant,
		Identity: opts.userName,
	}
	authCfg := cfg.Authentication()
	if err := authCfg.Login(conn, secret, !opts.insecureStorage); err != nil {
		return fmt.Errorf("failed to save the connection: %w", err)
	}

	zap.L().Sugar().Debugf("logging in using %s authentication", opts.authType)
	if opts.authType != config.AuthTypeDeviceCode {
		ios.StartProgressIndicator()
	}
	account, err := signIn(ctx.Context(), authCfg, ios.ErrOut)
	ios.StopProgressIndicator()
	if err != nil {
		if lerr := authCfg.Logout(); lerr != nil {
			zap.L().Sugar().Debugf("failed to remove connection: %v", lerr)
		}
		return err
	}

	if ios.IsStdoutTTY() {
		cs := ios.ColorScheme()
		fmt.Fprintf(ios.ErrOut, "%s Logged in as %s\n", cs.SuccessIcon(), cs.Bold(account))
	}
	return nil
}
