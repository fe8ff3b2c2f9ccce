package login

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/mocks"
	"go.uber.org/mock/gomock"
)

const appID = "31359c7f-bd7e-475c-86db-fdb8c937548e"

type fixture struct {
	cmdCtx   *mocks.MockCmdContext
	authCfg  *mocks.MockAuthConfig
	prompter *mocks.MockPrompter
	ios      *iostreams.IOStreams
	stderr   *bytes.Buffer
}

func setup(t *testing.T, login func(context.Context, config.AuthConfig, io.Writer) (string, error)) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	io, _, _, stderr := iostreams.Test()
	f := &fixture{
		cmdCtx:   mocks.NewMockCmdContext(ctrl),
		authCfg:  mocks.NewMockAuthConfig(ctrl),
		prompter: mocks.NewMockPrompter(ctrl),
		ios:      io,
		stderr:   stderr,
	}
	cfg := mocks.NewMockConfig(ctrl)

	f.cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	f.cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	f.cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()
	f.cmdCtx.EXPECT().Prompter().Return(f.prompter, nil).AnyTimes()
	cfg.EXPECT().Authentication().Return(f.authCfg).AnyTimes()

	orig := signIn
	signIn = login
	t.Cleanup(func() { signIn = orig })

	return f
}

func TestLoginDeviceCode(t *testing.T) {
	f := setup(t, func(_ context.Context, _ config.AuthConfig, out io.Writer) (string, error) {
		_, _ = io.WriteString(out, "To sign in, use a web browser to open the page https://microsoft.com/devicelogin\n")
		return "john@contoso.onmicrosoft.com", nil
	})
	f.ios.SetStdoutTTY(true)
	f.authCfg.EXPECT().
		Login(config.ConnectionInfo{AuthType: config.AuthTypeDeviceCode}, "", true).
		Return(nil)

	cmd := NewCmd(f.cmdCtx)
	cmd.SetArgs([]string{})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)
	assert.Contains(t, f.stderr.String(), "https://microsoft.com/devicelogin")
	assert.Contains(t, f.stderr.String(), "Logged in as john@contoso.onmicrosoft.com")
}

func TestLoginSecretInsecureStorage(t *testing.T) {
	f := setup(t, func(context.Context, config.AuthConfig, io.Writer) (string, error) {
		return "Contoso App", nil
	})
	f.authCfg.EXPECT().
		Login(config.ConnectionInfo{AuthType: config.AuthTypeSecret, AppID: appID, Tenant: "contoso.onmicrosoft.com"}, "s3cret", false).
		Return(nil)

	err := runCommand(f.cmdCtx, &loginOptions{
		authType:        config.AuthTypeSecret,
		appID:           appID,
		tenant:          "contoso.onmicrosoft.com",
		secret:          "s3cret",
		insecureStorage: true,
	})
	require.NoError(t, err)
	assert.Empty(t, f.stderr.String())
}

func TestLoginPromptsForSecret(t *testing.T) {
	t.Setenv("M365_CLIENT_SECRET", "")
	require.NoError(t, os.Unsetenv("M365_CLIENT_SECRET"))
	f := setup(t, func(context.Context, config.AuthConfig, io.Writer) (string, error) {
		return "Contoso App", nil
	})
	f.ios.SetStdinTTY(true)
	f.ios.SetStdoutTTY(true)
	gomock.InOrder(
		f.prompter.EXPECT().Password("Client secret:").Return("typed", nil),
		f.authCfg.EXPECT().Login(gomock.Any(), "typed", true).Return(nil),
	)

	opts := &loginOptions{authType: config.AuthTypeSecret, appID: appID, tenant: "contoso.onmicrosoft.com"}
	require.NoError(t, runCommand(f.cmdCtx, opts))
}

func TestLoginFailureRemovesConnection(t *testing.T) {
	f := setup(t, func(context.Context, config.AuthConfig, io.Writer) (string, error) {
		return "", errors.New("AADSTS7000215: Invalid client secret provided.")
	})
	gomock.InOrder(
		f.authCfg.EXPECT().Login(gomock.Any(), "wrong", true).Return(nil),
		f.authCfg.EXPECT().Logout().Return(nil),
	)

	err := runCommand(f.cmdCtx, &loginOptions{authType: config.AuthTypeSecret, appID: appID, tenant: "contoso", secret: "wrong"})
	assert.EqualError(t, err, "AADSTS7000215: Invalid client secret provided.")
}

func TestLoginIdentity(t *testing.T) {
	f := setup(t, func(context.Context, config.AuthConfig, io.Writer) (string, error) {
		return "vm-identity", nil
	})
	f.authCfg.EXPECT().
		Login(config.ConnectionInfo{AuthType: config.AuthTypeIdentity, Identity: appID}, "", true).
		Return(nil)

	cmd := NewCmd(f.cmdCtx)
	cmd.SetArgs([]string{"--authType", "Identity", "--userName", appID})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    loginOptions
		wantErr string
	}{
		{
			name:    "invalid app id",
			opts:    loginOptions{authType: config.AuthTypeDeviceCode, appID: "foo"},
			wantErr: "foo is not a valid GUID",
		},
		{
			name:    "user name without identity",
			opts:    loginOptions{authType: config.AuthTypeDeviceCode, userName: appID},
			wantErr: "`--userName` can only be used with `--authType identity`",
		},
		{
			name:    "invalid user name",
			opts:    loginOptions{authType: config.AuthTypeIdentity, userName: "foo"},
			wantErr: "foo is not a valid GUID",
		},
		{
			name:    "secret without secret auth",
			opts:    loginOptions{authType: config.AuthTypeDeviceCode, secret: "s3cret"},
			wantErr: "`--secret` can only be used with `--authType secret`",
		},
		{
			name:    "secret auth without tenant",
			opts:    loginOptions{authType: config.AuthTypeSecret, appID: appID},
			wantErr: "`--appId` and `--tenant` are required with `--authType secret`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(&tt.opts)
			assert.EqualError(t, err, tt.wantErr)

			var flagErr *util.ErrFlag
			assert.True(t, errors.As(err, &flagErr))
		})
	}
}
