package root

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cmdCtx  *mocks.MockCmdContext
	cfg     *mocks.MockConfig
	authCfg *mocks.MockAuthConfig
	ios     *iostreams.IOStreams
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
}

func setup(t *testing.T, output string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	io, _, stdout, stderr := iostreams.Test()
	f := &fixture{
		cmdCtx:  mocks.NewMockCmdContext(ctrl),
		cfg:     mocks.NewMockConfig(ctrl),
		authCfg: mocks.NewMockAuthConfig(ctrl),
		ios:     io,
		stdout:  stdout,
		stderr:  stderr,
	}
	f.cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	f.cmdCtx.EXPECT().Config().Return(f.cfg, nil).AnyTimes()
	f.cfg.EXPECT().GetOrDefault([]string{config.Output}).Return(output, nil).AnyTimes()
	f.cfg.EXPECT().Authentication().Return(f.authCfg).AnyTimes()

	return f
}

func TestRootExamplesUseKnownFlags(t *testing.T) {
	f := setup(t, "json")

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)

	for _, line := range strings.Split(cmd.Example, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "$ m365 ") {
			continue
		}
		t.Run(line, func(t *testing.T) {
			args, err := shlex.Split(strings.TrimPrefix(line, "$ m365 "))
			require.NoError(t, err)
			sub, rest, err := cmd.Find(args)
			require.NoError(t, err)
			require.NotEqual(t, cmd, sub)
			assert.NoError(t, sub.ParseFlags(rest))
		})
	}
}

func TestRootRegistersCommands(t *testing.T) {
	f := setup(t, "json")

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)

	for _, path := range [][]string{
		{"auth", "login"},
		{"config", "set"},
		{"graph", "changelog", "list"},
		{"spo", "app", "deploy"},
		{"spo", "field", "set"},
		{"spo", "folder", "retentionlabel", "remove"},
		{"spo", "page", "header", "set"},
		{"spo", "set"},
		{"tenant", "serviceannouncement", "healthissue", "list"},
		{"exit-codes"},
	} {
		c, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], c.Name())
	}
}

func TestRootOutputDefaultFromConfig(t *testing.T) {
	f := setup(t, "text")

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)
	assert.Equal(t, "text", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestRootInvalidOutputInConfigFallsBackToJSON(t *testing.T) {
	f := setup(t, "yaml")

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)
	assert.Equal(t, "json", cmd.PersistentFlags().Lookup("output").DefValue)
}

func TestRootRejectsInvalidOutput(t *testing.T) {
	f := setup(t, "json")

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)
	cmd.SetArgs([]string{"config", "list", "--output", "yaml"})
	_, err = cmd.ExecuteC()

	var flagErr *util.ErrFlag
	require.True(t, errors.As(err, &flagErr))
	assert.EqualError(t, err, "yaml is not a valid output format, valid values are {json|text|csv|md}")
}

func TestRootRequiresLogin(t *testing.T) {
	f := setup(t, "json")
	f.authCfg.EXPECT().GetConnection().Return(nil, config.ErrNotLoggedIn)

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)
	cmd.SetArgs([]string{"spo", "set", "--url", "https://contoso.sharepoint.com"})
	_, err = cmd.ExecuteC()

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "To get started with m365, please run:  m365 auth login\n", f.stderr.String())
}

func TestRootVerboseFlag(t *testing.T) {
	f := setup(t, "json")
	f.cfg.EXPECT().GetOrDefault(gomock.Any()).Return("", nil).AnyTimes()

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "")
	require.NoError(t, err)
	cmd.SetArgs([]string{"config", "list", "--verbose"})
	_, err = cmd.ExecuteC()
	require.NoError(t, err)
	assert.True(t, f.ios.IsVerbose())
}

func TestRootVersionFlag(t *testing.T) {
	f := setup(t, "json")

	cmd, err := NewCmdRoot(f.cmdCtx, "1.0.0", "2024-05-01")
	require.NoError(t, err)
	cmd.SetArgs([]string{"--version"})
	_, err = cmd.ExecuteC()
	require.NoError(t, err)
	assert.Equal(t, "m365 version 1.0.0 (2024-05-01)\nhttps://github.com/tmeckel/m365-cli/releases/tag/v1.0.0\n", f.stdout.String())
}
