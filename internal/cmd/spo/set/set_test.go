package set

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/mocks"
	"go.uber.org/mock/gomock"
)

func TestSetStoresOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, _, _ := iostreams.Test()

	cfg := mocks.NewMockConfig(ctrl)
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()

	gomock.InOrder(
		cfg.EXPECT().Get([]string{config.SpoURL}).Return("", nil),
		cfg.EXPECT().Set([]string{config.SpoURL}, "https://contoso.sharepoint.com"),
		cfg.EXPECT().Write().Return(nil),
	)

	cmd := NewCmd(cmdCtx)
	cmd.SetArgs([]string{"--url", "https://contoso.sharepoint.com/sites/team-a/"})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)
}

func TestSetWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, _, _ := iostreams.Test()

	cfg := mocks.NewMockConfig(ctrl)
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()
	cfg.EXPECT().Get([]string{config.SpoURL}).Return("https://fabrikam.sharepoint.com", nil)
	cfg.EXPECT().Set(gomock.Any(), gomock.Any())
	cfg.EXPECT().Write().Return(errors.New("permission denied"))

	err := runCommand(cmdCtx, &setOptions{url: "https://contoso.sharepoint.com"})
	assert.EqualError(t, err, "failed to save the SharePoint URL: permission denied")
}

func TestSetSkipsUnchangedURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, _, stderr := iostreams.Test()
	io.SetVerbose(true)

	cfg := mocks.NewMockConfig(ctrl)
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()
	cfg.EXPECT().Get([]string{config.SpoURL}).Return("https://Contoso.SharePoint.com/", nil)

	err := runCommand(cmdCtx, &setOptions{url: "https://contoso.sharepoint.com:443/sites/team"})
	require.NoError(t, err)
	assert.Equal(t, "SharePoint URL is already set to https://Contoso.SharePoint.com/\n", stderr.String())
}

func TestSetInvalidURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	cmdCtx := mocks.NewMockCmdContext(ctrl)

	err := runCommand(cmdCtx, &setOptions{url: "https://contoso.com"})
	assert.EqualError(t, err, `"https://contoso.com" is not a valid SharePoint Online site URL`)

	var flagErr *util.ErrFlag
	assert.True(t, errors.As(err, &flagErr))
}
