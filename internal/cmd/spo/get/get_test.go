package get

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/config"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/m365"
	"github.com/tmeckel/m365-cli/internal/mocks"
	"go.uber.org/mock/gomock"
)

func TestGetConfiguredURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, out, _ := iostreams.Test()

	cfg := mocks.NewMockConfig(ctrl)
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()
	cfg.EXPECT().Get([]string{config.SpoURL}).Return("https://contoso.sharepoint.com/", nil)

	err := runCommand(cmdCtx, &getOptions{exporter: util.NewExporter(util.OutputText)})
	require.NoError(t, err)
	assert.Equal(t, "SpoUrl: https://contoso.sharepoint.com\n", out.String())
}

func TestGetDiscoversURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, out, _ := iostreams.Test()

	cfg := mocks.NewMockConfig(ctrl)
	factory := mocks.NewMockClientFactory(ctrl)
	graph := mocks.NewMockGraphClient(ctrl)
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(factory).AnyTimes()
	factory.EXPECT().Graph(gomock.Any()).Return(graph, nil)

	gomock.InOrder(
		cfg.EXPECT().Get([]string{config.SpoURL}).Return("", nil),
		graph.EXPECT().RootSiteURL(gomock.Any()).Return("https://contoso.sharepoint.com/", nil),
		cfg.EXPECT().Set([]string{config.SpoURL}, "https://contoso.sharepoint.com"),
		cfg.EXPECT().Write().Return(nil),
	)

	err := runCommand(cmdCtx, &getOptions{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"SpoUrl":"https://contoso.sharepoint.com"}`, out.String())
}

func TestGetDiscoveryFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, _, _ := iostreams.Test()

	cfg := mocks.NewMockConfig(ctrl)
	factory := mocks.NewMockClientFactory(ctrl)
	graph := mocks.NewMockGraphClient(ctrl)
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().Config().Return(cfg, nil).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(factory).AnyTimes()
	factory.EXPECT().Graph(gomock.Any()).Return(graph, nil)
	cfg.EXPECT().Get([]string{config.SpoURL}).Return("", nil)
	graph.EXPECT().RootSiteURL(gomock.Any()).Return("", &m365.RequestError{StatusCode: 403, Message: "Access denied"})

	err := runCommand(cmdCtx, &getOptions{})
	require.EqualError(t, err, "failed to discover the SharePoint URL: Access denied")
	var re *m365.RequestError
	assert.True(t, errors.As(err, &re))
}
