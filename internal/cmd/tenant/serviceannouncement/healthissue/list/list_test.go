package list

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/m365"
	"github.com/tmeckel/m365-cli/internal/mocks"
	"go.uber.org/mock/gomock"
)

var issues = []json.RawMessage{
	json.RawMessage(`{"startDateTime":"2021-08-02T14:36:00Z","title":"Custom connector removed","id":"CR275975","service":"Dynamics 365 Apps","isResolved":true,"posts":[]}`),
	json.RawMessage(`{"startDateTime":"2021-11-17T13:00:00Z","title":"Users may have been unable to launch Microsoft Forms","id":"FM298724","service":"Microsoft Forms","isResolved":true,"posts":[]}`),
}

func setup(t *testing.T) (*mocks.MockCmdContext, *mocks.MockGraphClient, *bytes.Buffer) {
	ctrl := gomock.NewController(t)
	io, _, out, _ := iostreams.Test()

	cmdCtx := mocks.NewMockCmdContext(ctrl)
	clientFactory := mocks.NewMockClientFactory(ctrl)
	graphClient := mocks.NewMockGraphClient(ctrl)

	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(clientFactory).AnyTimes()
	clientFactory.EXPECT().Graph(gomock.Any()).Return(graphClient, nil).AnyTimes()

	return cmdCtx, graphClient, out
}

func TestListHealthIssuesJSON(t *testing.T) {
	cmdCtx, graphClient, out := setup(t)
	graphClient.EXPECT().
		HealthIssues(gomock.Any(), "").
		Return(issues, nil)

	err := runCommand(cmdCtx, &listOptions{exporter: util.NewExporter(util.OutputJSON)})
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "CR275975", got[0]["id"])
	assert.Equal(t, "Microsoft Forms", got[1]["service"])
}

func TestListHealthIssuesForServiceAsText(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, out, _ := iostreams.Test()

	cmdCtx := mocks.NewMockCmdContext(ctrl)
	clientFactory := mocks.NewMockClientFactory(ctrl)
	graphClient := mocks.NewMockGraphClient(ctrl)

	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(clientFactory).AnyTimes()
	clientFactory.EXPECT().Graph(gomock.Any()).Return(graphClient, nil)
	graphClient.EXPECT().
		HealthIssues(gomock.Any(), "Microsoft Forms").
		Return(issues[1:], nil)

	cmd := NewCmd(cmdCtx)
	cmd.SetArgs([]string{"--service", " Microsoft Forms ", "--json", "id,title"})
	cmd.SetOut(out)
	_, err := cmd.ExecuteC()
	require.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"id\": \"FM298724\",\n    \"title\": \"Users may have been unable to launch Microsoft Forms\"\n  }\n]\n", out.String())
}

func TestListHealthIssuesTextTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	io, _, out, _ := iostreams.Test()

	cmdCtx := mocks.NewMockCmdContext(ctrl)
	clientFactory := mocks.NewMockClientFactory(ctrl)
	graphClient := mocks.NewMockGraphClient(ctrl)

	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(clientFactory).AnyTimes()
	clientFactory.EXPECT().Graph(gomock.Any()).Return(graphClient, nil)
	graphClient.EXPECT().HealthIssues(gomock.Any(), "").Return(issues, nil)

	err := runCommand(cmdCtx, &listOptions{exporter: util.NewExporter(util.OutputText, "id", "title")})
	require.NoError(t, err)
	assert.Equal(t, "CR275975\tCustom connector removed\nFM298724\tUsers may have been unable to launch Microsoft Forms\n", out.String())
}

func TestListHealthIssuesError(t *testing.T) {
	cmdCtx, graphClient, _ := setup(t)
	graphClient.EXPECT().
		HealthIssues(gomock.Any(), "").
		Return(nil, &m365.RequestError{StatusCode: 403, Message: "Insufficient privileges to complete the operation."})

	err := runCommand(cmdCtx, &listOptions{exporter: util.NewExporter(util.OutputJSON)})
	require.Error(t, err)
	var reqErr *m365.RequestError
	assert.True(t, errors.As(err, &reqErr))
	assert.Contains(t, err.Error(), "Insufficient privileges to complete the operation.")
}

func TestListRejectsArguments(t *testing.T) {
	cmdCtx, _, _ := setup(t)

	cmd := NewCmd(cmdCtx)
	cmd.SetArgs([]string{"Exchange"})
	_, err := cmd.ExecuteC()

	var flagErr *util.ErrFlag
	require.True(t, errors.As(err, &flagErr))
}
