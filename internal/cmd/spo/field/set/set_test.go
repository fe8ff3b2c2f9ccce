package set

import (
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

const (
	webURL        = "https://contoso.sharepoint.com"
	requestPrefix = `<Request AddExpandoFieldTypeSuffix="true" SchemaVersion="15.0.0.0" LibraryVersion="16.0.0.0" ApplicationName="m365 CLI" xmlns="http://schemas.microsoft.com/sharepoint/clientquery/2009">`
	current       = `<StaticProperty Id="3" TypeId="{3747adcd-a3c3-41b9-bfab-4a64dd2f1e0a}" Name="Current" />`
	lookup        = `<Actions><ObjectPath Id="664" ObjectPathId="663" /><Query Id="665" ObjectPathId="663"><Query SelectAllProperties="false"><Properties /></Query></Query></Actions>`

	listIdentity  = "270fa19e-f0f7-0000-37ae-1733ad1b6703|740c6a0b-85e2-48a0-a494-e0f1759d4aa7:site:ff7a8065-9120-4c0a-982a-163ab9014179:web:e781d3dc-238d-44f7-8724-5e3e9eabcd6e:list:03cef05c-ba50-4dcf-a876-304f0626085c"
	fieldIdentity = "7c0aa19e-1058-0000-37ae-14170affbedb|740c6a0b-85e2-48a0-a494-e0f1759d4aa7:site:ff7a8065-9120-4c0a-982a-163ab9014179:web:e781d3dc-238d-44f7-8724-5e3e9eabcd6e:field:5d021339-4d62-4fe9-9d2a-c99bc56a157a"
)

func csomResponse(identity string) []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"SchemaVersion":"15.0.0.0","LibraryVersion":"16.0.8231.1213","ErrorInfo":null,"TraceCorrelationId":"7c0aa19e-1058-0000-37ae-14170affbedb"}`),
		json.RawMessage(`664`),
		json.RawMessage(`{"IsNull":false}`),
		json.RawMessage(`665`),
		json.RawMessage(`{"_ObjectType_":"SP.FieldText","_ObjectIdentity_":"` + identity + `"}`),
	}
}

func updateResponse() []json.RawMessage {
	return []json.RawMessage{
		json.RawMessage(`{"SchemaVersion":"15.0.0.0","LibraryVersion":"16.0.8231.1213","ErrorInfo":null,"TraceCorrelationId":"b909a19e-5020-0000-37ae-17f800b4ea4c"}`),
	}
}

func updateBody(actions string) string {
	return requestPrefix + `<Actions>` + actions + `</Actions><ObjectPaths><Identity Id="663" Name="` + fieldIdentity + `" /></ObjectPaths></Request>`
}

func setup(t *testing.T) (*mocks.MockCmdContext, *mocks.MockSharePointClient) {
	t.Helper()
	return setupSite(t, webURL)
}

func setupSite(t *testing.T, site string) (*mocks.MockCmdContext, *mocks.MockSharePointClient) {
	t.Helper()
	ctrl := gomock.NewController(t)

	io, _, _, _ := iostreams.Test()
	cmdCtx := mocks.NewMockCmdContext(ctrl)
	factory := mocks.NewMockClientFactory(ctrl)
	client := mocks.NewMockSharePointClient(ctrl)

	cmdCtx.EXPECT().IOStreams().Return(io, nil).AnyTimes()
	cmdCtx.EXPECT().Context().Return(context.Background()).AnyTimes()
	cmdCtx.EXPECT().ClientFactory().Return(factory).AnyTimes()
	factory.EXPECT().SharePoint(gomock.Any(), site).Return(client, nil).AnyTimes()

	return cmdCtx, client
}

func TestSetSiteColumnByTitle(t *testing.T) {
	cmdCtx, client := setup(t)

	gomock.InOrder(
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			requestPrefix+lookup+`<ObjectPaths><Method Id="663" ParentId="7" Name="GetByInternalNameOrTitle"><Parameters><Parameter Type="String">MyColumn</Parameter></Parameters></Method><Property Id="7" ParentId="5" Name="Fields" /><Property Id="5" ParentId="3" Name="Web" />`+current+`</ObjectPaths></Request>`).
			Return(csomResponse(fieldIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			updateBody(`<SetProperty Id="667" ObjectPathId="663" Name="Description"><Parameter Type="String">My column</Parameter></SetProperty><Method Name="UpdateAndPushChanges" Id="9000" ObjectPathId="663"><Parameters><Parameter Type="Boolean">false</Parameter></Parameters></Method>`)).
			Return(updateResponse(), nil),
	)

	err := runCommand(cmdCtx, &setOptions{
		webURL:     webURL + "/",
		title:      "MyColumn",
		properties: []string{"Description=My column"},
	})
	require.NoError(t, err)
}

func TestSetSiteColumnByIDPushingChanges(t *testing.T) {
	cmdCtx, client := setup(t)

	gomock.InOrder(
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			requestPrefix+lookup+`<ObjectPaths><Method Id="663" ParentId="7" Name="GetById"><Parameters><Parameter Type="Guid">5d021339-4d62-4fe9-9d2a-c99bc56a157a</Parameter></Parameters></Method><Property Id="7" ParentId="5" Name="Fields" /><Property Id="5" ParentId="3" Name="Web" />`+current+`</ObjectPaths></Request>`).
			Return(csomResponse(fieldIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			updateBody(`<SetProperty Id="667" ObjectPathId="663" Name="Description"><Parameter Type="String">My cool column</Parameter></SetProperty><SetProperty Id="668" ObjectPathId="663" Name="Title"><Parameter Type="String">My column</Parameter></SetProperty><Method Name="UpdateAndPushChanges" Id="9000" ObjectPathId="663"><Parameters><Parameter Type="Boolean">true</Parameter></Parameters></Method>`)).
			Return(updateResponse(), nil),
	)

	cmd := NewCmd(cmdCtx)
	cmd.SetArgs([]string{
		"--webUrl", webURL,
		"--id", "5d021339-4d62-4fe9-9d2a-c99bc56a157a",
		"--property", "Description=My cool column",
		"-p", "Title=My column",
		"--updateExistingLists",
	})
	_, err := cmd.ExecuteC()
	require.NoError(t, err)
}

func TestSetListColumnListByID(t *testing.T) {
	cmdCtx, client := setup(t)

	gomock.InOrder(
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			requestPrefix+lookup+`<ObjectPaths><Method Id="663" ParentId="7" Name="GetById"><Parameters><Parameter Type="Guid">03cef05c-ba50-4dcf-a876-304f0626085c</Parameter></Parameters></Method><Property Id="7" ParentId="5" Name="Lists" /><Property Id="5" ParentId="3" Name="Web" />`+current+`</ObjectPaths></Request>`).
			Return(csomResponse(listIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			requestPrefix+lookup+`<ObjectPaths><Method Id="663" ParentId="7" Name="GetById"><Parameters><Parameter Type="Guid">5d021339-4d62-4fe9-9d2a-c99bc56a157a</Parameter></Parameters></Method><Property Id="7" ParentId="5" Name="Fields" /><Identity Id="5" Name="`+listIdentity+`" /></ObjectPaths></Request>`).
			Return(csomResponse(fieldIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL, gomock.Any()).Return(updateResponse(), nil),
	)

	err := runCommand(cmdCtx, &setOptions{
		webURL:     webURL,
		listID:     "03cef05c-ba50-4dcf-a876-304f0626085c",
		id:         "5d021339-4d62-4fe9-9d2a-c99bc56a157a",
		properties: []string{"Description=My column"},
	})
	require.NoError(t, err)
}

func TestSetListColumnListByTitleEscapesXML(t *testing.T) {
	cmdCtx, client := setup(t)

	gomock.InOrder(
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			requestPrefix+lookup+`<ObjectPaths><Method Id="663" ParentId="7" Name="GetByTitle"><Parameters><Parameter Type="String">My List&gt;</Parameter></Parameters></Method><Property Id="7" ParentId="5" Name="Lists" /><Property Id="5" ParentId="3" Name="Web" />`+current+`</ObjectPaths></Request>`).
			Return(csomResponse(listIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			requestPrefix+lookup+`<ObjectPaths><Method Id="663" ParentId="7" Name="GetByInternalNameOrTitle"><Parameters><Parameter Type="String">MyColumn&lt;</Parameter></Parameters></Method><Property Id="7" ParentId="5" Name="Fields" /><Identity Id="5" Name="`+listIdentity+`" /></ObjectPaths></Request>`).
			Return(csomResponse(fieldIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL,
			updateBody(`<SetProperty Id="667" ObjectPathId="663" Name="Description"><Parameter Type="String">My column&gt; &amp; more</Parameter></SetProperty><Method Name="UpdateAndPushChanges" Id="9000" ObjectPathId="663"><Parameters><Parameter Type="Boolean">false</Parameter></Parameters></Method>`)).
			Return(updateResponse(), nil),
	)

	err := runCommand(cmdCtx, &setOptions{
		webURL:       webURL,
		listTitle:    "My List>",
		internalName: "MyColumn<",
		properties:   []string{"Description=My column> & more"},
	})
	require.NoError(t, err)
}

func TestSetListColumnListByURL(t *testing.T) {
	subsite := webURL + "/sites/project-x"
	cmdCtx, client := setupSite(t, subsite)

	gomock.InOrder(
		client.EXPECT().ProcessQuery(gomock.Any(), subsite,
			requestPrefix+`<Actions><ObjectPath Id="2" ObjectPathId="1" /><ObjectPath Id="4" ObjectPathId="3" /><ObjectPath Id="6" ObjectPathId="5" /><Query Id="7" ObjectPathId="5"><Query SelectAllProperties="true"><Properties /></Query></Query></Actions><ObjectPaths><StaticProperty Id="1" TypeId="{3747adcd-a3c3-41b9-bfab-4a64dd2f1e0a}" Name="Current" /><Property Id="3" ParentId="1" Name="Web" /><Method Id="5" ParentId="3" Name="GetList"><Parameters><Parameter Type="String">/sites/project-x/lists/TestList</Parameter></Parameters></Method></ObjectPaths></Request>`).
			Return(csomResponse(listIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), subsite, gomock.Any()).Return(csomResponse(fieldIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), subsite, gomock.Any()).Return(updateResponse(), nil),
	)

	err := runCommand(cmdCtx, &setOptions{
		webURL:     subsite,
		listURL:    "/lists/TestList",
		title:      "MyColumn",
		properties: []string{"Description=My column Description"},
	})
	require.NoError(t, err)
}

func TestSetColumnCSOMError(t *testing.T) {
	cmdCtx, client := setup(t)

	client.EXPECT().ProcessQuery(gomock.Any(), webURL, gomock.Any()).
		Return(nil, &m365.CSOMError{Message: "Invalid field name. {5d021339-4d62-4fe9-9d2a-c99bc56a157a} https://contoso.sharepoint.com ", Code: -2147024809})

	err := runCommand(cmdCtx, &setOptions{
		webURL:     webURL,
		id:         "5d021339-4d62-4fe9-9d2a-c99bc56a157a",
		properties: []string{"Title=My column"},
	})
	assert.EqualError(t, err, "Invalid field name. {5d021339-4d62-4fe9-9d2a-c99bc56a157a} https://contoso.sharepoint.com ")
}

func TestSetColumnUpdateError(t *testing.T) {
	cmdCtx, client := setup(t)

	gomock.InOrder(
		client.EXPECT().ProcessQuery(gomock.Any(), webURL, gomock.Any()).Return(csomResponse(fieldIdentity), nil),
		client.EXPECT().ProcessQuery(gomock.Any(), webURL, gomock.Any()).Return(nil, &m365.CSOMError{Message: "Unknown Error"}),
	)

	err := runCommand(cmdCtx, &setOptions{
		webURL:     webURL,
		title:      "MyColumn",
		properties: []string{"Description=My column"},
	})
	assert.EqualError(t, err, "Unknown Error")
}

func TestSetColumnValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    setOptions
		wantErr string
	}{
		{
			name:    "invalid web url",
			opts:    setOptions{webURL: "invalid", title: "MyColumn", properties: []string{"A=b"}},
			wantErr: `"invalid" is not a valid SharePoint Online site URL`,
		},
		{
			name:    "no column",
			opts:    setOptions{webURL: webURL, properties: []string{"A=b"}},
			wantErr: "specify exactly one of `--id`, `--title` or `--internalName`",
		},
		{
			name:    "id and title",
			opts:    setOptions{webURL: webURL, id: "330f29c5-5c4c-465f-9f4b-7903020ae1ce", title: "MyColumn", properties: []string{"A=b"}},
			wantErr: "specify exactly one of `--id`, `--title` or `--internalName`",
		},
		{
			name:    "title and internal name",
			opts:    setOptions{webURL: webURL, title: "MyColumn", internalName: "MyColumn", properties: []string{"A=b"}},
			wantErr: "specify exactly one of `--id`, `--title` or `--internalName`",
		},
		{
			name:    "invalid id",
			opts:    setOptions{webURL: webURL, id: "invalid", properties: []string{"A=b"}},
			wantErr: "invalid is not a valid GUID",
		},
		{
			name:    "all list options",
			opts:    setOptions{webURL: webURL, title: "MyColumn", listID: "330f29c5-5c4c-465f-9f4b-7903020ae1ce", listTitle: "My List", listURL: "/lists/testlist", properties: []string{"A=b"}},
			wantErr: "specify at most one of `--listId`, `--listTitle` or `--listUrl`",
		},
		{
			name:    "invalid list id",
			opts:    setOptions{webURL: webURL, title: "MyColumn", listID: "invalid", properties: []string{"A=b"}},
			wantErr: "invalid is not a valid GUID",
		},
		{
			name:    "no properties",
			opts:    setOptions{webURL: webURL, title: "MyColumn"},
			wantErr: "specify at least one `--property Name=Value`",
		},
		{
			name:    "malformed property",
			opts:    setOptions{webURL: webURL, title: "MyColumn", properties: []string{"Description"}},
			wantErr: `invalid property "Description", expected Name=Value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validate(&tt.opts)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)

			var flagErr *util.ErrFlag
			assert.True(t, errors.As(err, &flagErr))
		})
	}
}

func TestSetColumnPropertyValueMayContainEquals(t *testing.T) {
	props, err := validate(&setOptions{webURL: webURL, title: "MyColumn", properties: []string{"Formula==[A]+1"}})
	require.NoError(t, err)
	assert.Equal(t, []property{{name: "Formula", value: "=[A]+1"}}, props)
}
