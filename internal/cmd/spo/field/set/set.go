package set

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/m365"
	iutil "github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

type setOptions struct {
	webURL              string
	id                  string
	title               string
	internalName        string
	listID              string
	listTitle           string
	listURL             string
	updateExistingLists bool
	properties          []string
}

type property struct {
	name  string
	value string
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update an existing list or site column",
		Long: heredoc.Doc(`
			Update the properties of a site column or, when a list is given, of a list column.

			Every --property flag sets one property of the column, e.g. Description or Title.
			Use --updateExistingLists to push changes of a site column to the lists using it.
		`),
		Example: heredoc.Doc(`
			# Change the description of a site column
			m365 spo field set --webUrl https://contoso.sharepoint.com/sites/project-x --title MyColumn --property "Description=My column"

			# Rename a list column specified by its id
			m365 spo field set --webUrl https://contoso.sharepoint.com/sites/project-x --listTitle Documents --id 5d021339-4d62-4fe9-9d2a-c99bc56a157a --property Title=Category

			# Update a site column and push the change to all lists
			m365 spo field set --webUrl https://contoso.sharepoint.com --internalName MyColumn --property Group=Custom --updateExistingLists
		`),
		Args: util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.webURL, "webUrl", "u", "", "Absolute URL of the site where the column is located")
	cmd.Flags().StringVarP(&opts.id, "id", "i", "", "ID of the column to update")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Title or internal name of the column to update")
	cmd.Flags().StringVar(&opts.internalName, "internalName", "", "Internal name or title of the column to update")
	cmd.Flags().StringVarP(&opts.listID, "listId", "l", "", "ID of the list where the column is located")
	cmd.Flags().StringVar(&opts.listTitle, "listTitle", "", "Title of the list where the column is located")
	cmd.Flags().StringVar(&opts.listURL, "listUrl", "", "Server or site relative URL of the list where the column is located")
	cmd.Flags().BoolVar(&opts.updateExistingLists, "updateExistingLists", false, "Push the changes of a site column to all lists using it")
	cmd.Flags().StringArrayVarP(&opts.properties, "property", "p", nil, "Column property to set as `Name=Value`")

	_ = cmd.MarkFlagRequired("webUrl")

	return cmd
}

func validate(opts *setOptions) ([]property, error) {
	if err := iutil.ValidateSharePointURL(opts.webURL); err != nil {
		return nil, util.FlagErrorWrap(err)
	}
	if err := util.ExactlyOne("specify exactly one of `--id`, `--title` or `--internalName`",
		opts.id != "", opts.title != "", opts.internalName != ""); err != nil {
		return nil, err
	}
	if opts.id != "" && !iutil.IsValidGUID(opts.id) {
		return nil, util.FlagErrorf("%s is not a valid GUID", opts.id)
	}
	if err := util.MutuallyExclusive("specify at most one of `--listId`, `--listTitle` or `--listUrl`",
		opts.listID != "", opts.listTitle != "", opts.listURL != ""); err != nil {
		return nil, err
	}
	if opts.listID != "" && !iutil.IsValidGUID(opts.listID) {
		return nil, util.FlagErrorf("%s is not a valid GUID", opts.listID)
	}
	if len(opts.properties) == 0 {
		return nil, util.FlagErrorf("specify at least one `--property Name=Value`")
	}

	props := make([]property, 0, len(opts.properties))
	for _, p := range opts.properties {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, util.FlagErrorf("invalid property %q, expected Name=Value", p)
		}
		props = append(props, property{name: name, value: value})
	}
	return props, nil
}

func runCommand(ctx util.CmdContext, opts *setOptions) error {
	props, err := validate(opts)
	if err != nil {
		return err
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	webURL := iutil.TrimWebURL(opts.webURL)
	client, err := ctx.ClientFactory().SharePoint(ctx.Context(), webURL)
	if err != nil {
		return err
	}

	ios.StartProgressIndicator()
	defer ios.StopProgressIndicator()

	listIdentity := ""
	if opts.listID != "" || opts.listTitle != "" || opts.listURL != "" {
		body, err := listRequest(webURL, opts)
		if err != nil {
			return err
		}
		ios.Verbosef("Retrieving list information...\n")
		res, err := client.ProcessQuery(ctx.Context(), webURL, body)
		if err != nil {
			return err
		}
		listIdentity = m365.ObjectIdentity(res)
		zap.L().Sugar().Debugf("list identity %s", listIdentity)
	}

	ios.Verbosef("Retrieving column information...\n")
	res, err := client.ProcessQuery(ctx.Context(), webURL, fieldRequest(opts, listIdentity))
	if err != nil {
		return err
	}
	fieldIdentity := m365.ObjectIdentity(res)
	zap.L().Sugar().Debugf("field identity %s", fieldIdentity)

	ios.Verbosef("Updating column...\n")
	_, err = client.ProcessQuery(ctx.Context(), webURL, updateRequest(fieldIdentity, props, opts.updateExistingLists))
	return err
}

const lookupActions = `<ObjectPath Id="664" ObjectPathId="663" /><Query Id="665" ObjectPathId="663"><Query SelectAllProperties="false"><Properties /></Query></Query>`

func currentWeb() string {
	return fmt.Sprintf(`<Property Id="5" ParentId="3" Name="Web" /><StaticProperty Id="3" TypeId="%s" Name="Current" />`, m365.CurrentSiteType)
}

func listRequest(webURL string, opts *setOptions) (string, error) {
	switch {
	case opts.listID != "":
		return m365.CSOMRequest(lookupActions,
			`<Method Id="663" ParentId="7" Name="GetById"><Parameters><Parameter Type="Guid">`+m365.XMLEscape(opts.listID)+`</Parameter></Parameters></Method>`+
				`<Property Id="7" ParentId="5" Name="Lists" />`+currentWeb()), nil
	case opts.listTitle != "":
		return m365.CSOMRequest(lookupActions,
			`<Method Id="663" ParentId="7" Name="GetByTitle"><Parameters><Parameter Type="String">`+m365.XMLEscape(opts.listTitle)+`</Parameter></Parameters></Method>`+
				`<Property Id="7" ParentId="5" Name="Lists" />`+currentWeb()), nil
	}

	listURL, err := iutil.ServerRelativePath(webURL, opts.listURL)
	if err != nil {
		return "", err
	}
	return m365.CSOMRequest(
		`<ObjectPath Id="2" ObjectPathId="1" /><ObjectPath Id="4" ObjectPathId="3" /><ObjectPath Id="6" ObjectPathId="5" /><Query Id="7" ObjectPathId="5"><Query SelectAllProperties="true"><Properties /></Query></Query>`,
		fmt.Sprintf(`<StaticProperty Id="1" TypeId="%s" Name="Current" /><Property Id="3" ParentId="1" Name="Web" /><Method Id="5" ParentId="3" Name="GetList"><Parameters><Parameter Type="String">%s</Parameter></Parameters></Method>`,
			m365.CurrentSiteType, m365.XMLEscape(listURL))), nil
}

func fieldRequest(opts *setOptions, listIdentity string) string {
	var method string
	if opts.id != "" {
		method = `<Method Id="663" ParentId="7" Name="GetById"><Parameters><Parameter Type="Guid">` + m365.XMLEscape(opts.id) + `</Parameter></Parameters></Method>`
	} else {
		name := lo.Ternary(opts.title != "", opts.title, opts.internalName)
		method = `<Method Id="663" ParentId="7" Name="GetByInternalNameOrTitle"><Parameters><Parameter Type="String">` + m365.XMLEscape(name) + `</Parameter></Parameters></Method>`
	}

	parent := currentWeb()
	if listIdentity != "" {
		parent = `<Identity Id="5" Name="` + m365.XMLEscape(listIdentity) + `" />`
	}
	return m365.CSOMRequest(lookupActions, method+`<Property Id="7" ParentId="5" Name="Fields" />`+parent)
}

func updateRequest(fieldIdentity string, props []property, pushChanges bool) string {
	var actions strings.Builder
	for i, p := range props {
		fmt.Fprintf(&actions, `<SetProperty Id="%d" ObjectPathId="663" Name="%s"><Parameter Type="String">%s</Parameter></SetProperty>`,
			667+i, m365.XMLEscape(p.name), m365.XMLEscape(p.value))
	}
	fmt.Fprintf(&actions, `<Method Name="UpdateAndPushChanges" Id="9000" ObjectPathId="663"><Parameters><Parameter Type="Boolean">%t</Parameter></Parameters></Method>`, pushChanges)

	return m365.CSOMRequest(actions.String(), `<Identity Id="663" Name="`+m365.XMLEscape(fieldIdentity)+`" />`)
}
