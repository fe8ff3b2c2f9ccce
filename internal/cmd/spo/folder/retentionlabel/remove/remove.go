package remove

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	iutil "github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

const folderQuery = "?$expand=ListItemAllFields,ListItemAllFields/ParentList/RootFolder" +
	"&$select=ServerRelativeUrl,ListItemAllFields/ParentList/RootFolder/ServerRelativeUrl,ListItemAllFields/Id"

type removeOptions struct {
	webURL    string
	folderURL string
	folderID  string
	force     bool
}

type folder struct {
	ServerRelativeURL string `json:"ServerRelativeUrl"`
	ListItemAllFields *struct {
		ID         *int `json:"Id"`
		ParentList struct {
			RootFolder struct {
				ServerRelativeURL string `json:"ServerRelativeUrl"`
			} `json:"RootFolder"`
		} `json:"ParentList"`
	} `json:"ListItemAllFields"`
}

type itemsComplianceTag struct {
	ListURL            string `json:"listUrl"`
	ComplianceTagValue string `json:"complianceTagValue"`
	ItemIDs            []int  `json:"itemIds"`
}

type listComplianceTag struct {
	ListURL            string `json:"listUrl"`
	ComplianceTagValue string `json:"complianceTagValue"`
	BlockDelete        bool   `json:"blockDelete"`
	BlockEdit          bool   `json:"blockEdit"`
	SyncToItems        bool   `json:"syncToItems"`
}

func NewCmd(ctx util.CmdContext) *cobra.Command {
	opts := &removeOptions{}

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Clear the retention label from a folder",
		Long: heredoc.Docf(`
			Clear the retention label of a folder. When the folder is the root folder of a
			document library, the default label of the library is cleared instead.

			Unless %[1]s--force%[1]s is given, the command asks for confirmation.
		`, "`"),
		Example: heredoc.Doc(`
			# Clear the retention label of a folder specified by its URL
			m365 spo folder retentionlabel remove --webUrl https://contoso.sharepoint.com/sites/project-x --folderUrl "/Shared Documents/Reports"

			# Clear the retention label of a folder specified by its id without confirmation
			m365 spo folder retentionlabel remove --webUrl https://contoso.sharepoint.com/sites/project-x --folderId b2307a39-e878-458b-bc90-03bc578531d6 --force
		`),
		Aliases: []string{"rm"},
		Args:    util.NoArgsQuoteReminder,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.webURL, "webUrl", "u", "", "Absolute URL of the site where the folder is located")
	cmd.Flags().StringVar(&opts.folderURL, "folderUrl", "", "Server or site relative URL of the folder")
	cmd.Flags().StringVarP(&opts.folderID, "folderId", "i", "", "UniqueId of the folder")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Do not ask for confirmation")

	_ = cmd.MarkFlagRequired("webUrl")

	return cmd
}

func validate(opts *removeOptions) error {
	if err := iutil.ValidateSharePointURL(opts.webURL); err != nil {
		return util.FlagErrorWrap(err)
	}
	if err := util.ExactlyOne("specify either `--folderUrl` or `--folderId`", opts.folderURL != "", opts.folderID != ""); err != nil {
		return err
	}
	if opts.folderID != "" && !iutil.IsValidGUID(opts.folderID) {
		return util.FlagErrorf("%s is not a valid GUID", opts.folderID)
	}
	return nil
}

func runCommand(ctx util.CmdContext, opts *removeOptions) error {
	if err := validate(opts); err != nil {
		return err
	}

	ios, err := ctx.IOStreams()
	if err != nil {
		return err
	}

	target := opts.folderID
	if target == "" {
		target = opts.folderURL
	}

	if !opts.force {
		if !ios.CanPrompt() {
			return util.FlagErrorf("--force required when not running interactively")
		}
		p, err := ctx.Prompter()
		if err != nil {
			return err
		}
		confirmed, err := p.Confirm(fmt.Sprintf("Are you sure you want to remove the retention label from folder %s?", target), false)
		if err != nil {
			return err
		}
		if !confirmed {
			return nil
		}
	}

	webURL := iutil.TrimWebURL(opts.webURL)
	client, err := ctx.ClientFactory().SharePoint(ctx.Context(), webURL)
	if err != nil {
		return err
	}

	ios.StartProgressIndicator()
	defer ios.StopProgressIndicator()

	var url string
	if opts.folderID != "" {
		url = fmt.Sprintf("%s/_api/web/GetFolderById('%s')%s", webURL, iutil.EncodeQueryParameter(opts.folderID), folderQuery)
	} else {
		path, err := iutil.ServerRelativePath(webURL, opts.folderURL)
		if err != nil {
			return util.FlagErrorWrap(err)
		}
		url = fmt.Sprintf("%s/_api/web/GetFolderByServerRelativePath(DecodedUrl='%s')%s", webURL, iutil.EncodeQueryParameter(path), folderQuery)
	}

	var f folder
	if err := client.Get(ctx.Context(), url, &f); err != nil {
		return err
	}

	origin, err := iutil.Origin(webURL)
	if err != nil {
		return err
	}

	if f.ListItemAllFields != nil && f.ListItemAllFields.ID != nil {
		listURL := origin + f.ListItemAllFields.ParentList.RootFolder.ServerRelativeURL
		zap.L().Sugar().Debugf("clearing compliance tag of item %d in %s", *f.ListItemAllFields.ID, listURL)
		ios.Verbosef("Removing retention label from folder %s...\n", target)
		return client.Post(ctx.Context(), webURL+"/_api/SP_CompliancePolicy_SPPolicyStoreProxy_SetComplianceTagOnBulkItems",
			itemsComplianceTag{
				ListURL:            listURL,
				ComplianceTagValue: "",
				ItemIDs:            []int{*f.ListItemAllFields.ID},
			}, nil)
	}

	listURL := origin + f.ServerRelativeURL
	zap.L().Sugar().Debugf("folder is the root folder of %s, clearing the list compliance tag", listURL)
	ios.Verbosef("Removing retention label from library %s...\n", listURL)
	return client.Post(ctx.Context(), webURL+"/_api/SP_CompliancePolicy_SPPolicyStoreProxy_SetListComplianceTag",
		listComplianceTag{ListURL: listURL}, nil)
}
