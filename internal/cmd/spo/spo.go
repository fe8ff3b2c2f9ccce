package spo

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/app"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/field"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/folder"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/get"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/page"
	"github.com/tmeckel/m365-cli/internal/cmd/spo/set"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

// NewCmd constructs the root command for SharePoint Online.
func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spo <command>",
		Short:   "Work with SharePoint Online",
		GroupID: "core",
		Long: heredoc.Docf(`
			Work with SharePoint Online sites, lists, apps and pages.

			Commands working on the tenant level need the SharePoint root URL of the
			tenant. It is discovered on first use and can be changed with %[1]sm365 spo set%[1]s.
		`, "`"),
		Example: heredoc.Doc(`
			$ m365 spo set --url https://contoso.sharepoint.com
			$ m365 spo app deploy --name solution.sppkg
		`),
	}

	cmd.AddCommand(app.NewCmd(ctx))
	cmd.AddCommand(field.NewCmd(ctx))
	cmd.AddCommand(folder.NewCmd(ctx))
	cmd.AddCommand(page.NewCmd(ctx))
	cmd.AddCommand(get.NewCmd(ctx))
	cmd.AddCommand(set.NewCmd(ctx))

	return cmd
}
