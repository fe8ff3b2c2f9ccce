package root

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/tmeckel/m365-cli/internal/iostreams"
)

func newHelpTree() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "m365"}
	spo := &cobra.Command{Use: "spo <command>", Short: "Manage SharePoint Online"}
	folder := &cobra.Command{Use: "folder <command>", Short: "Manage folders"}
	remove := &cobra.Command{
		Use:     "remove",
		Short:   "Clear the retention label from a folder",
		Aliases: []string{"rm"},
		RunE:    func(*cobra.Command, []string) error { return nil },
	}
	remove.Flags().StringP("webUrl", "u", "", "Absolute URL of the site")
	retention := &cobra.Command{Use: "retentionlabel <command>", Short: "Manage retention labels"}
	retention.AddCommand(remove)
	folder.AddCommand(retention)
	spo.AddCommand(folder, &cobra.Command{Use: "hidden", Hidden: true, Run: func(*cobra.Command, []string) {}})
	root.AddCommand(spo)
	return spo, remove
}

func TestHelpListsSubcommandsAligned(t *testing.T) {
	io, _, stdout, _ := iostreams.Test()
	spo, _ := newHelpTree()

	rootHelpFunc(io, spo, nil)

	got := stdout.String()
	assert.Contains(t, got, "AVAILABLE COMMANDS\n  folder: Manage folders\n")
	assert.NotContains(t, got, "hidden")
	assert.Contains(t, got, "LEARN MORE")
}

func TestHelpShowsAliasesWithParentPath(t *testing.T) {
	io, _, stdout, _ := iostreams.Test()
	_, remove := newHelpTree()

	rootHelpFunc(io, remove, nil)

	got := stdout.String()
	assert.Contains(t, got, "ALIASES\n  m365 spo folder retentionlabel rm\n")
	assert.Contains(t, got, "FLAGS\n  -u, --webUrl string")
}

func TestNestedSuggestFunc(t *testing.T) {
	spo, _ := newHelpTree()
	var buf bytes.Buffer

	nestedSuggestFunc(&buf, spo, "foldr")

	assert.Contains(t, buf.String(), "unknown command \"foldr\" for \"m365 spo\"")
	assert.Contains(t, buf.String(), "Did you mean this?\n\tfolder\n")
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "-u, --webUrl string\n    --force", dedent("  -u, --webUrl string\n      --force"))
	assert.Equal(t, "", dedent(""))
}

func TestRpad(t *testing.T) {
	assert.Equal(t, "spo:   ", rpad("spo:", 6))
}
