package docs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/spf13/cobra"
)

// GenManTree writes a section 1 manual page for cmd and every visible
// subcommand into dir. Hidden help topics opt in like they do for markdown.
func GenManTree(cmd *cobra.Command, dir string) error {
	for _, c := range cmd.Commands() {
		if _, forceGeneration := c.Annotations["markdown:generate"]; c.Hidden && !forceGeneration {
			continue
		}
		if err := GenManTree(c, dir); err != nil {
			return err
		}
	}

	page, err := genMan(cmd)
	if err != nil {
		return err
	}

	filename := filepath.Join(dir, manPageName(cmd)+".1")
	return os.WriteFile(filename, page, 0o644) //nolint:gosec
}

func genMan(cmd *cobra.Command) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%% %s(1)\n\n", strings.ToUpper(manPageName(cmd)))
	if err := genMarkdownCustom(cmd, &buf, func(name string) string {
		return strings.TrimSuffix(name, ".md")
	}); err != nil {
		return nil, err
	}
	return md2man.Render(buf.Bytes()), nil
}

func manPageName(c *cobra.Command) string {
	return strings.ReplaceAll(c.CommandPath(), " ", "-")
}
