package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
)

var semverRE = regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[\w.]+)?$`)

func NewCmd(ctx util.CmdContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "version",
		Hidden: true,
		Args:   cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			ios, err := ctx.IOStreams()
			if err != nil {
				return err
			}
			fmt.Fprint(ios.Out, cmd.Root().Annotations["versionInfo"])
			return nil
		},
	}

	util.DisableAuthCheck(cmd)

	return cmd
}

func Format(version, buildDate string) string {
	version = strings.TrimPrefix(version, "v")

	var dateStr string
	if buildDate != "" {
		dateStr = fmt.Sprintf(" (%s)", buildDate)
	}

	return fmt.Sprintf("m365 version %s%s\n%s\n", version, dateStr, releaseURL(version))
}

func releaseURL(version string) string {
	path := "https://github.com/tmeckel/m365-cli"
	if !semverRE.MatchString(version) {
		return fmt.Sprintf("%s/releases/latest", path)
	}
	return fmt.Sprintf("%s/releases/tag/v%s", path, strings.TrimPrefix(version, "v"))
}
