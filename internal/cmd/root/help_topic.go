package root

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/text"
	"go.uber.org/zap"
)

type helpTopic struct {
	name    string
	short   string
	long    string
	example string
}

var HelpTopics = []helpTopic{
	{
		name:  "environment",
		short: "Environment variables that can be used with m365",
		long: heredoc.Docf(`
			# Environment variables

			- M365_APP_ID: client id of the app registration used to log in. Takes precedence over
			  the app id stored with %[1]sm365 auth login%[1]s.

			- M365_TENANT: id or domain of the tenant to log in to.

			- M365_CLIENT_SECRET: client secret of the app registration. When set without a stored
			  connection, m365 logs in as the app using the secret.

			- M365_DEBUG: set to a truthy value to enable verbose output on standard error. Set to "api"
			  to additionally log details of HTTP traffic.

			- M365_PAGER, PAGER (in order of precedence): a terminal paging program to send standard
			  output to, e.g. "less".

			- GLAMOUR_STYLE: the style to use for rendering Markdown. See
			  <https://github.com/charmbracelet/glamour#styles>

			- NO_COLOR: set to any value to avoid printing ANSI escape sequences for color output.

			- CLICOLOR: set to "0" to disable printing ANSI colors in output.

			- CLICOLOR_FORCE: set to a value other than "0" to keep ANSI colors in output
			  even when the output is piped.

			- M365_FORCE_TTY: set to any value to force terminal-style output even when the output is
			  redirected. When the value is a number, it is interpreted as the number of columns
			  available in the viewport.

			- M365_CONFIG_DIR: the directory where m365 stores configuration files. If not specified,
			  the default value is one of the following paths (in order of precedence):
			  "$XDG_CONFIG_HOME/m365" (if $XDG_CONFIG_HOME is set), "$AppData/M365 CLI"
			  (on Windows if $AppData is set), or "$HOME/.config/m365".

			- M365_PROMPT_DISABLED: set to any value to disable interactive prompting in the terminal.
		`, "`"),
	},
	{
		name:  "exit-codes",
		short: "Exit codes used by m365",
		long: heredoc.Doc(`
			# Exit codes

			m365 follows normal conventions regarding exit codes.

			- If a command completes successfully, the exit code is 0.

			- If a command fails for any reason, the exit code is 1.

			- If a command is running but gets cancelled, the exit code is 2.

			- If a command requires authentication and m365 is not logged in, the exit code is 4.

			A command that finds nothing to return also exits with 0.
		`),
	},
	{
		name:  "output",
		short: "Formatting the output of m365 commands",
		long: heredoc.Docf(`
			# Output formats

			Every command returning data supports the %[1]s--output%[1]s flag. The default format is
			read from the %[1]soutput%[1]s configuration key and falls back to %[1]sjson%[1]s.

			- json: the JSON response, pretty printed and colorized on a terminal.
			- text: a table of the most important properties for lists, or one %[1]skey: value%[1]s
			  line per property for single objects.
			- csv: a header row and one row per object.
			- md: a Markdown document with one section per object.

			## Selecting and filtering

			- %[1]s--json fields%[1]s limits the output to the given comma separated properties.
			  Prefix a property with %[1]s-%[1]s to drop it from the default selection.
			- %[1]s--jq expression%[1]s (or %[1]s--query%[1]s) filters the JSON form of the result with a
			  jq expression before it is rendered in the selected format.
		`, "`"),
		example: heredoc.Doc(`
			$ m365 graph changelog list --versions v1.0 --output text
			$ m365 tenant serviceannouncement healthissue list --json id,title,status
			$ m365 tenant serviceannouncement healthissue list --jq '.[] | select(.isResolved | not) | .id'
		`),
	},
}

func NewCmdHelpTopic(ios *iostreams.IOStreams, ht helpTopic) *cobra.Command {
	cmd := &cobra.Command{
		Use:     ht.name,
		Short:   ht.short,
		Long:    ht.long,
		Example: ht.example,
		Hidden:  true,
		Annotations: map[string]string{
			"markdown:generate": "true",
			"markdown:basename": "m365_help_" + ht.name,
		},
	}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return helpTopicUsageFunc(ios.ErrOut, c)
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		helpTopicHelpFunc(ios, c)
	})

	return cmd
}

func helpTopicHelpFunc(ios *iostreams.IOStreams, command *cobra.Command) {
	w := ios.Out
	rendered, err := renderMarkdown(ios, command.Long)
	if err != nil {
		zap.L().Sugar().Debugf("failed to render help topic %s: %v", command.Name(), err)
		rendered = command.Long
	}
	fmt.Fprint(w, rendered)
	if command.Example != "" {
		fmt.Fprintf(w, "\n\nEXAMPLES\n")
		fmt.Fprint(w, text.Indent(command.Example, "  "))
	}
}

func helpTopicUsageFunc(w io.Writer, command *cobra.Command) error {
	fmt.Fprintf(w, "Usage: m365 help %s", command.Use)
	return nil
}

// renderMarkdown renders md for the terminal. Without color support the
// markdown is returned unchanged.
func renderMarkdown(ios *iostreams.IOStreams, md string) (string, error) {
	if !ios.ColorEnabled() {
		return md, nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(ios.TerminalWidth()),
		glamour.WithEmoji(),
	}
	if _, ok := os.LookupEnv("GLAMOUR_STYLE"); ok {
		opts = append(opts, glamour.WithEnvironmentConfig())
	} else {
		opts = append(opts, glamour.WithStandardStyle(ios.TerminalTheme()))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
