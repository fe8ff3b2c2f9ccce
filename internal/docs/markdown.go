package docs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	"github.com/spf13/pflag"
	"github.com/tmeckel/m365-cli/internal/cmd/root"
)

type flagView struct {
	Name      string
	Shorthand string
	Varname   string
	DefValue  string
	Usage     string
}

// term renders the flag the way it is typed, e.g. `-u, --webUrl <string>`.
func (f flagView) term() string {
	var sb strings.Builder
	if f.Shorthand != "" {
		fmt.Fprintf(&sb, "-%s, ", f.Shorthand)
	}
	fmt.Fprintf(&sb, "--%s", f.Name)
	if f.Varname != "" {
		fmt.Fprintf(&sb, " <%s>", f.Varname)
	}
	return sb.String()
}

func collectFlags(fs *pflag.FlagSet) []flagView {
	var flags []flagView
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		varname, usage := pflag.UnquoteUsage(f)
		flags = append(flags, flagView{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Varname:   varname,
			DefValue:  defaultValue(f),
			Usage:     usage,
		})
	})
	return flags
}

func defaultValue(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "[]", "0", "0s":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

func writeFlags(w io.Writer, title string, flags []flagView) {
	if len(flags) == 0 {
		return
	}
	fmt.Fprintf(w, "## %s\n\n", title)
	for _, f := range flags {
		fmt.Fprintf(w, "`%s`\n: %s", f.term(), f.Usage)
		if f.DefValue != "" {
			fmt.Fprintf(w, " (default `%s`)", f.DefValue)
		}
		fmt.Fprint(w, "\n\n")
	}
}

func writeJSONFields(w io.Writer, cmd *cobra.Command) {
	raw, ok := cmd.Annotations["help:json-fields"]
	if !ok {
		return
	}

	fields := strings.Split(raw, ",")
	sort.Strings(fields)
	fmt.Fprint(w, "## JSON fields\n\n")
	fmt.Fprint(w, strings.Join(lo.Map(fields, func(f string, _ int) string {
		return "`" + f + "`"
	}), ", "))
	fmt.Fprint(w, "\n\n")
}

// genMarkdownCustom writes the page of a single command.
func genMarkdownCustom(cmd *cobra.Command, w io.Writer, linkHandler func(string) string) error {
	fmt.Fprintf(w, "# %s\n\n", cmd.CommandPath())

	description := cmd.Long
	if description == "" {
		description = cmd.Short
	}
	fmt.Fprintf(w, "%s\n\n", strings.TrimRight(description, "\n"))

	if cmd.Runnable() {
		fmt.Fprintf(w, "## Usage\n\n```sh\n%s\n```\n\n", cmd.UseLine())
	}

	if len(cmd.Aliases) > 0 {
		fmt.Fprint(w, "## Aliases\n\n")
		for _, a := range root.BuildAliasList(cmd, cmd.Aliases) {
			fmt.Fprintf(w, "- `%s`\n", a)
		}
		fmt.Fprint(w, "\n")
	}

	for _, g := range root.GroupedCommands(cmd) {
		fmt.Fprintf(w, "## %s\n\n", g.Title)
		for _, sub := range g.Commands {
			fmt.Fprintf(w, "* [%s](%s): %s\n", sub.CommandPath(), linkHandler(cmdManualPath(sub)), sub.Short)
		}
		fmt.Fprint(w, "\n")
	}

	writeFlags(w, "Options", collectFlags(cmd.NonInheritedFlags()))
	writeFlags(w, "Global options", collectFlags(cmd.InheritedFlags()))
	writeJSONFields(w, cmd)

	if cmd.Example != "" {
		fmt.Fprintf(w, "## Examples\n\n```sh\n%s\n```\n\n", strings.TrimRight(cmd.Example, "\n"))
	}

	if cmd.HasParent() {
		p := cmd.Parent()
		fmt.Fprint(w, "## See also\n\n")
		fmt.Fprintf(w, "* [%s](%s)\n", p.CommandPath(), linkHandler(cmdManualPath(p)))
	}

	return nil
}

// GenMarkdownTreeCustom writes one page per visible command below cmd into dir.
// Setting M365_COBRA switches to the stock cobra generator.
func GenMarkdownTreeCustom(cmd *cobra.Command, dir string, filePrepender, linkHandler func(string) string) error {
	if os.Getenv("M365_COBRA") != "" {
		return doc.GenMarkdownTreeCustom(cmd, dir, filePrepender, linkHandler)
	}

	for _, c := range cmd.Commands() {
		_, forceGeneration := c.Annotations["markdown:generate"]
		if c.Hidden && !forceGeneration {
			continue
		}
		if err := GenMarkdownTreeCustom(c, dir, filePrepender, linkHandler); err != nil {
			return err
		}
	}

	filename := filepath.Join(dir, cmdManualPath(cmd))
	f, err := os.Create(filename) //nolint:gosec
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.WriteString(f, filePrepender(filename)); err != nil {
		return err
	}
	return genMarkdownCustom(cmd, f, linkHandler)
}

func cmdManualPath(c *cobra.Command) string {
	if basenameOverride, found := c.Annotations["markdown:basename"]; found {
		return basenameOverride + ".md"
	}
	return strings.ReplaceAll(c.CommandPath(), " ", "_") + ".md"
}
