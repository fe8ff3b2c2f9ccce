package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tmeckel/m365-cli/internal/build"
	"github.com/tmeckel/m365-cli/internal/cmd/root"
	"github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/docs"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	zap.L().Sugar().Debugf("Version %s, Date %+v", build.Version, build.Date)

	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	manPage := flags.BoolP("man-page", "", false, "Generate manual pages")
	website := flags.BoolP("website", "", false, "Generate website pages")
	dir := flags.StringP("doc-path", "", "", "Path directory where you want generate doc files")
	help := flags.BoolP("help", "h", false, "Help about any command")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *help {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n\n%s", filepath.Base(args[0]), flags.FlagUsages())
		return nil
	}

	if !*website && !*manPage {
		return fmt.Errorf("error: specify --website, --man-page or both")
	}

	if *dir == "" {
		return fmt.Errorf("error: --doc-path not set")
	}

	cmdCtx, err := util.NewCmdContext()
	if err != nil {
		return fmt.Errorf("failed to create command context: %w", err)
	}

	rootCmd, err := root.NewCmdRoot(cmdCtx, build.Version, build.Date)
	if err != nil {
		return err
	}
	rootCmd.InitDefaultHelpCmd()

	if err := os.MkdirAll(*dir, 0o755); err != nil { //nolint:gosec
		return err
	}

	if *website {
		if err := docs.GenMarkdownTreeCustom(rootCmd, *dir, filePrepender, linkHandler); err != nil {
			return err
		}
	}

	if *manPage {
		if err := docs.GenManTree(rootCmd, *dir); err != nil {
			return err
		}
	}

	return nil
}

type frontMatter struct {
	Title string `yaml:"title"`
	Slug  string `yaml:"slug"`
}

// filePrepender emits the front matter the documentation site expects.
func filePrepender(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), ".md")
	fm, err := yaml.Marshal(frontMatter{
		Title: strings.ReplaceAll(name, "_", " "),
		Slug:  name,
	})
	if err != nil {
		zap.L().Sugar().Debugf("failed to render front matter for %s: %v", filename, err)
		return ""
	}
	return "---\n" + string(fm) + "---\n\n"
}

func linkHandler(name string) string {
	return "./" + strings.TrimSuffix(name, ".md")
}
