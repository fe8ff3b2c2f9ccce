package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
	"github.com/tmeckel/m365-cli/internal/auth"
	"github.com/tmeckel/m365-cli/internal/build"
	"github.com/tmeckel/m365-cli/internal/cmd/root"
	cmdutil "github.com/tmeckel/m365-cli/internal/cmd/util"
	"github.com/tmeckel/m365-cli/internal/iostreams"
	"github.com/tmeckel/m365-cli/internal/util"
	"go.uber.org/zap"
)

type exitCode int

const (
	exitOK     exitCode = 0
	exitError  exitCode = 1
	exitCancel exitCode = 2
	exitAuth   exitCode = 4
)

func init() {
	var logger *zap.Logger
	var err error
	if debug, _ := util.IsDebugEnabled(); debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	zap.ReplaceGlobals(zap.Must(logger, err))
}

func main() {
	code := mainRun()
	_ = zap.L().Sync()
	os.Exit(int(code))
}

func mainRun() exitCode {
	zap.L().Sugar().Debugf("Version %s, Date %+v", build.Version, build.Date)

	cmdCtx, err := cmdutil.NewCmdContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create command context: %s\n", err)
		return exitError
	}

	iostrms, err := cmdCtx.IOStreams()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get IOStreams: %s\n", err)
		return exitError
	}

	rootCmd, err := root.NewCmdRoot(cmdCtx, build.Version, build.Date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create root command: %s\n", err)
		return exitError
	}

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		if root.HasFailed() {
			return exitError
		}
		return exitOK
	}

	return exitCodeFor(err, cmd, iostrms)
}

// exitCodeFor reports err on stderr and maps it to the process exit code.
func exitCodeFor(err error, cmd *cobra.Command, ios *iostreams.IOStreams) exitCode {
	var pagerPipeError *iostreams.ErrClosedPagerPipe
	var noResultsError cmdutil.ErrNoResults
	var authError *root.AuthError
	stderr := ios.ErrOut

	switch {
	case errors.Is(err, cmdutil.ErrSilent):
		return exitError
	case cmdutil.IsUserCancellation(err):
		if errors.Is(err, terminal.InterruptErr) {
			// start the next shell prompt on its own line
			fmt.Fprint(stderr, "\n")
		}
		return exitCancel
	case errors.As(err, &authError):
		return exitAuth
	case errors.Is(err, auth.ErrLoginRequired):
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "To get started with m365, please run:  m365 auth login")
		return exitAuth
	case errors.As(err, &pagerPipeError):
		return exitOK
	case errors.As(err, &noResultsError):
		if ios.IsStdoutTTY() {
			fmt.Fprintln(stderr, noResultsError.Error())
		}
		return exitOK
	}

	printError(stderr, err, cmd)
	return exitError
}

func printError(out io.Writer, err error, cmd *cobra.Command) {
	var dnsError *net.DNSError
	if errors.As(err, &dnsError) {
		fmt.Fprintf(out, "error connecting to %s\n", dnsError.Name)
		if debug, _ := util.IsDebugEnabled(); debug {
			fmt.Fprintln(out, dnsError)
		}
		fmt.Fprintln(out, "check your internet connection or https://status.cloud.microsoft")
		return
	}

	fmt.Fprintln(out, err)

	var flagError *cmdutil.ErrFlag
	if errors.As(err, &flagError) || strings.HasPrefix(err.Error(), "unknown command ") {
		if !strings.HasSuffix(err.Error(), "\n") {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, cmd.UsageString())
	}
}
