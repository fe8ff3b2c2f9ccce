//go:build windows

package iostreams

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

func enableVirtualTerminalProcessing(f *os.File) error {
	stdout := windows.Handle(f.Fd())

	var originalMode uint32
	if err := windows.GetConsoleMode(stdout, &originalMode); err != nil {
		return err
	}
	return windows.SetConsoleMode(stdout, originalMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING)
}

func isEpipeError(err error) bool {
	return errors.Is(err, windows.ERROR_NO_DATA)
}
