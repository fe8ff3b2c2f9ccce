//go:build !windows

package iostreams

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func enableVirtualTerminalProcessing(_ *os.File) error {
	return errors.New("not implemented")
}

func isEpipeError(err error) bool {
	return errors.Is(err, unix.EPIPE)
}
