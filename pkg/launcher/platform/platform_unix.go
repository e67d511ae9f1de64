//go:build !windows

// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/unix"
)

// posix replaces the launcher with java via execve, or spawns it in fork mode.
type posix struct {
	base
}

// New returns the services for the running platform.
func New() Services {
	return posix{}
}

func (posix) Readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

func (posix) Writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func (posix) ConsoleAttached() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsTerminal(os.Stdout.Fd())
}

func (posix) Execute(command string, args []string, fork bool, logger hclog.Logger) (int, error) {
	if fork {
		return spawn(command, args, logger)
	}

	argv := append([]string{command}, args...)
	logger.Info("🔄 Replacing process via exec()", "command", command)
	logger.Trace("exec argv", "argv", argv)

	// Only returns on failure.
	err := unix.Exec(command, argv, os.Environ())
	return 1, fmt.Errorf("exec %s: %w", command, err)
}

// spawn runs java as a child and waits for it. SIGINT is routed to the
// child by the terminal; the parent catches it so it survives to report the
// child's status. The handler is installed before the child starts.
func spawn(command string, args []string, logger hclog.Logger) (int, error) {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info("🚀 Spawning child process", "command", command)
	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("failed to start process: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if code, ok := exitCode(err); ok {
			logger.Info("⏹️ Process exited", "code", code)
			return code, nil
		}
		return 1, fmt.Errorf("process error: %w", err)
	}

	logger.Info("⏹️ Process exited successfully", "code", 0)
	return 0, nil
}
