//go:build windows

// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetConsoleWindow      = kernel32.NewProc("GetConsoleWindow")
	procSetConsoleCtrlHandler = kernel32.NewProc("SetConsoleCtrlHandler")
)

// native creates java with CreateProcess; Windows has no exec.
type native struct {
	base
}

// New returns the services for the running platform.
func New() Services {
	return native{}
}

func (native) Readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func (native) Writable(path string) bool {
	probe, err := os.CreateTemp(path, ".jruby-launcher-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return true
}

func (native) ConsoleAttached() bool {
	if hwnd, _, _ := procGetConsoleWindow.Call(); hwnd != 0 {
		return true
	}
	// MSYS and Cygwin terminals are pipes, not consoles.
	return isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Execute always spawns. The child is created suspended so that Ctrl-C
// handling is disabled in the parent before the child can receive input.
func (n native) Execute(command string, args []string, fork bool, logger hclog.Logger) (int, error) {
	if !n.ConsoleAttached() {
		command = windowedVariant(command)
		logger.Debug("💻 No console attached, using windowed java", "command", command)
	}

	commandLine := composeCommandLine(append([]string{command}, args...))
	commandLinePtr, err := windows.UTF16PtrFromString(commandLine)
	if err != nil {
		return 1, fmt.Errorf("failed to encode command line: %w", err)
	}

	var si windows.StartupInfo
	si.Cb = uint32(unsafe.Sizeof(si))
	var pi windows.ProcessInformation

	logger.Info("🚀 Executing", "command_line", commandLine)
	err = windows.CreateProcess(nil, commandLinePtr, nil, nil, true,
		windows.CREATE_SUSPENDED, nil, nil, &si, &pi)
	if err != nil {
		return 1, fmt.Errorf("could not launch process %s: %w", command, err)
	}
	defer windows.CloseHandle(pi.Process)
	defer windows.CloseHandle(pi.Thread)

	// Must happen before ResumeThread.
	if ret, _, callErr := procSetConsoleCtrlHandler.Call(0, 1); ret == 0 {
		logger.Error("Could not set up console control handler", "error", callErr)
	}

	if _, err := windows.ResumeThread(pi.Thread); err != nil {
		return 1, fmt.Errorf("failed to resume process: %w", err)
	}

	if _, err := windows.WaitForSingleObject(pi.Process, windows.INFINITE); err != nil {
		return 1, fmt.Errorf("failed waiting for process: %w", err)
	}

	var code uint32
	if err := windows.GetExitCodeProcess(pi.Process, &code); err != nil {
		return 1, fmt.Errorf("failed to read exit code: %w", err)
	}

	logger.Info("⏹️ Process exited", "code", code)
	return int(code), nil
}

func windowedVariant(command string) string {
	if strings.EqualFold(filepath.Base(command), "java.exe") {
		return filepath.Join(filepath.Dir(command), "javaw.exe")
	}
	return command
}

func composeCommandLine(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = windows.EscapeArg(arg)
	}
	return strings.Join(quoted, " ")
}
