// SPDX-License-Identifier: Apache-2.0
// Package platform isolates the operating-system primitives the launcher
// needs: file queries, self-path introspection, access checks, console
// detection and the final exec/spawn of the java process.
//
// The resolution packages only ever talk to these interfaces; the posix and
// windows variants are selected at build time.
package platform

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/go-hclog"
)

// FS is the read side of the file system plus archive removal.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Remove(name string) error
}

// Services are the primitive OS calls behind the launch algorithm.
type Services interface {
	// OS returns the GOOS-style platform name.
	OS() string
	// Executable returns the resolved path of the running binary.
	Executable() (string, bool)
	Exists(path string) bool
	Readable(path string) bool
	Writable(path string) bool
	// ConsoleAttached reports whether the launcher runs inside a console.
	ConsoleAttached() bool
	// Execute runs command with args. Depending on the platform and fork it
	// replaces the current process (and only returns on failure) or spawns a
	// child and returns its exit code.
	Execute(command string, args []string, fork bool, logger hclog.Logger) (int, error)
}

// OSFS implements FS on the real file system.
type OSFS struct{}

func (OSFS) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (OSFS) ReadFile(name string) ([]byte, error)       { return os.ReadFile(name) }
func (OSFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (OSFS) Remove(name string) error                   { return os.Remove(name) }

// Exists reports whether name can be stat'ed.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// IsDir reports whether name is a directory.
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}

// base holds the primitives shared by every platform variant.
type base struct{}

func (base) OS() string { return runtime.GOOS }

func (base) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (base) Executable() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", false
	}
	return resolved, true
}

// exitCode extracts the exit status of a finished child.
func exitCode(err error) (int, bool) {
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
