// SPDX-License-Identifier: Apache-2.0
// Package home determines the JRuby installation directory.
package home

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/launcher/pathfind"
)

// Locator resolves the installation home from the environment, the running
// binary and argv[0], in that order.
type Locator struct {
	// Exists reports whether a path exists.
	Exists func(path string) bool
	// SelfExecutable returns the real path of the running binary when the
	// platform can tell. May be nil.
	SelfExecutable func() (string, bool)
	Logger         hclog.Logger
}

// Locate returns the installation home.
//
// An explicit JRUBY_HOME with a bin directory is used as-is. Otherwise the
// launcher executable is found and the home is two levels above it
// (<home>/bin/jruby).
func (l *Locator) Locate(snap *env.Snapshot) (string, error) {
	logger := l.logger()

	if jrubyHome, ok := snap.Lookup(env.JRubyHome); ok && jrubyHome != "" {
		if l.Exists(filepath.Join(jrubyHome, "bin")) {
			logger.Debug("🏠 Using JRUBY_HOME", "path", jrubyHome)
			return jrubyHome, nil
		}
		logger.Warn("⚠️ JRUBY_HOME has no bin directory, ignoring", "path", jrubyHome)
	}

	executable, err := l.Executable(snap)
	if err != nil {
		return "", err
	}

	home := filepath.Dir(filepath.Dir(executable))
	logger.Debug("🏠 Derived home from executable", "executable", executable, "home", home)
	return home, nil
}

// Executable returns the path of the launcher executable.
func (l *Locator) Executable(snap *env.Snapshot) (string, error) {
	logger := l.logger()

	if l.SelfExecutable != nil {
		if self, ok := l.SelfExecutable(); ok {
			logger.Debug("Resolved executable from platform", "path", self)
			return self, nil
		}
	}

	candidate := l.fromArgv0(snap)
	if candidate == "" || !l.Exists(candidate) {
		return "", fmt.Errorf("%w: launcher executable %q does not exist", lerrors.ErrHomeNotFound, candidate)
	}

	return candidate, nil
}

func (l *Locator) fromArgv0(snap *env.Snapshot) string {
	logger := l.logger()
	argv0 := snap.Argv0()

	if filepath.IsAbs(argv0) {
		logger.Trace("argv0 is absolute", "path", argv0)
		return argv0
	}

	if cwd, ok := snap.CurrentDir(); ok && filepath.Base(argv0) != argv0 {
		joined := filepath.Join(cwd, argv0)
		if l.Exists(joined) {
			logger.Trace("argv0 is relative to the working directory", "path", joined)
			return joined
		}
	}

	finder := &pathfind.Finder{Exists: l.Exists, Logger: logger}
	if found, ok := finder.Find(filepath.Base(argv0), snap.Get(env.Path)); ok {
		return found
	}

	logger.Trace("Falling back to literal argv0", "path", argv0)
	return argv0
}

func (l *Locator) logger() hclog.Logger {
	if l.Logger == nil {
		return hclog.NewNullLogger()
	}
	return l.Logger
}
