// SPDX-License-Identifier: Apache-2.0
package jvm

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/launcher/pathfind"
)

// Runtime is the java command to run and the home it belongs to.
type Runtime struct {
	Command string
	Home    string
}

// Resolver finds the java command.
type Resolver struct {
	OS           string
	Finder       *pathfind.Finder
	EvalSymlinks func(path string) (string, error)
	Logger       hclog.Logger
}

// CommandName returns the java executable name on goos.
func CommandName(goos string) string {
	if goos == "windows" {
		return "java.exe"
	}
	return "java"
}

// Resolve picks the java command from JAVACMD, the -Xjdkhome override,
// JAVA_HOME, then PATH.
func (r *Resolver) Resolve(jdkHome string, snap *env.Snapshot) (Runtime, error) {
	logger := r.logger()
	name := CommandName(r.OS)

	if cmd, ok := snap.Lookup(env.JavaCmd); ok && cmd != "" {
		logger.Debug("Found JAVACMD", "command", cmd)
		if !filepath.IsAbs(cmd) {
			if found, ok := r.Finder.Find(cmd, snap.Get(env.Path)); ok {
				cmd = found
			}
		}
		return Runtime{Command: cmd, Home: r.homeOf(cmd)}, nil
	}

	if jdkHome != "" {
		logger.Debug("-Xjdkhome was specified", "path", jdkHome)
		return Runtime{Command: filepath.Join(jdkHome, "bin", name), Home: jdkHome}, nil
	}

	if javaHome, ok := snap.Lookup(env.JavaHome); ok && javaHome != "" {
		logger.Debug("Deriving from JAVA_HOME", "path", javaHome)
		return Runtime{Command: filepath.Join(javaHome, "bin", name), Home: javaHome}, nil
	}

	logger.Debug("Trying to find java command on PATH")
	if found, ok := r.Finder.Find(name, snap.Get(env.Path)); ok {
		return Runtime{Command: found, Home: r.homeOf(found)}, nil
	}

	return Runtime{}, fmt.Errorf("%w: set JAVA_HOME or add %s to PATH", lerrors.ErrJavaNotFound, name)
}

// homeOf climbs from <home>/bin/java, following symlinks such as
// /usr/bin/java -> /usr/lib/jvm/.../bin/java.
func (r *Resolver) homeOf(command string) string {
	resolved := command
	if r.EvalSymlinks != nil {
		if target, err := r.EvalSymlinks(command); err == nil {
			resolved = target
		} else {
			r.logger().Trace("Could not resolve symlinks", "path", command, "error", err)
		}
	}
	return filepath.Dir(filepath.Dir(resolved))
}

func (r *Resolver) logger() hclog.Logger {
	if r.Logger == nil {
		return hclog.NewNullLogger()
	}
	return r.Logger
}
