// SPDX-License-Identifier: Apache-2.0
package assemble

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
)

// Jar names looked up under <home>/lib.
const (
	JRubyJar         = "jruby.jar"
	JRubyCompleteJar = "jruby-complete.jar"
)

// nativeOSNames maps GOOS to the directory naming used by the bundled JNI
// libraries.
var nativeOSNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Darwin",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"solaris": "SunOS",
	"illumos": "SunOS",
	"aix":     "AIX",
}

func (s *assembly) libraryPath() error {
	dir := s.libDir("jni")
	if !platform.IsDir(s.FS, dir) {
		dir = s.libDir("native")
		if !platform.IsDir(s.FS, dir) {
			return fmt.Errorf("%w: looked in %s and %s", lerrors.ErrJNIDirNotFound, s.libDir("jni"), dir)
		}
	}

	entries := []string{dir}
	if osName, ok := nativeOSNames[s.OS]; ok {
		children, err := s.FS.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, child := range children {
			if child.IsDir() && strings.Contains(child.Name(), osName) {
				entries = append(entries, filepath.Join(dir, child.Name()))
			}
		}
	}

	s.logger.Trace("JNI library path", "entries", entries)
	s.add("-Djffi.boot.library.path=" + strings.Join(entries, string(filepath.ListSeparator)))
	return nil
}

func (s *assembly) bootClasspath() {
	jar := s.libDir(JRubyJar)
	complete := s.libDir(JRubyCompleteJar)
	hasJar := platform.Exists(s.FS, jar)
	hasComplete := platform.Exists(s.FS, complete)

	switch {
	case hasJar && hasComplete:
		s.logger.Warn("Both jruby.jar and jruby-complete.jar are present, using jruby.jar", "lib", s.libDir())
		s.bootJar = jar
	case hasJar:
		s.bootJar = jar
	case hasComplete:
		s.bootJar = complete
	default:
		s.logger.Warn("Neither jruby.jar nor jruby-complete.jar found", "lib", s.libDir())
		return
	}

	if s.in.Options.NoBootClasspath {
		s.logger.Debug("Boot classpath disabled, jar is loaded from the classpath", "jar", s.bootJar)
		return
	}
	s.bootPath = append(s.bootPath, s.bootJar)
}

func (s *assembly) appendClasspath(entry string) {
	if entry == "" {
		return
	}
	if s.seen[entry] {
		s.logger.Info("Skipping duplicate classpath entry", "entry", entry)
		return
	}
	s.seen[entry] = true
	s.classpath = append(s.classpath, entry)
}

func (s *assembly) buildClasspath() error {
	opts := s.in.Options

	for _, entry := range opts.ClasspathBefore {
		s.appendClasspath(entry)
	}

	lib := s.libDir()
	entries, err := s.FS.ReadDir(lib)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", lib, err)
	}
	var jars []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jar") {
			jars = append(jars, filepath.Join(lib, entry.Name()))
		}
	}
	sort.Strings(jars)
	for _, jar := range jars {
		s.appendClasspath(jar)
	}

	if len(opts.ClasspathExplicit) > 0 {
		s.logger.Debug("Explicit classpath replaces CLASSPATH", "entries", opts.ClasspathExplicit)
		for _, entry := range opts.ClasspathExplicit {
			s.appendClasspath(entry)
		}
	} else if cp, ok := s.in.Env.Lookup(env.Classpath); ok {
		for _, entry := range filepath.SplitList(cp) {
			s.appendClasspath(entry)
		}
	}

	for _, entry := range opts.ClasspathAfter {
		s.appendClasspath(entry)
	}
	return nil
}
