// SPDX-License-Identifier: Apache-2.0
package assemble

import (
	"path/filepath"

	"github.com/jruby/jruby-launcher/internal/cds"
	"github.com/jruby/jruby-launcher/pkg/launcher/jvm"
	"github.com/jruby/jruby-launcher/pkg/launcher/options"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
)

// ModuleName is the JPMS module JRuby is loaded as.
const ModuleName = "org.jruby.dist"

// ModuleOptsFile is the argument file shipped under <home>/bin.
const ModuleOptsFile = ".jruby.module_opts"

// DefaultModuleOptions are used when the installation has no argument file.
var DefaultModuleOptions = []string{
	"--add-opens", "java.base/java.io=" + ModuleName,
	"--add-opens", "java.base/java.nio.channels=" + ModuleName,
	"--add-opens", "java.base/sun.nio.ch=" + ModuleName,
	"--add-opens", "java.management/sun.management=" + ModuleName,
}

func (s *assembly) moduleOptions() {
	file := filepath.Join(s.in.Home, "bin", ModuleOptsFile)
	if platform.Exists(s.FS, file) {
		s.add("@" + file)
		return
	}
	s.logger.Debug("No module options file, using defaults", "path", file)
	s.add(DefaultModuleOptions...)
}

func (s *assembly) accessOptions() {
	if s.in.Info.Has(jvm.NativeAccess) {
		if s.in.Info.Modular {
			s.add("--enable-native-access=" + ModuleName)
		} else {
			s.add("--enable-native-access=ALL-UNNAMED")
		}
	}
	if s.in.Info.Has(jvm.UnsafeMemoryAccess) {
		s.add("--sun-misc-unsafe-memory-access=allow")
	}
}

func (s *assembly) sharedArchive() {
	opts := s.in.Options
	if !s.in.Info.SharedArchive {
		s.logger.Trace("Runtime has no default shared archive")
		return
	}
	if opts.Cache == options.CacheDisabled {
		s.logger.Debug("Shared archive disabled")
		return
	}

	archive := cds.Locate(s.in.Env, s.in.Home, s.in.Info.Version)

	if opts.RemoveCache {
		if err := archive.Remove(s.FS, s.logger); err != nil {
			s.logger.Warn("Could not remove shared archive", "error", err)
		}
		return
	}

	exists := archive.Exists(s.FS)
	regenerate := opts.Cache == options.CacheRegenerate
	if exists && s.bootJar != "" && archive.IsStale(s.FS, s.bootJar) {
		s.logger.Info("Shared archive is older than jruby.jar, regenerating", "archive", archive.Path)
		regenerate = true
	}

	var writing bool
	switch {
	case s.in.Info.Has(jvm.AutoCreateSharedArchive):
		s.add("-XX:+AutoCreateSharedArchive", "-XX:SharedArchiveFile="+archive.Path)
		writing = regenerate || !exists
	case regenerate:
		s.add("-XX:ArchiveClassesAtExit=" + archive.Path)
		writing = true
	case exists:
		s.add("-XX:SharedArchiveFile=" + archive.Path)
	default:
		s.logger.Trace("No shared archive to use", "archive", archive.Path)
	}

	if writing && archive.Explicit && s.Writable != nil && !archive.Writable(s.Writable) {
		s.logger.Warn("Shared archive directory is not writable", "archive", archive.Path)
	}

	switch {
	case opts.LogCDS:
		s.add("-Xlog:cds=info", "-Xlog:cds+dynamic=info")
	case writing:
		s.add("-Xlog:cds=info:file="+archive.LogPath(), "-Xlog:cds+dynamic=info:file="+archive.LogPath())
	default:
		s.add("-Xlog:cds=off", "-Xlog:cds+dynamic=off")
	}
}
