// Package cds manages the JRuby class-data sharing archive
package cds

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
)

// Archive is the location of the shared archive for one runtime version
type Archive struct {
	Path string
	// Explicit is set when the path came from JRUBY_JSA
	Explicit bool
}

// DefaultPath returns the per-version archive inside the JRuby home
func DefaultPath(home, javaVersion string) string {
	return filepath.Join(home, "lib", fmt.Sprintf("jruby-java%s.jsa", javaVersion))
}

// Locate picks JRUBY_JSA when set, the default path otherwise
func Locate(snap *env.Snapshot, home, javaVersion string) Archive {
	if path, ok := snap.Lookup(env.JRubyJSA); ok && path != "" {
		return Archive{Path: path, Explicit: true}
	}
	return Archive{Path: DefaultPath(home, javaVersion)}
}

// LogPath returns the file the JVM logs archive generation to
func (a Archive) LogPath() string {
	return a.Path + ".log"
}

// Exists reports whether the archive file is present
func (a Archive) Exists(fsys platform.FS) bool {
	return platform.Exists(fsys, a.Path)
}

// IsStale reports whether jar was modified after the archive was written.
// A missing archive or jar is not stale.
func (a Archive) IsStale(fsys platform.FS, jar string) bool {
	archiveInfo, err := fsys.Stat(a.Path)
	if err != nil {
		return false
	}
	jarInfo, err := fsys.Stat(jar)
	if err != nil {
		return false
	}
	return jarInfo.ModTime().After(archiveInfo.ModTime())
}

// Writable reports whether the archive's directory accepts new files
func (a Archive) Writable(writable func(string) bool) bool {
	return writable(filepath.Dir(a.Path))
}

// Remove deletes the archive and its generation log. Missing files are ignored.
func (a Archive) Remove(fsys platform.FS, logger hclog.Logger) error {
	for _, path := range []string{a.Path, a.LogPath()} {
		err := fsys.Remove(path)
		switch {
		case err == nil:
			logger.Info("🗑️ Removed shared archive file", "path", path)
		case errors.Is(err, fs.ErrNotExist):
			logger.Trace("Shared archive file not present", "path", path)
		default:
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}
