// SPDX-License-Identifier: Apache-2.0
// Package pathfind locates executables on a PATH-like directory list.
package pathfind

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// Finder searches directory lists using an injected existence test.
type Finder struct {
	Exists func(path string) bool
	Logger hclog.Logger
}

// Find returns the first entry of pathList joined with name that exists.
// An empty pathList is treated as absent.
func (f *Finder) Find(name, pathList string) (string, bool) {
	if pathList == "" {
		return "", false
	}

	logger := f.logger()
	logger.Debug("🔍 Searching path list", "name", name)

	for _, dir := range filepath.SplitList(pathList) {
		candidate := filepath.Join(dir, name)
		logger.Trace("Testing candidate", "path", candidate)
		if f.Exists(candidate) {
			logger.Debug("✅ Found on path", "path", candidate)
			return candidate, true
		}
	}

	return "", false
}

func (f *Finder) logger() hclog.Logger {
	if f.Logger == nil {
		return hclog.NewNullLogger()
	}
	return f.Logger
}
