// SPDX-License-Identifier: Apache-2.0
// Package jvm resolves the java command and inspects the runtime it belongs to.
package jvm

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
)

// ReleaseFile is the descriptor every JDK ships at its root.
const ReleaseFile = "release"

// SharedArchiveExt is the extension of CDS archives.
const SharedArchiveExt = ".jsa"

var versionLine = regexp.MustCompile(`^JAVA_VERSION=(.*)$`)

// Info describes an installed java runtime.
type Info struct {
	Version       string
	Major         int
	Modular       bool
	SharedArchive bool
	Capabilities  Capability
}

// Has reports whether the runtime supports c.
func (i Info) Has(c Capability) bool {
	return i.Capabilities&c == c
}

// Prober inspects a java home directory.
type Prober struct {
	FS     platform.FS
	OS     string
	Logger hclog.Logger
}

// Probe reads the release descriptor and layout of javaHome. A version that
// cannot be determined is fatal.
func (p *Prober) Probe(javaHome string) (Info, error) {
	logger := p.logger()

	version, err := p.readVersion(javaHome)
	if err != nil {
		return Info{}, err
	}

	major, err := ParseMajor(version)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", lerrors.ErrRuntimeVersionUnresolvable, err)
	}

	info := Info{
		Version:       version,
		Major:         major,
		Modular:       p.modular(javaHome),
		SharedArchive: p.sharedArchive(javaHome),
		Capabilities:  CapabilitiesFor(major),
	}

	logger.Debug("☕ Probed java runtime",
		"home", javaHome,
		"version", info.Version,
		"major", info.Major,
		"modular", info.Modular,
		"shared_archive", info.SharedArchive)
	return info, nil
}

func (p *Prober) readVersion(javaHome string) (string, error) {
	release := filepath.Join(javaHome, ReleaseFile)
	data, err := p.FS.ReadFile(release)
	if err != nil {
		return "", fmt.Errorf("%w: %w", lerrors.ErrRuntimeVersionUnresolvable, err)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		m := versionLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		version := strings.Trim(strings.TrimSpace(m[1]), `"`)
		if version != "" {
			return version, nil
		}
	}

	return "", fmt.Errorf("%w: no JAVA_VERSION in %s", lerrors.ErrRuntimeVersionUnresolvable, release)
}

// ParseMajor returns the first numeric component of a dotted version.
// Legacy "1.x" versions parse as 1.
func ParseMajor(version string) (int, error) {
	end := 0
	for end < len(version) && version[end] >= '0' && version[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("invalid java version %q", version)
	}
	return strconv.Atoi(version[:end])
}

func (p *Prober) modular(javaHome string) bool {
	return platform.Exists(p.FS, filepath.Join(javaHome, "lib", "modules")) ||
		platform.Exists(p.FS, filepath.Join(javaHome, ReleaseFile))
}

// sharedArchive looks for the JDK's default CDS archive in the VM directory.
func (p *Prober) sharedArchive(javaHome string) bool {
	vmDir := filepath.Join(javaHome, "lib", "server")
	if p.OS == "windows" {
		vmDir = filepath.Join(javaHome, "bin", "server")
	}

	entries, err := p.FS.ReadDir(vmDir)
	if err != nil {
		p.logger().Trace("No VM directory", "path", vmDir)
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), SharedArchiveExt) {
			return true
		}
	}
	return false
}

func (p *Prober) logger() hclog.Logger {
	if p.Logger == nil {
		return hclog.NewNullLogger()
	}
	return p.Logger
}
