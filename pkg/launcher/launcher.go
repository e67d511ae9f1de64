// SPDX-License-Identifier: Apache-2.0
// Package launcher resolves a JRuby installation and a java runtime, builds
// the java command line and hands control to it.
package launcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jruby/jruby-launcher/pkg/launcher/assemble"
	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/launcher/home"
	"github.com/jruby/jruby-launcher/pkg/launcher/jvm"
	"github.com/jruby/jruby-launcher/pkg/launcher/options"
	"github.com/jruby/jruby-launcher/pkg/launcher/pathfind"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
	"github.com/jruby/jruby-launcher/pkg/logging"
	"github.com/jruby/jruby-launcher/pkg/utils/shellparse"
)

// Exit codes
const (
	ExitOK          = 0
	ExitLaunchError = 1
	ExitPanic       = 101
)

// Name is the logger name and the label printed by -Xversion.
const Name = "jruby-launcher"

// Launcher runs one launch against injected platform services.
type Launcher struct {
	Services platform.Services
	FS       platform.FS
	// EvalSymlinks defaults to filepath.EvalSymlinks.
	EvalSymlinks func(path string) (string, error)
	Stdout       io.Writer
	Stderr       io.Writer
	Version      string
}

// New returns a launcher wired to the real operating system.
func New(version string) *Launcher {
	return &Launcher{
		Services:     platform.New(),
		FS:           platform.OSFS{},
		EvalSymlinks: filepath.EvalSymlinks,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Version:      version,
	}
}

// Run performs the launch and returns the process exit code. When java
// replaces the launcher process Run does not return.
func (l *Launcher) Run(snap *env.Snapshot) int {
	parsed, err := options.Parse(snap, l.Services)
	if err != nil {
		l.report(err)
		return ExitLaunchError
	}

	if parsed.PrintVersion {
		fmt.Fprintf(l.Stdout, "%s %s\n", Name, l.Version)
		return ExitOK
	}

	level := snap.Get(env.LauncherLogLevel)
	if level == "" {
		level = logging.DefaultLevel
	}
	sink, err := logging.Open(Name, parsed.LogDestination, level, l.Stdout, l.Stderr)
	if err != nil {
		l.report(err)
		return ExitLaunchError
	}
	defer sink.Close()
	logger := sink.Logger()

	logger.Debug("🚀 Launcher starting",
		"version", l.Version,
		"os", l.Services.OS(),
		"console", l.Services.ConsoleAttached(),
		"args", snap.Args())

	for _, notice := range parsed.Notices {
		fmt.Fprintln(l.Stderr, notice)
	}

	cmd, err := l.Prepare(snap, parsed, logger)
	if err != nil {
		l.report(err)
		return ExitLaunchError
	}

	if parsed.CommandOnly {
		fmt.Fprintln(l.Stdout, shellparse.Join(append([]string{cmd.Java}, cmd.Args()...)))
		return ExitOK
	}

	logger.Info("☕ Launching java", "command", cmd.Java, "fork", parsed.ForkJava)
	code, err := l.Services.Execute(cmd.Java, cmd.Args(), parsed.ForkJava, logger)
	if err != nil {
		l.report(fmt.Errorf("%w: %s: %w", lerrors.ErrExecutionFailed, cmd.Java, err))
		return ExitLaunchError
	}
	logger.Debug("Java exited", "code", code)
	return code
}

// Prepare resolves the home and the runtime and assembles the java command.
func (l *Launcher) Prepare(snap *env.Snapshot, parsed options.Parsed, logger hclog.Logger) (assemble.Command, error) {
	finder := &pathfind.Finder{Exists: l.Services.Exists, Logger: logger.Named("pathfind")}

	locator := &home.Locator{
		Exists:         l.Services.Exists,
		SelfExecutable: l.Services.Executable,
		Logger:         logger.Named("home"),
	}
	jrubyHome, err := locator.Locate(snap)
	if err != nil {
		return assemble.Command{}, err
	}

	resolver := &jvm.Resolver{
		OS:           l.Services.OS(),
		Finder:       finder,
		EvalSymlinks: l.EvalSymlinks,
		Logger:       logger.Named("jvm"),
	}
	runtime, err := resolver.Resolve(parsed.JDKHome, snap)
	if err != nil {
		return assemble.Command{}, err
	}

	prober := &jvm.Prober{FS: l.FS, OS: l.Services.OS(), Logger: logger.Named("jvm")}
	info, err := prober.Probe(runtime.Home)
	if err != nil {
		return assemble.Command{}, fmt.Errorf("probing %s: %w", runtime.Home, err)
	}

	if parsed.NailgunClient {
		parsed = parsed.WithNailgunClient()
	}

	assembler := &assemble.Assembler{
		FS:       l.FS,
		OS:       l.Services.OS(),
		Writable: l.Services.Writable,
		Logger:   logger.Named("assemble"),
	}
	return assembler.Assemble(assemble.Input{
		Options: parsed,
		Home:    jrubyHome,
		Runtime: runtime,
		Info:    info,
		Env:     snap,
	})
}
