// SPDX-License-Identifier: Apache-2.0
// Package assemble turns the resolved launch inputs into the final java
// command line.
package assemble

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	"github.com/jruby/jruby-launcher/pkg/launcher/jvm"
	"github.com/jruby/jruby-launcher/pkg/launcher/options"
	"github.com/jruby/jruby-launcher/pkg/launcher/platform"
)

// DefaultStackSize is emitted unless the user picked a stack size.
const DefaultStackSize = "-Xss2048k"

// Input is everything the earlier phases resolved.
type Input struct {
	Options options.Parsed
	Home    string
	Runtime jvm.Runtime
	Info    jvm.Info
	Env     *env.Snapshot
}

// Command is the java invocation to execute.
type Command struct {
	Java        string
	Flags       []string
	BootClass   string
	ProgramArgs []string
}

// Args returns the argument vector after the java command.
func (c Command) Args() []string {
	args := make([]string, 0, len(c.Flags)+1+len(c.ProgramArgs))
	args = append(args, c.Flags...)
	args = append(args, c.BootClass)
	return append(args, c.ProgramArgs...)
}

// Assembler builds commands against one file system and platform.
type Assembler struct {
	FS       platform.FS
	OS       string
	Writable func(path string) bool
	Logger   hclog.Logger
}

// assembly is the working state of a single Assemble call.
type assembly struct {
	*Assembler
	in        Input
	logger    hclog.Logger
	flags     []string
	bootJar   string
	bootPath  []string
	classpath []string
	seen      map[string]bool
}

// Assemble builds the java command for in.
func (a *Assembler) Assemble(in Input) (Command, error) {
	logger := a.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := &assembly{
		Assembler: a,
		in:        in,
		logger:    logger,
		seen:      make(map[string]bool),
	}

	s.flags = append(s.flags, in.Options.JavaOpts...)
	s.flags = append(s.flags, in.Options.JavaArgs...)

	s.properties()
	if err := s.libraryPath(); err != nil {
		return Command{}, err
	}
	s.stackSize()
	s.bootClasspath()
	if err := s.buildClasspath(); err != nil {
		return Command{}, err
	}

	bootClass := in.Options.MainClassOrDefault()
	s.add("-Dsun.java.command=" + strings.ReplaceAll(bootClass, "/", "."))

	if len(s.bootPath) > 0 {
		joined := strings.Join(s.bootPath, string(filepath.ListSeparator))
		if in.Info.Modular {
			s.add("--module-path=" + joined)
		} else {
			s.add("-Xbootclasspath/a:" + joined)
		}
	}

	if in.Info.Modular {
		s.moduleOptions()
	}

	s.sharedArchive()
	s.accessOptions()

	joined := s.joinedClasspath()
	if in.Options.ForkJava {
		s.add("-cp", joined)
	} else {
		s.add("-Djava.class.path=" + joined)
	}

	cmd := Command{
		Java:        in.Runtime.Command,
		Flags:       s.flags,
		BootClass:   bootClass,
		ProgramArgs: append([]string(nil), in.Options.ProgramArgs...),
	}
	logger.Debug("🧩 Assembled java command", "java", cmd.Java, "flags", len(cmd.Flags), "boot_class", cmd.BootClass)
	return cmd, nil
}

func (s *assembly) add(flags ...string) {
	s.flags = append(s.flags, flags...)
}

func (s *assembly) libDir(elem ...string) string {
	return filepath.Join(append([]string{s.in.Home, "lib"}, elem...)...)
}

// joinedClasspath ends a non-empty classpath with a separator so the JVM
// also searches the current directory.
func (s *assembly) joinedClasspath() string {
	if len(s.classpath) == 0 {
		return ""
	}
	return strings.Join(append(append([]string(nil), s.classpath...), ""), string(filepath.ListSeparator))
}

func (s *assembly) properties() {
	if s.in.Options.JDKHome != "" {
		s.add("-Djdk.home=" + s.in.Options.JDKHome)
	}
	s.add("-Djruby.home=" + s.in.Home)
	s.add("-Djruby.script=jruby")
	if s.OS == "windows" {
		s.add("-Djruby.shell=cmd.exe")
	} else {
		s.add("-Djruby.shell=/bin/sh")
	}
}

func (s *assembly) stackSize() {
	if s.in.Options.StackSize != "" {
		s.add(s.in.Options.StackSize)
		return
	}
	for _, flag := range s.flags {
		if strings.HasPrefix(flag, "-Xss") {
			s.logger.Trace("Stack size already set", "flag", flag)
			return
		}
	}
	s.add(DefaultStackSize)
}
