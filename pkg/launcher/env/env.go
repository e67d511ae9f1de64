// SPDX-License-Identifier: Apache-2.0
// Package env captures the process environment the launcher resolves against.
//
// A Snapshot is taken once at startup and never mutated, so every resolution
// step can be exercised against a synthetic environment in tests.
package env

import (
	"os"

	"github.com/spf13/viper"
)

// Variable names read by the launcher.
const (
	Classpath        = "CLASSPATH"
	JavaCmd          = "JAVACMD"
	JavaEncoding     = "JAVA_ENCODING"
	JavaHome         = "JAVA_HOME"
	JavaMem          = "JAVA_MEM"
	JavaOpts         = "JAVA_OPTS"
	JavaStack        = "JAVA_STACK"
	JRubyOpts        = "JRUBY_OPTS"
	JRubyHome        = "JRUBY_HOME"
	Path             = "PATH"
	JRubyJSA         = "JRUBY_JSA"
	LauncherLogLevel = "JRUBY_LAUNCHER_LOG_LEVEL"
)

// Names lists every variable captured by FromOS.
var Names = []string{
	Classpath,
	JavaCmd,
	JavaEncoding,
	JavaHome,
	JavaMem,
	JavaOpts,
	JavaStack,
	JRubyOpts,
	JRubyHome,
	Path,
	JRubyJSA,
	LauncherLogLevel,
}

// Snapshot is an immutable view of argv, the working directory and the
// launcher's environment variables.
type Snapshot struct {
	args       []string
	currentDir string
	vars       map[string]string
}

// New builds a snapshot from explicit values. An empty currentDir means the
// working directory is unknown. Only variables present in vars are set.
func New(args []string, currentDir string, vars map[string]string) *Snapshot {
	s := &Snapshot{
		args:       append([]string(nil), args...),
		currentDir: currentDir,
		vars:       make(map[string]string, len(vars)),
	}
	for k, v := range vars {
		s.vars[k] = v
	}
	return s
}

// FromOS captures the real process environment. args must include argv[0].
func FromOS(args []string) *Snapshot {
	v := viper.New()
	// Set-but-empty is distinct from unset (CLASSPATH="" still wins over nothing).
	v.AllowEmptyEnv(true)

	vars := make(map[string]string, len(Names))
	for _, name := range Names {
		if err := v.BindEnv(name); err != nil {
			continue
		}
		if v.IsSet(name) {
			vars[name] = v.GetString(name)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	return New(args, cwd, vars)
}

// Args returns a copy of the process arguments, argv[0] included.
func (s *Snapshot) Args() []string {
	return append([]string(nil), s.args...)
}

// Argv0 returns the name the launcher was invoked as.
func (s *Snapshot) Argv0() string {
	if len(s.args) == 0 {
		return ""
	}
	return s.args[0]
}

// CurrentDir returns the working directory and whether it is known.
func (s *Snapshot) CurrentDir() (string, bool) {
	return s.currentDir, s.currentDir != ""
}

// Lookup returns the value of a captured variable and whether it was set.
func (s *Snapshot) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Get returns the value of a captured variable or the empty string.
func (s *Snapshot) Get(name string) string {
	return s.vars[name]
}
