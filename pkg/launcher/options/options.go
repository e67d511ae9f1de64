// SPDX-License-Identifier: Apache-2.0
// Package options classifies the launcher's command line.
//
// Tokens are split three ways: launcher directives (consumed here), runtime
// flags (forwarded to java) and program arguments (forwarded to JRuby).
package options

// Well-known class names.
const (
	MainClass        = "org/jruby/Main"
	NailgunServer    = "com/martiansoftware/nailgun/NGServer"
	NailgunClientArg = "org.jruby.util.NailMain"
)

// DevModeJavaOptions are the flags --dev expands to.
var DevModeJavaOptions = []string{
	"-XX:+TieredCompilation",
	"-XX:TieredStopAtLevel=1",
	"-Djruby.compile.mode=OFF",
	"-Djruby.compile.invokedynamic=false",
}

// CacheMode controls use of the shared class-data archive.
type CacheMode int

const (
	CacheDefault    CacheMode = iota // use an archive when one is usable
	CacheRegenerate                  // rewrite the archive on this run
	CacheDisabled                    // emit no archive flags
)

func (m CacheMode) String() string {
	switch m {
	case CacheRegenerate:
		return "regenerate"
	case CacheDisabled:
		return "disabled"
	default:
		return "default"
	}
}

// Parsed is the result of classifying the environment and argv.
type Parsed struct {
	ForkJava        bool
	CommandOnly     bool
	NoBootClasspath bool
	NailgunClient   bool
	PrintVersion    bool

	LogDestination string
	BootClass      string
	JDKHome        string
	// StackSize is a complete -Xss flag taken from -Xxss<size>.
	StackSize string

	ClasspathBefore   []string
	ClasspathAfter    []string
	ClasspathExplicit []string

	// JavaOpts are runtime flags from the environment; they come first.
	JavaOpts []string
	// JavaArgs are runtime flags from the command line.
	JavaArgs    []string
	ProgramArgs []string

	Cache       CacheMode
	RemoveCache bool
	LogCDS      bool

	// Notices are messages for the user, printed before launch.
	Notices []string
}

// MainClassOrDefault returns the boot class, defaulting to org/jruby/Main.
func (p Parsed) MainClassOrDefault() string {
	if p.BootClass == "" {
		return MainClass
	}
	return p.BootClass
}

// WithNailgunClient returns a copy with the nailgun client entry point
// inserted as the first program argument.
func (p Parsed) WithNailgunClient() Parsed {
	p.ProgramArgs = append([]string{NailgunClientArg}, p.ProgramArgs...)
	return p
}
