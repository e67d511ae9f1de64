// SPDX-License-Identifier: Apache-2.0
package options

// directive is a launcher option. Those with takesValue consume the next token.
type directive struct {
	takesValue bool
	apply      func(p *Parsed, value string)
}

var directives = map[string]directive{
	"-Xfork-java":       {apply: func(p *Parsed, _ string) { p.ForkJava = true }},
	"-Xcommand":         {apply: func(p *Parsed, _ string) { p.CommandOnly = true }},
	"-Xnobootclasspath": {apply: func(p *Parsed, _ string) { p.NoBootClasspath = true }},
	"-Xversion":         {apply: func(p *Parsed, _ string) { p.PrintVersion = true }},

	"-Xtrace":     {takesValue: true, apply: func(p *Parsed, v string) { p.LogDestination = v }},
	"-Xbootclass": {takesValue: true, apply: func(p *Parsed, v string) { p.BootClass = v }},
	"-Xjdkhome":   {takesValue: true, apply: func(p *Parsed, v string) { p.JDKHome = v }},
	"-Xcp:p":      {takesValue: true, apply: func(p *Parsed, v string) { p.ClasspathBefore = append(p.ClasspathBefore, v) }},
	"-Xcp:a":      {takesValue: true, apply: func(p *Parsed, v string) { p.ClasspathAfter = append(p.ClasspathAfter, v) }},

	"-J-cp":        {takesValue: true, apply: addExplicitClasspath},
	"-J-classpath": {takesValue: true, apply: addExplicitClasspath},

	"-Xhelp":       {apply: help},
	"-X":           {apply: help},
	"-Xproperties": {apply: func(p *Parsed, _ string) { p.ProgramArgs = append(p.ProgramArgs, "--properties") }},

	"--ng": {apply: func(p *Parsed, _ string) { p.NailgunClient = true }},

	"--ng-server": {apply: func(p *Parsed, _ string) {
		p.BootClass = NailgunServer
		p.JavaArgs = append(p.JavaArgs, "-server")
		p.NoBootClasspath = true
	}},
	"-Jea": {apply: func(p *Parsed, _ string) {
		p.JavaArgs = append(p.JavaArgs, "-ea")
		p.NoBootClasspath = true
		p.Notices = append(p.Notices, "Note: -ea option is specified, there will be no bootclasspath in order to enable assertions")
	}},

	"--cache":   {apply: func(p *Parsed, _ string) { p.Cache = CacheRegenerate }},
	"--nocache": {apply: func(p *Parsed, _ string) { p.Cache = CacheDisabled }},
	"--rmcache": {apply: func(p *Parsed, _ string) { p.RemoveCache = true }},
	"--logcds":  {apply: func(p *Parsed, _ string) { p.LogCDS = true }},
}

// translations append fixed runtime flags.
var translations = map[string][]string{
	"--server":   {"-server"},
	"--client":   {"-client"},
	"--dev":      DevModeJavaOptions,
	"--sample":   {"-Xprof"},
	"--manage":   {"-Dcom.sun.management.jmxremote", "-Djruby.management.enabled=true"},
	"--headless": {"-Djava.awt.headless=true"},
}

func addExplicitClasspath(p *Parsed, v string) {
	p.ClasspathExplicit = append(p.ClasspathExplicit, v)
}

func help(p *Parsed, _ string) {
	p.JavaArgs = append(p.JavaArgs, "-Djruby.launcher.nopreamble=true")
	p.ProgramArgs = append(p.ProgramArgs, "-X")
}
