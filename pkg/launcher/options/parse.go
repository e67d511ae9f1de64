// SPDX-License-Identifier: Apache-2.0
package options

import (
	"fmt"
	"strings"

	"github.com/jruby/jruby-launcher/pkg/launcher/env"
	lerrors "github.com/jruby/jruby-launcher/pkg/launcher/errors"
	"github.com/jruby/jruby-launcher/pkg/utils/shellparse"
)

// Host is what parsing needs to know about the platform.
type Host interface {
	OS() string
	Readable(path string) bool
}

const (
	urandomPath = "/dev/urandom"
	urandomFlag = "-Djava.security.egd=file:/dev/urandom"
	utf8Flag    = "-Dfile.encoding=UTF-8"
)

// Parse classifies the environment options and argv[1:].
func Parse(snap *env.Snapshot, host Host) (Parsed, error) {
	var p Parsed

	if javaOpts, ok := snap.Lookup(env.JavaOpts); ok {
		p.JavaOpts = append(p.JavaOpts, shellparse.Fields(javaOpts)...)
	}

	// The runtime reads JRUBY_OPTS on its own; only launcher directives and
	// runtime flags are picked out of it here.
	if jrubyOpts, ok := snap.Lookup(env.JRubyOpts); ok {
		if err := p.scan(shellparse.Fields(jrubyOpts), true); err != nil {
			return Parsed{}, fmt.Errorf("JRUBY_OPTS: %w", err)
		}
	}

	p.platformOptions(snap, host)

	if javaMem, ok := snap.Lookup(env.JavaMem); ok {
		p.JavaArgs = append(p.JavaArgs, javaMem)
	}
	if javaStack, ok := snap.Lookup(env.JavaStack); ok {
		p.JavaOpts = append(p.JavaOpts, javaStack)
	}

	args := snap.Args()
	if len(args) > 0 {
		args = args[1:]
	}
	if err := p.scan(args, false); err != nil {
		return Parsed{}, err
	}

	return p, nil
}

func (p *Parsed) platformOptions(snap *env.Snapshot, host Host) {
	goos := host.OS()
	if goos == "windows" {
		return
	}
	if goos == "darwin" {
		if _, ok := snap.Lookup(env.JavaEncoding); !ok {
			p.JavaOpts = append(p.JavaOpts, utf8Flag)
		}
	}
	if host.Readable(urandomPath) {
		p.JavaOpts = append(p.JavaOpts, urandomFlag)
	}
}

// scan makes one left-to-right pass. fromEnv drops tokens that would
// otherwise become program arguments.
func (p *Parsed) scan(tokens []string, fromEnv bool) error {
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if token == "--" {
			if !fromEnv {
				p.ProgramArgs = append(p.ProgramArgs, tokens[i:]...)
			}
			return nil
		}

		if d, ok := directives[token]; ok {
			var value string
			if d.takesValue {
				if i+1 >= len(tokens) {
					return fmt.Errorf("%s: %w", token, lerrors.ErrMissingArgumentValue)
				}
				i++
				value = tokens[i]
			}
			d.apply(p, value)
			continue
		}

		if flags, ok := translations[token]; ok {
			p.JavaArgs = append(p.JavaArgs, flags...)
			continue
		}

		if !p.classify(token) && !fromEnv {
			p.ProgramArgs = append(p.ProgramArgs, token)
		}
	}
	return nil
}

// classify handles the -X and -J prefixed forms. It returns false for
// tokens that belong to the program.
func (p *Parsed) classify(token string) bool {
	if len(token) <= 2 {
		return false
	}

	prefix, rest := token[:2], token[2:]
	switch {
	case prefix == "-X" && rest == "xss":
		// No size given; leave it to JRuby to reject.
		return false
	case prefix == "-X" && strings.HasPrefix(rest, "xss"):
		p.StackSize = "-X" + rest[1:]
	case prefix == "-X" && rest[0] >= 'a' && rest[0] <= 'z':
		p.JavaArgs = append(p.JavaArgs, "-Djruby."+rest)
	case prefix == "-J":
		p.JavaArgs = append(p.JavaArgs, rest)
	default:
		return false
	}
	return true
}
