// SPDX-License-Identifier: Apache-2.0
package launcher

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// report prints err and each error it wraps.
func (l *Launcher) report(err error) {
	label := color.New(color.FgRed, color.Bold)
	if l.stderrIsTerminal() {
		label.EnableColor()
	} else {
		label.DisableColor()
	}

	fmt.Fprintf(l.Stderr, "%s %v\n", label.Sprint("error:"), err)
	for _, cause := range causes(err) {
		fmt.Fprintf(l.Stderr, "caused by: %v\n", cause)
	}
}

func (l *Launcher) stderrIsTerminal() bool {
	f, ok := l.Stderr.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// causes walks the wrap chain. For multi-%w errors the last one is followed.
func causes(err error) []error {
	var chain []error
	for {
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 {
				return chain
			}
			err = errs[len(errs)-1]
		default:
			return chain
		}
		if err == nil {
			return chain
		}
		chain = append(chain, err)
	}
}
