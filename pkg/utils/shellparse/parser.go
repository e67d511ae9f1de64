// SPDX-License-Identifier: Apache-2.0
// Package shellparse turns option strings into argument lists and back.
//
// Option variables such as JAVA_OPTS are split on ASCII whitespace only: no
// quote removal and no escapes, matching how the JVM launchers have always
// treated them. Join goes the other way for display, quoting each argument so
// the printed command can be pasted into a POSIX shell.
package shellparse

import (
	"strings"
)

// Fields splits input on runs of ASCII whitespace (space, tab, newline,
// form feed, carriage return). Empty input returns an empty slice.
func Fields(input string) []string {
	return strings.FieldsFunc(input, isASCIISpace)
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// Join combines arguments into a shell command string, quoting as necessary.
func Join(args []string) string {
	if len(args) == 0 {
		return ""
	}

	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = quote(arg)
	}

	return strings.Join(parts, " ")
}

// quote adds quotes around an argument if the shell would otherwise split or
// expand it. Classpaths with a trailing separator and property values with
// spaces are the usual cases.
func quote(arg string) string {
	if arg == "" {
		return "''"
	}

	if !strings.ContainsAny(arg, " \t\n'\"\\$`*?[]{}();&|<>~#!") {
		return arg
	}

	// Single quotes preserve everything but a single quote.
	if !strings.Contains(arg, "'") {
		return "'" + arg + "'"
	}

	var result strings.Builder
	result.WriteByte('"')
	for _, ch := range arg {
		if ch == '"' || ch == '\\' || ch == '$' || ch == '`' {
			result.WriteByte('\\')
		}
		result.WriteRune(ch)
	}
	result.WriteByte('"')

	return result.String()
}
