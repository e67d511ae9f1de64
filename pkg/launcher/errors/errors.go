// SPDX-License-Identifier: Apache-2.0
// Package errors holds the error kinds reported by the launcher.
package errors

import "errors"

var (
	// Argument errors
	ErrMissingArgumentValue = errors.New("no extra argument")

	// Discovery errors
	ErrHomeNotFound               = errors.New("unable to determine JRuby home")
	ErrJavaNotFound               = errors.New("unable to find a java command")
	ErrRuntimeVersionUnresolvable = errors.New("unable to determine java version")

	// Assembly errors
	ErrJNIDirNotFound = errors.New("unable to find JNI dir")

	// Execution errors
	ErrExecutionFailed = errors.New("java execution failed")
)
