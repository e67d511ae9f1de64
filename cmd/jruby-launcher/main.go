package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/jruby/jruby-launcher/pkg/launcher"
	"github.com/jruby/jruby-launcher/pkg/launcher/env"
)

// version is set at link time with -ldflags "-X main.version=..."
var version = ""

func launcherVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// cobraReserved reports whether cobra would route args to one of its hidden
// commands instead of the root command.
func cobraReserved(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd
}

func newRootCmd(launch func(args []string) int, exitCode *int) *cobra.Command {
	return &cobra.Command{
		Use:   "jruby [launcher options] [ruby options] [script] [args]",
		Short: "Launch JRuby on a java runtime",
		// Every token belongs to the launcher grammar or to JRuby.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args:               cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			*exitCode = launch(args)
		},
	}
}

// execute runs args through the root command and returns the exit code.
func execute(args []string, launch func(args []string) int) (int, error) {
	if cobraReserved(args) {
		return launch(args), nil
	}

	exitCode := launcher.ExitOK
	rootCmd := newRootCmd(launch, &exitCode)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return launcher.ExitLaunchError, err
	}
	return exitCode, nil
}

func launch(args []string) int {
	snap := env.FromOS(append([]string{os.Args[0]}, args...))
	return launcher.New(launcherVersion()).Run(snap)
}

func main() {
	// Set up panic recovery to return specific exit code
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(launcher.ExitPanic)
		}
	}()

	cobra.MousetrapHelpText = ""

	exitCode, err := execute(os.Args[1:], launch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(exitCode)
}
