package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands runMain dispatches on.
var commands = map[string]bool{
	"convert": true,
	"config":  true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// Flags without a command run convert, so "mdmirror -d docs" works.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		return runConvertCmd(nil, env)
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if len(cmd) > 0 && cmd[0] == '-' {
			return runConvertCmd(args[1:], env)
		}
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "config":
		return runConfigCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdmirror %s\n", Version)
		return ExitSuccess
	default: // help
		return runHelp(rest, env)
	}
}

// runConvertCmd runs convert under a signal-aware context.
func runConvertCmd(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := runConvert(ctx, args, env)
	if err != nil && !isHelpRequest(err) {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	if isHelpRequest(err) {
		return ExitSuccess
	}
	return exitCodeFor(err)
}

func isCommand(s string) bool {
	return commands[s]
}

// hasVerboseFlag reports whether -v or --verbose appears before any "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-v", "--verbose":
			return true
		}
	}
	return false
}
