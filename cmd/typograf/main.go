package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// Without a known command name, arguments go to the process command.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := splitCommand(args[1:])

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "typograf %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "config":
		return report(runConfigCmd(rest, env), env)
	default:
		return report(runProcess(ctx, rest, env), env)
	}
}

// splitCommand separates the command name from its arguments.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && isCommand(args[0]) {
		return args[0], args[1:]
	}
	return "process", args
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	switch s {
	case "process", "doctor", "config", "version", "help":
		return true
	}
	return false
}

// report prints err and maps it to an exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v\n", err)
	return exitCodeFor(err)
}

// configureMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(debugf func(string, ...any)) {
	_, _ = maxprocs.Set(maxprocs.Logger(debugf))
}
