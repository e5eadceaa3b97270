package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrUsage indicates invalid command line arguments.
var ErrUsage = errors.New("invalid usage")

// commands lists the subcommands, for dispatch and help.
var commands = []string{"build", "list", "watch", "init", "doctor", "version", "help"}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "md2site %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "list":
		err = runList(ctx, rest, env)
	case "watch":
		err = runWatch(ctx, rest, env)
	case "init":
		err = runInit(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return runHelp([]string{cmd}, env)
	}
	if err != nil {
		printError(env, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// printError writes err and its hint, if any, to stderr.
func printError(env *Environment, err error) {
	msg := strings.TrimRight(err.Error(), "\n")
	fmt.Fprintf(env.Stderr, "error: %s%s\n", msg, hintFor(err))
}
