package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render the content directory into a site")
	fmt.Fprintln(w, "  list       List items in publication order")
	fmt.Fprintln(w, "  watch      Build, then rebuild on changes")
	fmt.Fprintln(w, "  init       Write a starter config")
	fmt.Fprintln(w, "  doctor     Check config and browser setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2site help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and every page written")
}

func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  content    Content directory (optional if config has content.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --policy <s>          Failure policy: lenient, strict")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --raw-html <s>        Unmatched raw HTML: passthrough, drop")
	fmt.Fprintln(w, "      --highlight           Highlight fenced code with chroma")
	fmt.Fprintln(w, "      --templates <dir>     Template override directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Feed:")
	fmt.Fprintln(w, "      --no-feed             Skip the Atom feed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Previews:")
	fmt.Fprintln(w, "      --opengraph           Render Open Graph cards (needs Chrome)")
	fmt.Fprintln(w, "      --no-opengraph        Skip Open Graph cards")
	fmt.Fprintln(w, "  -t, --timeout <d>         Screenshot timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site build [content] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every item to <output>/<slug>/index.html, copy bundle assets,")
	fmt.Fprintln(w, "write the Atom feed and manifest.json.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	printCommonFlags(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site watch [content] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build once, then rebuild whenever content or templates change.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "Watch:")
	fmt.Fprintln(w, "      --delay <d>           Quiet period before a rebuild (default 200ms)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site list [content] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print items newest first without rendering them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format:")
	fmt.Fprintln(w, "  -d, --date-format <s>     Presets: iso, european, us, long")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Use [text] to escape literals")
	fmt.Fprintln(w, "      --json                Print JSON")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site init [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter config (default md2site.yaml) with a new site UUID.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2site doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the config, content directory, Chrome and temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print JSON")
}

// runHelp prints help for a command and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
