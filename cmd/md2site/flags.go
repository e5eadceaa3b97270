package main

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the flags that override config values of a build.
type siteFlags struct {
	output      string
	workers     int
	timeout     string
	policy      string
	rawHTML     string
	templates   string
	highlight   bool
	noFeed      bool
	opengraph   bool
	noOpengraph bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	site   siteFlags
	// changed records the flags given on the command line.
	changed map[string]bool
}

// listFlags holds flags for the list command.
type listFlags struct {
	common     commonFlags
	dateFormat string
	json       bool
	changed    map[string]bool
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	buildFlags
	delay time.Duration
}

// initFlags holds flags for the init command.
type initFlags struct {
	force bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addSiteFlags adds build override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "preview screenshot timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.policy, "policy", "", "failing documents: lenient, strict")
	fs.StringVar(&f.rawHTML, "raw-html", "", "unmatched raw HTML: passthrough, drop")
	fs.StringVar(&f.templates, "templates", "", "template override directory")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight code blocks server-side")
	fs.BoolVar(&f.noFeed, "no-feed", false, "skip the Atom feed")
	fs.BoolVar(&f.opengraph, "opengraph", false, "render Open Graph previews")
	fs.BoolVar(&f.noOpengraph, "no-opengraph", false, "skip Open Graph previews")
}

// changedFlags returns the names of the flags set on the command line.
func changedFlags(fs *flag.FlagSet) map[string]bool {
	changed := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { changed[f.Name] = true })
	return changed
}

// newFlagSet creates a FlagSet that returns errors instead of printing
// them; runMain prints usage itself.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string) (*buildFlags, []string, error) {
	fs := newFlagSet("build")
	f := &buildFlags{}
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	f.changed = changedFlags(fs)
	return f, fs.Args(), nil
}

// parseWatchFlags parses watch command flags and returns positional args.
func parseWatchFlags(args []string) (*watchFlags, []string, error) {
	fs := newFlagSet("watch")
	f := &watchFlags{}
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.DurationVar(&f.delay, "delay", 0, "wait after the last change before rebuilding")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	f.changed = changedFlags(fs)
	return f, fs.Args(), nil
}

// parseListFlags parses list command flags and returns positional args.
func parseListFlags(args []string) (*listFlags, []string, error) {
	fs := newFlagSet("list")
	f := &listFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.dateFormat, "date-format", "d", "iso", "date format preset or tokens")
	fs.BoolVar(&f.json, "json", false, "print JSON")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	f.changed = changedFlags(fs)
	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string) (*initFlags, []string, error) {
	fs := newFlagSet("init")
	f := &initFlags{}
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return f, fs.Args(), nil
}
