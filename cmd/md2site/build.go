package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/assets"
	"github.com/alnah/go-md2site/internal/config"
	"github.com/alnah/go-md2site/internal/fileutil"
	"github.com/alnah/go-md2site/internal/logging"
	"github.com/alnah/go-md2site/internal/opengraph"
)

// Sentinel errors for build operations.
var (
	ErrWriteOutput     = errors.New("failed to write output")
	ErrDocumentsFailed = errors.New("some documents failed")
)

// Output file names.
const (
	pageFilename     = "index.html"
	manifestFilename = "manifest.json"
	previewFilename  = "opengraph.png"
)

// manifest describes a build for page shells and deploy scripts.
type manifest struct {
	Generated string            `json:"generated"`
	Site      string            `json:"site"`
	Feed      string            `json:"feed,omitempty"`
	Items     []manifestItem    `json:"items"`
	Failures  []manifestFailure `json:"failures,omitempty"`
}

type manifestItem struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	UUID      string   `json:"uuid"`
	URL       string   `json:"url"`
	Previous  string   `json:"previous,omitempty"`
	Next      string   `json:"next,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Preview   string   `json:"preview,omitempty"`
}

type manifestFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// buildReport summarizes one build for printing.
type buildReport struct {
	result   *md2site.Result
	outDir   string
	files    int
	duration time.Duration
}

// runBuild builds the site once.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args)
	if err != nil {
		return err
	}

	cfg, err := resolveSettings(flags, positional, env)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	return buildSite(ctx, cfg, logger, env, flags.common)
}

// buildSite runs the library build, writes the output directory and prints
// the report. Documents that failed leniently yield ErrDocumentsFailed
// after everything else is written.
func buildSite(ctx context.Context, cfg *config.Config, logger logging.Logger, env *Environment, common commonFlags) error {
	start := env.Now()

	builder, err := newBuilder(cfg, logger)
	if err != nil {
		return err
	}

	res, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	files, err := writeSite(cfg, res)
	if err != nil {
		return err
	}

	var previews map[string]string
	if cfg.OpenGraph.Enabled {
		previews, err = writePreviews(ctx, cfg, builder.Config().Site, res.Items, env, logger)
		if err != nil {
			return err
		}
		files += len(previews)
	}

	if err := writeManifest(cfg, builder.Config().Site, res, previews, env.Now()); err != nil {
		return err
	}
	files++

	printBuildReport(env, common, buildReport{
		result:   res,
		outDir:   cfg.Output.Dir,
		files:    files,
		duration: env.Now().Sub(start),
	})

	if len(res.Failures) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrDocumentsFailed, len(res.Failures), len(res.Failures)+len(res.Items))
	}
	return nil
}

// writeSite writes the fragments, item assets and feed. Returns the number
// of files written.
func writeSite(cfg *config.Config, res *md2site.Result) (int, error) {
	files := 0
	for _, item := range res.Items {
		dir := filepath.Join(cfg.Output.Dir, item.Slug)
		if err := writeOutput(filepath.Join(dir, pageFilename), []byte(res.Bodies[item.Slug])); err != nil {
			return files, err
		}
		files++

		if item.HasAssets() {
			n, err := copyAssets(item.AssetDir, dir)
			if err != nil {
				return files, err
			}
			files += n
		}
	}

	if res.Feed != nil {
		data, err := res.Feed.Bytes()
		if err != nil {
			return files, err
		}
		if err := writeOutput(filepath.Join(cfg.Output.Dir, cfg.Feed.Filename), data); err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

// writeOutput writes one output file.
func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// copyAssets copies the files of a bundle next to its page, skipping the
// markdown sources and hidden entries. Returns the number of files copied.
func copyAssets(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != src && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) == ".md" {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if err := copyFile(path, filepath.Join(dst, rel)); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("%w: copying assets of %s: %w", ErrWriteOutput, src, err)
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 -- path under the content directory
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { // #nosec G301 -- served directory
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) // #nosec G302,G304 -- served file
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// writeManifest writes manifest.json. previews maps slugs to preview paths
// relative to the output directory.
func writeManifest(cfg *config.Config, site md2site.Site, res *md2site.Result, previews map[string]string, now time.Time) error {
	m := manifest{
		Generated: now.Round(time.Second).UTC().Format(time.RFC3339),
		Site:      site.URL(),
		Items:     make([]manifestItem, 0, len(res.Items)),
	}
	if res.Feed != nil {
		m.Feed = site.URL() + cfg.Feed.Filename
	}

	for _, item := range res.Items {
		m.Items = append(m.Items, manifestItem{
			Slug:      item.Slug,
			Title:     item.Metadata.Title,
			Date:      item.Metadata.Date.Format(time.RFC3339),
			UUID:      item.Metadata.UUID.String(),
			URL:       site.ArticleURL(item.Slug),
			Previous:  item.Previous,
			Next:      item.Next,
			Languages: item.Languages,
			Preview:   previews[item.Slug],
		})
	}
	for _, f := range res.Failures {
		m.Failures = append(m.Failures, manifestFailure{Path: f.Path, Error: f.Err.Error()})
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return writeOutput(filepath.Join(cfg.Output.Dir, manifestFilename), append(data, '\n'))
}

// previewJob is one Open Graph card and its output path.
type previewJob struct {
	slug string
	card opengraph.Card
	path string
}

// writePreviews renders the home card and one card per item. Returns the
// preview path of each item slug, relative to the output directory.
func writePreviews(ctx context.Context, cfg *config.Config, site md2site.Site, items []*md2site.Item, env *Environment, logger logging.Logger) (map[string]string, error) {
	timeout := cfg.OpenGraphTimeout()
	workers := min(md2site.ResolvePoolSize(cfg.Build.Workers), len(items)+1)
	pool := opengraph.NewPool(workers, func() opengraph.Screenshotter {
		return env.NewScreenshotter(timeout)
	})

	gen, err := newPreviewGenerator(cfg, pool, logger)
	if err != nil {
		_ = pool.Close()
		return nil, err
	}
	defer gen.Close()

	jobs := []previewJob{{
		card: opengraph.Card{
			Lang:     site.Lang,
			SiteName: site.Title,
			Tagline:  site.Tagline,
			URL:      displayURL(site.URL()),
			Logo:     site.Logo,
		},
		path: previewFilename,
	}}
	for _, item := range items {
		jobs = append(jobs, previewJob{
			slug: item.Slug,
			card: opengraph.Card{
				Lang:     site.Lang,
				Title:    item.Metadata.Title,
				SiteName: site.Title,
				URL:      displayURL(site.ArticleURL(item.Slug)),
				Logo:     site.Logo,
			},
			path: item.Slug + "/" + previewFilename,
		})
	}

	errs := renderPreviews(ctx, gen, jobs, workers, cfg.Output.Dir)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	previews := make(map[string]string, len(items))
	for _, job := range jobs[1:] {
		previews[job.slug] = job.path
	}
	return previews, nil
}

// newPreviewGenerator loads the card template, honoring the override
// directory.
func newPreviewGenerator(cfg *config.Config, pool *opengraph.Pool, logger logging.Logger) (*opengraph.Generator, error) {
	opts := []opengraph.Option{
		opengraph.WithPool(pool),
		opengraph.WithLogger(logging.WithFields(logger, map[string]any{"module": logging.OpenGraphModule})),
	}
	if cfg.Templates.Dir != "" {
		source, err := loadTemplateOverride(cfg.Templates.Dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opengraph.WithTemplate(source))
	}
	return opengraph.NewGenerator(opts...)
}

// loadTemplateOverride reads the card template from dir, falling back to
// the built-in one.
func loadTemplateOverride(dir string) (string, error) {
	tmpls, err := assets.NewTemplates(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", md2site.ErrTemplateLoad, err)
	}
	source, err := tmpls.Load(assets.OpenGraphTemplate)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", md2site.ErrTemplateLoad, assets.OpenGraphTemplate, err)
	}
	return source, nil
}

// renderPreviews renders jobs concurrently and writes the PNG files.
// Errors are returned by job index.
func renderPreviews(ctx context.Context, gen *opengraph.Generator, jobs []previewJob, workers int, outDir string) []error {
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				if ctx.Err() != nil {
					errs[idx] = ctx.Err()
					continue
				}
				png, err := gen.Render(ctx, jobs[idx].card)
				if err != nil {
					errs[idx] = fmt.Errorf("preview %s: %w", jobs[idx].path, err)
					continue
				}
				errs[idx] = writeOutput(filepath.Join(outDir, filepath.FromSlash(jobs[idx].path)), png)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return errs
}

// displayURL strips the scheme and trailing slash for display on a card.
func displayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	return strings.TrimSuffix(u, "/")
}

// printBuildReport outputs failures to stderr and a summary to stdout.
func printBuildReport(env *Environment, common commonFlags, r buildReport) {
	for _, f := range r.result.Failures {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", f.Path, f.Err, hintFor(f.Err))
	}

	if common.quiet {
		return
	}

	if common.verbose {
		for _, item := range r.result.Items {
			fmt.Fprintf(env.Stdout, "%s -> %s\n", item.Path, filepath.Join(r.outDir, item.Slug, pageFilename))
		}
	}

	fmt.Fprintf(env.Stdout, "Built %d items, %d failed, %d files in %s (%v)\n",
		len(r.result.Items), len(r.result.Failures), r.files, r.outDir, r.duration.Round(time.Millisecond))
}
