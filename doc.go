// Package md2site turns a directory of dated markdown documents into the
// content of a static blog: HTML fragments per article, navigation links
// between articles, and an Atom feed.
//
// # Quick Start
//
// Describe the site, create a builder, and build:
//
//	b, err := md2site.NewBuilder(md2site.BuildConfig{
//	    ContentDir: "content",
//	    Site: md2site.Site{
//	        UUID:    siteUUID,
//	        Lang:    "en",
//	        Title:   "Notes",
//	        Host:    "https://example.com",
//	        BaseURL: "/blog/",
//	    },
//	    Feed: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, item := range result.Items {
//	    fmt.Println(item.Slug, len(result.Bodies[item.Slug]))
//	}
//
// # Content
//
// A document is either "YYYY-MM-DD-title.md" or "YYYY-MM-DD-title/index.md";
// the second form owns the assets stored next to it. Each document starts
// with a "+++" block holding title, date and uuid:
//
//	+++
//	title = "Hello"
//	date = 2024-03-05T10:00:00+01:00[Europe/Paris]
//	uuid = 6ba7b810-9dad-11d1-80b4-00c04fd430c8
//	+++
//
// The date in the file name must match the metadata date. The slug is the
// title part of the name, normalized to URL-safe characters.
//
// # Build Pipeline
//
//  1. Discovery of markdown files in lexical path order
//  2. Metadata extraction, identity and slug resolution
//  3. Ordering newest first and navigation linking
//  4. Rendering of each event stream to HTML fragments (worker pool)
//  5. Atom feed synthesis
//
// # Failures
//
// With PolicyLenient, a failing document is reported in Result.Failures and
// left out of navigation and the feed. PolicyStrict stops at the first
// failure with ErrBuildAborted.
package md2site
