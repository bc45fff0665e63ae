// Package cmd — crawl command.
// Discovers course pages in a catalog, parses them in parallel and writes
// every record. Failed pages are logged and counted; they never stop the run.
package cmd

import (
	"context"
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/fetch"
	"github.com/gaurav-prasanna/coursepipe/core/output"
	"github.com/gaurav-prasanna/coursepipe/core/parse"
	"github.com/gaurav-prasanna/coursepipe/crawl"
)

var crawlFormat formatFlags

var crawlCmd = &cobra.Command{
	Use:   "crawl <catalog-url>",
	Short: "Discover and parse every course page in a catalog",
	Long: `Crawl discovers course pages reachable from a catalog URL (sitemap.xml first,
then links), parses each one and writes the records under --output_dir,
mirroring the URL paths.

Examples:
  coursepipe crawl https://kurser.ku.dk --json --output_dir ./courses
  coursepipe crawl https://kurser.ku.dk --markdown --output_dir ./courses --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlFormat.register(crawlCmd.Flags())
	crawlCmd.Flags().String("output_dir", "", "Output directory (default: current directory)")
	crawlCmd.Flags().Int("workers", 4, "Pages parsed in parallel")
	crawlCmd.Flags().Int("max_pages", 500, "Maximum URLs collected by the link crawl")
	crawlCmd.Flags().String("pattern", "/course/", "Regexp selecting course page URLs")
	crawlCmd.Flags().Duration("timeout", fetch.DefaultTimeout, "HTTP timeout")
	crawlCmd.Flags().String("user-agent", "", "HTTP User-Agent header")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	catalogURL := args[0]

	if err := crawlFormat.validate(); err != nil {
		return err
	}
	renderer, err := crawlFormat.renderer()
	if err != nil {
		return err
	}
	if !fetch.IsURL(catalogURL) {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", catalogURL)
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	pattern, err := regexp.Compile(cfg.Crawl.Pattern)
	if err != nil {
		return fmt.Errorf("compiling pattern: %w", err)
	}
	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fetcher := fetch.New(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)

	logger.Info("discovering course pages", zap.String("catalog", catalogURL))
	urls, err := crawl.DiscoverCourses(ctx, catalogURL, fetcher, crawl.DiscoverOptions{
		Pattern:  pattern,
		MaxPages: cfg.Crawl.MaxPages,
	})
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	logger.Info("found course pages", zap.Int("count", len(urls)))

	outcomes := crawl.ParseAll(ctx, urls, fetcher, parse.New(), crawl.BatchOptions{Workers: cfg.Crawl.Workers}, logger)

	var writeErrors int
	for _, o := range outcomes {
		if o.Kind != core.KindNone {
			continue
		}
		data, err := renderer.Render(*o.Page)
		if err == nil {
			_, err = writer.WriteURL(o.URL, data, renderer.Extension())
		}
		if err != nil {
			logger.Error("writing course", zap.String("url", o.URL), zap.Error(err))
			writeErrors++
		}
	}

	summary := crawl.Summarize(outcomes)
	logger.Info("crawl finished",
		zap.Int("pages", len(outcomes)),
		zap.Int("parsed", summary.Parsed()),
		zap.Int("unrecognized", summary[core.KindUnrecognized]),
		zap.Int("failed", summary.Failed()),
		zap.Int("write_errors", writeErrors))
	return nil
}
