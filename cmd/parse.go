// Package cmd — parse command.
// Runs one course page through the pipeline:
// fetch → locate → extract → coerce → render → write.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/coursepipe/core"
	"github.com/gaurav-prasanna/coursepipe/core/fetch"
	"github.com/gaurav-prasanna/coursepipe/core/output"
	"github.com/gaurav-prasanna/coursepipe/core/parse"
)

var parseFormat formatFlags

var parseCmd = &cobra.Command{
	Use:   "parse <file-or-url>",
	Short: "Parse one course page into a record",
	Long: `Parse reads a course page from a local file or a URL, extracts the course
information and prints the record, or writes it to --output_dir named after
the course code.

Examples:
  coursepipe parse ./NDAB15009U.html --json
  coursepipe parse https://kurser.ku.dk/course/ndab15009u --markdown
  coursepipe parse ./NDAB15009U.html --pdf --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseFormat.register(parseCmd.Flags())
	parseCmd.Flags().String("output_dir", "", "Output directory (default: print to stdout)")
	parseCmd.Flags().Duration("timeout", fetch.DefaultTimeout, "HTTP timeout")
	parseCmd.Flags().String("user-agent", "", "HTTP User-Agent header")
}

func runParse(cmd *cobra.Command, args []string) error {
	source := args[0]

	if err := parseFormat.validate(); err != nil {
		return err
	}
	renderer, err := parseFormat.renderer()
	if err != nil {
		return err
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if parseFormat.PDF && cfg.Output.Dir == "" {
		return fmt.Errorf("--pdf requires --output_dir")
	}

	fetcher := fetch.For(source, fetch.New(cfg.Fetch.Timeout, cfg.Fetch.UserAgent))
	parser := parse.New()

	page, err := parseSource(cmd.Context(), source, fetcher, parser)
	if errors.Is(err, core.ErrUnrecognizedPage) {
		logger.Warn("page has no course information (possibly an unpublished course)", zap.String("source", source))
		return err
	}
	if err != nil {
		return err
	}

	data, err := renderer.Render(*page)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if cfg.Output.Dir == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.WriteCourse(page.Course.ID(), data, renderer.Extension())
	if err != nil {
		return err
	}
	logger.Info("written", zap.String("course", page.Course.ID()), zap.String("path", path))
	return nil
}

// parseSource fetches source and parses it into a course page.
func parseSource(ctx context.Context, source string, fetcher core.Fetcher, parser *parse.Parser) (*core.CoursePage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return parser.Page(source, result.HTML)
}
