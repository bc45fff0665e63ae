// Package crawl — batch parsing.
// Parses many course pages in parallel. A failing page never stops the
// batch; its error is recorded in the page's Outcome.
package crawl

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// PageParser parses one page of HTML. *parse.Parser satisfies it.
type PageParser interface {
	Page(source, html string) (*core.CoursePage, error)
}

// Outcome is the result of parsing one course page.
type Outcome struct {
	URL  string
	Page *core.CoursePage
	Err  error
	Kind core.ErrorKind
}

// BatchOptions configures ParseAll.
type BatchOptions struct {
	Workers int
}

// ParseAll fetches and parses every URL with at most opts.Workers pages in
// flight. Outcomes are returned in input order. Cancelling ctx stops
// scheduling new pages; pages never started report ctx's error.
func ParseAll(ctx context.Context, urls []string, fetcher core.Fetcher, parser PageParser, opts BatchOptions, logger *zap.Logger) []Outcome {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	outcomes := make([]Outcome, len(urls))
	for i, u := range urls {
		outcomes[i] = Outcome{URL: u}
	}

	g := errgroup.Group{}
	g.SetLimit(workers)

	for i := range urls {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// Each goroutine writes only its own slot.
			outcomes[i] = parseOne(ctx, urls[i], fetcher, parser, logger)
			return nil
		})
	}
	_ = g.Wait()

	for i := range outcomes {
		if outcomes[i].Page == nil && outcomes[i].Err == nil {
			outcomes[i].Err = ctx.Err()
			outcomes[i].Kind = core.KindOf(outcomes[i].Err)
		}
	}
	return outcomes
}

func parseOne(ctx context.Context, pageURL string, fetcher core.Fetcher, parser PageParser, logger *zap.Logger) Outcome {
	start := time.Now()
	out := Outcome{URL: pageURL}

	result, err := fetcher.Fetch(ctx, pageURL)
	if err == nil {
		out.Page, err = parser.Page(pageURL, result.HTML)
	}
	out.Err = err
	out.Kind = core.KindOf(err)

	switch out.Kind {
	case core.KindNone:
		logger.Debug("parsed course",
			zap.String("url", pageURL),
			zap.String("course", out.Page.Course.ID()),
			zap.Duration("elapsed", time.Since(start)))
	case core.KindUnrecognized:
		logger.Info("skipping page with unrecognized format", zap.String("url", pageURL))
	default:
		logger.Warn("course page failed",
			zap.String("url", pageURL),
			zap.String("kind", string(out.Kind)),
			zap.Error(err))
	}
	return out
}

// Summary counts outcomes per error kind; KindNone counts successes.
type Summary map[core.ErrorKind]int

// Summarize counts outcomes by kind.
func Summarize(outcomes []Outcome) Summary {
	s := make(Summary)
	for _, o := range outcomes {
		s[o.Kind]++
	}
	return s
}

// Parsed returns the number of successfully parsed pages.
func (s Summary) Parsed() int { return s[core.KindNone] }

// Failed returns the number of pages that failed for any reason other
// than an unrecognized format.
func (s Summary) Failed() int {
	n := 0
	for kind, count := range s {
		if kind != core.KindNone && kind != core.KindUnrecognized {
			n += count
		}
	}
	return n
}
