// Package crawl discovers course pages in a catalog and parses them in
// bulk. Course pages are found via sitemap.xml, falling back to link
// crawling, and kept separate from the single-page parse pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/coursepipe/core"
)

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverOptions bounds and filters discovery.
type DiscoverOptions struct {
	// Pattern selects course page URLs among everything discovered.
	Pattern *regexp.Regexp
	// MaxPages caps how many unique URLs the link crawl collects.
	MaxPages int
	// Client is used for sitemap requests; nil means a 15s-timeout client.
	Client *http.Client
}

// DiscoverCourses finds course page URLs reachable from catalogURL.
// It first tries sitemap.xml, then falls back to link crawling.
func DiscoverCourses(ctx context.Context, catalogURL string, fetcher core.Fetcher, opts DiscoverOptions) ([]string, error) {
	parsed, err := url.Parse(catalogURL)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("catalog URL %q must be absolute", catalogURL)
	}
	if opts.Pattern == nil {
		return nil, fmt.Errorf("no course URL pattern")
	}
	s := scope{host: parsed.Host, courses: opts.Pattern}

	sitemap := parsed.Scheme + "://" + parsed.Host + "/sitemap.xml"
	if urls, err := fromSitemap(ctx, opts.client(), sitemap, s); err == nil && len(urls) > 0 {
		return s.coursePages(urls), nil
	}

	limit := opts.MaxPages
	if limit <= 0 {
		limit = defaultMaxPages
	}
	urls, err := fromLinks(ctx, catalogURL, fetcher, s, limit)
	if err != nil {
		return nil, err
	}
	return s.coursePages(urls), nil
}

const defaultMaxPages = 100

func (o DiscoverOptions) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return &http.Client{Timeout: 15 * time.Second}
}

// fromSitemap reads the in-scope URLs listed in sitemap.xml.
func fromSitemap(ctx context.Context, client *http.Client, sitemapURL string, s scope) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	var sitemap sitemapIndex
	if err := xml.NewDecoder(resp.Body).Decode(&sitemap); err != nil {
		return nil, fmt.Errorf("decoding sitemap: %w", err)
	}

	f := newFrontier(len(sitemap.URLs))
	for _, u := range sitemap.URLs {
		if key, ok := s.canonical(strings.TrimSpace(u.Loc)); ok {
			f.push(key)
		}
	}
	return f.urls(), nil
}

// fromLinks crawls breadth-first from start until limit URLs are known
// or no page is left to fetch. Pages that fail to load are skipped.
func fromLinks(ctx context.Context, start string, fetcher core.Fetcher, s scope, limit int) ([]string, error) {
	f := newFrontier(limit)
	if key, ok := s.canonical(start); ok {
		f.push(key)
	}

	for {
		current, ok := f.pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := fetcher.Fetch(ctx, current)
		if err != nil {
			continue
		}
		links, err := extractLinks(result.HTML, current)
		if err != nil {
			continue
		}
		for _, link := range links {
			if key, ok := s.canonical(link); ok {
				f.push(key)
			}
		}
	}
	return f.urls(), nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
