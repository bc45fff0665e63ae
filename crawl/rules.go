package crawl

import (
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"
)

// assetExtensions are links a catalog crawl never fetches.
var assetExtensions = []string{
	// images
	".bmp", ".gif", ".ico", ".jpeg", ".jpg", ".png", ".svg", ".webp",
	// styles, scripts and fonts
	".css", ".eot", ".js", ".mjs", ".ttf", ".woff", ".woff2",
	// media
	".mp3", ".mp4", ".wav", ".webm",
	// documents and archives (exam plans, timetables)
	".doc", ".docx", ".gz", ".pdf", ".tar", ".xls", ".xlsx", ".zip",
}

// scope decides which links a crawl follows and which of the collected
// URLs are course pages.
type scope struct {
	host    string
	courses *regexp.Regexp
}

// canonical returns the key a URL is deduplicated under: no fragment and
// no trailing slash except on the root. URLs on another host or pointing
// at an asset are out of scope.
func (s scope) canonical(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Host != s.host {
		return "", false
	}
	if slices.Contains(assetExtensions, strings.ToLower(path.Ext(u.Path))) {
		return "", false
	}
	u.Fragment = ""
	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}
	return u.String(), true
}

// coursePages keeps the URLs matching the course pattern, in order.
func (s scope) coursePages(urls []string) []string {
	var pages []string
	for _, u := range urls {
		if s.courses.MatchString(u) {
			pages = append(pages, u)
		}
	}
	return pages
}
