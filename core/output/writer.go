// Package output handles file naming and writing for rendered course pages.
// Single pages are named after their course code (e.g. NDAB15009U.json);
// crawled pages mirror the URL path structure.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteCourse writes output named after the course code.
func (w *Writer) WriteCourse(courseID string, data []byte, ext string) (string, error) {
	name := sanitize(courseID)
	if strings.Trim(name, "_") == "" {
		return "", fmt.Errorf("course id %q yields no file name", courseID)
	}
	path := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteURL writes output for a crawled page, mirroring the URL path.
// Example: https://kurser.ku.dk/course/ndab15009u → ./course/ndab15009u.json
func (w *Writer) WriteURL(rawURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	urlPath := strings.TrimSuffix(parsed.Path, "/")
	if urlPath == "" || urlPath == "/" {
		urlPath = "/index"
	}
	segments := strings.Split(strings.TrimPrefix(urlPath, "/"), "/")
	for i, seg := range segments {
		segments[i] = sanitize(seg)
	}

	fullPath := filepath.Join(append([]string{w.OutputDir}, segments...)...) + ext

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// sanitize replaces characters other than letters, digits, '-' and '_'
// with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
