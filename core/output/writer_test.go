package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCourse(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path, err := w.WriteCourse("NDAB15009U", []byte("{}"), ".json")
	if err != nil {
		t.Fatalf("WriteCourse: %v", err)
	}
	if path != filepath.Join(dir, "NDAB15009U.json") {
		t.Errorf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{}" {
		t.Errorf("file content %q, %v", data, err)
	}
}

func TestWriteCourse_SanitizesID(t *testing.T) {
	dir := t.TempDir()
	w, _ := New(dir)

	path, err := w.WriteCourse("../etc/passwd", []byte("x"), ".md")
	if err != nil {
		t.Fatalf("WriteCourse: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("file escaped output dir: %s", path)
	}

	if _, err := w.WriteCourse("///", []byte("x"), ".md"); err == nil {
		t.Error("expected error for id without usable characters")
	}
}

func TestWriteURL(t *testing.T) {
	dir := t.TempDir()
	w, _ := New(dir)

	tests := map[string]string{
		"https://kurser.ku.dk/course/ndab15009u":  filepath.Join(dir, "course", "ndab15009u.json"),
		"https://kurser.ku.dk/course/ndab15009u/": filepath.Join(dir, "course", "ndab15009u.json"),
		"https://kurser.ku.dk/":                   filepath.Join(dir, "index.json"),
	}
	for rawURL, want := range tests {
		path, err := w.WriteURL(rawURL, []byte("{}"), ".json")
		if err != nil {
			t.Errorf("WriteURL(%s): %v", rawURL, err)
			continue
		}
		if path != want {
			t.Errorf("WriteURL(%s) = %s, want %s", rawURL, path, want)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not written: %v", err)
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"NDAB15009U": "NDAB15009U",
		"a b/c":      "a_b_c",
		"x-y_z":      "x-y_z",
		"kursus.æ":   "kursus__",
	}
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}
