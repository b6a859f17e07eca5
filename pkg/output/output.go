// Package output derives collision-free output file paths from dashboard titles.
//
// Titles are slugified into filesystem-safe names; when the target path
// already exists a numeric suffix (-1, -2, ...) is appended until a free name
// is found. Files are created with O_EXCL so an existing file is never
// overwritten, even if another process races for the same name.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/matzehuels/dashgen/pkg/errors"
)

var (
	// unsafeChars matches everything outside letters, digits, whitespace, and hyphens.
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\s-]+`)

	// whitespaceRuns matches runs of whitespace collapsed into single hyphens.
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// fallbackName is used when a title slugifies to nothing (e.g. "!!!").
const fallbackName = "dashboard"

// Slugify converts a title into a filesystem-safe slug: characters outside
// letters/digits/space/hyphen are stripped, whitespace runs collapse to
// single hyphens, and the result is lowercased. Slugify is idempotent.
func Slugify(title string) string {
	slug := unsafeChars.ReplaceAllString(title, "")
	slug = whitespaceRuns.ReplaceAllString(strings.TrimSpace(slug), "-")
	return strings.ToLower(slug)
}

// Create opens a new PNG file under dir for the given title. The directory is
// created if missing. On name collisions a -1, -2, ... suffix is tried until
// a free name is found; the file is opened with O_EXCL so the probe and the
// create cannot race against another writer.
func Create(dir, title string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputFailed, err, "create output directory %s", dir)
	}

	slug := Slugify(title)
	if slug == "" {
		slug = fallbackName
	}

	for i := 0; ; i++ {
		name := slug + ".png"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.png", slug, i)
		}

		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrap(errors.ErrCodeOutputFailed, err, "create output file %s", name)
		}
	}
}

// RelPath returns path relative to the current working directory for display.
// If the relative form cannot be computed the absolute path is returned.
func RelPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil {
		return path
	}
	return rel
}
