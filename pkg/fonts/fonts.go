// Package fonts resolves the typefaces used for dashboard text.
//
// Faces are looked up on the host system via findfont, preferring the common
// sans-serif families, and fall back to the plotting library's bundled
// Roboto when nothing suitable is installed. Parsed fonts and sized faces
// are memoized so repeated renders reuse them.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"

	"github.com/matzehuels/dashgen/pkg/cache"
	"github.com/matzehuels/dashgen/pkg/errors"
)

// Weight selects a face weight.
type Weight string

// Supported face weights.
const (
	Regular Weight = "regular"
	Medium  Weight = "medium"
	Bold    Weight = "bold"
)

// candidates lists system font files tried per weight, in preference order.
// findfont matches names case-insensitively against the host's font dirs.
var candidates = map[Weight][]string{
	Regular: {"DejaVuSans.ttf", "LiberationSans-Regular.ttf", "Arial.ttf", "Helvetica.ttf"},
	Medium:  {"DejaVuSans.ttf", "LiberationSans-Regular.ttf", "Arial.ttf", "Helvetica.ttf"},
	Bold:    {"DejaVuSans-Bold.ttf", "LiberationSans-Bold.ttf", "Arial-Bold.ttf", "Arial Bold.ttf", "Helvetica-Bold.ttf"},
}

// FaceKey identifies a memoized face by pixel size and weight.
type FaceKey struct {
	Size   float64
	Weight Weight
}

// defaultFaceEntries bounds the face cache; a dashboard uses well under
// a dozen distinct size/weight pairs.
const defaultFaceEntries = 32

// Library resolves and caches font faces.
// It is safe for concurrent use.
type Library struct {
	mu    sync.Mutex
	fonts map[Weight]*truetype.Font
	faces *cache.Memo[FaceKey, font.Face]
}

// NewLibrary creates a font library using the given face cache.
// A nil cache gets a bounded default.
func NewLibrary(faces *cache.Memo[FaceKey, font.Face]) *Library {
	if faces == nil {
		faces = cache.New[FaceKey, font.Face]("fonts", defaultFaceEntries)
	}
	return &Library{
		fonts: make(map[Weight]*truetype.Font, 3),
		faces: faces,
	}
}

// Face returns a font face for the given pixel size and weight.
// The face is memoized; the same key returns the same face.
func (l *Library) Face(size float64, weight Weight) (font.Face, error) {
	return l.faces.Get(FaceKey{Size: size, Weight: weight}, func() (font.Face, error) {
		f, err := l.fontFor(weight)
		if err != nil {
			return nil, err
		}
		// DPI 72 makes the requested size an exact pixel size.
		return truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}), nil
	})
}

// Font returns the parsed font for a weight, for callers that need the
// underlying truetype font rather than a sized face.
func (l *Library) Font(weight Weight) (*truetype.Font, error) {
	return l.fontFor(weight)
}

// Reset drops all memoized faces. Parsed fonts are kept.
func (l *Library) Reset() {
	l.faces.Reset()
}

func (l *Library) fontFor(weight Weight) (*truetype.Font, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.fonts[weight]; ok {
		return f, nil
	}

	f := loadSystemFont(candidates[weight])
	if f == nil {
		// No system font matched; use the embedded Roboto.
		def, err := chart.GetDefaultFont()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "no usable font for weight %s", weight)
		}
		f = def
	}

	l.fonts[weight] = f
	return f, nil
}

// loadSystemFont tries each candidate file and returns the first that both
// exists and parses; nil when none do.
func loadSystemFont(names []string) *truetype.Font {
	for _, name := range names {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		return f
	}
	return nil
}
