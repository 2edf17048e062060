package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// boldThreshold is the lowest CSS weight drawn with the bold face.
const boldThreshold = 600

// FontSet resolves a brand font family to parsed OpenType fonts. Families are
// looked up in an optional directory as <Family>-Regular.ttf / -Bold.ttf (or
// .otf); anything missing falls back to the embedded Go fonts.
//
// Parsed fonts are shared, faces are not: callers get a fresh font.Face per
// render because faces keep internal buffers.
type FontSet struct {
	dir     string
	regular *opentype.Font
	bold    *opentype.Font

	mu       sync.Mutex
	families map[string]*opentype.Font
}

// NewFontSet parses the embedded fallback fonts and remembers dir for
// family lookups.
func NewFontSet(dir string) (*FontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse fallback regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse fallback bold: %w", err)
	}
	return &FontSet{
		dir:      strings.TrimSpace(dir),
		regular:  regular,
		bold:     bold,
		families: make(map[string]*opentype.Font),
	}, nil
}

// Face returns a face for family at sizePx and the given CSS weight.
func (fs *FontSet) Face(family string, weight int, sizePx float64) (font.Face, error) {
	f := fs.lookup(family, weight >= boldThreshold)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: face %s %d at %.0fpx: %w", family, weight, sizePx, err)
	}
	return face, nil
}

func (fs *FontSet) lookup(family string, bold bool) *opentype.Font {
	fallback := fs.regular
	variant := "Regular"
	if bold {
		fallback = fs.bold
		variant = "Bold"
	}
	family = strings.TrimSpace(family)
	if fs.dir == "" || family == "" {
		return fallback
	}
	key := family + "-" + variant

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if f, ok := fs.families[key]; ok {
		if f == nil {
			return fallback
		}
		return f
	}
	f := fs.loadFamily(key)
	fs.families[key] = f
	if f == nil {
		return fallback
	}
	return f
}

// loadFamily returns nil when no usable file exists; the miss is cached.
func (fs *FontSet) loadFamily(key string) *opentype.Font {
	name := strings.ReplaceAll(key, " ", "")
	for _, ext := range []string{".ttf", ".otf"} {
		data, err := os.ReadFile(filepath.Join(fs.dir, name+ext))
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		return f
	}
	return nil
}
