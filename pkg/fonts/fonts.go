// Package fonts resolves font faces for raster text with a fixed fallback
// order, so the renderer never depends on one particular font backend.
//
// Resolution order for every style:
//
//  1. an explicitly configured TTF file
//  2. a preferred system font located with go-findfont
//  3. the Go fonts embedded in golang.org/x/image
//  4. basicfont.Face7x13, which always succeeds
//
// The first source that parses wins and is remembered for the lifetime of
// the [Provider]. Faces are created fresh on every [Provider.Face] call
// because truetype faces keep an internal glyph cache and must not be
// shared between goroutines.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects the font weight.
type Style int

const (
	Regular Style = iota
	Bold
)

// String returns the style name.
func (s Style) String() string {
	if s == Bold {
		return "bold"
	}
	return "regular"
}

// Provider hands out font faces.
type Provider interface {
	Face(style Style, size float64) font.Face
}

// SourceBitmap is reported by Resolved when no scalable font was found.
const SourceBitmap = "basicfont"

// Preferred system fonts, tried in order.
var (
	PreferredRegular = []string{"DejaVuSans.ttf", "Arial.ttf", "arial.ttf", "LiberationSans-Regular.ttf", "Helvetica.ttf"}
	PreferredBold    = []string{"DejaVuSans-Bold.ttf", "Arial Bold.ttf", "arialbd.ttf", "LiberationSans-Bold.ttf"}
)

// Source is one step of the fallback chain.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Load returns the parsed font for style, or an error if unavailable.
	Load(style Style) (*truetype.Font, error)
}

// FileSource loads one TTF file for every style.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Load(Style) (*truetype.Font, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("no font file configured")
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

// SystemSource searches the platform font directories.
type SystemSource struct {
	Regular []string
	Bold    []string
}

func (s SystemSource) Name() string { return "system" }

func (s SystemSource) Load(style Style) (*truetype.Font, error) {
	names := s.Regular
	if style == Bold {
		names = s.Bold
	}
	for _, name := range names {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		if f, err := (FileSource{Path: path}).Load(style); err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no system font among %v", names)
}

// EmbeddedSource uses the Go fonts compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "gofont" }

func (EmbeddedSource) Load(style Style) (*truetype.Font, error) {
	if style == Bold {
		return truetype.Parse(gobold.TTF)
	}
	return truetype.Parse(goregular.TTF)
}

// Chain is the default Provider. It is safe for concurrent use.
type Chain struct {
	sources []Source

	mu       sync.Mutex
	resolved map[Style]resolution
}

type resolution struct {
	font   *truetype.Font // nil means bitmap
	source string
}

// NewChain returns a provider trying sources in order before falling back
// to the bitmap font.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources, resolved: make(map[Style]resolution)}
}

// Default returns the standard chain. A non-empty path is tried first.
func Default(path string) *Chain {
	var sources []Source
	if path != "" {
		sources = append(sources, FileSource{Path: path})
	}
	sources = append(sources,
		SystemSource{Regular: PreferredRegular, Bold: PreferredBold},
		EmbeddedSource{},
	)
	return NewChain(sources...)
}

// Bitmap returns a provider that always uses basicfont.Face7x13.
func Bitmap() *Chain {
	return NewChain()
}

func (c *Chain) resolve(style Style) resolution {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.resolved[style]; ok {
		return r
	}
	r := resolution{source: SourceBitmap}
	for _, s := range c.sources {
		if f, err := s.Load(style); err == nil && f != nil {
			r = resolution{font: f, source: s.Name()}
			break
		}
	}
	c.resolved[style] = r
	return r
}

// Face returns a new face of the given style and point size.
func (c *Chain) Face(style Style, size float64) font.Face {
	r := c.resolve(style)
	if r.font == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(r.font, &truetype.Options{Size: size, Hinting: font.HintingFull})
}

// Resolved names the source that serves style.
func (c *Chain) Resolved(style Style) string {
	return c.resolve(style).source
}
