package text

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is an immutable parsed font, safe for concurrent use.
type Font struct {
	outlines *sfnt.Font
	shaping  *gtfont.Font

	// shapers pools HarfbuzzShaper, which keeps per-call buffers.
	shapers sync.Pool
	// bufs pools sfnt.Buffer for outline loading.
	bufs sync.Pool
}

// ParseFont parses TrueType or OpenType data.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font for shaping: %w", err)
	}
	f := &Font{outlines: sf, shaping: face.Font}
	f.shapers.New = func() any { return &shaping.HarfbuzzShaper{} }
	f.bufs.New = func() any { return new(sfnt.Buffer) }
	return f, nil
}

// LoadFont reads and parses a font file.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	return ParseFont(data)
}

// Name returns the family name, or "" if the font has none.
func (f *Font) Name() string {
	name, err := f.outlines.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

// Metrics holds vertical font metrics in pixels. Descent is positive.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is the baseline-to-baseline distance.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// Metrics returns the metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	buf := f.bufs.Get().(*sfnt.Buffer)
	defer f.bufs.Put(buf)
	m, err := f.outlines.Metrics(buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:  fromFixed(m.Ascent),
		Descent: fromFixed(m.Descent),
		LineGap: fromFixed(m.Height - m.Ascent - m.Descent),
	}
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
