package text

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t testing.TB) *Font {
	t.Helper()
	f, err := ParseFont(goregular.TTF)
	if err != nil {
		t.Fatalf("ParseFont: %v", err)
	}
	return f
}

func TestParseFontErrors(t *testing.T) {
	if _, err := ParseFont(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("ParseFont(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := ParseFont([]byte("not a font")); err == nil {
		t.Error("ParseFont accepted garbage")
	}
	if _, err := LoadFont("testdata/missing.ttf"); err == nil {
		t.Error("LoadFont of a missing file succeeded")
	}
}

func TestFontName(t *testing.T) {
	if got := loadGoRegular(t).Name(); got != "Go" {
		t.Errorf("Name() = %q, want Go", got)
	}
}

func TestRender(t *testing.T) {
	f := loadGoRegular(t)
	m := f.Metrics(32)
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Fatalf("metrics = %+v", m)
	}
	img, err := f.Render("Hello", 32)
	if err != nil {
		t.Fatal(err)
	}
	wantH := int(math.Ceil(m.Ascent+m.Descent)) + 2*Margin
	if img.Height != wantH {
		t.Errorf("height = %d, want %d", img.Height, wantH)
	}
	if img.Width <= 2*Margin+32 {
		t.Errorf("width = %d, too narrow for five glyphs", img.Width)
	}

	covered := 0
	for i, v := range img.Pix {
		if v < 0 || v > 1 {
			t.Fatalf("pixel %d = %v out of [0, 1]", i, v)
		}
		if v > 0.5 {
			covered++
		}
	}
	if covered == 0 {
		t.Error("no covered pixels")
	}
	for x := 0; x < img.Width; x++ {
		if img.At(x, 0) != 0 || img.At(x, img.Height-1) != 0 {
			t.Fatalf("margin row not empty at x=%d", x)
		}
	}
	for y := 0; y < img.Height; y++ {
		if img.At(0, y) != 0 {
			t.Fatalf("margin column not empty at y=%d", y)
		}
	}
}

func TestRenderWidthGrows(t *testing.T) {
	f := loadGoRegular(t)
	short, err := f.Render("ab", 24)
	if err != nil {
		t.Fatal(err)
	}
	long, err := f.Render("abababab", 24)
	if err != nil {
		t.Fatal(err)
	}
	if long.Width <= short.Width {
		t.Errorf("widths %d <= %d", long.Width, short.Width)
	}
}

func TestRenderLines(t *testing.T) {
	f := loadGoRegular(t)
	one, err := f.Render("hello", 24)
	if err != nil {
		t.Fatal(err)
	}
	three, err := f.Render("hello\nhi\nhello", 24)
	if err != nil {
		t.Fatal(err)
	}
	if three.Width != one.Width {
		t.Errorf("width = %d, want widest line %d", three.Width, one.Width)
	}
	lh := f.Metrics(24).LineHeight()
	if want := one.Height + int(math.Ceil(2*lh)); three.Height < want-1 || three.Height > want+1 {
		t.Errorf("height = %d, want about %d", three.Height, want)
	}
	// Each line puts ink near its own baseline.
	m := f.Metrics(24)
	for i := 0; i < 3; i++ {
		y := int(Margin + m.Ascent + float64(i)*lh - 2)
		ink := 0.0
		for x := 0; x < three.Width; x++ {
			ink += three.At(x, y)
		}
		if ink == 0 {
			t.Errorf("line %d has no coverage at y=%d", i, y)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	img, err := loadGoRegular(t).Render("", 24)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 2*Margin {
		t.Errorf("width = %d, want %d", img.Width, 2*Margin)
	}
	for _, v := range img.Pix {
		if v != 0 {
			t.Fatal("empty string produced coverage")
		}
	}
}

func TestRenderInvalidSize(t *testing.T) {
	f := loadGoRegular(t)
	for _, size := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		if _, err := f.Render("x", size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Render(size=%v) = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestVisualRuns(t *testing.T) {
	runs := visualRuns("plain text")
	if len(runs) != 1 || runs[0].rtl || string(runs[0].runes) != "plain text" {
		t.Errorf("visualRuns(ltr) = %+v", runs)
	}

	runs = visualRuns("abc שלום")
	rtl := false
	total := 0
	for _, r := range runs {
		rtl = rtl || r.rtl
		total += len(r.runes)
	}
	if !rtl {
		t.Error("no right-to-left run in mixed text")
	}
	if total != len([]rune("abc שלום")) {
		t.Errorf("runs cover %d runes", total)
	}
}

func BenchmarkRender(b *testing.B) {
	f := loadGoRegular(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Render("The quick brown fox", 32); err != nil {
			b.Fatal(err)
		}
	}
}
