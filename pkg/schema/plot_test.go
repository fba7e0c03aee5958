package schema

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

// barPixels counts pixels painted exactly in the bar color.
func barPixels(t *testing.T, data []byte) (count, width int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 == 0x87 && g>>8 == 0xCE && bl>>8 == 0xEB {
				count++
			}
		}
	}
	return count, b.Dx()
}

func TestPlot(t *testing.T) {
	report, err := Count(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Plot(&buf, report); err != nil {
		t.Fatalf("Plot() error: %v", err)
	}
	n, w := barPixels(t, buf.Bytes())
	if w != PlotWidth {
		t.Errorf("width = %d, want %d", w, PlotWidth)
	}
	if n == 0 {
		t.Error("no bars drawn")
	}
}

func TestPlotEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Plot(&buf, &Report{}); err != nil {
		t.Fatal(err)
	}
	if n, _ := barPixels(t, buf.Bytes()); n != 0 {
		t.Errorf("empty report drew %d bar pixels", n)
	}
}
