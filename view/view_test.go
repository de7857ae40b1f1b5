package view

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/soypat/vault"
	"gonum.org/v1/plot/cmpimg"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = 160
	opts.Height = 120
	return opts
}

func smallArch() vault.Surface {
	cfg := vault.DefaultArchConfig()
	cfg.ResU = 12
	cfg.ResV = 10
	return vault.Arch(cfg)
}

func TestRenderDeterministic(t *testing.T) {
	s := smallArch()
	opts := smallOptions()
	a := encode(t, mustRender(t, s, opts))
	b := encode(t, mustRender(t, s, opts))
	equal, err := cmpimg.EqualApprox("png", a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("rendering the same surface twice gave different images")
	}
}

func TestRenderSize(t *testing.T) {
	opts := smallOptions()
	for _, ss := range []int{0, 1, 3} {
		opts.Supersample = ss
		img := mustRender(t, smallArch(), opts)
		if got := img.Bounds().Size(); got != image.Pt(opts.Width, opts.Height) {
			t.Errorf("supersample %d: got size %v", ss, got)
		}
	}
}

func TestRenderEdgesVisible(t *testing.T) {
	s := smallArch()
	opts := smallOptions()
	withEdges := encode(t, mustRender(t, s, opts))
	opts.Style.ShowEdges = false
	noEdges := encode(t, mustRender(t, s, opts))
	equal, err := cmpimg.EqualApprox("png", withEdges, noEdges, 0)
	if err != nil {
		t.Fatal(err)
	}
	if equal {
		t.Error("edges did not change the rendered image")
	}
}

func TestRenderAxesTriad(t *testing.T) {
	s := smallArch()
	opts := smallOptions()
	opts.Style.ShowAxes = true
	with := mustRender(t, s, opts)
	opts.Style.ShowAxes = false
	without := mustRender(t, s, opts)
	// The triad only touches the lower left corner.
	size := opts.Height / 5
	if !regionDiffers(with, without, image.Rect(0, opts.Height-size, size, opts.Height)) {
		t.Error("axes triad not drawn in lower left corner")
	}
	if regionDiffers(with, without, image.Rect(size+2, 0, opts.Width, opts.Height-size-2)) {
		t.Error("axes triad drawn outside lower left corner")
	}
}

func TestRenderBoxAspect(t *testing.T) {
	cfg := vault.DefaultOrganicConfig()
	cfg.ResX, cfg.ResY = 30, 30
	s := vault.Organic(cfg, cfg.Source())
	opts := smallOptions()
	opts.Camera = Elevated(28, 35)
	opts.Style = WireStyle()
	tall := encode(t, mustRender(t, s, opts))
	opts.BoxAspectZ = 0.35
	flat := encode(t, mustRender(t, s, opts))
	equal, err := cmpimg.EqualApprox("png", tall, flat, 0)
	if err != nil {
		t.Fatal(err)
	}
	if equal {
		t.Error("box aspect did not change the rendered image")
	}
}

func TestRenderErrors(t *testing.T) {
	s := smallArch()
	opts := smallOptions()
	opts.Width = 0
	if _, err := RenderSurface(s, opts); err == nil {
		t.Error("expected error for zero width")
	}
	opts = smallOptions()
	opts.Style.EdgeColor = "black"
	if _, err := RenderSurface(s, opts); err == nil {
		t.Error("expected error for bad color")
	}
	if _, err := Render(nil, nil, smallOptions()); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestParseHex(t *testing.T) {
	for _, s := range []string{"#ffffff", "#1a1a1a", "#00000080", "abcdef"} {
		if _, err := parseHex(s); err != nil {
			t.Errorf("%q: %v", s, err)
		}
	}
	for _, s := range []string{"", "#fff", "#gggggg", "#1234567"} {
		if _, err := parseHex(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func regionDiffers(a, b image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			r1, g1, b1, a1 := a.At(x, y).RGBA()
			r2, g2, b2, a2 := b.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return true
			}
		}
	}
	return false
}

func mustRender(t *testing.T, s vault.Surface, opts Options) image.Image {
	t.Helper()
	img, err := RenderSurface(s, opts)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
