package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/matzehuels/weave/pkg/weave"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor relative to the camera's pixel size.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the frame.
func RenderPNG(f weave.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	cam := f.Camera
	w := max(1, int(float64(cam.Width)*r.scale))
	h := max(1, int(float64(cam.Height)*r.scale))
	dc := gg.NewContext(w, h)
	if f.Background != "" {
		dc.SetHexColor(f.Background)
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, run := range f.DepthOrder() {
		dc.SetHexColor(run.Stroke.Color)
		dc.SetLineWidth(strokeWidth(cam, run.Stroke.Width) * r.scale)
		for i, p := range run.Points {
			x, y := cam.ToPixels(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
