package sink

import (
	"bytes"
	"fmt"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/weave/pkg/geom"
	"github.com/matzehuels/weave/pkg/viewport"
	"github.com/matzehuels/weave/pkg/weave"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	transparent bool
}

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithTransparent leaves out the background rectangle.
func WithTransparent() SVGOption { return func(r *svgRenderer) { r.transparent = true } }

// RenderSVG draws the frame at the camera's pixel size.
func RenderSVG(f weave.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	cam := f.Camera
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(cam.Width, cam.Height)
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Desc(fmt.Sprintf("seed %d, t=%.3f", f.Seed, f.Time))
	if !r.transparent && f.Background != "" {
		canvas.Rect(0, 0, cam.Width, cam.Height, "fill:"+f.Background)
	}

	canvas.Group(`fill="none"`, `stroke-linecap="round"`, `stroke-linejoin="round"`)
	for _, run := range f.DepthOrder() {
		style := fmt.Sprintf("stroke:%s;stroke-width:%.2f", run.Stroke.Color, strokeWidth(cam, run.Stroke.Width))
		canvas.Path(pathData(cam, run.Points), style)
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

// strokeWidth converts a width in canvas-height fractions to pixels.
func strokeWidth(cam viewport.Camera, w float64) float64 {
	return w * float64(cam.Height)
}

func pathData(cam viewport.Camera, points []geom.Point) string {
	var sb strings.Builder
	for i, p := range points {
		x, y := cam.ToPixels(p)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.2f %.2f", x, y)
			continue
		}
		fmt.Fprintf(&sb, " L%.2f %.2f", x, y)
	}
	return sb.String()
}
