package debugviz

import (
	"image"

	"mesh-autoskin/internal/geometry"
	"mesh-autoskin/internal/mathutil"
	"mesh-autoskin/internal/postprocess"
	"mesh-autoskin/internal/raster"
)

// RenderOptions controls the preview image.
type RenderOptions struct {
	Size        int
	Supersample int
	View        mathutil.Mat3
}

// DefaultRenderOptions renders 512px, 2× supersampled, three-quarter view.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Size: 512, Supersample: 2, View: mathutil.PreviewView}
}

// Render rasterizes the painted mesh with its wireframe overlay.
func Render(p *Payload, g *geometry.Geometry, opts RenderOptions) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if opts.View == (mathutil.Mat3{}) {
		opts.View = mathutil.PreviewView
	}

	colors := make([][3]uint8, len(p.VertexColors))
	for i, c := range p.VertexColors {
		r, gr, b := c.Clamped().RGB255()
		colors[i] = [3]uint8{r, gr, b}
	}

	var tris [][3]int
	g.ForEachTriangle(func(a, b, c int) {
		tris = append(tris, [3]int{a, b, c})
	})

	lr, lg, lb := p.Wireframe.Color.Clamped().RGB255()
	img := raster.Render(
		raster.Mesh{Positions: g.Positions, Triangles: tris, Colors: colors},
		raster.Lines{Edges: p.Wireframe.Edges, R: lr, G: lg, B: lb, Opacity: p.Wireframe.Opacity},
		opts.View,
		opts.Size,
		opts.Supersample,
	)
	return postprocess.Downsample(img, opts.Supersample)
}
