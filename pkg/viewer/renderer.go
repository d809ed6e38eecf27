// Package viewer renders the stand without a GPU.
//
// Raster implements scene.Renderer into an in-memory image; StandView wraps
// it in a fyne widget for the desktop GUI.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"sort"

	"github.com/golang/freetype/truetype"
	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/mesh"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Compile-time interface check
var _ scene.Renderer = (*Raster)(nil)

var (
	edgeColor    = color.NRGBA{A: 38} // black at 15%
	captionColor = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF}
)

// captionSize is the caption font size in points at 72 DPI
const captionSize = 13

// offscreenLimit drops lines projected absurdly far outside the surface
const offscreenLimit = 8

type shadedTriangle struct {
	tri   geometry.Triangle
	color color.NRGBA
}

// primitive is the rasterizer's resource for one placement
type primitive struct {
	id          int
	triangles   []shadedTriangle
	edges       []mesh.Segment
	translucent bool
}

// Raster is a software renderer drawing into an RGBA image
type Raster struct {
	env     scene.Environment
	camera  *Camera
	frame   *frame
	mounted bool

	prims  map[int]*primitive
	nextID int

	caption string
	face    font.Face
}

// NewRaster creates an unmounted software renderer
func NewRaster() *Raster {
	return &Raster{
		prims: make(map[int]*primitive),
		face:  captionFace(),
	}
}

// captionFace loads Go Regular, falling back to the fixed bitmap face
func captionFace() font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    captionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Mount allocates the image and installs the environment
func (r *Raster) Mount(env scene.Environment) error {
	if env.Width <= 0 || env.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", env.Width, env.Height)
	}
	r.env = env
	r.camera = NewCamera(env.FOV, env.Near)
	r.frame = newFrame(env.Width, env.Height)
	r.mounted = true
	return nil
}

// Resize reallocates the surface; primitives are kept
func (r *Raster) Resize(width, height int) error {
	if !r.mounted {
		return scene.ErrNotMounted
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if width == r.env.Width && height == r.env.Height {
		return nil
	}
	r.env.Width, r.env.Height = width, height
	r.frame = newFrame(width, height)
	return nil
}

// rasterHandle releases one primitive
type rasterHandle struct {
	r  *Raster
	id int
}

func (h rasterHandle) Release() {
	delete(h.r.prims, h.id)
}

// Add tessellates and shades a placement
func (r *Raster) Add(p stand.Placement) (scene.Handle, error) {
	if !r.mounted {
		return nil, scene.ErrNotMounted
	}

	m := mesh.Build(p)
	prim := &primitive{
		id:          r.nextID,
		triangles:   make([]shadedTriangle, len(m.Triangles)),
		edges:       m.Edges,
		translucent: p.Translucent(),
	}
	for i, tri := range m.Triangles {
		prim.triangles[i] = shadedTriangle{tri: tri, color: r.env.Shade(tri.Normal, p.Color)}
	}

	r.prims[prim.id] = prim
	r.nextID++
	return rasterHandle{r: r, id: prim.id}, nil
}

// Live returns the number of primitives currently held
func (r *Raster) Live() int {
	return len(r.prims)
}

// SetCamera moves the camera
func (r *Raster) SetCamera(v orbit.View) {
	if r.camera == nil {
		return
	}
	r.camera.Look(v)
}

// SetCaption sets a line of text drawn in the top-left corner
func (r *Raster) SetCaption(text string) {
	r.caption = text
}

// Image returns the surface. It is redrawn in place by Render.
func (r *Raster) Image() *image.RGBA {
	if r.frame == nil {
		return nil
	}
	return r.frame.img
}

// Render draws the grid, opaque primitives, translucent primitives, edges and caption
func (r *Raster) Render() error {
	if !r.mounted {
		return scene.ErrNotMounted
	}
	r.frame.clear(r.env.Background)

	center, lines := r.env.Grid.GridLines()
	for _, l := range lines {
		r.segment(l[0], l[1], r.env.Grid.Lines)
	}
	for _, l := range center {
		r.segment(l[0], l[1], r.env.Grid.Center)
	}

	prims := r.ordered()
	for _, p := range prims {
		if !p.translucent {
			r.fill(p, true)
		}
	}
	for _, p := range prims {
		if p.translucent {
			r.fill(p, false)
		}
	}
	for _, p := range prims {
		for _, e := range p.edges {
			r.segment(e.A, e.B, edgeColor)
		}
	}

	if r.caption != "" {
		d := &font.Drawer{
			Dst:  r.frame.img,
			Src:  image.NewUniform(captionColor),
			Face: r.face,
			Dot:  fixed.P(8, 8+r.face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(r.caption)
	}
	return nil
}

// Unmount releases the surface and all primitives
func (r *Raster) Unmount() error {
	r.prims = make(map[int]*primitive)
	r.frame = nil
	r.mounted = false
	return nil
}

// EncodePNG writes the last rendered frame as PNG
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.frame == nil {
		return scene.ErrNotMounted
	}
	if err := png.Encode(w, r.frame.img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// ordered returns primitives in the order they were added
func (r *Raster) ordered() []*primitive {
	out := make([]*primitive, 0, len(r.prims))
	for _, p := range r.prims {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (r *Raster) fill(p *primitive, writeDepth bool) {
	w, h := float64(r.env.Width), float64(r.env.Height)
	for _, st := range p.triangles {
		t := st.tri
		if !r.camera.Facing(t.V1, t.Normal) {
			continue
		}
		if r.camera.Depth(t.V1) < r.camera.Near || r.camera.Depth(t.V2) < r.camera.Near || r.camera.Depth(t.V3) < r.camera.Near {
			continue
		}
		var v [3][3]float64
		for i, pt := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			v[i][0], v[i][1], v[i][2] = r.camera.Project(pt, w, h)
		}
		r.frame.fillTriangle(v, st.color, writeDepth)
	}
}

func (r *Raster) segment(a, b geometry.Vector3, col color.NRGBA) {
	a, b, ok := r.camera.ClipSegment(a, b)
	if !ok {
		return
	}
	w, h := float64(r.env.Width), float64(r.env.Height)
	x1, y1, z1 := r.camera.Project(a, w, h)
	x2, y2, z2 := r.camera.Project(b, w, h)

	for _, c := range [4]float64{x1 / w, x2 / w, y1 / h, y2 / h} {
		if c < -offscreenLimit || c > offscreenLimit {
			return
		}
	}
	r.frame.drawLine(int(x1), int(y1), z1, int(x2), int(y2), z2, col)
}
