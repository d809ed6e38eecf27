package viewer

import (
	"image"
	"image/color"
	"math"
)

// depthBias keeps edge lines visible on the faces they outline
const depthBias = 0.5

// frame is a color buffer with a depth buffer
type frame struct {
	img   *image.RGBA
	depth []float64
}

func newFrame(width, height int) *frame {
	return &frame{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
}

func (f *frame) clear(bg color.NRGBA) {
	c := color.RGBAModel.Convert(bg).(color.RGBA)
	pix := f.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
}

// blend mixes col into the pixel at (x, y) using col's alpha
func (f *frame) blend(x, y int, col color.NRGBA) {
	if col.A == 0xFF {
		f.img.SetRGBA(x, y, color.RGBA{R: col.R, G: col.G, B: col.B, A: 0xFF})
		return
	}
	i := f.img.PixOffset(x, y)
	a := float64(col.A) / 255
	mix := func(dst uint8, src uint8) uint8 {
		return uint8(math.Round(float64(src)*a + float64(dst)*(1-a)))
	}
	p := f.img.Pix
	p[i+0] = mix(p[i+0], col.R)
	p[i+1] = mix(p[i+1], col.G)
	p[i+2] = mix(p[i+2], col.B)
	p[i+3] = 0xFF
}

// plot draws a pixel with depth testing; opaque pixels write depth
func (f *frame) plot(x, y int, z float64, col color.NRGBA, writeDepth bool, bias float64) {
	b := f.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	idx := y*b.Dx() + x
	if z-bias >= f.depth[idx] {
		return
	}
	if writeDepth {
		f.depth[idx] = z
	}
	f.blend(x, y, col)
}

// fillTriangle fills a triangle with depth testing using a scanline algorithm
func (f *frame) fillTriangle(v [3][3]float64, col color.NRGBA, writeDepth bool) {
	// Sort vertices by Y coordinate (top to bottom)
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1][1] > v[2][1] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}

	x1, y1, z1 := v[0][0], v[0][1], v[0][2]
	x2, y2, z2 := v[1][0], v[1][1], v[1][2]
	x3, y3, z3 := v[2][0], v[2][1], v[2][2]

	bounds := f.img.Bounds()
	yStart := int(math.Max(0, math.Ceil(y1)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), math.Floor(y3)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// Long edge 1-3 always spans the scanline
		if y3 == y1 {
			continue
		}
		t := (fy - y1) / (y3 - y1)
		xa, za := x1+t*(x3-x1), z1+t*(z3-z1)

		// Short edge: 1-2 in the upper half, 2-3 in the lower half
		var xb, zb float64
		if fy < y2 && y2 != y1 {
			t = (fy - y1) / (y2 - y1)
			xb, zb = x1+t*(x2-x1), z1+t*(z2-z1)
		} else if y3 != y2 {
			t = (fy - y2) / (y3 - y2)
			xb, zb = x2+t*(x3-x2), z2+t*(z3-z2)
		} else {
			xb, zb = x2, z2
		}

		if xa > xb {
			xa, xb = xb, xa
			za, zb = zb, za
		}

		xStart := int(math.Max(0, math.Ceil(xa)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), math.Floor(xb)))
		for x := xStart; x <= xEnd; x++ {
			s := 0.0
			if xb != xa {
				s = (float64(x) - xa) / (xb - xa)
			}
			f.plot(x, y, za+s*(zb-za), col, writeDepth, 0)
		}
	}
}

// drawLine draws a depth-tested line using Bresenham's algorithm
func (f *frame) drawLine(x1, y1 int, z1 float64, x2, y2 int, z2 float64, col color.NRGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	steps := math.Max(float64(dx), float64(dy))
	x, y := x1, y1
	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / steps
		}
		f.plot(x, y, z1+t*(z2-z1), col, false, depthBias)

		if x == x2 && y == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
