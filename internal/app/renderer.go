package app

import (
	"fmt"
	"image/color"
	"maps"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/standviz/pkg/geometry"
	"github.com/philipparndt/standviz/pkg/mesh"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
)

// Compile-time interface check
var _ scene.Renderer = (*Renderer)(nil)

var edgeColor = rl.NewColor(0, 0, 0, 38) // black at 15%

// meshData holds the CPU-side vertex arrays of one placement
type meshData struct {
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8
	triangles int
}

// bakeMesh converts triangles to vertex arrays with lighting baked into the colors
func bakeMesh(tris []geometry.Triangle, env scene.Environment, base color.NRGBA) meshData {
	vertexCount := len(tris) * 3
	d := meshData{
		vertices:  make([]float32, vertexCount*3),
		normals:   make([]float32, vertexCount*3),
		texcoords: make([]float32, vertexCount*2),
		colors:    make([]uint8, vertexCount*4),
		triangles: len(tris),
	}

	idx := 0
	for _, tri := range tris {
		shaded := env.Shade(tri.Normal, base)
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			d.vertices[idx*3+0] = float32(v.X)
			d.vertices[idx*3+1] = float32(v.Y)
			d.vertices[idx*3+2] = float32(v.Z)
			d.normals[idx*3+0] = float32(tri.Normal.X)
			d.normals[idx*3+1] = float32(tri.Normal.Y)
			d.normals[idx*3+2] = float32(tri.Normal.Z)
			d.colors[idx*4+0] = shaded.R
			d.colors[idx*4+1] = shaded.G
			d.colors[idx*4+2] = shaded.B
			d.colors[idx*4+3] = shaded.A
			idx++
		}
	}
	return d
}

// gpuMesh is an uploaded placement. The arrays stay referenced while the mesh is live.
type gpuMesh struct {
	id          int
	mesh        rl.Mesh
	data        meshData
	edges       []mesh.Segment
	translucent bool
}

// Renderer draws the stand into the raylib window
type Renderer struct {
	env      scene.Environment
	camera   rl.Camera3D
	material rl.Material
	mounted  bool
	inFrame  bool

	meshes map[int]*gpuMesh
	nextID int
}

// NewRenderer creates an unmounted renderer. The window must be open before Mount.
func NewRenderer() *Renderer {
	return &Renderer{meshes: make(map[int]*gpuMesh)}
}

// Mount loads the shared material and installs the environment
func (r *Renderer) Mount(env scene.Environment) error {
	if !rl.IsWindowReady() {
		return fmt.Errorf("window not initialized")
	}
	r.env = env
	r.camera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       float32(env.FOV),
		Projection: rl.CameraPerspective,
	}
	rl.SetClipPlanes(clipPlanes(env))
	// Vertex colors are baked into the meshes, the default material uses them
	r.material = rl.LoadMaterialDefault()
	r.mounted = true
	return nil
}

// raylib's default depth range (RL_CULL_DISTANCE_NEAR/FAR)
const (
	defaultNear = 0.01
	defaultFar  = 1000.0
)

// clipPlanes returns the environment's depth range, or raylib's defaults when it is unset
func clipPlanes(env scene.Environment) (near, far float64) {
	if env.Near <= 0 || env.Far <= env.Near {
		return defaultNear, defaultFar
	}
	return env.Near, env.Far
}

// meshHandle unloads one uploaded mesh
type meshHandle struct {
	r  *Renderer
	id int
}

func (h meshHandle) Release() {
	m, ok := h.r.meshes[h.id]
	if !ok {
		return
	}
	rl.UnloadMesh(&m.mesh)
	delete(h.r.meshes, h.id)
}

// Add bakes and uploads the mesh of a placement
func (r *Renderer) Add(p stand.Placement) (scene.Handle, error) {
	if !r.mounted {
		return nil, scene.ErrNotMounted
	}

	m := mesh.Build(p)
	if len(m.Triangles) == 0 {
		return nil, fmt.Errorf("empty mesh for %s", p.Part)
	}
	g := &gpuMesh{
		id:          r.nextID,
		data:        bakeMesh(m.Triangles, r.env, p.Color),
		edges:       m.Edges,
		translucent: p.Translucent(),
	}
	g.mesh = rl.Mesh{
		VertexCount:   int32(g.data.triangles * 3),
		TriangleCount: int32(g.data.triangles),
		Vertices:      &g.data.vertices[0],
		Normals:       &g.data.normals[0],
		Texcoords:     &g.data.texcoords[0],
		Colors:        &g.data.colors[0],
	}
	rl.UploadMesh(&g.mesh, false)

	r.meshes[g.id] = g
	r.nextID++
	return meshHandle{r: r, id: g.id}, nil
}

// Live returns the number of uploaded meshes
func (r *Renderer) Live() int {
	return len(r.meshes)
}

// SetCamera moves the camera
func (r *Renderer) SetCamera(v orbit.View) {
	r.camera.Position = toRaylib(v.Position)
	r.camera.Target = toRaylib(v.Target)
}

// Background returns the clear color of the mounted environment
func (r *Renderer) Background() rl.Color {
	return toColor(r.env.Background)
}

// Frame runs draw with Render enabled. Render calls outside a frame only
// record that the scene changed; the window loop redraws every frame.
func (r *Renderer) Frame(draw func()) {
	r.inFrame = true
	defer func() { r.inFrame = false }()
	draw()
}

// Render draws the grid, opaque meshes, translucent meshes and edges
func (r *Renderer) Render() error {
	if !r.mounted {
		return scene.ErrNotMounted
	}
	if !r.inFrame {
		return nil
	}

	rl.BeginMode3D(r.camera)
	defer rl.EndMode3D()

	center, lines := r.env.Grid.GridLines()
	for _, l := range lines {
		rl.DrawLine3D(toRaylib(l[0]), toRaylib(l[1]), toColor(r.env.Grid.Lines))
	}
	for _, l := range center {
		rl.DrawLine3D(toRaylib(l[0]), toRaylib(l[1]), toColor(r.env.Grid.Center))
	}

	ordered := r.ordered()
	for _, g := range ordered {
		if !g.translucent {
			rl.DrawMesh(g.mesh, r.material, rl.MatrixIdentity())
		}
	}

	rl.DisableDepthMask()
	for _, g := range ordered {
		if g.translucent {
			rl.DrawMesh(g.mesh, r.material, rl.MatrixIdentity())
		}
	}
	rl.EnableDepthMask()

	for _, g := range ordered {
		for _, e := range g.edges {
			rl.DrawLine3D(toRaylib(e.A), toRaylib(e.B), edgeColor)
		}
	}
	return nil
}

// Unmount unloads every mesh and the material
func (r *Renderer) Unmount() error {
	for _, g := range r.meshes {
		rl.UnloadMesh(&g.mesh)
	}
	r.meshes = make(map[int]*gpuMesh)
	if r.mounted {
		rl.UnloadMaterial(r.material)
	}
	r.mounted = false
	return nil
}

// ordered returns meshes in the order they were added
func (r *Renderer) ordered() []*gpuMesh {
	out := make([]*gpuMesh, 0, len(r.meshes))
	for _, id := range slices.Sorted(maps.Keys(r.meshes)) {
		out = append(out, r.meshes[id])
	}
	return out
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
