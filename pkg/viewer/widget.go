package viewer

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/standviz/pkg/orbit"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
)

// ScrollScale converts fyne scroll units to the wheel delta the camera expects
const ScrollScale = 10.0

// Compile-time interface checks
var (
	_ fyne.Widget       = (*StandView)(nil)
	_ fyne.Draggable    = (*StandView)(nil)
	_ fyne.Scrollable   = (*StandView)(nil)
	_ desktop.Mouseable = (*StandView)(nil)
	_ desktop.Hoverable = (*StandView)(nil)
)

// StandView is a fyne widget showing the stand rendered by a Raster
type StandView struct {
	widget.BaseWidget

	raster  *Raster
	session *scene.Session
	image   *canvas.Image
	log     *slog.Logger

	// OnChange is called after parameters change, e.g. to update labels
	OnChange func(stand.Params)
}

// NewStandView mounts a software-rendered session for the given parameters
func NewStandView(params stand.Params, camera *orbit.Controller, env scene.Environment) (*StandView, error) {
	r := NewRaster()
	v := &StandView{
		raster:  r,
		session: scene.NewSession(r, camera, params, env),
		log:     slog.Default().With("component", "view"),
	}
	v.session.OnChange = func(p stand.Params) {
		r.SetCaption(p.String())
	}
	r.SetCaption(v.session.Params().String())
	if err := v.session.Mount(); err != nil {
		return nil, err
	}

	v.image = canvas.NewImageFromImage(r.Image())
	v.image.FillMode = canvas.ImageFillStretch
	v.image.ScaleMode = canvas.ImageScaleFastest
	v.ExtendBaseWidget(v)
	return v, nil
}

// Session returns the scene session driving this view
func (v *StandView) Session() *scene.Session {
	return v.session
}

// Handle forwards a message to the session and refreshes the image
func (v *StandView) Handle(msg scene.Message) {
	before := v.session.Params()
	if err := v.session.Handle(msg); err != nil {
		v.log.Error("failed to handle message", "message", msg, "error", err)
		return
	}

	if after := v.session.Params(); after != before && v.OnChange != nil {
		v.OnChange(after)
	}
	// Resize and remount replace the surface
	v.image.Image = v.raster.Image()
	v.image.Refresh()
}

// Close unmounts the session and frees the surface
func (v *StandView) Close() {
	if err := v.session.Unmount(); err != nil {
		v.log.Warn("failed to unmount", "error", err)
	}
}

// CreateRenderer creates the renderer for the widget
func (v *StandView) CreateRenderer() fyne.WidgetRenderer {
	return &standViewRenderer{view: v}
}

// MouseDown starts an orbit drag
func (v *StandView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	v.Handle(orbit.Down(float64(ev.Position.X), float64(ev.Position.Y)))
}

// MouseUp ends an orbit drag
func (v *StandView) MouseUp(*desktop.MouseEvent) {
	v.Handle(orbit.Up())
}

// MouseIn is required by desktop.Hoverable
func (v *StandView) MouseIn(*desktop.MouseEvent) {}

// MouseMoved rotates the camera while dragging
func (v *StandView) MouseMoved(ev *desktop.MouseEvent) {
	v.Handle(orbit.Move(float64(ev.Position.X), float64(ev.Position.Y)))
}

// MouseOut ends a drag when the pointer leaves the view
func (v *StandView) MouseOut() {
	v.Handle(orbit.Leave())
}

// Dragged rotates the camera. Drivers without mouse events start the drag here.
func (v *StandView) Dragged(ev *fyne.DragEvent) {
	if v.session.Camera().State() == orbit.Idle {
		v.Handle(orbit.Down(float64(ev.Position.X-ev.Dragged.DX), float64(ev.Position.Y-ev.Dragged.DY)))
	}
	v.Handle(orbit.Move(float64(ev.Position.X), float64(ev.Position.Y)))
}

// DragEnd ends the drag
func (v *StandView) DragEnd() {
	v.Handle(orbit.Up())
}

// Scrolled zooms; scrolling up moves closer
func (v *StandView) Scrolled(ev *fyne.ScrollEvent) {
	v.Handle(orbit.Wheel(-float64(ev.Scrolled.DY) * ScrollScale))
}

// standViewRenderer implements fyne.WidgetRenderer
type standViewRenderer struct {
	view *StandView
}

func (r *standViewRenderer) Layout(size fyne.Size) {
	v := r.view
	v.image.Resize(size)

	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if err := v.session.Handle(scene.Resize{Width: w, Height: h}); err != nil {
		v.log.Error("failed to resize surface", "error", err)
		return
	}
	v.image.Image = v.raster.Image()
	v.image.Refresh()
}

func (r *standViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *standViewRenderer) Refresh() {
	canvas.Refresh(r.view.image)
}

func (r *standViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.image}
}

func (r *standViewRenderer) Destroy() {}
