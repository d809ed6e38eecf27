package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/standviz/pkg/scene"
	"github.com/philipparndt/standviz/pkg/stand"
	"github.com/philipparndt/standviz/pkg/viewer"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the stand in a fyne window with the software renderer",
	Args:  cobra.NoArgs,
	RunE:  runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

// guiWindow is the fyne window with the view and its parameter controls
type guiWindow struct {
	window  fyne.Window
	view    *viewer.StandView
	sliders map[stand.ParamID]*widget.Slider
	values  map[stand.ParamID]*widget.Label
	info    *widget.Label
}

func runGUI(cmd *cobra.Command, args []string) error {
	a := fyneapp.New()
	w := a.NewWindow(cfg.Window.Title)

	view, err := viewer.NewStandView(cfg.Params, cfg.Controller(), cfg.Environment(cfg.Window.Width, cfg.Window.Height))
	if err != nil {
		return fmt.Errorf("failed to create view: %w", err)
	}

	g := &guiWindow{
		window:  w,
		view:    view,
		sliders: make(map[stand.ParamID]*widget.Slider),
		values:  make(map[stand.ParamID]*widget.Label),
		info:    widget.NewLabel(""),
	}
	view.OnChange = g.update

	w.SetContent(container.NewBorder(nil, nil, nil, g.controls(), view))
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyHome {
			view.Handle(scene.ResetCamera{})
		}
	})
	w.SetOnClosed(view.Close)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	g.update(view.Session().Params())
	w.ShowAndRun()
	return nil
}

// controls builds the parameter panel
func (g *guiWindow) controls() fyne.CanvasObject {
	params := g.view.Session().Params()
	box := container.NewVBox(widget.NewLabel("Stand Parameters:"), widget.NewSeparator())

	for _, id := range stand.ParamIDs {
		r := stand.RangeOf(id)
		slider := widget.NewSlider(r.Min, r.Max)
		slider.Step = r.Step
		slider.Value = params.Get(id)
		slider.OnChanged = func(v float64) {
			g.view.Handle(scene.SetParam{ID: id, Value: v})
		}
		g.sliders[id] = slider
		g.values[id] = widget.NewLabel("")

		box.Add(container.NewBorder(nil, nil, widget.NewLabel(id.String()), g.values[id]))
		box.Add(slider)
	}

	check := widget.NewCheck("Show switch outline", func(show bool) {
		g.view.Handle(scene.ShowSwitch{Show: show})
	})
	check.Checked = params.ShowSwitch
	box.Add(check)

	box.Add(widget.NewSeparator())
	box.Add(widget.NewButton("Reset Camera", func() {
		g.view.Handle(scene.ResetCamera{})
	}))
	box.Add(widget.NewSeparator())
	box.Add(g.info)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Home resets the camera",
	)
	instructions.Wrapping = fyne.TextWrapWord
	box.Add(instructions)

	scroll := container.NewVScroll(box)
	scroll.SetMinSize(fyne.NewSize(300, 0))
	return scroll
}

// update refreshes the value labels and the dimensions
func (g *guiWindow) update(p stand.Params) {
	for id, label := range g.values {
		label.SetText(fmt.Sprintf("%.0f mm", p.Get(id)))
	}

	s := stand.Summarize(stand.Build(p))
	g.info.SetText(fmt.Sprintf(
		"Dimensions:\n  X: %.1f mm\n  Y: %.1f mm\n  Z: %.1f mm\n\nSeat height: %.1f mm\nPrimitives: %d",
		s.Dimensions.X, s.Dimensions.Y, s.Dimensions.Z, s.SeatHeight, s.Primitives,
	))
}
