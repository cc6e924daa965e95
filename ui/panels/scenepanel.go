package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"site-annotator/internal/app"
)

// ScenePanel shows the georeference of the open scene.
type ScenePanel struct {
	state *app.State

	name   *widget.Label
	pixels *widget.Label
	extent *widget.Label

	content fyne.CanvasObject
}

// NewScenePanel creates the scene info panel and subscribes it to scene
// load events.
func NewScenePanel(state *app.State) *ScenePanel {
	p := &ScenePanel{
		state:  state,
		name:   widget.NewLabel("No scene loaded"),
		pixels: widget.NewLabel(""),
		extent: widget.NewLabel(""),
	}
	p.name.TextStyle = fyne.TextStyle{Bold: true}

	p.content = container.NewVBox(
		p.name,
		widget.NewSeparator(),
		widget.NewLabel("Image:"),
		p.pixels,
		widget.NewLabel("World extent (m):"),
		p.extent,
	)

	state.On(app.EventSceneLoaded, func(interface{}) {
		p.update()
	})
	p.update()

	return p
}

// Container returns the panel content.
func (p *ScenePanel) Container() fyne.CanvasObject {
	return p.content
}

func (p *ScenePanel) update() {
	doc := p.state.Doc
	if doc == nil {
		p.name.SetText("No scene loaded")
		p.pixels.SetText("")
		p.extent.SetText("")
		return
	}

	p.name.SetText(p.state.SceneID)
	p.pixels.SetText(fmt.Sprintf("%d x %d px", doc.Ref.PixelWidth, doc.Ref.PixelHeight))
	p.extent.SetText(fmt.Sprintf("X: %.1f .. %.1f\nY: %.1f .. %.1f",
		doc.Ref.WorldXMin, doc.Ref.WorldXMax, doc.Ref.WorldYMin, doc.Ref.WorldYMax))
}
