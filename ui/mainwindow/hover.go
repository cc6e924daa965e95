package mainwindow

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// hoverButton is a button that reports pointer entry and exit in addition
// to taps. The editor uses the hover signal to suspend edge panning while
// the pointer sits over the control.
type hoverButton struct {
	widget.Button
	onHover func(over bool)
}

var _ desktop.Hoverable = (*hoverButton)(nil)

func newHoverButton(label string, onTapped func(), onHover func(over bool)) *hoverButton {
	b := &hoverButton{onHover: onHover}
	b.Text = label
	b.OnTapped = onTapped
	b.ExtendBaseWidget(b)
	return b
}

func (b *hoverButton) MouseIn(ev *desktop.MouseEvent) {
	b.Button.MouseIn(ev)
	if b.onHover != nil {
		b.onHover(true)
	}
}

func (b *hoverButton) MouseOut() {
	b.Button.MouseOut()
	if b.onHover != nil {
		b.onHover(false)
	}
}

// hoverRegion wraps an arbitrary container and reports pointer entry and
// exit for the whole region.
type hoverRegion struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onHover func(over bool)
}

var _ desktop.Hoverable = (*hoverRegion)(nil)

func newHoverRegion(content fyne.CanvasObject, onHover func(over bool)) *hoverRegion {
	r := &hoverRegion{content: content, onHover: onHover}
	r.ExtendBaseWidget(r)
	return r
}

func (r *hoverRegion) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(r.content))
}

func (r *hoverRegion) MouseIn(*desktop.MouseEvent) {
	if r.onHover != nil {
		r.onHover(true)
	}
}

func (r *hoverRegion) MouseMoved(*desktop.MouseEvent) {}

func (r *hoverRegion) MouseOut() {
	if r.onHover != nil {
		r.onHover(false)
	}
}
