package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"site-annotator/internal/app"
)

// PathsPanel lists committed paths in draw order and lets the user delete
// one.
type PathsPanel struct {
	state *app.State

	list     *widget.List
	selected int

	content fyne.CanvasObject

	// OnDeleted is invoked after a path is removed so the canvas can
	// redraw.
	OnDeleted func()
}

// NewPathsPanel creates the paths list panel.
func NewPathsPanel(state *app.State) *PathsPanel {
	p := &PathsPanel{
		state:    state,
		selected: -1,
	}

	p.list = widget.NewList(
		func() int {
			if state.Doc == nil {
				return 0
			}
			return state.Doc.PathCount()
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("path")
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if state.Doc == nil || i >= state.Doc.PathCount() {
				return
			}
			n := state.Doc.Paths()[i].Len()
			obj.(*widget.Label).SetText(fmt.Sprintf("Path %d — %d waypoints", i, n))
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) {
		p.selected = i
	}
	p.list.OnUnselected = func(widget.ListItemID) {
		p.selected = -1
	}

	deleteBtn := widget.NewButton("Delete Selected", func() {
		p.deleteSelected()
	})

	p.content = container.NewBorder(nil, deleteBtn, nil, nil, p.list)

	state.On(app.EventPathsChanged, func(interface{}) {
		p.list.Refresh()
	})
	state.On(app.EventSceneLoaded, func(interface{}) {
		p.selected = -1
		p.list.UnselectAll()
		p.list.Refresh()
	})

	return p
}

// Container returns the panel content.
func (p *PathsPanel) Container() fyne.CanvasObject {
	return p.content
}

func (p *PathsPanel) deleteSelected() {
	if p.state.Doc == nil || p.selected < 0 || p.selected >= p.state.Doc.PathCount() {
		return
	}
	p.state.Doc.RemovePath(p.selected)
	p.selected = -1
	p.list.UnselectAll()
	p.state.NotifyPathsChanged()
	if p.OnDeleted != nil {
		p.OnDeleted()
	}
}
