// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"site-annotator/internal/app"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	scenePanel *ScenePanel
	pathsPanel *PathsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{
		state: state,
	}

	sp.scenePanel = NewScenePanel(state)
	sp.pathsPanel = NewPathsPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Scene", sp.scenePanel.Container()),
		container.NewTabItem("Paths", sp.pathsPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// Paths returns the paths panel.
func (sp *SidePanel) Paths() *PathsPanel {
	return sp.pathsPanel
}
