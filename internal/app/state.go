// Package app provides application lifecycle management, shared state, and events.
package app

import (
	"fmt"
	"sync"

	"site-annotator/internal/scene"
)

// EventType identifies different application events.
type EventType int

const (
	EventSceneLoaded EventType = iota
	EventPathsChanged
	EventExported
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the open scene document and the event
// bus the UI panels subscribe to. The document itself is mutated only on
// the UI thread; the mutex guards the fields touched from background
// goroutines (hot reload ticks).
type State struct {
	mu sync.RWMutex

	// Scene
	SceneID  string
	Doc      *scene.Document
	Modified bool

	listeners map[EventType][]EventListener
}

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the session as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// OpenScene resolves a scene id through the registry and replaces the
// current document. Any previously drawn paths are gone with the old
// document.
func (s *State) OpenScene(reg *scene.Registry, id string) error {
	src, err := reg.Resolve(id)
	if err != nil {
		return err
	}
	doc, err := scene.Open(src)
	if err != nil {
		return fmt.Errorf("scene %q: %w", id, err)
	}

	s.mu.Lock()
	s.SceneID = id
	s.Doc = doc
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSceneLoaded, id)
	return nil
}

// SetDocument installs a document built directly from an image and
// reference pair, bypassing the registry.
func (s *State) SetDocument(id string, doc *scene.Document) {
	s.mu.Lock()
	s.SceneID = id
	s.Doc = doc
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSceneLoaded, id)
}

// NotifyPathsChanged emits a paths-changed event and marks the session
// modified.
func (s *State) NotifyPathsChanged() {
	s.Emit(EventPathsChanged, nil)
	s.SetModified(true)
}
