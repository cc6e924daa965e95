package editor

import (
	"site-annotator/internal/path"
	"site-annotator/internal/scene"
	"site-annotator/pkg/geometry"
)

// SessionState identifies where an in-progress polyline stands.
type SessionState int

const (
	// Idle means no polyline is being drawn.
	Idle SessionState = iota
	// Drawing means a polyline is accumulating waypoints.
	Drawing
	// Committed is the outcome of finishing a polyline with at least two
	// waypoints: it was cleaned and added to the document.
	Committed
	// Discarded is the outcome of finishing with too few waypoints; the
	// polyline is dropped silently.
	Discarded
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Committed:
		return "committed"
	case Discarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// Session is the state machine for one in-progress polyline. A session
// starts on pointer-down inside the image extent, appends a waypoint per
// click, and finishes on double-click or right-click. Only one polyline
// can be in flight: Drawing is entered from Idle only.
type Session struct {
	doc    *scene.Document
	state  SessionState
	active *path.Path
}

// NewSession creates an idle session bound to a document.
func NewSession(doc *scene.Document) *Session {
	return &Session{doc: doc, state: Idle}
}

// State returns the current session state. After a finish the session is
// Idle again; the finish outcome is returned by Finish itself.
func (s *Session) State() SessionState {
	return s.state
}

// Active returns the in-progress path, or nil.
func (s *Session) Active() *path.Path {
	return s.active
}

// PointerDown starts a new polyline seeded at the given world point.
// Returns false when a polyline is already in flight or the point lies
// outside the image's world extent.
func (s *Session) PointerDown(pt geometry.Point2D) bool {
	if s.state != Idle {
		return false
	}
	if !s.doc.Ref.ContainsWorld(pt) {
		return false
	}

	s.active = path.FromPoints(pt)
	s.doc.InProgress = s.active
	s.state = Drawing
	return true
}

// AddPoint appends a waypoint to the in-progress polyline.
func (s *Session) AddPoint(pt geometry.Point2D) bool {
	if s.state != Drawing {
		return false
	}
	s.active.Append(pt)
	return true
}

// Finish terminates the in-progress polyline. With at least two waypoints
// the cleaned path is committed into the document and returned; otherwise
// the polyline is discarded without error (a stray single click produces
// no path). Either way the session returns to Idle.
func (s *Session) Finish() (SessionState, *path.Path) {
	if s.state != Drawing {
		return s.state, nil
	}

	active := s.active
	s.active = nil
	s.doc.InProgress = nil
	s.state = Idle

	cleaned, err := active.Commit()
	if err != nil {
		return Discarded, nil
	}
	s.doc.AppendPath(cleaned)
	return Committed, cleaned
}
