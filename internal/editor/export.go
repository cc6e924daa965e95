package editor

import (
	"site-annotator/internal/path"
	"site-annotator/pkg/geometry"
)

// SkippedPath reports a committed path excluded from an export, keyed by
// its draw-order index.
type SkippedPath struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result is the export payload handed to the trajectory consumer:
// parallel collections of raw waypoints and derived poses, ordered by
// draw-order index. RefPoses[i] always has the same length as
// Waypoints[i].
type Result struct {
	Waypoints [][]geometry.Point2D `json:"waypoints"`
	RefPoses  [][]path.Pose        `json:"ref_poses"`
	Skipped   []SkippedPath        `json:"skipped,omitempty"`
}

// Consumer receives export results. The editor core hands results off and
// persists nothing itself; simulation or trajectory planning lives behind
// this interface.
type Consumer interface {
	Consume(*Result) error
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(*Result) error

// Consume implements Consumer.
func (f ConsumerFunc) Consume(r *Result) error {
	return f(r)
}

// BuildResult derives the export payload from committed paths. Each path
// is re-deduplicated defensively before pose derivation; paths that still
// fail (degenerate or too short) are excluded and reported rather than
// aborting the whole export.
func BuildResult(paths []*path.Path) *Result {
	res := &Result{}
	for i, p := range paths {
		cleaned, err := p.Commit()
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedPath{Index: i, Reason: err.Error()})
			continue
		}
		poses, err := cleaned.Poses()
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedPath{Index: i, Reason: err.Error()})
			continue
		}
		res.Waypoints = append(res.Waypoints, cleaned.Points())
		res.RefPoses = append(res.RefPoses, poses)
	}
	return res
}
