// Command trajplot renders an exported trajectory file as a plot, one
// colored polyline per path with pose headings drawn as short ticks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"site-annotator/internal/editor"
	"site-annotator/internal/path"
	"site-annotator/pkg/colorutil"
)

func main() {
	inPath := flag.String("in", "trajectories.json", "Exported trajectory file")
	outPath := flag.String("out", "trajectories.png", "Output plot image")
	headingLen := flag.Float64("heading-len", 1.0, "Length of heading ticks in world units, 0 to disable")
	flag.Parse()

	res, err := readResult(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *inPath, err)
		os.Exit(1)
	}
	if len(res.Waypoints) == 0 {
		fmt.Fprintln(os.Stderr, "No trajectories to plot")
		os.Exit(1)
	}

	p := plot.New()
	p.Title.Text = "Exported trajectories"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	for i, wps := range res.Waypoints {
		xys := make(plotter.XYs, len(wps))
		for j, wp := range wps {
			xys[j] = plotter.XY{X: wp.X, Y: wp.Y}
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Path %d: %v\n", i, err)
			os.Exit(1)
		}
		c := colorutil.PathColor(i)
		line.Color = c
		points.Color = c
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("path %d", i), line)

		if *headingLen > 0 && i < len(res.RefPoses) {
			addHeadingTicks(p, res.RefPoses[i], *headingLen, i)
		}
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save plot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Plotted %d path(s) to %s\n", len(res.Waypoints), *outPath)
	if len(res.Skipped) > 0 {
		fmt.Printf("Note: export had skipped %d path(s)\n", len(res.Skipped))
	}
}

func readResult(filePath string) (*editor.Result, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var res editor.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// addHeadingTicks draws a short segment at each pose pointing along its
// heading. Headings are degrees counterclockwise from east.
func addHeadingTicks(p *plot.Plot, poses []path.Pose, length float64, pathIndex int) {
	c := colorutil.PathColor(pathIndex)
	c.A = 128
	for _, pose := range poses {
		rad := pose.Heading * math.Pi / 180
		tick, err := plotter.NewLine(plotter.XYs{
			{X: pose.X, Y: pose.Y},
			{X: pose.X + length*math.Cos(rad), Y: pose.Y + length*math.Sin(rad)},
		})
		if err != nil {
			continue
		}
		tick.Color = c
		p.Add(tick)
	}
}
