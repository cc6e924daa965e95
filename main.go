// Site Annotator draws waypoint paths over georeferenced site imagery and
// exports them, with derived reference poses, for trajectory planning.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	appstate "site-annotator/internal/app"
	"site-annotator/internal/editor"
	"site-annotator/internal/scene"
	"site-annotator/internal/version"
	"site-annotator/ui/mainwindow"
	"site-annotator/ui/prefs"
)

func main() {
	var (
		scenesPath  = flag.String("scenes", "", "path to a scene index JSON file")
		sceneID     = flag.String("scene", "", "scene id to open from the index")
		imagePath   = flag.String("image", "", "open a single site image directly")
		refPath     = flag.String("ref", "", "georeference JSON for -image")
		outPath     = flag.String("out", "trajectories.json", "file the export result is written to")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("site-annotator %s (built %s, commit %s)\n",
			version.Version, version.BuildTime, version.GitCommit)
		return
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Site Annotator %s starting", version.Version)

	fyneApp := app.NewWithID("io.siteannotator")
	fyneApp.Settings().SetTheme(&appstate.AnnotatorTheme{})

	state := appstate.NewState()
	appPrefs := prefs.Load()
	consumer := fileConsumer(*outPath)

	mw := mainwindow.New(fyneApp, state, appPrefs, consumer)

	switch {
	case *imagePath != "":
		if *refPath == "" {
			log.Fatal("-image requires -ref")
		}
		doc, err := openDirect(*imagePath, *refPath)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *imagePath, err)
		}
		state.SetDocument(*imagePath, doc)
	case *scenesPath != "":
		if err := mw.OpenRegistry(*scenesPath, *sceneID); err != nil {
			log.Fatalf("Failed to open scene index %s: %v", *scenesPath, err)
		}
	}

	if hr := appstate.NewHotReloader(2 * time.Second); hr != nil {
		hr.OnNewBinary(func() {
			dialog.ShowConfirm("New Build Detected",
				"A newer binary was found. Restart now?",
				func(restart bool) {
					if !restart {
						hr.ResetBaseline()
						hr.Start()
						return
					}
					mw.SavePreferences()
					if err := hr.Restart(); err != nil {
						log.Printf("Restart failed: %v", err)
					}
				}, mw.Window)
		})
		hr.Start()
		defer hr.Stop()
	}

	mw.ShowAndRun()
}

// openDirect builds a document from an image and reference pair without a
// scene index.
func openDirect(imagePath, refPath string) (*scene.Document, error) {
	img, err := scene.LoadImage(imagePath)
	if err != nil {
		return nil, err
	}
	ref, err := scene.LoadReference(refPath)
	if err != nil {
		return nil, err
	}
	return scene.NewDocument(img, ref)
}

// fileConsumer writes export results to a JSON file.
func fileConsumer(path string) editor.Consumer {
	return editor.ConsumerFunc(func(res *editor.Result) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()

		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Printf("Wrote %d trajectories to %s", len(res.Waypoints), path)
		return nil
	})
}
