package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"terragen/internal/app"
	"terragen/internal/core"
	"terragen/internal/render"
	"terragen/internal/server"
	"terragen/internal/terrain"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	tc := cfg.Terrain()
	if cfg.Params {
		fmt.Print(tc.Parameters().String())
		return
	}

	gen, err := terrain.NewGenerator(tc)
	if err != nil {
		log.Fatal(err)
	}
	gen.SetProgress(func(ev core.Event) {
		if ev.Done {
			log.Printf("%s: done in %s", ev.Phase, ev.Elapsed.Round(time.Millisecond))
			return
		}
		log.Printf("%s: %d/%d (eta %s)", ev.Phase, ev.Step, ev.Total, ev.ETA.Round(time.Second))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := gen.Generate(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		log.Fatal(err)
	}
	for _, name := range cfg.LayerNames() {
		if err := writeLayer(filepath.Join(cfg.Out, name+".png"), name, res); err != nil {
			log.Fatal(err)
		}
	}
	summary, err := json.MarshalIndent(server.Summarize(res), "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Out, "summary.json"), summary, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("seed %d: %d continents, %.1f%% land, written to %s",
		res.Seed, res.Continents, 100*res.LandFraction(), cfg.Out)
}

func writeLayer(path, name string, res *terrain.Result) error {
	img, err := render.Image(name, res)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
