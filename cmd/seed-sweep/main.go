package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"terragen/internal/app"
	"terragen/internal/terrain"
)

type seedResult struct {
	seed       int64
	land       float64
	continents int
	iterations int
	converged  bool
	err        error
}

func main() {
	count := flag.Int("count", 16, "number of seeds to generate")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	target := flag.Float64("land", 0.3, "land fraction to rank seeds against")
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	base := cfg.Terrain()
	// Each run gets one worker; the sweep parallelises across seeds.
	base.Workers = 1
	base.Drainage = false
	if err := base.Validate(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Sweeping %d seeds from %d (%d workers, dimension %d)\n", *count, base.Seed, *workers, base.Dimension)

	jobs := make(chan int64)
	results := make(chan seedResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runSeed(base, seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < *count; i++ {
			jobs <- base.Seed + int64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []seedResult
	for res := range results {
		if res.err != nil {
			log.Printf("seed %d: %v", res.seed, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		return distance(all[i].land, *target) < distance(all[j].land, *target)
	})
	fmt.Printf("\nResults closest to %.0f%% land (elapsed %s):\n", 100*(*target), time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) seed=%d land=%.1f%% continents=%d erosion=%d converged=%t\n",
			i+1, res.seed, 100*res.land, res.continents, res.iterations, res.converged)
	}
}

func runSeed(base terrain.Config, seed int64) seedResult {
	cfg := base
	cfg.Seed = seed
	out := seedResult{seed: seed}
	gen, err := terrain.NewGenerator(cfg)
	if err != nil {
		out.err = err
		return out
	}
	res, err := gen.Generate(context.Background())
	if err != nil {
		out.err = err
		return out
	}
	out.land = res.LandFraction()
	out.continents = res.Continents
	out.iterations = res.ErosionIterations
	out.converged = res.ErosionConverged
	return out
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
