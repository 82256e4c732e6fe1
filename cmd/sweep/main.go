// Command sweep measures how far a fire spreads across catch probabilities,
// neighborhoods and seeds.
package main

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"cellsociety/internal/grid"
)

func main() {
	size := 41
	steps := 500
	seeds := 8
	workers := runtime.NumCPU()
	from, to, by := 0.1, 0.9, 0.1
	threshold := 0.5
	noColor := false

	flaggy.SetName("sweep")
	flaggy.SetDescription("Sweeps the fire catch probability and reports the mean burned fraction.")
	flaggy.Int(&size, "", "size", "side length of the square forest")
	flaggy.Int(&steps, "n", "steps", "maximum ticks per run")
	flaggy.Int(&seeds, "", "seeds", "runs per parameter set")
	flaggy.Int(&workers, "w", "workers", "number of worker goroutines")
	flaggy.Float64(&from, "", "from", "first catch probability")
	flaggy.Float64(&to, "", "to", "last catch probability")
	flaggy.Float64(&by, "", "by", "catch probability increment")
	flaggy.Float64(&threshold, "", "threshold", "burned fraction highlighted as a spanning fire")
	flaggy.Bool(&noColor, "", "no-color", "disable colored output")
	flaggy.Parse()

	if size < 3 || seeds < 1 || by <= 0 || from > to {
		flaggy.ShowHelpAndExit("invalid sweep range")
	}

	neighborhoods := []struct {
		shape    grid.Shape
		topology grid.Topology
	}{
		{grid.Square, grid.VonNeumann},
		{grid.Square, grid.Moore},
		{grid.Hex, grid.Moore},
		{grid.Tri, grid.Moore},
	}
	var sets []scenario
	for _, n := range neighborhoods {
		for i := 0; from+float64(i)*by <= to+1e-9; i++ {
			for seed := 1; seed <= seeds; seed++ {
				sets = append(sets, scenario{
					shape:    n.shape,
					topology: n.topology,
					catch:    from + float64(i)*by,
					seed:     int64(seed),
				})
			}
		}
	}

	fmt.Printf("Sweeping %d runs (%d workers, %dx%d forest, %d steps)\n", len(sets), workers, size, size, steps)
	start := time.Now()
	all, err := sweep(sets, workers, size, steps)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	au := aurora.NewAurora(!noColor)
	current := ""
	for _, s := range summarize(all) {
		if s.label != current {
			current = s.label
			fmt.Printf("\n%s\n", au.Bold(current))
		}
		line := fmt.Sprintf("  catch=%.2f burned=%.3f steps=%.1f", s.catch, s.meanBurned, s.meanSteps)
		if s.meanBurned >= threshold {
			fmt.Println(au.Colorize(line, aurora.RedFg))
			continue
		}
		fmt.Println(au.Faint(line))
	}
	fmt.Printf("\nelapsed %s\n", time.Since(start).Round(time.Millisecond))
}
