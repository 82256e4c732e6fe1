package main

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"cellsociety/internal/core"
	"cellsociety/internal/grid"
	"cellsociety/internal/sims/fire"
)

type scenario struct {
	shape    grid.Shape
	topology grid.Topology
	catch    float64
	seed     int64
}

func (s scenario) String() string {
	return fmt.Sprintf("%s/%s catch=%.2f", s.shape, s.topology, s.catch)
}

type scenarioResult struct {
	scenario
	burned float64
	steps  int
	err    error
}

// summary aggregates every seed of one shape/topology/catch combination.
type summary struct {
	label      string
	catch      float64
	meanBurned float64
	meanSteps  float64
	runs       int
}

// runScenario lights the center of a full forest and reports the fraction of
// trees lost once the fire dies out or maxSteps pass.
func runScenario(s scenario, size, maxSteps int) scenarioResult {
	raw := make([][]grid.Record, size)
	for r := range raw {
		raw[r] = make([]grid.Record, size)
		for c := range raw[r] {
			raw[r][c] = grid.Record{State: int(fire.Tree)}
		}
	}
	raw[size/2][size/2].State = int(fire.Burning)

	opts := grid.DefaultOptions()
	opts.Shape, opts.Topology = s.shape, s.topology
	logic, err := core.New(core.KindFire, raw, opts, s.seed)
	if err != nil {
		return scenarioResult{scenario: s, err: err}
	}
	if err := logic.FromMap(map[string]string{"probCatch": strconv.FormatFloat(s.catch, 'f', -1, 64)}); err != nil {
		return scenarioResult{scenario: s, err: err}
	}
	sim := logic.(*fire.Fire)

	steps := 0
	for ; steps < maxSteps && !sim.BurnedOut(); steps++ {
		sim.Step()
	}
	trees := sim.Grid().Counts()[fire.Tree]
	total := size*size - 1
	return scenarioResult{
		scenario: s,
		burned:   1 - float64(trees)/float64(total),
		steps:    steps,
	}
}

// sweep evaluates every scenario on a pool of workers.
func sweep(sets []scenario, workers, size, maxSteps int) ([]scenarioResult, error) {
	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < max(workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- runScenario(s, size, maxSteps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sets {
			jobs <- s
		}
		close(jobs)
	}()

	var all []scenarioResult
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", res.scenario, res.err)
			}
			continue
		}
		all = append(all, res)
	}
	return all, firstErr
}

// summarize averages results over seeds, ordered by label then catch.
func summarize(all []scenarioResult) []summary {
	type key struct {
		label string
		catch float64
	}
	acc := map[key]*summary{}
	for _, res := range all {
		label := fmt.Sprintf("%s/%s", res.shape, res.topology)
		k := key{label, res.catch}
		s, ok := acc[k]
		if !ok {
			s = &summary{label: label, catch: res.catch}
			acc[k] = s
		}
		s.meanBurned += res.burned
		s.meanSteps += float64(res.steps)
		s.runs++
	}
	out := make([]summary, 0, len(acc))
	for _, s := range acc {
		s.meanBurned /= float64(s.runs)
		s.meanSteps /= float64(s.runs)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].label != out[j].label {
			return out[i].label < out[j].label
		}
		return out[i].catch < out[j].catch
	})
	return out
}
