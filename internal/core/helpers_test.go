package core

import "cellsociety/internal/grid"

func grid0() grid.StateSet {
	return grid.StateSet{Names: []string{"off", "on"}}
}

func defaultOpts() grid.Options { return grid.DefaultOptions() }
