package main

import (
	"io"
	"log"
	"os"

	"github.com/integrii/flaggy"

	"cellsociety/internal/app"
	"cellsociety/internal/core"
	"cellsociety/internal/grid"
	_ "cellsociety/internal/sims/ant"
	_ "cellsociety/internal/sims/bacteria"
	_ "cellsociety/internal/sims/darwin"
	_ "cellsociety/internal/sims/fallingsand"
	_ "cellsociety/internal/sims/fire"
	_ "cellsociety/internal/sims/life"
	_ "cellsociety/internal/sims/percolation"
	_ "cellsociety/internal/sims/segregation"
	_ "cellsociety/internal/sims/sugarscape"
	_ "cellsociety/internal/sims/wator"
)

// setup parses the command line and builds the configured rule.
func setup() (app.Config, core.Logic, [][]grid.Record) {
	cfg := app.NewConfig()
	flaggy.SetName("ca")
	flaggy.SetDescription("Runs grid-based cellular automata and agent simulations.")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	cfg.Bind(flaggy.DefaultParser)
	flaggy.Parse()

	var src io.Reader
	if cfg.Layout != "" {
		f, err := os.Open(cfg.Layout)
		if err != nil {
			log.Fatalf("open layout: %v", err)
		}
		defer f.Close()
		src = f
	}
	logic, initial, err := cfg.Build(src)
	if err != nil {
		log.Fatalf("build: %v", err)
	}
	return cfg, logic, initial
}
