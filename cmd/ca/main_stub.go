//go:build !ebiten

package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"cellsociety/internal/app"
)

// Without the ebiten tag the rule runs in the terminal.
func main() {
	cfg, logic, _ := setup()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.NewHeadless(logic, cfg).Run(ctx, os.Stdout, cfg.Steps); err != nil {
		log.Fatal(err)
	}
}
