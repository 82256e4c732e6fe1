//go:build ebiten

package main

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"cellsociety/internal/app"
)

func main() {
	cfg, logic, initial := setup()
	game := app.New(logic, initial, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("cellsociety - " + string(logic.Kind()))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
