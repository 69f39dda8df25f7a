//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"clothsim/internal/app"
	_ "clothsim/internal/cloth"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, err := cfg.Factory()
	if err != nil {
		log.Fatal(err)
	}
	params, err := cfg.Overrides()
	if err != nil {
		log.Fatal(err)
	}

	game, err := app.New(factory, params, cfg)
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Scenario, err)
	}

	ebiten.SetWindowTitle("cloth: " + game.Sim().Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width+cfg.Panel, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
