//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"lockstep/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctl, err := app.NewController(cfg, nil, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	defer ctl.Close()

	game := app.New(ctl, cfg.Scale, cfg.Seed)

	ebiten.SetWindowTitle("lockstep - " + cfg.Pattern)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	if cfg.Autostart {
		if err := ctl.Toggle(); err != nil {
			log.Fatal(err)
		}
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
