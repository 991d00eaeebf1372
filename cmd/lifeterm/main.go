// Command lifeterm runs the simulation in a terminal, or headless for a
// fixed number of generations.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"lockstep/internal/app"
	"lockstep/internal/tui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	headless := flag.Bool("headless", false, "advance without a screen and print the live cells")
	generations := flag.Int("generations", 10, "generations to advance in headless mode")
	logPath := flag.String("log", "", "write log output to this file (interactive mode)")
	flag.Parse()

	if *headless {
		os.Exit(runHeadless(cfg, *generations))
	}
	if err := runInteractive(cfg, *logPath); err != nil {
		log.Fatal(err)
	}
}

// runHeadless advances n generations and prints the result. A worker fault
// or interrupt yields a non-zero exit status.
func runHeadless(cfg *app.Config, n int) int {
	ctl, err := app.NewController(cfg, nil, log.Default())
	if err != nil {
		log.Print(err)
		return 2
	}
	defer ctl.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ctl.Sim().Advance(ctx, n)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	fmt.Fprintf(w, "# %s\n", ctl.Status())
	for _, c := range ctl.Sim().LiveCells() {
		fmt.Fprintf(w, "%d %d\n", c.Row, c.Col)
	}
	if err != nil {
		log.Printf("advance stopped: %v", err)
		return 1
	}
	return 0
}

func runInteractive(cfg *app.Config, logPath string) error {
	// The screen owns the terminal; log lines would corrupt it.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctl, err := app.NewController(cfg, tui.Waker(screen), log.Default())
	if err != nil {
		return err
	}
	defer ctl.Close()
	if cfg.Autostart {
		if err := ctl.Toggle(); err != nil {
			return err
		}
	}
	tui.New(screen, ctl, cfg.Seed).Run()
	return nil
}
