// lightcaster is a terminal roguelike demo of a raycast RGB lighting engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"lightcaster/internal/game"
	"lightcaster/internal/logger"

	"github.com/gdamore/tcell/v2"
)

func main() {
	def := game.DefaultConfig()
	width := flag.Int("width", def.MapWidth, "Map width in tiles")
	height := flag.Int("height", def.MapHeight, "Map height in tiles")
	seed := flag.Int64("seed", def.Seed, "Level seed")
	fps := flag.Int("fps", def.FPS, "Frame rate cap (0 for none)")
	fov := flag.Int("fov", def.FOVRadius, "Field of view radius")
	reflections := flag.Int("reflections", def.Light.ReflectionLevel, "Reflection generations per light")
	logPath := flag.String("log", "", "Write logs to this file (discarded if empty)")
	flag.Parse()

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger.Init(out)

	cfg := def
	cfg.MapWidth, cfg.MapHeight = *width, *height
	cfg.Seed, cfg.FPS, cfg.FOVRadius = *seed, *fps, *fov
	cfg.Light.ReflectionLevel = *reflections

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg game.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	g, err := game.New(screen, cfg, logger.Log.WithField("component", "game"))
	if err != nil {
		screen.Fini()
		return err
	}
	g.Run()
	return nil
}
