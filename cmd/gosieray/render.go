package main

import (
	"context"
	"fmt"
	"log"

	"github.com/smasonuk/gosieray"
)

type RenderCmd struct {
	SceneFlags `embed:""`
	Out string `name:"out" short:"o" default:"render.png" help:"output image, .bmp or .png"`
}

func (c RenderCmd) Run() error {
	cfg, err := c.renderConfig()
	if err != nil {
		return err
	}

	scene, err := gosieray.BuiltinScene(c.Scene)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	renderer := gosieray.NewRenderer(c.Width, c.Height)
	if err := renderer.Render(context.Background(), scene, cfg); err != nil {
		return err
	}
	stats := renderer.LastStats()
	log.Printf("Rendered %dx%d in %v (%s, shadows %v, %d of %d pixels hit)",
		c.Width, c.Height, stats.Duration, cfg.LightingMode, cfg.ShadowsEnabled, stats.Hits, stats.Pixels)

	if err := gosieray.SaveImage(c.Out, renderer.Image()); err != nil {
		return err
	}
	log.Printf("Saved %s", c.Out)
	return nil
}
