package main

import (
	"log"
	"runtime"

	"github.com/alecthomas/kong"

	"github.com/smasonuk/gosieray"
)

var CLI struct {
	View   ViewCmd   `cmd:"" help:"Open a window and fly the camera around a scene"`
	Render RenderCmd `cmd:"" help:"Render a single frame to a .bmp or .png file"`
}

// SceneFlags are shared by both commands.
type SceneFlags struct {
	Scene     string `name:"scene" default:"reference" help:"built-in scene name, mesh:<file> or a .yaml scene file"`
	Width     int    `name:"width" default:"640" help:"image width in pixels"`
	Height    int    `name:"height" default:"480" help:"image height in pixels"`
	Lighting  string `name:"lighting" enum:"observed,radiance,brdf,combined" default:"combined" help:"lighting mode"`
	NoShadows bool   `name:"no-shadows" help:"skip shadow rays"`
	Unlit     bool   `name:"unlit" help:"show flat material colors instead of lighting"`
	Workers   int    `name:"workers" default:"0" help:"rows rendered in parallel, 0 uses every CPU"`
}

func (f SceneFlags) renderConfig() (gosieray.RenderConfig, error) {
	mode, err := gosieray.ParseLightingMode(f.Lighting)
	if err != nil {
		return gosieray.RenderConfig{}, err
	}
	cfg := gosieray.DefaultRenderConfig()
	cfg.LightingMode = mode
	cfg.ShadowsEnabled = !f.NoShadows
	cfg.Unlit = f.Unlit
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	} else {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("gosieray"),
		kong.Description("A CPU ray tracer with an interactive viewer."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
