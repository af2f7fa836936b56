package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/smasonuk/gosieray"
)

type ViewCmd struct {
	SceneFlags `embed:""`
	Zoom       int `name:"zoom" default:"1" help:"window pixels per rendered pixel"`
}

func (c ViewCmd) Run() error {
	cfg, err := c.renderConfig()
	if err != nil {
		return err
	}

	scene, err := gosieray.BuiltinScene(c.Scene)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}

	zoom := max(c.Zoom, 1)
	ebiten.SetWindowSize(c.Width*zoom, c.Height*zoom)
	ebiten.SetWindowTitle("gosieray")
	return ebiten.RunGame(NewGame(scene, cfg, c.Width, c.Height))
}

type Game struct {
	scene    *gosieray.Scene
	renderer *gosieray.Renderer
	cfg      gosieray.RenderConfig

	frame  *ebiten.Image
	pixels []byte

	showBounds   bool
	isDragging   bool
	lastX, lastY int
	lastUpdate   time.Time

	statsFrames int
	statsTime   time.Duration
	statsStart  time.Time
}

func NewGame(scene *gosieray.Scene, cfg gosieray.RenderConfig, width, height int) *Game {
	now := time.Now()
	renderer := gosieray.NewRenderer(width, height)
	width, height = renderer.Size()
	return &Game{
		scene:      scene,
		renderer:   renderer,
		cfg:        cfg,
		frame:      ebiten.NewImage(width, height),
		pixels:     make([]byte, 4*width*height),
		lastUpdate: now,
		statsStart: now,
	}
}

// cameraInput turns this tick's keyboard and mouse state into one camera
// delta.
func (g *Game) cameraInput(cam *gosieray.Camera, dt float64) gosieray.CameraDelta {
	d := cam.KeyDelta(gosieray.KeyInput{
		Forward:   ebiten.IsKeyPressed(ebiten.KeyW),
		Back:      ebiten.IsKeyPressed(ebiten.KeyS),
		Right:     ebiten.IsKeyPressed(ebiten.KeyD),
		Left:      ebiten.IsKeyPressed(ebiten.KeyA),
		Up:        ebiten.IsKeyPressed(ebiten.KeyE),
		Down:      ebiten.IsKeyPressed(ebiten.KeyQ),
		WidenFov:  ebiten.IsKeyPressed(ebiten.KeyUp),
		NarrowFov: ebiten.IsKeyPressed(ebiten.KeyDown),
	}, dt)

	// Mouse camera control
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.isDragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.isDragging {
		x, y := ebiten.CursorPosition()
		d.Yaw += float64(x-g.lastX) * cam.RotateSpeed
		d.Pitch += float64(y-g.lastY) * cam.RotateSpeed
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.isDragging = false
	}
	return d
}

func (g *Game) toggles() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.cfg.ShadowsEnabled = !g.cfg.ShadowsEnabled
		log.Printf("Shadows: %v", g.cfg.ShadowsEnabled)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.cfg.LightingMode = g.cfg.LightingMode.Next()
		log.Printf("Lighting mode: %s", g.cfg.LightingMode)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		g.cfg.Unlit = !g.cfg.Unlit
		log.Printf("Unlit: %v", g.cfg.Unlit)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.showBounds = !g.showBounds
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		if err := gosieray.SaveBMP(gosieray.DefaultScreenshotName, g.renderer.Image()); err != nil {
			return err
		}
		log.Printf("Screenshot saved to %s", gosieray.DefaultScreenshotName)
	}
	return nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now

	if err := g.toggles(); err != nil {
		return err
	}

	cam := g.scene.Camera()
	cam.Move(g.cameraInput(cam, dt))
	g.scene.Update(dt)

	if err := g.renderer.Render(context.Background(), g.scene, g.cfg); err != nil {
		return err
	}
	g.renderer.CopyRGBA(g.pixels)
	g.frame.WritePixels(g.pixels)

	g.logStats(now)
	return nil
}

// logStats prints the frame rate about once a second.
func (g *Game) logStats(now time.Time) {
	g.statsFrames++
	g.statsTime += g.renderer.LastStats().Duration
	elapsed := now.Sub(g.statsStart)
	if elapsed < time.Second {
		return
	}
	log.Printf("FPS: %.1f, render %v per frame",
		float64(g.statsFrames)/elapsed.Seconds(), g.statsTime/time.Duration(g.statsFrames))
	g.statsFrames = 0
	g.statsTime = 0
	g.statsStart = now
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame, nil)

	if g.showBounds {
		w, h := g.renderer.Size()
		cam := *g.scene.Camera()
		for _, m := range g.scene.Meshes() {
			drawBounds(screen, cam, m.Bounds(), w, h)
		}
	}

	shadows := "on"
	if !g.cfg.ShadowsEnabled {
		shadows = "off"
	}
	mode := g.cfg.LightingMode.String()
	if g.cfg.Unlit {
		mode = "UNLIT"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f\n%s\nshadows %s\nfov %.0f",
		ebiten.ActualFPS(), mode, shadows, g.scene.Camera().FovAngle))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.Size()
}
