package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/smasonuk/gosieray"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image

	boundsColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// boxEdges pairs up the corner indices of AABB.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// drawBounds outlines a world-space box as seen by cam. Edges with a corner
// behind the camera are skipped.
func drawBounds(screen *ebiten.Image, cam gosieray.Camera, box gosieray.AABB, width, height int) {
	corners := box.Corners()
	var xs, ys [8]float32
	var visible [8]bool
	for i, c := range corners {
		x, y, ok := cam.ProjectToPixel(c, width, height)
		xs[i], ys[i], visible[i] = float32(x), float32(y), ok
	}

	var path vector.Path
	for _, e := range boxEdges {
		a, b := e[0], e[1]
		if !visible[a] || !visible[b] {
			continue
		}
		path.MoveTo(xs[a], ys[a])
		path.LineTo(xs[b], ys[b])
	}
	strokePath(screen, &path, 1, boundsColor)
}

func strokePath(screen *ebiten.Image, path *vector.Path, strokeWidth float32, clr color.RGBA) {
	strokeOp := &vector.StrokeOptions{
		Width: strokeWidth,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)
	if len(indices) == 0 {
		return
	}

	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	// SrcX/SrcY pick the solid pixel of whiteSub
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}

	drawOp := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	screen.DrawTriangles(vertices, indices, whiteSub, drawOp)
}
