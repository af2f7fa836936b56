package gosieray

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
)

// DefaultScreenshotName is where the viewer saves a frame when asked.
const DefaultScreenshotName = "RayTracing_Buffer.bmp"

func SaveBMP(fileName string, img image.Image) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", fileName, err)
	}
	if err := bmp.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("could not encode %s: %w", fileName, err)
	}
	return file.Close()
}

func SavePNG(fileName string, img image.Image) error {
	if err := gg.SavePNG(fileName, img); err != nil {
		return fmt.Errorf("could not save %s: %w", fileName, err)
	}
	return nil
}

// SaveImage picks the encoder from the file extension.
func SaveImage(fileName string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".bmp":
		return SaveBMP(fileName, img)
	case ".png":
		return SavePNG(fileName, img)
	}
	return fmt.Errorf("unsupported image format %q, use .bmp or .png", filepath.Ext(fileName))
}
