package diagram

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Marker shapes are kept as SVG so they scale cleanly with the square size.
const (
	dotSVG  = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="16" fill="%s"/></svg>`
	ringSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><circle cx="50" cy="50" r="44" fill="none" stroke="%s" stroke-width="8"/></svg>`
)

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// renderSVG rasterises an SVG document into a size x size image.
func renderSVG(doc string, size int, opacity float64) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, opacity)
	return rgba, nil
}

type markers struct {
	dot  image.Image // empty target square
	ring image.Image // occupied target square
}

func newMarkers(size int, c color.RGBA) (*markers, error) {
	alpha := float64(c.A) / 0xff
	dot, err := renderSVG(fmt.Sprintf(dotSVG, hex(c)), size, alpha)
	if err != nil {
		return nil, fmt.Errorf("dot marker: %w", err)
	}
	ring, err := renderSVG(fmt.Sprintf(ringSVG, hex(c)), size, alpha)
	if err != nil {
		return nil, fmt.Errorf("ring marker: %w", err)
	}
	return &markers{dot: dot, ring: ring}, nil
}
