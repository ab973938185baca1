package dashboard

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontSet holds the parsed faces used across the chart
type fontSet struct {
	title   font.Face // Band titles
	weekday font.Face // Day labels
	small   font.Face // Stats lines, rain amounts, axis ticks
}

func newFace(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// loadFonts parses the embedded Go fonts once per renderer
func loadFonts() (fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("failed to parse bold font: %w", err)
	}

	var fs fontSet
	if fs.title, err = newFace(bold, 17); err != nil {
		return fontSet{}, fmt.Errorf("failed to create title face: %w", err)
	}
	if fs.weekday, err = newFace(bold, 13); err != nil {
		return fontSet{}, fmt.Errorf("failed to create weekday face: %w", err)
	}
	if fs.small, err = newFace(regular, 11); err != nil {
		return fontSet{}, fmt.Errorf("failed to create small face: %w", err)
	}
	return fs, nil
}
