package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Options controls how a code is drawn. Zero values fall back to the
// renderer defaults.
type Options struct {
	Size       int
	Foreground string
	Background string
}

// Renderer turns arbitrary text into a scannable image.
type Renderer interface {
	Render(text string, opts Options) ([]byte, error)
}

// PNGRenderer renders PNG images with medium error recovery.
type PNGRenderer struct {
	defaults Options
}

// NewPNGRenderer creates a PNGRenderer with the given defaults.
func NewPNGRenderer(defaults Options) *PNGRenderer {
	if defaults.Size <= 0 {
		defaults.Size = 250
	}
	if defaults.Foreground == "" {
		defaults.Foreground = "#000000"
	}
	if defaults.Background == "" {
		defaults.Background = "#ffffff"
	}
	return &PNGRenderer{defaults: defaults}
}

func (r *PNGRenderer) Render(text string, opts Options) ([]byte, error) {
	if opts.Size <= 0 {
		opts.Size = r.defaults.Size
	}
	if opts.Foreground == "" {
		opts.Foreground = r.defaults.Foreground
	}
	if opts.Background == "" {
		opts.Background = r.defaults.Background
	}

	fg, err := ParseHexColor(opts.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := ParseHexColor(opts.Background)
	if err != nil {
		return nil, err
	}

	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	code.ForegroundColor = fg
	code.BackgroundColor = bg

	png, err := code.PNG(opts.Size)
	if err != nil {
		return nil, fmt.Errorf("render qr png: %w", err)
	}
	return png, nil
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
