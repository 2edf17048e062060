package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Brand defaults applied when a profile leaves a field empty.
const (
	DefaultPrimaryColor   = "#4F46E5"
	DefaultSecondaryColor = "#111827"
	DefaultAccentColor    = "#F3F4F6"
	DefaultFontFamily     = "Inter"
	DefaultBrandInitial   = "B"
)

var (
	colorWhite       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorSubtleWhite = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 230}
	colorSlate       = color.NRGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
	scrimTop         = color.NRGBA{A: 77}
	scrimBottom      = color.NRGBA{A: 179}
)

// ParseColor understands the color notations found in brand profiles and the
// style table: #RGB, #RRGGBB, #RRGGBBAA, rgb()/rgba() and a few names.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return color.NRGBA{}, fmt.Errorf("color: empty value")
	case "white":
		return colorWhite, nil
	case "black":
		return color.NRGBA{A: 0xff}, nil
	case "transparent":
		return color.NRGBA{}, nil
	}
	if strings.HasPrefix(v, "rgb") {
		return parseRGBFunc(v)
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if len(v) == 9 {
		alpha, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color: invalid alpha in %q", s)
		}
		c, err := hexColor(v[:7])
		if err != nil {
			return color.NRGBA{}, err
		}
		c.A = uint8(alpha)
		return c, nil
	}
	return hexColor(v)
}

// mustColor parses s and falls back when it is not a usable color.
func mustColor(s, fallback string) color.NRGBA {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	c, _ := ParseColor(fallback)
	return c
}

func hexColor(v string) (color.NRGBA, error) {
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color: %w", err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func parseRGBFunc(v string) (color.NRGBA, error) {
	open := strings.IndexByte(v, '(')
	closing := strings.LastIndexByte(v, ')')
	if open < 0 || closing < open {
		return color.NRGBA{}, fmt.Errorf("color: malformed %q", v)
	}
	parts := strings.Split(v[open+1:closing], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("color: malformed %q", v)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("color: channel %q out of range", parts[i])
		}
		rgb[i] = uint8(n)
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return color.NRGBA{}, fmt.Errorf("color: alpha %q out of range", parts[3])
		}
		alpha = a
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: uint8(math.Round(alpha * 255))}, nil
}
