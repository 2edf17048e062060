// Package templates holds the fixed format and style tables used to lay out
// brand visuals. Lookups never fail: unknown names resolve to the defaults.
package templates

import "strings"

// Format identifies the output canvas of a visual.
type Format string

const (
	FormatFeedPost Format = "IG_POST"
	FormatCarousel Format = "IG_CAROUSEL"
	FormatStory    Format = "IG_STORY"
)

// Style identifies the typographic treatment of a visual.
type Style string

const (
	StyleLifestyle   Style = "LIFESTYLE"
	StyleInfographic Style = "INFOGRAPHIC"
	StyleProduct     Style = "PRODUCT"
	StyleEducational Style = "EDUCATIONAL"
)

const (
	DefaultFormat = FormatFeedPost
	DefaultStyle  = StyleLifestyle
)

// Align is the horizontal alignment of a text role.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Corner is where the logo sits on the canvas.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
)

// IsLeft reports whether the corner is on the left edge.
func (c Corner) IsLeft() bool { return c == CornerTopLeft || c == CornerBottomLeft }

// IsTop reports whether the corner is on the top edge.
func (c Corner) IsTop() bool { return c == CornerTopLeft || c == CornerTopRight }

// FormatConfig carries the pixel dimensions of a format.
type FormatConfig struct {
	Format Format
	Width  int
	Height int
}

// TextRoleStyle is the typography of one text role (title, subtitle, CTA).
type TextRoleStyle struct {
	FontSizePx int
	FontWeight int
	Color      string
	Align      Align
}

// StyleConfig groups margins, logo placement and typography for a style.
type StyleConfig struct {
	Style      Style
	SafeMargin int
	LogoCorner Corner
	Title      TextRoleStyle
	Subtitle   TextRoleStyle
	CTA        TextRoleStyle
}

var formats = map[Format]FormatConfig{
	FormatFeedPost: {Format: FormatFeedPost, Width: 1080, Height: 1080},
	FormatCarousel: {Format: FormatCarousel, Width: 1080, Height: 1350},
	FormatStory:    {Format: FormatStory, Width: 1080, Height: 1920},
}

var styles = map[Style]StyleConfig{
	StyleLifestyle: {
		Style:      StyleLifestyle,
		SafeMargin: 100,
		LogoCorner: CornerBottomRight,
		Title:      TextRoleStyle{FontSizePx: 80, FontWeight: 900, Color: "white", Align: AlignCenter},
		Subtitle:   TextRoleStyle{FontSizePx: 32, FontWeight: 400, Color: "rgba(255,255,255,0.9)", Align: AlignCenter},
		CTA:        TextRoleStyle{FontSizePx: 28, FontWeight: 900, Color: "white", Align: AlignCenter},
	},
	StyleInfographic: {
		Style:      StyleInfographic,
		SafeMargin: 80,
		LogoCorner: CornerTopRight,
		Title:      TextRoleStyle{FontSizePx: 60, FontWeight: 800, Color: "#111827", Align: AlignLeft},
		Subtitle:   TextRoleStyle{FontSizePx: 26, FontWeight: 500, Color: "#4B5563", Align: AlignLeft},
		CTA:        TextRoleStyle{FontSizePx: 24, FontWeight: 700, Color: "white", Align: AlignLeft},
	},
	StyleProduct: {
		Style:      StyleProduct,
		SafeMargin: 120,
		LogoCorner: CornerBottomLeft,
		Title:      TextRoleStyle{FontSizePx: 90, FontWeight: 900, Color: "white", Align: AlignCenter},
		Subtitle:   TextRoleStyle{FontSizePx: 36, FontWeight: 300, Color: "white", Align: AlignCenter},
		CTA:        TextRoleStyle{FontSizePx: 30, FontWeight: 800, Color: "white", Align: AlignCenter},
	},
	StyleEducational: {
		Style:      StyleEducational,
		SafeMargin: 90,
		LogoCorner: CornerTopLeft,
		Title:      TextRoleStyle{FontSizePx: 70, FontWeight: 900, Color: "#4F46E5", Align: AlignLeft},
		Subtitle:   TextRoleStyle{FontSizePx: 30, FontWeight: 400, Color: "#374151", Align: AlignLeft},
		CTA:        TextRoleStyle{FontSizePx: 28, FontWeight: 900, Color: "white", Align: AlignLeft},
	},
}

// NormalizeFormat maps free-form input onto a known format. Both the stored
// identifiers (IG_STORY) and display names ("story", "feed post") are accepted.
func NormalizeFormat(name string) Format {
	switch canonical(name) {
	case "IG_POST", "POST", "FEED_POST", "FEED":
		return FormatFeedPost
	case "IG_CAROUSEL", "CAROUSEL", "CAROUSEL_SLIDE":
		return FormatCarousel
	case "IG_STORY", "STORY":
		return FormatStory
	default:
		return DefaultFormat
	}
}

// NormalizeStyle maps free-form input onto a known style.
func NormalizeStyle(name string) Style {
	switch Style(canonical(name)) {
	case StyleInfographic:
		return StyleInfographic
	case StyleProduct:
		return StyleProduct
	case StyleEducational:
		return StyleEducational
	default:
		return DefaultStyle
	}
}

// ResolveFormat returns the dimensions for name, or the feed post default.
func ResolveFormat(name string) FormatConfig {
	return formats[NormalizeFormat(name)]
}

// ResolveStyle returns the style table entry for name, or the lifestyle default.
func ResolveStyle(name string) StyleConfig {
	return styles[NormalizeStyle(name)]
}

// Formats lists the known formats in table order.
func Formats() []Format {
	return []Format{FormatFeedPost, FormatCarousel, FormatStory}
}

// Styles lists the known styles in table order.
func Styles() []Style {
	return []Style{StyleLifestyle, StyleInfographic, StyleProduct, StyleEducational}
}

func canonical(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}
