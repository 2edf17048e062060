package templates

import "testing"

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Format
		width  int
		height int
	}{
		{name: "feed post id", input: "IG_POST", want: FormatFeedPost, width: 1080, height: 1080},
		{name: "feed post display name", input: "feed post", want: FormatFeedPost, width: 1080, height: 1080},
		{name: "carousel id", input: "IG_CAROUSEL", want: FormatCarousel, width: 1080, height: 1350},
		{name: "carousel display name", input: "Carousel Slide", want: FormatCarousel, width: 1080, height: 1350},
		{name: "story id", input: "IG_STORY", want: FormatStory, width: 1080, height: 1920},
		{name: "story lowercase", input: " story ", want: FormatStory, width: 1080, height: 1920},
		{name: "unknown falls back", input: "IG_REEL", want: FormatFeedPost, width: 1080, height: 1080},
		{name: "empty falls back", input: "", want: FormatFeedPost, width: 1080, height: 1080},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveFormat(tc.input)
			if got.Format != tc.want || got.Width != tc.width || got.Height != tc.height {
				t.Fatalf("ResolveFormat(%q) = %+v, want %s %dx%d", tc.input, got, tc.want, tc.width, tc.height)
			}
		})
	}
}

func TestResolveStyle(t *testing.T) {
	tests := []struct {
		input    string
		style    Style
		margin   int
		corner   Corner
		title    TextRoleStyle
		subtitle TextRoleStyle
	}{
		{
			input:    "LIFESTYLE",
			style:    StyleLifestyle,
			margin:   100,
			corner:   CornerBottomRight,
			title:    TextRoleStyle{FontSizePx: 80, FontWeight: 900, Color: "white", Align: AlignCenter},
			subtitle: TextRoleStyle{FontSizePx: 32, FontWeight: 400, Color: "rgba(255,255,255,0.9)", Align: AlignCenter},
		},
		{
			input:    "infographic",
			style:    StyleInfographic,
			margin:   80,
			corner:   CornerTopRight,
			title:    TextRoleStyle{FontSizePx: 60, FontWeight: 800, Color: "#111827", Align: AlignLeft},
			subtitle: TextRoleStyle{FontSizePx: 26, FontWeight: 500, Color: "#4B5563", Align: AlignLeft},
		},
		{
			input:    "Product",
			style:    StyleProduct,
			margin:   120,
			corner:   CornerBottomLeft,
			title:    TextRoleStyle{FontSizePx: 90, FontWeight: 900, Color: "white", Align: AlignCenter},
			subtitle: TextRoleStyle{FontSizePx: 36, FontWeight: 300, Color: "white", Align: AlignCenter},
		},
		{
			input:    "EDUCATIONAL",
			style:    StyleEducational,
			margin:   90,
			corner:   CornerTopLeft,
			title:    TextRoleStyle{FontSizePx: 70, FontWeight: 900, Color: "#4F46E5", Align: AlignLeft},
			subtitle: TextRoleStyle{FontSizePx: 30, FontWeight: 400, Color: "#374151", Align: AlignLeft},
		},
		{
			input:    "MINIMAL",
			style:    StyleLifestyle,
			margin:   100,
			corner:   CornerBottomRight,
			title:    TextRoleStyle{FontSizePx: 80, FontWeight: 900, Color: "white", Align: AlignCenter},
			subtitle: TextRoleStyle{FontSizePx: 32, FontWeight: 400, Color: "rgba(255,255,255,0.9)", Align: AlignCenter},
		},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ResolveStyle(tc.input)
			if got.Style != tc.style {
				t.Fatalf("style = %s, want %s", got.Style, tc.style)
			}
			if got.SafeMargin != tc.margin {
				t.Fatalf("margin = %d, want %d", got.SafeMargin, tc.margin)
			}
			if got.LogoCorner != tc.corner {
				t.Fatalf("corner = %s, want %s", got.LogoCorner, tc.corner)
			}
			if got.Title != tc.title {
				t.Fatalf("title = %+v, want %+v", got.Title, tc.title)
			}
			if got.Subtitle != tc.subtitle {
				t.Fatalf("subtitle = %+v, want %+v", got.Subtitle, tc.subtitle)
			}
			if got.CTA.Align != got.Title.Align {
				t.Fatalf("cta align %s differs from title align %s", got.CTA.Align, got.Title.Align)
			}
		})
	}
}

func TestResolveStyleReturnsCopy(t *testing.T) {
	cfg := ResolveStyle("LIFESTYLE")
	cfg.SafeMargin = 1
	cfg.Title.Color = "red"
	again := ResolveStyle("LIFESTYLE")
	if again.SafeMargin != 100 || again.Title.Color != "white" {
		t.Fatalf("registry mutated through returned value: %+v", again)
	}
}

func TestCorner(t *testing.T) {
	if !CornerTopLeft.IsLeft() || !CornerTopLeft.IsTop() {
		t.Fatal("top-left misclassified")
	}
	if CornerBottomRight.IsLeft() || CornerBottomRight.IsTop() {
		t.Fatal("bottom-right misclassified")
	}
	if !CornerBottomLeft.IsLeft() || CornerBottomLeft.IsTop() {
		t.Fatal("bottom-left misclassified")
	}
	if CornerTopRight.IsLeft() || !CornerTopRight.IsTop() {
		t.Fatal("top-right misclassified")
	}
}
