package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"contentplanner/internal/render/layout"
	"contentplanner/internal/templates"
)

const (
	monogramFontSize = 70
	monogramDrop     = 20
	boldWeight       = 900
	subtitleWeight   = 500

	shadowSigma   = 15
	shadowOffsetY = 10
	shadowAlpha   = 179
)

// textRun is one line of text. X/Y is the anchor point with Y on the
// baseline.
type textRun struct {
	Text   string
	X, Y   float64
	Anchor layout.Anchor
	SizePx int
	Weight int
	Color  color.NRGBA
}

type monogram struct {
	X, Y    int
	Fill    color.NRGBA
	Initial textRun
}

type badge struct {
	X, Y, W, H, Radius float64
	Fill               color.NRGBA
	Label              textRun
}

// overlayPlan is everything the vector layer draws, in paint order, with all
// coordinates resolved. It is computed without touching any image.
type overlayPlan struct {
	Width, Height int
	FontFamily    string
	Scrim         bool
	Monogram      *monogram
	Title         []textRun
	TitleShadow   bool
	Subtitle      *textRun
	CTA           *badge
	LogoX, LogoY  int
}

func planOverlay(req Request, fc templates.FormatConfig, sc templates.StyleConfig, hasLogo bool) overlayPlan {
	w, h, margin := fc.Width, fc.Height, sc.SafeMargin
	primary := mustColor(req.Colors.Primary, DefaultPrimaryColor)
	upper := upperCaser(req.Locale)

	p := overlayPlan{
		Width:       w,
		Height:      h,
		FontFamily:  req.FontFamily,
		Scrim:       sc.Style == templates.StyleLifestyle || sc.Style == templates.StyleProduct,
		TitleShadow: sc.Style != templates.StyleInfographic,
	}
	p.LogoX, p.LogoY = layout.LogoOrigin(sc.LogoCorner, w, h, margin)

	if !hasLogo {
		half := float64(layout.LogoSize) / 2
		p.Monogram = &monogram{
			X:    p.LogoX,
			Y:    p.LogoY,
			Fill: primary,
			Initial: textRun{
				Text:   req.BrandInitial,
				X:      float64(p.LogoX) + half,
				Y:      float64(p.LogoY) + half + monogramDrop,
				Anchor: layout.AnchorMiddle,
				SizePx: monogramFontSize,
				Weight: boldWeight,
				Color:  colorWhite,
			},
		}
	}

	title := sc.Title
	x, anchor := layout.HorizontalAnchor(title.Align, w, margin)
	titleColor := mustColor(title.Color, "white")
	if sc.Style == templates.StyleInfographic {
		titleColor = primary
	}
	lines := layout.WrapTitle(req.Headline, layout.DefaultMaxChars)
	startY := layout.VerticalStart(fc.Format, h, len(lines), title.FontSizePx)
	lineHeight := layout.LineHeight(title.FontSizePx)
	for i, line := range lines {
		p.Title = append(p.Title, textRun{
			Text:   upper.String(line),
			X:      x,
			Y:      startY + float64(i)*lineHeight,
			Anchor: anchor,
			SizePx: title.FontSizePx,
			Weight: title.FontWeight,
			Color:  titleColor,
		})
	}

	if sub := strings.TrimSpace(req.Subtitle); sub != "" {
		subColor := colorSubtleWhite
		if sc.Style == templates.StyleInfographic {
			subColor = colorSlate
		}
		p.Subtitle = &textRun{
			Text:   sub,
			X:      x,
			Y:      startY + layout.BlockHeight(len(lines), title.FontSizePx) + layout.SubtitleGap,
			Anchor: anchor,
			SizePx: sc.Subtitle.FontSizePx,
			Weight: subtitleWeight,
			Color:  subColor,
		}
	}

	if cta := strings.TrimSpace(req.CTA); cta != "" {
		bx, by := layout.CTABadgeOrigin(anchor, w, h, margin)
		p.CTA = &badge{
			X:      bx,
			Y:      by,
			W:      layout.CTAWidth,
			H:      layout.CTAHeight,
			Radius: layout.CTARadius,
			Fill:   primary,
			Label: textRun{
				Text:   upper.String(cta),
				X:      bx + layout.CTAWidth/2,
				Y:      by + layout.CTABaselineDrop,
				Anchor: layout.AnchorMiddle,
				SizePx: layout.CTAFontSize,
				Weight: boldWeight,
				Color:  colorWhite,
			},
		}
	}
	return p
}

func upperCaser(locale string) cases.Caser {
	tag := language.Und
	if locale = strings.TrimSpace(locale); locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	return cases.Upper(tag)
}

// faceCache hands out one face per (weight, size) for a single overlay.
type faceCache struct {
	fonts  *FontSet
	family string
	faces  map[[2]int]font.Face
}

func (fc *faceCache) get(weight, size int) (font.Face, error) {
	if fc.faces == nil {
		fc.faces = make(map[[2]int]font.Face)
	}
	bucket := 400
	if weight >= boldThreshold {
		bucket = 700
	}
	k := [2]int{bucket, size}
	if f, ok := fc.faces[k]; ok {
		return f, nil
	}
	f, err := fc.fonts.Face(fc.family, weight, float64(size))
	if err != nil {
		return nil, err
	}
	fc.faces[k] = f
	return f, nil
}

func (fc *faceCache) close() {
	for _, f := range fc.faces {
		f.Close()
	}
}

// drawOverlay rasterizes the plan into a transparent layer of the canvas
// size.
func drawOverlay(p overlayPlan, fonts *FontSet) (image.Image, error) {
	faces := &faceCache{fonts: fonts, family: p.FontFamily}
	defer faces.close()

	dc := gg.NewContext(p.Width, p.Height)

	if p.Scrim {
		grad := gg.NewLinearGradient(0, 0, 0, float64(p.Height))
		grad.AddColorStop(0, scrimTop)
		grad.AddColorStop(1, scrimBottom)
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, float64(p.Width), float64(p.Height))
		dc.Fill()
	}

	if m := p.Monogram; m != nil {
		r := float64(layout.LogoSize) / 2
		dc.SetColor(m.Fill)
		dc.DrawCircle(float64(m.X)+r, float64(m.Y)+r, r)
		dc.Fill()
		if err := drawRun(dc, faces, m.Initial); err != nil {
			return nil, err
		}
	}

	if p.TitleShadow && len(p.Title) > 0 {
		shadow, top, err := titleShadow(p, faces)
		if err != nil {
			return nil, err
		}
		if shadow != nil {
			dc.DrawImage(shadow, 0, top)
		}
	}
	for _, run := range p.Title {
		if err := drawRun(dc, faces, run); err != nil {
			return nil, err
		}
	}

	if p.Subtitle != nil {
		if err := drawRun(dc, faces, *p.Subtitle); err != nil {
			return nil, err
		}
	}

	if b := p.CTA; b != nil {
		dc.SetColor(b.Fill)
		dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, b.Radius)
		dc.Fill()
		if err := drawRun(dc, faces, b.Label); err != nil {
			return nil, err
		}
	}

	return dc.Image(), nil
}

func drawRun(dc *gg.Context, faces *faceCache, run textRun) error {
	if run.Text == "" {
		return nil
	}
	face, err := faces.get(run.Weight, run.SizePx)
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	dc.SetFontFace(face)
	dc.SetColor(run.Color)
	dc.DrawStringAnchored(run.Text, run.X, run.Y, run.Anchor.Fraction(), 0)
	return nil
}

// titleShadow renders the title block in translucent black, shifted down and
// blurred. Only the horizontal band holding the title is rasterized; the
// returned offset is the band's top edge on the canvas.
func titleShadow(p overlayPlan, faces *faceCache) (image.Image, int, error) {
	first, last := p.Title[0], p.Title[len(p.Title)-1]
	pad := 3 * shadowSigma
	top := int(math.Floor(first.Y-float64(first.SizePx))) - pad
	bottom := int(math.Ceil(last.Y+float64(last.SizePx)*0.4)) + shadowOffsetY + pad
	top = max(top, 0)
	bottom = min(bottom, p.Height)
	if bottom <= top {
		return nil, 0, nil
	}

	sc := gg.NewContext(p.Width, bottom-top)
	for _, run := range p.Title {
		shifted := run
		shifted.Y = run.Y - float64(top) + shadowOffsetY
		shifted.Color = color.NRGBA{A: shadowAlpha}
		if err := drawRun(sc, faces, shifted); err != nil {
			return nil, 0, err
		}
	}
	return imaging.Blur(sc.Image(), shadowSigma), top, nil
}
