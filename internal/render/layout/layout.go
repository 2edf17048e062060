// Package layout computes where headline text and badges go on a canvas.
// Wrapping is character based, not pixel measured, so results are stable
// across fonts.
package layout

import (
	"strings"
	"unicode/utf8"

	"contentplanner/internal/templates"
)

const (
	// DefaultMaxChars is the per-line character budget for headlines.
	DefaultMaxChars = 22
	// LineSpacing multiplies the font size to get the line height.
	LineSpacing = 1.2
	// StoryStartRatio places story headlines this far down the canvas.
	StoryStartRatio = 0.30

	SubtitleGap = 60

	CTAWidth        = 400
	CTAHeight       = 100
	CTARadius       = 50
	CTAFontSize     = 34
	CTABaselineDrop = 62

	LogoSize = 140
)

// Anchor mirrors the text-anchor of a run of text.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Fraction returns the share of the text width that sits left of the anchor
// point: 0 for start, 0.5 for middle, 1 for end.
func (a Anchor) Fraction() float64 {
	switch a {
	case AnchorMiddle:
		return 0.5
	case AnchorEnd:
		return 1
	default:
		return 0
	}
}

func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// WrapTitle greedily packs whitespace separated words into lines of at most
// maxChars characters. Words are never split, so a single long word may
// exceed the budget on its own line. Blank input yields one empty line.
func WrapTitle(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if curLen > 0 && curLen+1+wl > maxChars {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	return append(lines, cur.String())
}

// LineHeight is the distance between consecutive title baselines.
func LineHeight(fontSizePx int) float64 {
	return float64(fontSizePx) * LineSpacing
}

// BlockHeight is the total height of a wrapped title block.
func BlockHeight(lineCount, fontSizePx int) float64 {
	return float64(lineCount) * LineHeight(fontSizePx)
}

// VerticalStart returns the baseline of the first title line. Stories start
// at a fixed 30% of the height; other formats center the block.
func VerticalStart(format templates.Format, canvasHeight, lineCount, fontSizePx int) float64 {
	if format == templates.FormatStory {
		return float64(canvasHeight) * StoryStartRatio
	}
	return float64(canvasHeight)/2 - BlockHeight(lineCount, fontSizePx)/2
}

// HorizontalAnchor resolves the x coordinate and anchor for an alignment.
func HorizontalAnchor(align templates.Align, canvasWidth, margin int) (float64, Anchor) {
	switch align {
	case templates.AlignLeft:
		return float64(margin), AnchorStart
	case templates.AlignRight:
		return float64(canvasWidth - margin), AnchorEnd
	default:
		return float64(canvasWidth) / 2, AnchorMiddle
	}
}

// CTABadgeOrigin is the top-left corner of the CTA pill. The pill sits on the
// bottom safe margin and follows the title's anchor horizontally.
func CTABadgeOrigin(anchor Anchor, canvasWidth, canvasHeight, margin int) (float64, float64) {
	y := float64(canvasHeight - margin - CTAHeight)
	switch anchor {
	case AnchorStart:
		return float64(margin), y
	case AnchorEnd:
		return float64(canvasWidth - CTAWidth - margin), y
	default:
		return float64(canvasWidth)/2 - CTAWidth/2, y
	}
}

// LogoOrigin is the top-left corner of the 140px logo box for a corner.
func LogoOrigin(corner templates.Corner, canvasWidth, canvasHeight, margin int) (int, int) {
	x := canvasWidth - LogoSize - margin
	if corner.IsLeft() {
		x = margin
	}
	y := canvasHeight - LogoSize - margin
	if corner.IsTop() {
		y = margin
	}
	return x, y
}
