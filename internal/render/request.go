package render

import "strings"

// BrandColors are the three brand colors as hex strings.
type BrandColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

// WithDefaults fills empty colors with the product defaults.
func (c BrandColors) WithDefaults() BrandColors {
	if strings.TrimSpace(c.Primary) == "" {
		c.Primary = DefaultPrimaryColor
	}
	if strings.TrimSpace(c.Secondary) == "" {
		c.Secondary = DefaultSecondaryColor
	}
	if strings.TrimSpace(c.Accent) == "" {
		c.Accent = DefaultAccentColor
	}
	return c
}

// Request describes one visual to render.
type Request struct {
	PostID        string      `json:"post_id"`
	PlanID        string      `json:"plan_id"`
	Format        string      `json:"format"`
	Style         string      `json:"style"`
	BackgroundURL string      `json:"background_url"`
	LogoURL       string      `json:"logo_url,omitempty"`
	LogoBytes     []byte      `json:"-"`
	LogoData      string      `json:"logo_data,omitempty"`
	Headline      string      `json:"headline"`
	Subtitle      string      `json:"subtitle,omitempty"`
	CTA           string      `json:"cta,omitempty"`
	Colors        BrandColors `json:"brand_colors"`
	FontFamily    string      `json:"font_family,omitempty"`
	BrandInitial  string      `json:"brand_initial,omitempty"`
	Locale        string      `json:"locale,omitempty"`
}

func (r Request) normalized() Request {
	r.Colors = r.Colors.WithDefaults()
	if strings.TrimSpace(r.FontFamily) == "" {
		r.FontFamily = DefaultFontFamily
	}
	initial := []rune(strings.TrimSpace(r.BrandInitial))
	if len(initial) == 0 {
		r.BrandInitial = DefaultBrandInitial
	} else {
		r.BrandInitial = strings.ToUpper(string(initial[0]))
	}
	return r
}

// Status tells a genuine render apart from the degraded fallback.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusFallback Status = "fallback"
)

// Result is the outcome of Render. On fallback Ref is the unmodified
// background reference and Reason explains what went wrong.
type Result struct {
	Status     Status `json:"status"`
	Ref        string `json:"ref"`
	Reason     string `json:"reason,omitempty"`
	StorageKey string `json:"storage_key,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Bytes      int64  `json:"bytes,omitempty"`
}

// Rendered reports whether a new image was produced.
func (r Result) Rendered() bool {
	return r.Status == StatusRendered
}

func fallback(req Request, err error) Result {
	return Result{Status: StatusFallback, Ref: req.BackgroundURL, Reason: err.Error()}
}
