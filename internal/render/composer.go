// Package render composes brand visuals: a background photo with a vector
// overlay (scrim, headline, subtitle, CTA pill) and a logo or monogram.
//
// Rendering is best effort. Render never returns an error; when anything
// goes wrong the result carries the original background reference and a
// fallback status.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"

	"contentplanner/internal/templates"
)

// ArtifactStore persists rendered files and maps keys to public references.
type ArtifactStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	URL(key string) string
}

// Renderer is the contract consumed by the orchestrator and HTTP layer.
type Renderer interface {
	Render(ctx context.Context, req Request) Result
}

// Options configures NewComposer.
type Options struct {
	Fetcher *Fetcher
	Store   ArtifactStore
	Fonts   *FontSet
	Logger  zerolog.Logger
	// MaxPixels caps the decoded size of a background. Defaults to 40 MP.
	MaxPixels int64
	// Now is the clock used for output names. Defaults to time.Now.
	Now func() time.Time
}

const (
	defaultMaxPixels = 40_000_000
	maxLogoPixels    = 16_000_000
)

// ErrImageTooLarge is returned when an image header declares more pixels
// than the decode budget allows.
var ErrImageTooLarge = errors.New("image exceeds pixel budget")

// Composer renders visuals. It holds no per-render state, so one Composer
// can serve concurrent renders.
type Composer struct {
	fetcher   *Fetcher
	store     ArtifactStore
	fonts     *FontSet
	logger    zerolog.Logger
	maxPixels int64
	stamps    *stampClock
}

// NewComposer validates opts and builds a Composer.
func NewComposer(opts Options) (*Composer, error) {
	if opts.Store == nil {
		return nil, errors.New("render: store is required")
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = NewFetcher(FetcherOptions{})
	}
	fonts := opts.Fonts
	if fonts == nil {
		var err error
		if fonts, err = NewFontSet(""); err != nil {
			return nil, err
		}
	}
	maxPixels := opts.MaxPixels
	if maxPixels <= 0 {
		maxPixels = defaultMaxPixels
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Composer{
		fetcher:   fetcher,
		store:     opts.Store,
		fonts:     fonts,
		logger:    opts.Logger,
		maxPixels: maxPixels,
		stamps:    &stampClock{now: now},
	}, nil
}

// Render produces the visual described by req. Failures anywhere in the
// pipeline, including panics, degrade to a fallback result.
func (c *Composer) Render(ctx context.Context, req Request) (res Result) {
	req = req.normalized()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("render: panic: %v", r)
			c.logFallback(req, err)
			res = fallback(req, err)
		}
	}()

	out, err := c.render(ctx, req)
	if err != nil {
		c.logFallback(req, err)
		return fallback(req, err)
	}
	c.logger.Info().
		Str("post_id", req.PostID).
		Str("plan_id", req.PlanID).
		Str("ref", out.Ref).
		Int64("bytes", out.Bytes).
		Msg("render: visual rendered")
	return out
}

func (c *Composer) render(ctx context.Context, req Request) (Result, error) {
	fc := templates.ResolveFormat(req.Format)
	sc := templates.ResolveStyle(req.Style)

	bgBytes, err := c.fetcher.Fetch(ctx, req.BackgroundURL)
	if err != nil {
		return Result{}, fmt.Errorf("background: %w", err)
	}
	bg, err := decodeBounded(bgBytes, c.maxPixels)
	if err != nil {
		return Result{}, fmt.Errorf("background: %w", err)
	}

	var logo image.Image
	if data := c.resolveLogo(ctx, req); data != nil {
		if logo, err = prepareLogo(data); err != nil {
			c.logger.Warn().Err(err).
				Str("post_id", req.PostID).
				Str("plan_id", req.PlanID).
				Msg("render: logo unusable, using monogram")
			logo = nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	plan := planOverlay(req, fc, sc, logo != nil)
	overlay, err := drawOverlay(plan, c.fonts)
	if err != nil {
		return Result{}, err
	}

	canvas := imaging.Resize(bg, fc.Width, fc.Height, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, overlay, image.Pt(0, 0), 1.0)
	if logo != nil {
		canvas = imaging.Overlay(canvas, logo, image.Pt(plan.LogoX, plan.LogoY), 1.0)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return Result{}, fmt.Errorf("encode: %w", err)
	}

	key := OutputKey(req.PostID, req.PlanID, c.stamps.next())
	saved, err := c.store.Write(ctx, key, buf.Bytes())
	if err != nil {
		return Result{}, fmt.Errorf("persist: %w", err)
	}
	return Result{
		Status:     StatusRendered,
		Ref:        c.store.URL(saved),
		StorageKey: saved,
		Width:      fc.Width,
		Height:     fc.Height,
		Bytes:      int64(buf.Len()),
	}, nil
}

// decodeBounded reads the image header first and refuses to decode images
// whose declared dimensions exceed maxPixels, so a small compressed file
// cannot force a huge allocation.
func decodeBounded(data []byte, maxPixels int64) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("decode config: empty image")
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func (c *Composer) logFallback(req Request, err error) {
	c.logger.Error().Err(err).
		Str("post_id", req.PostID).
		Str("plan_id", req.PlanID).
		Str("background_url", req.BackgroundURL).
		Msg("render: falling back to background")
}

var unsafeSegment = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// PostDir is the storage prefix holding every render of a post.
func PostDir(postID string) string {
	return "generated/" + segment(postID, "unassigned")
}

// OutputKey names the artifact of one render under its post's directory.
func OutputKey(postID, planID string, stamp int64) string {
	return fmt.Sprintf("%s/visual_%s_%d.png", PostDir(postID), segment(planID, "plan"), stamp)
}

func segment(s, fallback string) string {
	s = strings.Trim(unsafeSegment.ReplaceAllString(strings.TrimSpace(s), "-"), "-")
	if s == "" {
		return fallback
	}
	return s
}

// stampClock yields strictly increasing millisecond stamps so two renders
// of the same plan never share a file name.
type stampClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func (s *stampClock) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.now().UnixMilli()
	if v <= s.last {
		v = s.last + 1
	}
	s.last = v
	return v
}

var _ Renderer = (*Composer)(nil)
