package render

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"contentplanner/internal/render/layout"
)

// resolveLogo picks the logo bytes for a request: inline bytes, then a data
// URL, then a remote fetch. A failed fetch is not fatal and is not retried;
// the caller draws the monogram instead.
func (c *Composer) resolveLogo(ctx context.Context, req Request) []byte {
	if len(req.LogoBytes) > 0 {
		return req.LogoBytes
	}
	if strings.TrimSpace(req.LogoData) != "" {
		data, err := decodeDataURL(req.LogoData)
		if err != nil {
			c.logger.Warn().Err(err).
				Str("post_id", req.PostID).
				Str("plan_id", req.PlanID).
				Msg("render: inline logo unreadable, using monogram")
			return nil
		}
		return data
	}
	if strings.TrimSpace(req.LogoURL) == "" {
		return nil
	}
	data, err := c.fetcher.Fetch(ctx, req.LogoURL)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("post_id", req.PostID).
			Str("plan_id", req.PlanID).
			Str("logo_url", req.LogoURL).
			Msg("render: logo fetch failed, using monogram")
		return nil
	}
	return data
}

// decodeDataURL extracts the payload of a base64 data URL. A bare base64
// string without the data: header is accepted as well.
func decodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	payload := s
	if strings.HasPrefix(strings.ToLower(s), "data:") {
		idx := strings.IndexByte(s, ',')
		if idx < 0 {
			return nil, errors.New("logo: data url without payload")
		}
		if !strings.Contains(strings.ToLower(s[:idx]), ";base64") {
			return nil, errors.New("logo: data url is not base64 encoded")
		}
		payload = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, fmt.Errorf("logo: decode base64: %w", err)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("logo: empty payload")
	}
	return data, nil
}

// prepareLogo decodes a logo and fits it inside the logo box, padding with
// transparency so the aspect ratio is kept.
func prepareLogo(data []byte) (image.Image, error) {
	img, err := decodeBounded(data, maxLogoPixels)
	if err != nil {
		return nil, fmt.Errorf("logo: %w", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.New("logo: empty image")
	}
	scale := math.Min(float64(layout.LogoSize)/float64(b.Dx()), float64(layout.LogoSize)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))
	fitted := imaging.Resize(img, w, h, imaging.Lanczos)
	box := imaging.New(layout.LogoSize, layout.LogoSize, color.NRGBA{})
	return imaging.PasteCenter(box, fitted), nil
}
