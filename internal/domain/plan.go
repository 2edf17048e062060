package domain

import (
	"encoding/json"
	"fmt"
)

// PlanStatus is the lifecycle of a visual plan: PENDING until a render pass
// has run, RENDERED afterwards.
type PlanStatus string

const (
	PlanStatusPending  PlanStatus = "PENDING"
	PlanStatusRendered PlanStatus = "RENDERED"
)

// TextOverlay is the copy drawn on a visual.
type TextOverlay struct {
	Headline string `json:"headline"`
	Sub      string `json:"sub"`
	CTA      string `json:"cta"`
}

// VisualPlan is one entry of a post's image ideas. Plans are produced by the
// content generator and carry fields the renderer does not know about
// (title, composition, image_prompt, ...); those are kept verbatim across a
// decode/encode round trip.
type VisualPlan struct {
	ID            string
	Format        string
	Style         string
	BackgroundURL string
	TextOverlay   TextOverlay
	Status        PlanStatus
	FinalURL      string
	// RenderStatus is "rendered" or "fallback" once a render pass ran.
	RenderStatus string
	RenderError  string

	extra map[string]json.RawMessage
}

var planKnownKeys = []string{
	"id", "format", "style", "backgroundUrl", "text_overlay",
	"status", "finalUrl", "renderStatus", "renderError",
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *VisualPlan) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := []struct {
		key  string
		dest any
	}{
		{"id", &p.ID},
		{"format", &p.Format},
		{"style", &p.Style},
		{"backgroundUrl", &p.BackgroundURL},
		{"text_overlay", &p.TextOverlay},
		{"status", &p.Status},
		{"finalUrl", &p.FinalURL},
		{"renderStatus", &p.RenderStatus},
		{"renderError", &p.RenderError},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, f.dest); err != nil {
			return fmt.Errorf("visual plan %s: %w", f.key, err)
		}
	}
	for _, k := range planKnownKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		p.extra = raw
	} else {
		p.extra = nil
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p VisualPlan) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.extra)+len(planKnownKeys))
	for k, v := range p.extra {
		out[k] = v
	}
	out["id"] = p.ID
	out["format"] = p.Format
	out["style"] = p.Style
	out["backgroundUrl"] = p.BackgroundURL
	out["text_overlay"] = p.TextOverlay
	status := p.Status
	if status == "" {
		status = PlanStatusPending
	}
	out["status"] = status
	if p.FinalURL != "" {
		out["finalUrl"] = p.FinalURL
	}
	if p.RenderStatus != "" {
		out["renderStatus"] = p.RenderStatus
	}
	if p.RenderError != "" {
		out["renderError"] = p.RenderError
	}
	return json.Marshal(out)
}

// Extra returns the raw value of a field the plan does not model.
func (p VisualPlan) Extra(key string) (json.RawMessage, bool) {
	v, ok := p.extra[key]
	return v, ok
}
