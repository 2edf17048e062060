package domain

import (
	"encoding/json"
	"testing"
)

const samplePlans = `[
  {
    "id": "idea_1",
    "format": "IG_POST",
    "title": "Main Hook Visual",
    "style": "LIFESTYLE",
    "composition": "High-end minimalist aesthetic.",
    "text_overlay": {"headline": "Struggling with retail?", "sub": "Revolutionizing the industry.", "cta": "VIEW MORE"},
    "image_prompt": "A lifestyle shot",
    "backgroundUrl": "https://images.example.com/bg.jpg",
    "status": "PENDING"
  }
]`

func TestVisualPlanPreservesUnknownFields(t *testing.T) {
	var plans []VisualPlan
	if err := json.Unmarshal([]byte(samplePlans), &plans); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected 1 plan, got %d", len(plans))
	}
	p := plans[0]
	if p.ID != "idea_1" || p.Format != "IG_POST" || p.Style != "LIFESTYLE" || p.Status != PlanStatusPending {
		t.Fatalf("unexpected plan %+v", p)
	}
	if p.TextOverlay.Headline != "Struggling with retail?" || p.TextOverlay.CTA != "VIEW MORE" {
		t.Fatalf("unexpected overlay %+v", p.TextOverlay)
	}

	p.Status = PlanStatusRendered
	p.FinalURL = "/generated/post/visual_idea_1_1.png"
	p.RenderStatus = "rendered"
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(out, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	for key, want := range map[string]any{
		"title":        "Main Hook Visual",
		"composition":  "High-end minimalist aesthetic.",
		"image_prompt": "A lifestyle shot",
		"status":       "RENDERED",
		"finalUrl":     "/generated/post/visual_idea_1_1.png",
		"renderStatus": "rendered",
	} {
		if generic[key] != want {
			t.Fatalf("%s = %v, want %v", key, generic[key], want)
		}
	}
	if _, ok := generic["renderError"]; ok {
		t.Fatal("empty renderError should be omitted")
	}
	if raw, ok := p.Extra("title"); !ok || string(raw) != `"Main Hook Visual"` {
		t.Fatalf("Extra(title) = %s, %v", raw, ok)
	}
}

func TestVisualPlanDefaultsStatusToPending(t *testing.T) {
	out, err := json.Marshal(VisualPlan{ID: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	_ = json.Unmarshal(out, &generic)
	if generic["status"] != "PENDING" {
		t.Fatalf("status = %v", generic["status"])
	}
}

func TestVisualPlanRejectsWrongTypes(t *testing.T) {
	var p VisualPlan
	if err := json.Unmarshal([]byte(`{"id": 42}`), &p); err == nil {
		t.Fatal("expected error for numeric id")
	}
}

func TestBrandInitial(t *testing.T) {
	tests := map[string]string{
		"acme corp": "A",
		"  zeta":    "Z",
		"":          "",
		"   ":       "",
		"éclat":     "É",
	}
	for in, want := range tests {
		if got := BrandInitial(in); got != want {
			t.Fatalf("BrandInitial(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJobStatusTerminal(t *testing.T) {
	if JobStatusQueued.Terminal() || JobStatusRunning.Terminal() {
		t.Fatal("queued/running are not terminal")
	}
	if !JobStatusSucceeded.Terminal() || !JobStatusFailed.Terminal() {
		t.Fatal("succeeded/failed are terminal")
	}
}
