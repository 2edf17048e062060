// Package planrender turns a post's visual plans into rendered images and
// records the results.
package planrender

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"contentplanner/internal/domain"
	"contentplanner/internal/render"
)

const (
	assetFileType = "image/png"
	assetVersion  = 1
)

// Options wires a Service.
type Options struct {
	Posts    domain.PostRepository
	Assets   domain.PostAssetRepository
	Jobs     domain.RenderJobRepository
	Renderer render.Renderer
	Logger   zerolog.Logger
	// Concurrency bounds parallel renders within one post. Values below 2
	// render plans one after another.
	Concurrency int
}

// Service orchestrates render passes over visual plans.
type Service struct {
	posts       domain.PostRepository
	assets      domain.PostAssetRepository
	jobs        domain.RenderJobRepository
	renderer    render.Renderer
	logger      zerolog.Logger
	concurrency int
}

// NewService validates opts and builds a Service. Jobs may be nil when only
// synchronous rendering is used.
func NewService(opts Options) (*Service, error) {
	if opts.Posts == nil {
		return nil, errors.New("planrender: post repository is required")
	}
	if opts.Assets == nil {
		return nil, errors.New("planrender: asset repository is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("planrender: renderer is required")
	}
	return &Service{
		posts:       opts.Posts,
		assets:      opts.Assets,
		jobs:        opts.Jobs,
		renderer:    opts.Renderer,
		logger:      opts.Logger,
		concurrency: max(opts.Concurrency, 1),
	}, nil
}

// Outcome is the result of rendering every plan of a post.
type Outcome struct {
	PostID    string              `json:"post_id"`
	Plans     []domain.VisualPlan `json:"ideas"`
	Assets    []domain.PostAsset  `json:"assets"`
	Rendered  int                 `json:"rendered"`
	Fallbacks int                 `json:"fallbacks"`
}

// RenderPost renders all visual plans of postID, stores the updated plans and
// records an asset for every plan that produced a new image. A plan whose
// render fell back still ends up RENDERED with the background as final URL;
// RenderStatus tells the two apart.
func (s *Service) RenderPost(ctx context.Context, postID string) (*Outcome, error) {
	rc, err := s.loadRenderable(ctx, postID)
	if err != nil {
		return nil, err
	}
	plans := append([]domain.VisualPlan(nil), rc.Output.Plans...)
	results := make([]render.Result, len(plans))

	if s.concurrency <= 1 || len(plans) == 1 {
		for i := range plans {
			results[i] = s.renderer.Render(ctx, buildRequest(rc, plans[i]))
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.concurrency)
		for i := range plans {
			g.Go(func() error {
				results[i] = s.renderer.Render(gctx, buildRequest(rc, plans[i]))
				return nil
			})
		}
		_ = g.Wait()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &Outcome{PostID: rc.Post.ID, Plans: plans}
	for i := range plans {
		res := results[i]
		applyResult(&plans[i], res)
		if !res.Rendered() {
			out.Fallbacks++
			continue
		}
		out.Rendered++
		out.Assets = append(out.Assets, domain.PostAsset{
			PostID:   rc.Post.ID,
			FileName: fmt.Sprintf("visual_%s.png", plans[i].ID),
			FileURL:  res.Ref,
			FileType: assetFileType,
			Version:  assetVersion,
		})
	}

	if len(out.Assets) > 0 {
		if err := s.assets.CreateMany(ctx, out.Assets); err != nil {
			return nil, fmt.Errorf("record post assets: %w", err)
		}
	}
	if err := s.posts.SavePlans(ctx, rc.Post.ID, plans); err != nil {
		return nil, fmt.Errorf("save visual plans: %w", err)
	}

	s.logger.Info().
		Str("post_id", rc.Post.ID).
		Int("plans", len(plans)).
		Int("rendered", out.Rendered).
		Int("fallbacks", out.Fallbacks).
		Msg("planrender: post rendered")
	return out, nil
}

// loadRenderable loads the render context and checks the preconditions of a
// render pass.
func (s *Service) loadRenderable(ctx context.Context, postID string) (*domain.RenderContext, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, domain.ErrNotFound
	}
	rc, err := s.posts.LoadRenderContext(ctx, postID)
	if err != nil {
		return nil, err
	}
	if rc.Brand == nil {
		return nil, domain.ErrBrandProfileRequired
	}
	if rc.Output == nil {
		return nil, domain.ErrContentNotFound
	}
	if len(rc.Output.Plans) == 0 {
		return nil, domain.ErrNoVisualPlans
	}
	return rc, nil
}

func applyResult(plan *domain.VisualPlan, res render.Result) {
	plan.FinalURL = res.Ref
	plan.Status = domain.PlanStatusRendered
	plan.RenderStatus = string(res.Status)
	plan.RenderError = res.Reason
}

// buildRequest maps a plan and the brand kit onto a render request. Empty
// brand fields are left empty; the composer applies the product defaults.
func buildRequest(rc *domain.RenderContext, plan domain.VisualPlan) render.Request {
	brand := rc.Brand
	return render.Request{
		PostID:        rc.Post.ID,
		PlanID:        plan.ID,
		Format:        plan.Format,
		Style:         plan.Style,
		BackgroundURL: plan.BackgroundURL,
		LogoURL:       brand.LogoURL,
		Headline:      plan.TextOverlay.Headline,
		Subtitle:      plan.TextOverlay.Sub,
		CTA:           plan.TextOverlay.CTA,
		Colors: render.BrandColors{
			Primary:   brand.PrimaryColor,
			Secondary: brand.SecondaryColor,
			Accent:    brand.AccentColor,
		},
		FontFamily:   brand.FontFamily,
		BrandInitial: domain.BrandInitial(brand.CompanyName),
		Locale:       brand.Language,
	}
}

// PostAssets lists the rendered files recorded for a post, oldest first.
func (s *Service) PostAssets(ctx context.Context, postID string) ([]domain.PostAsset, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, domain.ErrNotFound
	}
	if _, err := s.posts.LoadRenderContext(ctx, postID); err != nil {
		return nil, err
	}
	assets, err := s.assets.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list post assets: %w", err)
	}
	return assets, nil
}
