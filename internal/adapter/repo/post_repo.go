package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contentplanner/internal/domain"
	"contentplanner/internal/infra"
	"contentplanner/internal/sqlinline"
)

// PostRepositoryPG implements domain.PostRepository.
type PostRepositoryPG struct {
	db infra.SQLExecutor
}

// NewPostRepository creates a post repository backed by PostgreSQL.
func NewPostRepository(db infra.SQLExecutor) *PostRepositoryPG {
	return &PostRepositoryPG{db: db}
}

// LoadRenderContext reads a post with its company, brand kit and content
// plan in one round trip.
func (r *PostRepositoryPG) LoadRenderContext(ctx context.Context, postID string) (*domain.RenderContext, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, domain.ErrNotFound
	}
	var (
		rc          domain.RenderContext
		companyName string
		scheduledAt *time.Time
		hasBrand    bool
		brand       domain.BrandProfile
		hasOutput   bool
		briefJSON   []byte
		caption     string
		hashtagJSON []byte
		ideasJSON   []byte
		version     int
	)
	row := r.db.QueryRow(ctx, sqlinline.QSelectRenderContext, postID)
	if err := row.Scan(
		&rc.Post.ID,
		&rc.Post.CompanyID,
		&companyName,
		&rc.Post.Title,
		&rc.Post.Platform,
		&rc.Post.PostType,
		&scheduledAt,
		&hasBrand,
		&brand.PrimaryColor,
		&brand.SecondaryColor,
		&brand.AccentColor,
		&brand.FontFamily,
		&brand.LogoURL,
		&brand.Language,
		&hasOutput,
		&briefJSON,
		&caption,
		&hashtagJSON,
		&ideasJSON,
		&version,
	); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load render context: %w", err)
	}
	rc.Post.ScheduledAt = scheduledAt

	if hasBrand {
		brand.CompanyID = rc.Post.CompanyID
		brand.CompanyName = companyName
		rc.Brand = &brand
	}
	if hasOutput {
		out := domain.ContentOutput{PrimaryCaption: caption, Version: version}
		if err := decodeJSON(briefJSON, &out.Brief); err != nil {
			return nil, fmt.Errorf("decode internal brief: %w", err)
		}
		if err := decodeJSON(hashtagJSON, &out.Hashtags); err != nil {
			return nil, fmt.Errorf("decode hashtags: %w", err)
		}
		if err := decodeJSON(ideasJSON, &out.Plans); err != nil {
			return nil, fmt.Errorf("decode image ideas: %w", err)
		}
		rc.Output = &out
	}
	return &rc, nil
}

// SavePlans replaces the stored image ideas of a post and bumps the content
// version.
func (r *PostRepositoryPG) SavePlans(ctx context.Context, postID string, plans []domain.VisualPlan) error {
	if plans == nil {
		plans = []domain.VisualPlan{}
	}
	payload, err := json.Marshal(plans)
	if err != nil {
		return fmt.Errorf("encode image ideas: %w", err)
	}
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateImageIdeas, postID, payload)
	if err != nil {
		return fmt.Errorf("save image ideas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// decodeJSON tolerates empty columns; the app has stored both jsonb and
// JSON-encoded text in these fields.
func decodeJSON(raw []byte, dest any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		raw = []byte(s)
	}
	return json.Unmarshal(raw, dest)
}

var _ domain.PostRepository = (*PostRepositoryPG)(nil)
