package planrender

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"contentplanner/internal/domain"
	"contentplanner/internal/render"
	"contentplanner/pkg/zip"
)

// ArtifactSource lists and reads rendered files.
type ArtifactSource interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Read(ctx context.Context, key string) ([]byte, error)
}

// Export is a downloadable bundle of a post: copy, schedule and visuals.
type Export struct {
	FileName string
	Archive  []byte
}

type scheduleFile struct {
	PostID      string     `json:"postId"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	Platform    string     `json:"platform"`
	PostType    string     `json:"postType"`
	Title       string     `json:"title"`
}

// ExportPost bundles the caption, hashtags, brief and schedule of a post with
// every rendered image stored for it.
func (s *Service) ExportPost(ctx context.Context, postID string, src ArtifactSource) (*Export, error) {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, domain.ErrNotFound
	}
	rc, err := s.posts.LoadRenderContext(ctx, postID)
	if err != nil {
		return nil, err
	}
	if rc.Output == nil {
		return nil, domain.ErrContentNotFound
	}
	out := rc.Output

	schedule, err := json.MarshalIndent(scheduleFile{
		PostID:      rc.Post.ID,
		ScheduledAt: rc.Post.ScheduledAt,
		Platform:    rc.Post.Platform,
		PostType:    rc.Post.PostType,
		Title:       rc.Post.Title,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	brief := fmt.Sprintf("HOOK: %s\nKEY MESSAGE: %s\nCTA: %s", out.Brief.Hook, out.Brief.KeyMessage, out.Brief.CTA)

	entries := []zip.Entry{
		{Name: "caption.txt", Data: []byte(out.PrimaryCaption)},
		{Name: "hashtags.txt", Data: []byte(strings.Join(out.Hashtags, ", "))},
		{Name: "brief.txt", Data: []byte(brief)},
		{Name: "schedule.json", Data: schedule},
	}

	if src != nil {
		keys, err := src.List(ctx, render.PostDir(rc.Post.ID))
		if err != nil {
			s.logger.Warn().Err(err).Str("post_id", rc.Post.ID).Msg("planrender: list rendered visuals")
		}
		for _, key := range keys {
			ext := strings.ToLower(path.Ext(key))
			if ext != ".png" && ext != ".jpg" {
				continue
			}
			data, err := src.Read(ctx, key)
			if err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("planrender: skip unreadable visual")
				continue
			}
			entries = append(entries, zip.Entry{Name: "visuals/" + path.Base(key), Data: data})
		}
	}

	archive, err := zip.Archive(entries)
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName: fmt.Sprintf("post_export_%s.zip", rc.Post.ID),
		Archive:  archive,
	}, nil
}
