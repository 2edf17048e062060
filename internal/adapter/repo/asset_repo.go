package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentplanner/internal/domain"
	"contentplanner/internal/infra"
	"contentplanner/internal/sqlinline"
)

// AssetRepositoryPG implements domain.PostAssetRepository.
type AssetRepositoryPG struct {
	db infra.SQLExecutor
}

// NewAssetRepository constructs a post asset repository.
func NewAssetRepository(db infra.SQLExecutor) *AssetRepositoryPG {
	return &AssetRepositoryPG{db: db}
}

// CreateMany inserts assets in a single statement, assigning ids and
// creation times in place. Either every asset is stored or none is.
func (r *AssetRepositoryPG) CreateMany(ctx context.Context, assets []domain.PostAsset) error {
	if len(assets) == 0 {
		return nil
	}
	var (
		ids      = make([]string, len(assets))
		postIDs  = make([]string, len(assets))
		names    = make([]string, len(assets))
		urls     = make([]string, len(assets))
		types    = make([]string, len(assets))
		versions = make([]int32, len(assets))
		byID     = make(map[string]*domain.PostAsset, len(assets))
	)
	for i := range assets {
		a := &assets[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Version == 0 {
			a.Version = 1
		}
		ids[i], postIDs[i], names[i], urls[i], types[i] = a.ID, a.PostID, a.FileName, a.FileURL, a.FileType
		versions[i] = int32(a.Version)
		byID[a.ID] = a
	}

	rows, err := r.db.Query(ctx, sqlinline.QInsertPostAssets, ids, postIDs, names, urls, types, versions)
	if err != nil {
		return fmt.Errorf("insert post assets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id      string
			created time.Time
		)
		if err := rows.Scan(&id, &created); err != nil {
			return fmt.Errorf("insert post assets: %w", err)
		}
		if a, ok := byID[id]; ok {
			a.CreatedAt = created
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("insert post assets: %w", err)
	}
	return nil
}

// ListByPost returns the assets of a post, oldest first.
func (r *AssetRepositoryPG) ListByPost(ctx context.Context, postID string) ([]domain.PostAsset, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListPostAssets, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.PostAsset
	for rows.Next() {
		var a domain.PostAsset
		if err := rows.Scan(&a.ID, &a.PostID, &a.FileName, &a.FileURL, &a.FileType, &a.Version, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

var _ domain.PostAssetRepository = (*AssetRepositoryPG)(nil)
