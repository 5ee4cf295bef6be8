package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"wistiamirror/internal/domain"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) EnsureTag(ctx context.Context, name string) (*domain.Tag, error) {
	tag := &domain.Tag{Name: name}
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&tag.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if errors.Is(err, sql.ErrNoRows) {
		if err := r.DB.QueryRowContext(ctx, `INSERT INTO tags (name) VALUES ($1) RETURNING id`, name).Scan(&tag.ID); err != nil {
			var perr *pq.Error
			if errors.As(err, &perr) && perr.Code == "23505" {
				return nil, domain.ErrDuplicateTagName
			}
			return nil, err
		}
	}
	return tag, nil
}

func (r *tagRepository) SetVideoTags(ctx context.Context, videoID string, tagIDs []string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM video_tags WHERE video_id = $1`, videoID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := r.DB.ExecContext(ctx, `INSERT INTO video_tags (video_id, tag_id) VALUES ($1, $2) ON CONFLICT (video_id, tag_id) DO NOTHING`, videoID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *tagRepository) AddVideoTag(ctx context.Context, videoID, tagID string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO video_tags (video_id, tag_id) VALUES ($1, $2) ON CONFLICT (video_id, tag_id) DO NOTHING`, videoID, tagID)
	return err
}

func (r *tagRepository) ListTagsByVideoID(ctx context.Context, videoID string) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name FROM tags t
		 JOIN video_tags vt ON vt.tag_id = t.id
		 WHERE vt.video_id = $1
		 ORDER BY t.name`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}
