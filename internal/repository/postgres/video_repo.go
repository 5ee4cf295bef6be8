package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"wistiamirror/internal/domain"
)

type videoRepository struct {
	DB *sql.DB
}

// NewVideoRepository returns a domain.VideoRepository implemented with Postgres.
func NewVideoRepository(db *sql.DB) domain.VideoRepository {
	return &videoRepository{
		DB: db,
	}
}

func (r *videoRepository) Create(ctx context.Context, v *domain.Video) error {
	query := `
		INSERT INTO videos (wistia_hashed_id, title, thumbnail_url, created_at, duration, plays, visible)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		v.WistiaHashedID, v.Title, v.ThumbnailURL, v.CreatedAt, v.Duration, v.Plays, v.Visible,
	).Scan(&v.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return errors.New("video already exists for hashed id " + v.WistiaHashedID)
		}
		return err
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `
		SELECT id, wistia_hashed_id, title, thumbnail_url, created_at, duration, plays, visible
		FROM videos
		WHERE id = $1
	`
	v := &domain.Video{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.WistiaHashedID, &v.Title, &v.ThumbnailURL, &v.CreatedAt, &v.Duration, &v.Plays, &v.Visible,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tags, err := r.tagsByVideoID(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.Tags = tags
	return v, nil
}

func (r *videoRepository) List(ctx context.Context, includeHidden bool) ([]*domain.Video, error) {
	query := `
		SELECT id, wistia_hashed_id, title, thumbnail_url, created_at, duration, plays, visible
		FROM videos
	`
	if !includeHidden {
		query += ` WHERE visible = true`
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*domain.Video
	for rows.Next() {
		v := &domain.Video{}
		if err := rows.Scan(
			&v.ID, &v.WistiaHashedID, &v.Title, &v.ThumbnailURL, &v.CreatedAt, &v.Duration, &v.Plays, &v.Visible,
		); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, v := range videos {
		tags, err := r.tagsByVideoID(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Tags = tags
	}
	return videos, nil
}

func (r *videoRepository) UpdateSyncedFields(ctx context.Context, id, title string, plays int) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE videos SET title = $2, plays = $3 WHERE id = $1`, id, title, plays)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *videoRepository) UpdateVisibility(ctx context.Context, id string, visible bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE videos SET visible = $2 WHERE id = $1`, id, visible)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *videoRepository) tagsByVideoID(ctx context.Context, videoID string) ([]*domain.Tag, error) {
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
