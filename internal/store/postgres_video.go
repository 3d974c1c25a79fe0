package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgtype"

	"github.com/hushplay/hushplay_server/internal/models"
)

const videoColumns = `id, user_id, title, description, file_path, thumbnail_path, duration, views, likes, dislikes, categories, tags, is_quickie, is_published, has_ads, ad_url, ad_start_time, ad_skippable, created_at, updated_at`

func scanPGVideo(row interface{ Scan(...any) error }) (*models.Video, error) {
	var v models.Video
	var categories, tags pgtype.TextArray

	err := row.Scan(
		&v.Id,
		&v.UserID,
		&v.Title,
		&v.Description,
		&v.FilePath,
		&v.ThumbnailPath,
		&v.Duration,
		&v.Views,
		&v.Likes,
		&v.Dislikes,
		&categories,
		&tags,
		&v.IsQuickie,
		&v.IsPublished,
		&v.HasAds,
		&v.AdURL,
		&v.AdStartTime,
		&v.AdSkippable,
		&v.Created_At,
		&v.Updated_At,
	)
	if err != nil {
		return nil, err
	}

	v.Categories = stringSlice(categories)
	v.Tags = stringSlice(tags)
	return &v, nil
}

func (pg *PostgresStorage) queryVideos(query string, args ...any) ([]models.Video, error) {
	rows, err := pg.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()

	videos := []models.Video{}
	for rows.Next() {
		v, err := scanPGVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video rows: %w", err)
	}
	return videos, nil
}

func (pg *PostgresStorage) GetVideo(id int64) (*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)

	video, err := scanPGVideo(pg.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get video query: %w", err)
	}
	return video, nil
}

func (pg *PostgresStorage) GetVideos(limit, offset int) ([]models.Video, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM videos
	WHERE is_published = true
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`, videoColumns)

	return pg.queryVideos(query, limit, offset)
}

func (pg *PostgresStorage) GetVideosByUser(userID int64) ([]models.Video, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM videos
	WHERE user_id = $1
	ORDER BY created_at DESC`, videoColumns)

	return pg.queryVideos(query, userID)
}

func (pg *PostgresStorage) GetRecentVideos(limit int) ([]models.Video, error) {
	return pg.GetVideos(limit, 0)
}

func (pg *PostgresStorage) GetTrendingVideos(limit int) ([]models.Video, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM videos
	WHERE is_published = true
	ORDER BY views DESC, created_at DESC
	LIMIT $1`, videoColumns)

	return pg.queryVideos(query, limit)
}

func (pg *PostgresStorage) GetQuickies(limit int) ([]models.Video, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM videos
	WHERE is_published = true AND is_quickie = true
	ORDER BY created_at DESC
	LIMIT $1`, videoColumns)

	return pg.queryVideos(query, limit)
}

func (pg *PostgresStorage) CreateVideo(params CreateVideoParams) (*models.Video, error) {
	query := `
	INSERT INTO videos (user_id, title, description, file_path, thumbnail_path, duration, categories, tags, is_quickie, is_published)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + videoColumns

	video, err := scanPGVideo(pg.db.QueryRow(query,
		params.UserID,
		params.Title,
		params.Description,
		params.FilePath,
		params.ThumbnailPath,
		params.Duration,
		textArray(params.Categories),
		textArray(params.Tags),
		params.IsQuickie,
		params.IsPublished,
	))
	if err != nil {
		return nil, fmt.Errorf("error running create video query: %w", err)
	}
	return video, nil
}

func (pg *PostgresStorage) UpdateVideo(id int64, params UpdateVideoParams) (*models.Video, error) {
	var categories, tags any
	if params.Categories != nil {
		categories = textArray(*params.Categories)
	}
	if params.Tags != nil {
		tags = textArray(*params.Tags)
	}

	query := `
	UPDATE videos
	SET title = COALESCE($2, title),
	    description = COALESCE($3, description),
	    thumbnail_path = COALESCE($4, thumbnail_path),
	    categories = COALESCE($5, categories),
	    tags = COALESCE($6, tags),
	    is_quickie = COALESCE($7, is_quickie),
	    is_published = COALESCE($8, is_published),
	    updated_at = NOW()
	WHERE id = $1
	RETURNING ` + videoColumns

	video, err := scanPGVideo(pg.db.QueryRow(query, id,
		params.Title,
		params.Description,
		params.ThumbnailPath,
		categories,
		tags,
		params.IsQuickie,
		params.IsPublished,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running update video query: %w", err)
	}
	return video, nil
}

func (pg *PostgresStorage) DeleteVideo(id int64) (bool, error) {
	tx, err := pg.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// dependent rows first; the schema cascades too but the contract is explicit
	for _, query := range []string{
		`DELETE FROM comments WHERE video_id = $1`,
		`DELETE FROM liked_videos WHERE video_id = $1`,
		`DELETE FROM video_history WHERE video_id = $1`,
	} {
		if _, err := tx.Exec(query, id); err != nil {
			return false, fmt.Errorf("failed to delete video dependents: %w", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete video: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return affected > 0, nil
}

// IncrementVideoViews runs a single SQL increment expression, so concurrent
// requests never lose updates.
func (pg *PostgresStorage) IncrementVideoViews(id int64) (*models.Video, error) {
	query := `
	UPDATE videos
	SET views = views + 1, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + videoColumns

	video, err := scanPGVideo(pg.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running increment views query: %w", err)
	}
	return video, nil
}

func (pg *PostgresStorage) ToggleVideoAds(id int64, hasAds bool, adURL *string, adStartTime *int, adSkippable *bool) (*models.Video, error) {
	query := `
	UPDATE videos
	SET has_ads = $2, ad_url = $3, ad_start_time = $4, ad_skippable = $5, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + videoColumns

	video, err := scanPGVideo(pg.db.QueryRow(query, id, hasAds, adURL, adStartTime, adSkippable))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running toggle video ads query: %w", err)
	}
	return video, nil
}
