package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hushplay/hushplay_server/internal/models"
)

const commentColumns = `id, video_id, user_id, content, likes, parent_id, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.Id,
		&c.VideoID,
		&c.UserID,
		&c.Content,
		&c.Likes,
		&c.ParentID,
		&c.Created_At,
		&c.Updated_At,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (pg *PostgresStorage) GetComment(id int64) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1`, commentColumns)

	comment, err := scanComment(pg.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get comment query: %w", err)
	}
	return comment, nil
}

func (pg *PostgresStorage) GetCommentsByVideo(videoID int64) ([]models.Comment, error) {
	query := fmt.Sprintf(`
	SELECT %s FROM comments
	WHERE video_id = $1
	ORDER BY created_at DESC`, commentColumns)

	rows, err := pg.db.Query(query, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over comment rows: %w", err)
	}
	return comments, nil
}

func (pg *PostgresStorage) CreateComment(params CreateCommentParams) (*models.Comment, error) {
	query := `
	INSERT INTO comments (video_id, user_id, content, parent_id)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + commentColumns

	comment, err := scanComment(pg.db.QueryRow(query, params.VideoID, params.UserID, params.Content, params.ParentID))
	if err != nil {
		return nil, fmt.Errorf("error running create comment query: %w", err)
	}
	return comment, nil
}

func (pg *PostgresStorage) GetSubscription(id int64) (*models.Subscription, error) {
	query := `SELECT id, subscriber_id, channel_id, created_at FROM subscriptions WHERE id = $1`

	var s models.Subscription
	err := pg.db.QueryRow(query, id).Scan(&s.Id, &s.SubscriberID, &s.ChannelID, &s.Created_At)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get subscription query: %w", err)
	}
	return &s, nil
}

func (pg *PostgresStorage) GetSubscriptionsByUser(userID int64) ([]models.Subscription, error) {
	query := `SELECT id, subscriber_id, channel_id, created_at FROM subscriptions WHERE subscriber_id = $1 ORDER BY id`

	rows, err := pg.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.Id, &s.SubscriberID, &s.ChannelID, &s.Created_At); err != nil {
			return nil, fmt.Errorf("failed to scan subscription row: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over subscription rows: %w", err)
	}
	return subs, nil
}

func (pg *PostgresStorage) CreateSubscription(subscriberID, channelID int64) (*models.Subscription, error) {
	query := `
	INSERT INTO subscriptions (subscriber_id, channel_id)
	VALUES ($1, $2)
	RETURNING id, subscriber_id, channel_id, created_at`

	var s models.Subscription
	err := pg.db.QueryRow(query, subscriberID, channelID).Scan(&s.Id, &s.SubscriberID, &s.ChannelID, &s.Created_At)
	if err != nil {
		return nil, fmt.Errorf("error running create subscription query: %w", err)
	}

	// counter bump for the channel owner; a separate write after the join row
	bump := `
	UPDATE users
	SET subscriber_count = subscriber_count + 1, updated_at = NOW()
	WHERE id = (SELECT user_id FROM channels WHERE id = $1)`

	if _, err := pg.db.Exec(bump, channelID); err != nil {
		return nil, fmt.Errorf("error bumping subscriber count: %w", err)
	}

	return &s, nil
}

func (pg *PostgresStorage) GetLikedVideo(id int64) (*models.LikedVideo, error) {
	query := `SELECT id, user_id, video_id, created_at FROM liked_videos WHERE id = $1`

	var l models.LikedVideo
	err := pg.db.QueryRow(query, id).Scan(&l.Id, &l.UserID, &l.VideoID, &l.Created_At)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get liked video query: %w", err)
	}
	return &l, nil
}

func (pg *PostgresStorage) GetLikedVideosByUser(userID int64) ([]models.LikedVideo, error) {
	query := `SELECT id, user_id, video_id, created_at FROM liked_videos WHERE user_id = $1 ORDER BY id`

	rows, err := pg.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get liked videos: %w", err)
	}
	defer rows.Close()

	liked := []models.LikedVideo{}
	for rows.Next() {
		var l models.LikedVideo
		if err := rows.Scan(&l.Id, &l.UserID, &l.VideoID, &l.Created_At); err != nil {
			return nil, fmt.Errorf("failed to scan liked video row: %w", err)
		}
		liked = append(liked, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over liked video rows: %w", err)
	}
	return liked, nil
}

func (pg *PostgresStorage) CreateLikedVideo(userID, videoID int64) (*models.LikedVideo, error) {
	query := `
	INSERT INTO liked_videos (user_id, video_id)
	VALUES ($1, $2)
	RETURNING id, user_id, video_id, created_at`

	var l models.LikedVideo
	err := pg.db.QueryRow(query, userID, videoID).Scan(&l.Id, &l.UserID, &l.VideoID, &l.Created_At)
	if err != nil {
		return nil, fmt.Errorf("error running create liked video query: %w", err)
	}

	bump := `UPDATE videos SET likes = likes + 1, updated_at = NOW() WHERE id = $1`
	if _, err := pg.db.Exec(bump, videoID); err != nil {
		return nil, fmt.Errorf("error bumping like count: %w", err)
	}

	return &l, nil
}

func (pg *PostgresStorage) GetVideoHistory(id int64) (*models.VideoHistory, error) {
	query := `SELECT id, user_id, video_id, viewed_at, watch_duration FROM video_history WHERE id = $1`

	var h models.VideoHistory
	err := pg.db.QueryRow(query, id).Scan(&h.Id, &h.UserID, &h.VideoID, &h.ViewedAt, &h.WatchDuration)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get video history query: %w", err)
	}
	return &h, nil
}

func (pg *PostgresStorage) GetVideoHistoryByUser(userID int64) ([]models.VideoHistory, error) {
	query := `
	SELECT id, user_id, video_id, viewed_at, watch_duration
	FROM video_history
	WHERE user_id = $1
	ORDER BY viewed_at DESC`

	rows, err := pg.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get video history: %w", err)
	}
	defer rows.Close()

	history := []models.VideoHistory{}
	for rows.Next() {
		var h models.VideoHistory
		if err := rows.Scan(&h.Id, &h.UserID, &h.VideoID, &h.ViewedAt, &h.WatchDuration); err != nil {
			return nil, fmt.Errorf("failed to scan video history row: %w", err)
		}
		history = append(history, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video history rows: %w", err)
	}
	return history, nil
}

func (pg *PostgresStorage) CreateVideoHistory(userID, videoID int64, watchDuration int) (*models.VideoHistory, error) {
	query := `
	INSERT INTO video_history (user_id, video_id, watch_duration)
	VALUES ($1, $2, $3)
	RETURNING id, user_id, video_id, viewed_at, watch_duration`

	var h models.VideoHistory
	err := pg.db.QueryRow(query, userID, videoID, watchDuration).Scan(&h.Id, &h.UserID, &h.VideoID, &h.ViewedAt, &h.WatchDuration)
	if err != nil {
		return nil, fmt.Errorf("error running create video history query: %w", err)
	}
	return &h, nil
}
