package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hushplay/hushplay_server/internal/models"
)

const channelColumns = `id, user_id, name, description, banner_image, created_at, updated_at`

func scanChannel(row interface{ Scan(...any) error }) (*models.Channel, error) {
	var ch models.Channel
	err := row.Scan(
		&ch.Id,
		&ch.UserID,
		&ch.Name,
		&ch.Description,
		&ch.BannerImage,
		&ch.Created_At,
		&ch.Updated_At,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (pg *PostgresStorage) GetChannel(id int64) (*models.Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM channels WHERE id = $1`, channelColumns)

	channel, err := scanChannel(pg.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get channel query: %w", err)
	}
	return channel, nil
}

func (pg *PostgresStorage) GetChannelsByUser(userID int64) ([]models.Channel, error) {
	query := fmt.Sprintf(`SELECT %s FROM channels WHERE user_id = $1 ORDER BY id`, channelColumns)

	rows, err := pg.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	defer rows.Close()

	channels := []models.Channel{}
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, *ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over channel rows: %w", err)
	}
	return channels, nil
}

func (pg *PostgresStorage) CreateChannel(params CreateChannelParams) (*models.Channel, error) {
	query := `
	INSERT INTO channels (user_id, name, description, banner_image)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + channelColumns

	channel, err := scanChannel(pg.db.QueryRow(query, params.UserID, params.Name, params.Description, params.BannerImage))
	if err != nil {
		return nil, fmt.Errorf("error running create channel query: %w", err)
	}
	return channel, nil
}

func (pg *PostgresStorage) UpdateChannel(id int64, params UpdateChannelParams) (*models.Channel, error) {
	query := `
	UPDATE channels
	SET name = COALESCE($2, name),
	    description = COALESCE($3, description),
	    banner_image = COALESCE($4, banner_image),
	    updated_at = NOW()
	WHERE id = $1
	RETURNING ` + channelColumns

	channel, err := scanChannel(pg.db.QueryRow(query, id, params.Name, params.Description, params.BannerImage))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running update channel query: %w", err)
	}
	return channel, nil
}

const siteSettingsColumns = `id, ads_enabled, default_ad_url, ad_start_time, ad_skippable_after, theme, updated_at`

func scanSiteSettings(row interface{ Scan(...any) error }) (*models.SiteSettings, error) {
	var s models.SiteSettings
	err := row.Scan(
		&s.Id,
		&s.AdsEnabled,
		&s.DefaultAdURL,
		&s.AdStartTime,
		&s.AdSkippableAfter,
		&s.Theme,
		&s.Updated_At,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (pg *PostgresStorage) GetSiteSettings() (*models.SiteSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM site_settings WHERE id = 1`, siteSettingsColumns)

	settings, err := scanSiteSettings(pg.db.QueryRow(query))
	if errors.Is(err, sql.ErrNoRows) {
		return defaultSiteSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get site settings query: %w", err)
	}
	return settings, nil
}

func (pg *PostgresStorage) UpdateSiteSettings(params UpdateSiteSettingsParams) (*models.SiteSettings, error) {
	defaults := defaultSiteSettings()

	// upsert against the fixed singleton row
	query := `
	INSERT INTO site_settings (id, ads_enabled, default_ad_url, ad_start_time, ad_skippable_after, theme, updated_at)
	VALUES (1, COALESCE($1, $6), COALESCE($2, $7), COALESCE($3, $8), COALESCE($4, $9), COALESCE($5, $10), NOW())
	ON CONFLICT (id) DO UPDATE
	SET ads_enabled = COALESCE($1, site_settings.ads_enabled),
	    default_ad_url = COALESCE($2, site_settings.default_ad_url),
	    ad_start_time = COALESCE($3, site_settings.ad_start_time),
	    ad_skippable_after = COALESCE($4, site_settings.ad_skippable_after),
	    theme = COALESCE($5, site_settings.theme),
	    updated_at = NOW()
	RETURNING ` + siteSettingsColumns

	settings, err := scanSiteSettings(pg.db.QueryRow(query,
		params.AdsEnabled,
		params.DefaultAdURL,
		params.AdStartTime,
		params.AdSkippableAfter,
		params.Theme,
		defaults.AdsEnabled,
		defaults.DefaultAdURL,
		defaults.AdStartTime,
		defaults.AdSkippableAfter,
		defaults.Theme,
	))
	if err != nil {
		return nil, fmt.Errorf("error running update site settings query: %w", err)
	}
	return settings, nil
}
