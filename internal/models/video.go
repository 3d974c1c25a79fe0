package models

import "time"

type Video struct {
	Id            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	FilePath      string    `json:"file_path"`
	ThumbnailPath string    `json:"thumbnail_path"`
	Duration      int       `json:"duration"`
	Views         int       `json:"views"`
	Likes         int       `json:"likes"`
	Dislikes      int       `json:"dislikes"`
	Categories    []string  `json:"categories"`
	Tags          []string  `json:"tags"`
	IsQuickie     bool      `json:"is_quickie"`
	IsPublished   bool      `json:"is_published"`
	HasAds        bool      `json:"has_ads"`
	AdURL         *string   `json:"ad_url"`
	AdStartTime   *int      `json:"ad_start_time"`
	AdSkippable   *bool     `json:"ad_skippable"`
	Created_At    time.Time `json:"created_at"`
	Updated_At    time.Time `json:"updated_at"`
}
