package models

import "time"

// VideoHistory is an append-only log entry. Every video detail view appends a
// fresh record; entries are never de-duplicated.
type VideoHistory struct {
	Id            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	VideoID       int64     `json:"video_id"`
	ViewedAt      time.Time `json:"viewed_at"`
	WatchDuration int       `json:"watch_duration"`
}
