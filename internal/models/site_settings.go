package models

import "time"

// SiteSettings is a singleton row; its id is always 1.
type SiteSettings struct {
	Id               int64     `json:"id"`
	AdsEnabled       bool      `json:"ads_enabled"`
	DefaultAdURL     string    `json:"default_ad_url"`
	AdStartTime      int       `json:"ad_start_time"`
	AdSkippableAfter int       `json:"ad_skippable_after"`
	Theme            string    `json:"theme"`
	Updated_At       time.Time `json:"updated_at"`
}
