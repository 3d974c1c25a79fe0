package models

import "time"

type LikedVideo struct {
	Id         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	VideoID    int64     `json:"video_id"`
	Created_At time.Time `json:"created_at"`
}
