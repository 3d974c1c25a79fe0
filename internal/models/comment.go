package models

import "time"

type Comment struct {
	Id      int64  `json:"id"`
	VideoID int64  `json:"video_id"`
	UserID  int64  `json:"user_id"`
	Content string `json:"content"`
	Likes   int    `json:"likes"`
	// ParentID is an optional parent reference; replies are stored flat and no
	// tree structure is enforced.
	ParentID   *int64    `json:"parent_id"`
	Created_At time.Time `json:"created_at"`
	Updated_At time.Time `json:"updated_at"`
}
