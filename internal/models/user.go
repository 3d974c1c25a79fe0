package models

import "time"

type User struct {
	Id              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	DisplayName     string    `json:"display_name"`
	ProfileImage    string    `json:"profile_image"`
	Bio             string    `json:"bio"`
	IsAdmin         bool      `json:"is_admin"`
	IsBanned        bool      `json:"is_banned"`
	SubscriberCount int       `json:"subscriber_count"`
	Created_At      time.Time `json:"created_at"`
	Updated_At      time.Time `json:"updated_at"`
}
