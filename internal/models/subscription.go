package models

import "time"

type Subscription struct {
	Id           int64     `json:"id"`
	SubscriberID int64     `json:"subscriber_id"`
	ChannelID    int64     `json:"channel_id"`
	Created_At   time.Time `json:"created_at"`
}
