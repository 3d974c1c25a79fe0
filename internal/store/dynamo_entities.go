package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/security"
)

// ---- users ----

func (d *DynamoStorage) GetUser(id int64) (*models.User, error) {
	var u models.User
	ok, err := d.getItem(dynamoUsersTable, id, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (d *DynamoStorage) allUsers() ([]models.User, error) {
	items, err := d.scanAll(dynamoUsersTable)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := attributevalue.UnmarshalListOfMaps(items, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal users: %w", err)
	}
	return users, nil
}

func (d *DynamoStorage) GetUserByUsername(username string) (*models.User, error) {
	users, err := d.allUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (d *DynamoStorage) GetUserByEmail(email string) (*models.User, error) {
	users, err := d.allUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (d *DynamoStorage) GetAllUsers() ([]models.User, error) {
	users, err := d.allUsers()
	if err != nil {
		return nil, err
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (d *DynamoStorage) CreateUser(params CreateUserParams) (*models.User, error) {
	hash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	id, err := d.nextID(dynamoUsersTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := models.User{
		Id:           id,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
		DisplayName:  params.DisplayName,
		ProfileImage: params.ProfileImage,
		Bio:          params.Bio,
		IsAdmin:      params.IsAdmin,
		Created_At:   now,
		Updated_At:   now,
	}
	if err := d.putItem(dynamoUsersTable, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DynamoStorage) UpdateUser(id int64, params UpdateUserParams) (*models.User, error) {
	var u models.User
	ok, err := d.getItem(dynamoUsersTable, id, &u)
	if err != nil || !ok {
		return nil, err
	}

	if params.DisplayName != nil {
		u.DisplayName = *params.DisplayName
	}
	if params.ProfileImage != nil {
		u.ProfileImage = *params.ProfileImage
	}
	if params.Bio != nil {
		u.Bio = *params.Bio
	}
	if params.IsBanned != nil {
		u.IsBanned = *params.IsBanned
	}
	u.Updated_At = time.Now()

	if err := d.putItem(dynamoUsersTable, u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *DynamoStorage) AuthenticateUser(email, password string) (*models.User, error) {
	user, err := d.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		security.CheckPasswordHash(password, dummyHash)
		return nil, nil
	}
	if !security.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// ---- channels ----

func (d *DynamoStorage) GetChannel(id int64) (*models.Channel, error) {
	var ch models.Channel
	ok, err := d.getItem(dynamoChannelsTable, id, &ch)
	if err != nil || !ok {
		return nil, err
	}
	return &ch, nil
}

func (d *DynamoStorage) GetChannelsByUser(userID int64) ([]models.Channel, error) {
	items, err := d.scanAll(dynamoChannelsTable)
	if err != nil {
		return nil, err
	}
	all := []models.Channel{}
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal channels: %w", err)
	}

	channels := []models.Channel{}
	for _, ch := range all {
		if ch.UserID == userID {
			channels = append(channels, ch)
		}
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].Id < channels[j].Id })
	return channels, nil
}

func (d *DynamoStorage) CreateChannel(params CreateChannelParams) (*models.Channel, error) {
	id, err := d.nextID(dynamoChannelsTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ch := models.Channel{
		Id:          id,
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		BannerImage: params.BannerImage,
		Created_At:  now,
		Updated_At:  now,
	}
	if err := d.putItem(dynamoChannelsTable, ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (d *DynamoStorage) UpdateChannel(id int64, params UpdateChannelParams) (*models.Channel, error) {
	var ch models.Channel
	ok, err := d.getItem(dynamoChannelsTable, id, &ch)
	if err != nil || !ok {
		return nil, err
	}

	if params.Name != nil {
		ch.Name = *params.Name
	}
	if params.Description != nil {
		ch.Description = *params.Description
	}
	if params.BannerImage != nil {
		ch.BannerImage = *params.BannerImage
	}
	ch.Updated_At = time.Now()

	if err := d.putItem(dynamoChannelsTable, ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// ---- videos ----

func (d *DynamoStorage) GetVideo(id int64) (*models.Video, error) {
	var v models.Video
	ok, err := d.getItem(dynamoVideosTable, id, &v)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func (d *DynamoStorage) allVideos() ([]models.Video, error) {
	items, err := d.scanAll(dynamoVideosTable)
	if err != nil {
		return nil, err
	}
	videos := []models.Video{}
	if err := attributevalue.UnmarshalListOfMaps(items, &videos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal videos: %w", err)
	}
	return videos, nil
}

func (d *DynamoStorage) publishedVideos() ([]models.Video, error) {
	all, err := d.allVideos()
	if err != nil {
		return nil, err
	}
	videos := []models.Video{}
	for _, v := range all {
		if v.IsPublished {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func limitVideos(videos []models.Video, limit int) []models.Video {
	if limit > 0 && limit < len(videos) {
		return videos[:limit]
	}
	return videos
}

func (d *DynamoStorage) GetVideos(limit, offset int) ([]models.Video, error) {
	videos, err := d.publishedVideos()
	if err != nil {
		return nil, err
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Created_At.After(videos[j].Created_At) })

	if offset >= len(videos) {
		return []models.Video{}, nil
	}
	return limitVideos(videos[offset:], limit), nil
}

func (d *DynamoStorage) GetVideosByUser(userID int64) ([]models.Video, error) {
	all, err := d.allVideos()
	if err != nil {
		return nil, err
	}
	videos := []models.Video{}
	for _, v := range all {
		if v.UserID == userID {
			videos = append(videos, v)
		}
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Created_At.After(videos[j].Created_At) })
	return videos, nil
}

func (d *DynamoStorage) GetRecentVideos(limit int) ([]models.Video, error) {
	return d.GetVideos(limit, 0)
}

func (d *DynamoStorage) GetTrendingVideos(limit int) ([]models.Video, error) {
	videos, err := d.publishedVideos()
	if err != nil {
		return nil, err
	}
	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Views != videos[j].Views {
			return videos[i].Views > videos[j].Views
		}
		return videos[i].Created_At.After(videos[j].Created_At)
	})
	return limitVideos(videos, limit), nil
}

func (d *DynamoStorage) GetQuickies(limit int) ([]models.Video, error) {
	all, err := d.publishedVideos()
	if err != nil {
		return nil, err
	}
	videos := []models.Video{}
	for _, v := range all {
		if v.IsQuickie {
			videos = append(videos, v)
		}
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Created_At.After(videos[j].Created_At) })
	return limitVideos(videos, limit), nil
}

func (d *DynamoStorage) CreateVideo(params CreateVideoParams) (*models.Video, error) {
	id, err := d.nextID(dynamoVideosTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	v := models.Video{
		Id:            id,
		UserID:        params.UserID,
		Title:         params.Title,
		Description:   params.Description,
		FilePath:      params.FilePath,
		ThumbnailPath: params.ThumbnailPath,
		Duration:      params.Duration,
		Categories:    append([]string{}, params.Categories...),
		Tags:          append([]string{}, params.Tags...),
		IsQuickie:     params.IsQuickie,
		IsPublished:   params.IsPublished,
		Created_At:    now,
		Updated_At:    now,
	}
	if err := d.putItem(dynamoVideosTable, v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DynamoStorage) UpdateVideo(id int64, params UpdateVideoParams) (*models.Video, error) {
	var v models.Video
	ok, err := d.getItem(dynamoVideosTable, id, &v)
	if err != nil || !ok {
		return nil, err
	}

	if params.Title != nil {
		v.Title = *params.Title
	}
	if params.Description != nil {
		v.Description = *params.Description
	}
	if params.ThumbnailPath != nil {
		v.ThumbnailPath = *params.ThumbnailPath
	}
	if params.Categories != nil {
		v.Categories = append([]string{}, (*params.Categories)...)
	}
	if params.Tags != nil {
		v.Tags = append([]string{}, (*params.Tags)...)
	}
	if params.IsQuickie != nil {
		v.IsQuickie = *params.IsQuickie
	}
	if params.IsPublished != nil {
		v.IsPublished = *params.IsPublished
	}
	v.Updated_At = time.Now()

	if err := d.putItem(dynamoVideosTable, v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DynamoStorage) DeleteVideo(id int64) (bool, error) {
	var v models.Video
	ok, err := d.getItem(dynamoVideosTable, id, &v)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := d.deleteItem(dynamoVideosTable, id); err != nil {
		return false, err
	}

	comments, err := d.GetCommentsByVideo(id)
	if err != nil {
		return false, err
	}
	for _, c := range comments {
		if err := d.deleteItem(dynamoCommentsTable, c.Id); err != nil {
			return false, err
		}
	}

	likedItems, err := d.scanAll(dynamoLikedVideosTable)
	if err != nil {
		return false, err
	}
	liked := []models.LikedVideo{}
	if err := attributevalue.UnmarshalListOfMaps(likedItems, &liked); err != nil {
		return false, fmt.Errorf("failed to unmarshal liked videos: %w", err)
	}
	for _, l := range liked {
		if l.VideoID == id {
			if err := d.deleteItem(dynamoLikedVideosTable, l.Id); err != nil {
				return false, err
			}
		}
	}

	historyItems, err := d.scanAll(dynamoVideoHistoryTable)
	if err != nil {
		return false, err
	}
	history := []models.VideoHistory{}
	if err := attributevalue.UnmarshalListOfMaps(historyItems, &history); err != nil {
		return false, fmt.Errorf("failed to unmarshal video history: %w", err)
	}
	for _, h := range history {
		if h.VideoID == id {
			if err := d.deleteItem(dynamoVideoHistoryTable, h.Id); err != nil {
				return false, err
			}
		}
	}

	return true, nil
}

// IncrementVideoViews is read-then-write here; concurrent increments can lose
// updates. The relational backend's single UPDATE expression is the safe
// variant.
func (d *DynamoStorage) IncrementVideoViews(id int64) (*models.Video, error) {
	var v models.Video
	ok, err := d.getItem(dynamoVideosTable, id, &v)
	if err != nil || !ok {
		return nil, err
	}

	v.Views++
	v.Updated_At = time.Now()

	if err := d.putItem(dynamoVideosTable, v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *DynamoStorage) ToggleVideoAds(id int64, hasAds bool, adURL *string, adStartTime *int, adSkippable *bool) (*models.Video, error) {
	var v models.Video
	ok, err := d.getItem(dynamoVideosTable, id, &v)
	if err != nil || !ok {
		return nil, err
	}

	v.HasAds = hasAds
	v.AdURL = adURL
	v.AdStartTime = adStartTime
	v.AdSkippable = adSkippable
	v.Updated_At = time.Now()

	if err := d.putItem(dynamoVideosTable, v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ---- comments ----

func (d *DynamoStorage) GetComment(id int64) (*models.Comment, error) {
	var c models.Comment
	ok, err := d.getItem(dynamoCommentsTable, id, &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (d *DynamoStorage) GetCommentsByVideo(videoID int64) ([]models.Comment, error) {
	items, err := d.scanAll(dynamoCommentsTable)
	if err != nil {
		return nil, err
	}
	all := []models.Comment{}
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
	}

	comments := []models.Comment{}
	for _, c := range all {
		if c.VideoID == videoID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created_At.After(comments[j].Created_At) })
	return comments, nil
}

func (d *DynamoStorage) CreateComment(params CreateCommentParams) (*models.Comment, error) {
	id, err := d.nextID(dynamoCommentsTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := models.Comment{
		Id:         id,
		VideoID:    params.VideoID,
		UserID:     params.UserID,
		Content:    params.Content,
		ParentID:   params.ParentID,
		Created_At: now,
		Updated_At: now,
	}
	if err := d.putItem(dynamoCommentsTable, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ---- subscriptions ----

func (d *DynamoStorage) GetSubscription(id int64) (*models.Subscription, error) {
	var s models.Subscription
	ok, err := d.getItem(dynamoSubscriptionsTable, id, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (d *DynamoStorage) GetSubscriptionsByUser(userID int64) ([]models.Subscription, error) {
	items, err := d.scanAll(dynamoSubscriptionsTable)
	if err != nil {
		return nil, err
	}
	all := []models.Subscription{}
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subscriptions: %w", err)
	}

	subs := []models.Subscription{}
	for _, s := range all {
		if s.SubscriberID == userID {
			subs = append(subs, s)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Id < subs[j].Id })
	return subs, nil
}

func (d *DynamoStorage) CreateSubscription(subscriberID, channelID int64) (*models.Subscription, error) {
	id, err := d.nextID(dynamoSubscriptionsTable)
	if err != nil {
		return nil, err
	}

	s := models.Subscription{
		Id:           id,
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		Created_At:   time.Now(),
	}
	if err := d.putItem(dynamoSubscriptionsTable, s); err != nil {
		return nil, err
	}

	// counter bump for the channel owner; a separate write after the join row
	channel, err := d.GetChannel(channelID)
	if err != nil {
		return nil, err
	}
	if channel != nil {
		owner, err := d.GetUser(channel.UserID)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			owner.SubscriberCount++
			owner.Updated_At = time.Now()
			if err := d.putItem(dynamoUsersTable, *owner); err != nil {
				return nil, err
			}
		}
	}

	return &s, nil
}

// ---- liked videos ----

func (d *DynamoStorage) GetLikedVideo(id int64) (*models.LikedVideo, error) {
	var l models.LikedVideo
	ok, err := d.getItem(dynamoLikedVideosTable, id, &l)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

func (d *DynamoStorage) GetLikedVideosByUser(userID int64) ([]models.LikedVideo, error) {
	items, err := d.scanAll(dynamoLikedVideosTable)
	if err != nil {
		return nil, err
	}
	all := []models.LikedVideo{}
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal liked videos: %w", err)
	}

	liked := []models.LikedVideo{}
	for _, l := range all {
		if l.UserID == userID {
			liked = append(liked, l)
		}
	}
	sort.Slice(liked, func(i, j int) bool { return liked[i].Id < liked[j].Id })
	return liked, nil
}

func (d *DynamoStorage) CreateLikedVideo(userID, videoID int64) (*models.LikedVideo, error) {
	id, err := d.nextID(dynamoLikedVideosTable)
	if err != nil {
		return nil, err
	}

	l := models.LikedVideo{
		Id:         id,
		UserID:     userID,
		VideoID:    videoID,
		Created_At: time.Now(),
	}
	if err := d.putItem(dynamoLikedVideosTable, l); err != nil {
		return nil, err
	}

	video, err := d.GetVideo(videoID)
	if err != nil {
		return nil, err
	}
	if video != nil {
		video.Likes++
		video.Updated_At = time.Now()
		if err := d.putItem(dynamoVideosTable, *video); err != nil {
			return nil, err
		}
	}

	return &l, nil
}

// ---- video history ----

func (d *DynamoStorage) GetVideoHistory(id int64) (*models.VideoHistory, error) {
	var h models.VideoHistory
	ok, err := d.getItem(dynamoVideoHistoryTable, id, &h)
	if err != nil || !ok {
		return nil, err
	}
	return &h, nil
}

func (d *DynamoStorage) GetVideoHistoryByUser(userID int64) ([]models.VideoHistory, error) {
	items, err := d.scanAll(dynamoVideoHistoryTable)
	if err != nil {
		return nil, err
	}
	all := []models.VideoHistory{}
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video history: %w", err)
	}

	history := []models.VideoHistory{}
	for _, h := range all {
		if h.UserID == userID {
			history = append(history, h)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].ViewedAt.After(history[j].ViewedAt) })
	return history, nil
}

func (d *DynamoStorage) CreateVideoHistory(userID, videoID int64, watchDuration int) (*models.VideoHistory, error) {
	id, err := d.nextID(dynamoVideoHistoryTable)
	if err != nil {
		return nil, err
	}

	h := models.VideoHistory{
		Id:            id,
		UserID:        userID,
		VideoID:       videoID,
		ViewedAt:      time.Now(),
		WatchDuration: watchDuration,
	}
	if err := d.putItem(dynamoVideoHistoryTable, h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ---- site settings ----

func (d *DynamoStorage) GetSiteSettings() (*models.SiteSettings, error) {
	var s models.SiteSettings
	ok, err := d.getItem(dynamoSiteSettingsTable, 1, &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return defaultSiteSettings(), nil
	}
	return &s, nil
}

func (d *DynamoStorage) UpdateSiteSettings(params UpdateSiteSettingsParams) (*models.SiteSettings, error) {
	var s models.SiteSettings
	ok, err := d.getItem(dynamoSiteSettingsTable, 1, &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		s = *defaultSiteSettings()
	}

	applySiteSettings(&s, params)

	if err := d.putItem(dynamoSiteSettingsTable, s); err != nil {
		return nil, err
	}
	return &s, nil
}
