package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/security"
)

// MemoryStorage keeps everything in maps guarded by a single mutex. Ids come
// from per-entity counters. Intended for development and tests; nothing is
// persisted.
type MemoryStorage struct {
	mu sync.RWMutex

	users         map[int64]*models.User
	channels      map[int64]*models.Channel
	videos        map[int64]*models.Video
	comments      map[int64]*models.Comment
	subscriptions map[int64]*models.Subscription
	likedVideos   map[int64]*models.LikedVideo
	videoHistory  map[int64]*models.VideoHistory
	siteSettings  *models.SiteSettings

	nextUserID         int64
	nextChannelID      int64
	nextVideoID        int64
	nextCommentID      int64
	nextSubscriptionID int64
	nextLikedVideoID   int64
	nextHistoryID      int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:         make(map[int64]*models.User),
		channels:      make(map[int64]*models.Channel),
		videos:        make(map[int64]*models.Video),
		comments:      make(map[int64]*models.Comment),
		subscriptions: make(map[int64]*models.Subscription),
		likedVideos:   make(map[int64]*models.LikedVideo),
		videoHistory:  make(map[int64]*models.VideoHistory),
	}
}

func copyUser(u *models.User) *models.User {
	cp := *u
	return &cp
}

func copyVideo(v *models.Video) *models.Video {
	cp := *v
	cp.Categories = append([]string(nil), v.Categories...)
	cp.Tags = append([]string(nil), v.Tags...)
	return &cp
}

// ---- users ----

func (m *MemoryStorage) GetUser(id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (m *MemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (m *MemoryStorage) GetUserByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.userByEmailLocked(email), nil
}

func (m *MemoryStorage) userByEmailLocked(email string) *models.User {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u)
		}
	}
	return nil
}

func (m *MemoryStorage) GetAllUsers() ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (m *MemoryStorage) CreateUser(params CreateUserParams) (*models.User, error) {
	hash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextUserID++
	now := time.Now()
	user := &models.User{
		Id:           m.nextUserID,
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
	m.users[user.Id] = user
	return copyUser(user), nil
}

func (m *MemoryStorage) UpdateUser(id int64, params UpdateUserParams) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
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
	return copyUser(u), nil
}

// dummyHash keeps the bcrypt comparison on the unknown-email path so both
// failure cases take comparable time.
var dummyHash, _ = security.HashPassword("hushplay-dummy-credential")

func (m *MemoryStorage) AuthenticateUser(email, password string) (*models.User, error) {
	m.mu.RLock()
	user := m.userByEmailLocked(email)
	m.mu.RUnlock()

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

func (m *MemoryStorage) GetChannel(id int64) (*models.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ch, ok := m.channels[id]
	if !ok {
		return nil, nil
	}
	cp := *ch
	return &cp, nil
}

func (m *MemoryStorage) GetChannelsByUser(userID int64) ([]models.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	channels := []models.Channel{}
	for _, ch := range m.channels {
		if ch.UserID == userID {
			channels = append(channels, *ch)
		}
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i].Id < channels[j].Id })
	return channels, nil
}

func (m *MemoryStorage) CreateChannel(params CreateChannelParams) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextChannelID++
	now := time.Now()
	ch := &models.Channel{
		Id:          m.nextChannelID,
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		BannerImage: params.BannerImage,
		Created_At:  now,
		Updated_At:  now,
	}
	m.channels[ch.Id] = ch
	cp := *ch
	return &cp, nil
}

func (m *MemoryStorage) UpdateChannel(id int64, params UpdateChannelParams) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.channels[id]
	if !ok {
		return nil, nil
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
	cp := *ch
	return &cp, nil
}

// ---- videos ----

func (m *MemoryStorage) GetVideo(id int64) (*models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.videos[id]
	if !ok {
		return nil, nil
	}
	return copyVideo(v), nil
}

func (m *MemoryStorage) publishedVideosLocked() []models.Video {
	videos := []models.Video{}
	for _, v := range m.videos {
		if v.IsPublished {
			videos = append(videos, *copyVideo(v))
		}
	}
	return videos
}

func (m *MemoryStorage) GetVideos(limit, offset int) ([]models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	videos := m.publishedVideosLocked()
	sort.Slice(videos, func(i, j int) bool { return videos[i].Created_At.After(videos[j].Created_At) })

	if offset >= len(videos) {
		return []models.Video{}, nil
	}
	videos = videos[offset:]
	if limit > 0 && limit < len(videos) {
		videos = videos[:limit]
	}
	return videos, nil
}

func (m *MemoryStorage) GetVideosByUser(userID int64) ([]models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	videos := []models.Video{}
	for _, v := range m.videos {
		if v.UserID == userID {
			videos = append(videos, *copyVideo(v))
		}
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Created_At.After(videos[j].Created_At) })
	return videos, nil
}

func (m *MemoryStorage) GetRecentVideos(limit int) ([]models.Video, error) {
	return m.GetVideos(limit, 0)
}

func (m *MemoryStorage) GetTrendingVideos(limit int) ([]models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	videos := m.publishedVideosLocked()
	sort.Slice(videos, func(i, j int) bool {
		if videos[i].Views != videos[j].Views {
			return videos[i].Views > videos[j].Views
		}
		return videos[i].Created_At.After(videos[j].Created_At)
	})
	if limit > 0 && limit < len(videos) {
		videos = videos[:limit]
	}
	return videos, nil
}

func (m *MemoryStorage) GetQuickies(limit int) ([]models.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	videos := []models.Video{}
	for _, v := range m.videos {
		if v.IsPublished && v.IsQuickie {
			videos = append(videos, *copyVideo(v))
		}
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].Created_At.After(videos[j].Created_At) })
	if limit > 0 && limit < len(videos) {
		videos = videos[:limit]
	}
	return videos, nil
}

func (m *MemoryStorage) CreateVideo(params CreateVideoParams) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextVideoID++
	now := time.Now()
	v := &models.Video{
		Id:            m.nextVideoID,
		UserID:        params.UserID,
		Title:         params.Title,
		Description:   params.Description,
		FilePath:      params.FilePath,
		ThumbnailPath: params.ThumbnailPath,
		Duration:      params.Duration,
		Categories:    append([]string(nil), params.Categories...),
		Tags:          append([]string(nil), params.Tags...),
		IsQuickie:     params.IsQuickie,
		IsPublished:   params.IsPublished,
		Created_At:    now,
		Updated_At:    now,
	}
	m.videos[v.Id] = v
	return copyVideo(v), nil
}

func (m *MemoryStorage) UpdateVideo(id int64, params UpdateVideoParams) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.videos[id]
	if !ok {
		return nil, nil
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
		v.Categories = append([]string(nil), (*params.Categories)...)
	}
	if params.Tags != nil {
		v.Tags = append([]string(nil), (*params.Tags)...)
	}
	if params.IsQuickie != nil {
		v.IsQuickie = *params.IsQuickie
	}
	if params.IsPublished != nil {
		v.IsPublished = *params.IsPublished
	}
	v.Updated_At = time.Now()
	return copyVideo(v), nil
}

func (m *MemoryStorage) DeleteVideo(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.videos[id]; !ok {
		return false, nil
	}
	delete(m.videos, id)

	for cid, c := range m.comments {
		if c.VideoID == id {
			delete(m.comments, cid)
		}
	}
	for lid, l := range m.likedVideos {
		if l.VideoID == id {
			delete(m.likedVideos, lid)
		}
	}
	for hid, h := range m.videoHistory {
		if h.VideoID == id {
			delete(m.videoHistory, hid)
		}
	}
	return true, nil
}

func (m *MemoryStorage) IncrementVideoViews(id int64) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.videos[id]
	if !ok {
		return nil, nil
	}
	v.Views++
	v.Updated_At = time.Now()
	return copyVideo(v), nil
}

func (m *MemoryStorage) ToggleVideoAds(id int64, hasAds bool, adURL *string, adStartTime *int, adSkippable *bool) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.videos[id]
	if !ok {
		return nil, nil
	}
	v.HasAds = hasAds
	v.AdURL = adURL
	v.AdStartTime = adStartTime
	v.AdSkippable = adSkippable
	v.Updated_At = time.Now()
	return copyVideo(v), nil
}

// ---- comments ----

func (m *MemoryStorage) GetComment(id int64) (*models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryStorage) GetCommentsByVideo(videoID int64) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	comments := []models.Comment{}
	for _, c := range m.comments {
		if c.VideoID == videoID {
			comments = append(comments, *c)
		}
	}
	// newest first
	sort.Slice(comments, func(i, j int) bool { return comments[i].Created_At.After(comments[j].Created_At) })
	return comments, nil
}

func (m *MemoryStorage) CreateComment(params CreateCommentParams) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextCommentID++
	now := time.Now()
	c := &models.Comment{
		Id:         m.nextCommentID,
		VideoID:    params.VideoID,
		UserID:     params.UserID,
		Content:    params.Content,
		ParentID:   params.ParentID,
		Created_At: now,
		Updated_At: now,
	}
	m.comments[c.Id] = c
	cp := *c
	return &cp, nil
}

// ---- subscriptions ----

func (m *MemoryStorage) GetSubscription(id int64) (*models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.subscriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStorage) GetSubscriptionsByUser(userID int64) ([]models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subs := []models.Subscription{}
	for _, s := range m.subscriptions {
		if s.SubscriberID == userID {
			subs = append(subs, *s)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].Id < subs[j].Id })
	return subs, nil
}

func (m *MemoryStorage) CreateSubscription(subscriberID, channelID int64) (*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSubscriptionID++
	s := &models.Subscription{
		Id:           m.nextSubscriptionID,
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		Created_At:   time.Now(),
	}
	m.subscriptions[s.Id] = s

	// counter bump for the channel owner; a separate write after the join row
	if ch, ok := m.channels[channelID]; ok {
		if owner, ok := m.users[ch.UserID]; ok {
			owner.SubscriberCount++
			owner.Updated_At = time.Now()
		}
	}

	cp := *s
	return &cp, nil
}

// ---- liked videos ----

func (m *MemoryStorage) GetLikedVideo(id int64) (*models.LikedVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.likedVideos[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *MemoryStorage) GetLikedVideosByUser(userID int64) ([]models.LikedVideo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	liked := []models.LikedVideo{}
	for _, l := range m.likedVideos {
		if l.UserID == userID {
			liked = append(liked, *l)
		}
	}
	sort.Slice(liked, func(i, j int) bool { return liked[i].Id < liked[j].Id })
	return liked, nil
}

func (m *MemoryStorage) CreateLikedVideo(userID, videoID int64) (*models.LikedVideo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextLikedVideoID++
	l := &models.LikedVideo{
		Id:         m.nextLikedVideoID,
		UserID:     userID,
		VideoID:    videoID,
		Created_At: time.Now(),
	}
	m.likedVideos[l.Id] = l

	if v, ok := m.videos[videoID]; ok {
		v.Likes++
		v.Updated_At = time.Now()
	}

	cp := *l
	return &cp, nil
}

// ---- video history ----

func (m *MemoryStorage) GetVideoHistory(id int64) (*models.VideoHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.videoHistory[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (m *MemoryStorage) GetVideoHistoryByUser(userID int64) ([]models.VideoHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := []models.VideoHistory{}
	for _, h := range m.videoHistory {
		if h.UserID == userID {
			history = append(history, *h)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].ViewedAt.After(history[j].ViewedAt) })
	return history, nil
}

func (m *MemoryStorage) CreateVideoHistory(userID, videoID int64, watchDuration int) (*models.VideoHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextHistoryID++
	h := &models.VideoHistory{
		Id:            m.nextHistoryID,
		UserID:        userID,
		VideoID:       videoID,
		ViewedAt:      time.Now(),
		WatchDuration: watchDuration,
	}
	m.videoHistory[h.Id] = h
	cp := *h
	return &cp, nil
}

// ---- site settings ----

func (m *MemoryStorage) GetSiteSettings() (*models.SiteSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.siteSettings == nil {
		return defaultSiteSettings(), nil
	}
	cp := *m.siteSettings
	return &cp, nil
}

func (m *MemoryStorage) UpdateSiteSettings(params UpdateSiteSettingsParams) (*models.SiteSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.siteSettings == nil {
		m.siteSettings = defaultSiteSettings()
	}
	applySiteSettings(m.siteSettings, params)
	cp := *m.siteSettings
	return &cp, nil
}

func defaultSiteSettings() *models.SiteSettings {
	return &models.SiteSettings{
		Id:               1,
		AdsEnabled:       false,
		DefaultAdURL:     "",
		AdStartTime:      0,
		AdSkippableAfter: 5,
		Theme:            "dark",
		Updated_At:       time.Now(),
	}
}

func applySiteSettings(s *models.SiteSettings, params UpdateSiteSettingsParams) {
	if params.AdsEnabled != nil {
		s.AdsEnabled = *params.AdsEnabled
	}
	if params.DefaultAdURL != nil {
		s.DefaultAdURL = *params.DefaultAdURL
	}
	if params.AdStartTime != nil {
		s.AdStartTime = *params.AdStartTime
	}
	if params.AdSkippableAfter != nil {
		s.AdSkippableAfter = *params.AdSkippableAfter
	}
	if params.Theme != nil {
		s.Theme = *params.Theme
	}
	s.Updated_At = time.Now()
}
