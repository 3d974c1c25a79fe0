package store

import (
	"fmt"
	"log"
	"os"

	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/migrations"
)

// Storage is the single contract every backend implements. The concrete
// implementation is chosen once at startup (see NewStorageFromEnv) and handed
// to every component that needs it; nothing else in the codebase knows which
// backend is running.
//
// Reads return (nil, nil) when the entity does not exist. A non-nil error
// always means the backend itself failed, never "not found". List operations
// return an empty slice when nothing matches.
type Storage interface {
	GetUser(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	CreateUser(params CreateUserParams) (*models.User, error)
	UpdateUser(id int64, params UpdateUserParams) (*models.User, error)

	// AuthenticateUser returns (nil, nil) both for an unknown email and for a
	// wrong password. Callers must not be able to tell the two apart.
	AuthenticateUser(email, password string) (*models.User, error)

	GetChannel(id int64) (*models.Channel, error)
	GetChannelsByUser(userID int64) ([]models.Channel, error)
	CreateChannel(params CreateChannelParams) (*models.Channel, error)
	UpdateChannel(id int64, params UpdateChannelParams) (*models.Channel, error)

	GetVideo(id int64) (*models.Video, error)
	GetVideos(limit, offset int) ([]models.Video, error)
	GetVideosByUser(userID int64) ([]models.Video, error)
	GetRecentVideos(limit int) ([]models.Video, error)
	GetTrendingVideos(limit int) ([]models.Video, error)
	GetQuickies(limit int) ([]models.Video, error)
	CreateVideo(params CreateVideoParams) (*models.Video, error)
	UpdateVideo(id int64, params UpdateVideoParams) (*models.Video, error)

	// DeleteVideo also removes every comment, like and history row referencing
	// the video. Returns false if the video did not exist.
	DeleteVideo(id int64) (bool, error)

	IncrementVideoViews(id int64) (*models.Video, error)
	ToggleVideoAds(id int64, hasAds bool, adURL *string, adStartTime *int, adSkippable *bool) (*models.Video, error)

	GetComment(id int64) (*models.Comment, error)
	// GetCommentsByVideo returns comments newest-first.
	GetCommentsByVideo(videoID int64) ([]models.Comment, error)
	CreateComment(params CreateCommentParams) (*models.Comment, error)

	GetSubscription(id int64) (*models.Subscription, error)
	GetSubscriptionsByUser(userID int64) ([]models.Subscription, error)
	// CreateSubscription bumps the channel owner's subscriber count as a
	// separate write after the join row; the two writes are not atomic.
	CreateSubscription(subscriberID, channelID int64) (*models.Subscription, error)

	GetLikedVideo(id int64) (*models.LikedVideo, error)
	GetLikedVideosByUser(userID int64) ([]models.LikedVideo, error)
	// CreateLikedVideo bumps the video's like counter.
	CreateLikedVideo(userID, videoID int64) (*models.LikedVideo, error)

	GetVideoHistory(id int64) (*models.VideoHistory, error)
	GetVideoHistoryByUser(userID int64) ([]models.VideoHistory, error)
	CreateVideoHistory(userID, videoID int64, watchDuration int) (*models.VideoHistory, error)

	GetSiteSettings() (*models.SiteSettings, error)
	UpdateSiteSettings(params UpdateSiteSettingsParams) (*models.SiteSettings, error)
}

type CreateUserParams struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DisplayName  string `json:"display_name"`
	ProfileImage string `json:"profile_image"`
	Bio          string `json:"bio"`
	IsAdmin      bool   `json:"is_admin"`
}

// Update params use pointer fields: nil means "leave unchanged". Ids and
// creation timestamps are never updatable.
type UpdateUserParams struct {
	DisplayName  *string `json:"display_name"`
	ProfileImage *string `json:"profile_image"`
	Bio          *string `json:"bio"`
	IsBanned     *bool   `json:"is_banned"`
}

type CreateChannelParams struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BannerImage string `json:"banner_image"`
}

type UpdateChannelParams struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	BannerImage *string `json:"banner_image"`
}

type CreateVideoParams struct {
	UserID        int64    `json:"user_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	FilePath      string   `json:"file_path"`
	ThumbnailPath string   `json:"thumbnail_path"`
	Duration      int      `json:"duration"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	IsQuickie     bool     `json:"is_quickie"`
	IsPublished   bool     `json:"is_published"`
}

type UpdateVideoParams struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	ThumbnailPath *string   `json:"thumbnail_path"`
	Categories    *[]string `json:"categories"`
	Tags          *[]string `json:"tags"`
	IsQuickie     *bool     `json:"is_quickie"`
	IsPublished   *bool     `json:"is_published"`
}

type CreateCommentParams struct {
	VideoID  int64  `json:"video_id"`
	UserID   int64  `json:"user_id"`
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id"`
}

type UpdateSiteSettingsParams struct {
	AdsEnabled       *bool   `json:"ads_enabled"`
	DefaultAdURL     *string `json:"default_ad_url"`
	AdStartTime      *int    `json:"ad_start_time"`
	AdSkippableAfter *int    `json:"ad_skippable_after"`
	Theme            *string `json:"theme"`
}

// NewStorageFromEnv picks the backend from STORAGE_BACKEND: "postgres",
// "dynamo" or "memory" (the default).
func NewStorageFromEnv(logger *log.Logger) (Storage, error) {
	backend := os.Getenv("STORAGE_BACKEND")

	switch backend {
	case "postgres":
		db, err := ConnectPGDB()
		if err != nil {
			return nil, fmt.Errorf("postgres backend: %w", err)
		}
		if err := MigrateFS(db, migrations.FS, "."); err != nil {
			return nil, fmt.Errorf("postgres backend: %w", err)
		}
		logger.Println("Using postgres storage backend")
		return NewPostgresStorage(db), nil

	case "dynamo":
		ds, err := NewDynamoStorage(logger)
		if err != nil {
			return nil, fmt.Errorf("dynamo backend: %w", err)
		}
		logger.Println("Using dynamodb storage backend")
		return ds, nil

	case "", "memory":
		logger.Println("Using in-memory storage backend")
		return NewMemoryStorage(), nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}
}
