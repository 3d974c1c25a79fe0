package recommend

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/store"
)

func testEngine(t *testing.T) (*Engine, store.Storage) {
	t.Helper()
	storage := store.NewMemoryStorage()
	logger := log.New(io.Discard, "", 0)
	return NewEngine(storage, nil, logger), storage
}

func createUser(t *testing.T, storage store.Storage, username string) *models.User {
	t.Helper()
	user, err := storage.CreateUser(store.CreateUserParams{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func createVideo(t *testing.T, storage store.Storage, userID int64, title string, categories, tags []string) *models.Video {
	t.Helper()
	video, err := storage.CreateVideo(store.CreateVideoParams{
		UserID:      userID,
		Title:       title,
		Duration:    600,
		Categories:  categories,
		Tags:        tags,
		IsPublished: true,
	})
	require.NoError(t, err)
	return video
}

func TestGetRecommendationsPrefersWatchedCategories(t *testing.T) {
	engine, storage := testEngine(t)

	creator := createUser(t, storage, "creator")
	viewer := createUser(t, storage, "viewer")

	watched := createVideo(t, storage, creator.Id, "watched", []string{"milf"}, nil)
	match := createVideo(t, storage, creator.Id, "match", []string{"milf"}, nil)
	other := createVideo(t, storage, creator.Id, "other", []string{"vintage"}, nil)

	_, err := storage.CreateVideoHistory(viewer.Id, watched.Id, 60)
	require.NoError(t, err)

	ids := engine.GetRecommendations(viewer.Id, 10)

	require.NotEmpty(t, ids)
	assert.Equal(t, match.Id, ids[0])
	assert.NotContains(t, ids, watched.Id, "watched videos must never be recommended")
	assert.Contains(t, ids, other.Id, "base score keeps unmatched videos in the list")
}

func TestGetRecommendationsLikesCountDouble(t *testing.T) {
	engine, storage := testEngine(t)

	creator := createUser(t, storage, "creator")
	viewer := createUser(t, storage, "viewer")

	liked := createVideo(t, storage, creator.Id, "liked", []string{"amateur"}, nil)
	amateurPick := createVideo(t, storage, creator.Id, "amateur pick", []string{"amateur"}, nil)
	vintagePick := createVideo(t, storage, creator.Id, "vintage pick", []string{"vintage"}, nil)

	_, err := storage.CreateLikedVideo(viewer.Id, liked.Id)
	require.NoError(t, err)

	ids := engine.GetRecommendations(viewer.Id, 10)

	require.Len(t, ids, 3)
	// a like is an interaction, not a view: the liked video stays eligible
	assert.Contains(t, ids[:2], liked.Id)
	assert.Contains(t, ids[:2], amateurPick.Id)
	assert.Equal(t, vintagePick.Id, ids[2], "unmatched category ranks last")
}

func TestGetRecommendationsLimit(t *testing.T) {
	engine, storage := testEngine(t)

	creator := createUser(t, storage, "creator")
	viewer := createUser(t, storage, "viewer")

	for i := 0; i < 5; i++ {
		createVideo(t, storage, creator.Id, "video", []string{"amateur"}, nil)
	}

	ids := engine.GetRecommendations(viewer.Id, 3)
	assert.Len(t, ids, 3)
}

func TestGetSimilarVideosOwnerOutranksSharedCategory(t *testing.T) {
	engine, storage := testEngine(t)

	owner := createUser(t, storage, "owner")
	other := createUser(t, storage, "other")

	source := createVideo(t, storage, owner.Id, "source", []string{"milf"}, nil)
	sameOwner := createVideo(t, storage, owner.Id, "same owner", []string{"vintage"}, nil)
	sameCategory := createVideo(t, storage, other.Id, "same category", []string{"milf"}, nil)

	ids := engine.GetSimilarVideos(source.Id, nil, 10)

	require.Len(t, ids, 2)
	assert.Equal(t, sameOwner.Id, ids[0], "owner bonus outweighs a single shared category")
	assert.Equal(t, sameCategory.Id, ids[1])
	assert.NotContains(t, ids, source.Id, "the source video is never its own suggestion")
}

func TestGetSimilarVideosExcludesViewerHistory(t *testing.T) {
	engine, storage := testEngine(t)

	owner := createUser(t, storage, "owner")
	viewer := createUser(t, storage, "viewer")

	source := createVideo(t, storage, owner.Id, "source", []string{"milf"}, nil)
	seen := createVideo(t, storage, owner.Id, "seen", []string{"milf"}, nil)
	fresh := createVideo(t, storage, owner.Id, "fresh", []string{"milf"}, nil)

	_, err := storage.CreateVideoHistory(viewer.Id, seen.Id, 120)
	require.NoError(t, err)

	ids := engine.GetSimilarVideos(source.Id, &viewer.Id, 10)

	assert.Contains(t, ids, fresh.Id)
	assert.NotContains(t, ids, seen.Id)
}

func TestGetSimilarVideosMissingSource(t *testing.T) {
	engine, _ := testEngine(t)

	ids := engine.GetSimilarVideos(999, nil, 10)
	assert.Empty(t, ids)
}

func TestGetCategoryRecommendationsFiltersCategory(t *testing.T) {
	engine, storage := testEngine(t)

	creator := createUser(t, storage, "creator")

	inCat := createVideo(t, storage, creator.Id, "in", []string{"milf"}, nil)
	createVideo(t, storage, creator.Id, "out", []string{"vintage"}, nil)

	videos := engine.GetCategoryRecommendations("milf", 10)

	require.Len(t, videos, 1)
	assert.Equal(t, inCat.Id, videos[0].Id)
}

func TestGetCategoryRecommendationsRanksByViews(t *testing.T) {
	engine, storage := testEngine(t)

	creator := createUser(t, storage, "creator")

	quiet := createVideo(t, storage, creator.Id, "quiet", []string{"milf"}, nil)
	popular := createVideo(t, storage, creator.Id, "popular", []string{"milf"}, nil)

	for i := 0; i < 10; i++ {
		_, err := storage.IncrementVideoViews(popular.Id)
		require.NoError(t, err)
	}

	videos := engine.GetCategoryRecommendations("milf", 10)

	require.Len(t, videos, 2)
	assert.Equal(t, popular.Id, videos[0].Id)
	assert.Equal(t, quiet.Id, videos[1].Id)
}

// failingStorage simulates a dead backend for the paths the engine touches.
type failingStorage struct {
	store.Storage
}

var errBackend = errors.New("backend unavailable")

func (failingStorage) GetVideoHistoryByUser(userID int64) ([]models.VideoHistory, error) {
	return nil, errBackend
}

func (failingStorage) GetLikedVideosByUser(userID int64) ([]models.LikedVideo, error) {
	return nil, errBackend
}

func (failingStorage) GetRecentVideos(limit int) ([]models.Video, error) {
	return nil, errBackend
}

func (failingStorage) GetVideo(id int64) (*models.Video, error) {
	return nil, errBackend
}

func TestEngineDegradesToEmptyOnStorageFailure(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	engine := NewEngine(failingStorage{}, nil, logger)

	assert.Empty(t, engine.GetRecommendations(1, 10))
	assert.Empty(t, engine.GetSimilarVideos(1, nil, 10))
	assert.Empty(t, engine.GetCategoryRecommendations("milf", 10))
}
