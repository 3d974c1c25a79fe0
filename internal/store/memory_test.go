package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, m *MemoryStorage, username string) int64 {
	t.Helper()
	user, err := m.CreateUser(CreateUserParams{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user.Id
}

func newTestVideo(t *testing.T, m *MemoryStorage, userID int64, published bool) int64 {
	t.Helper()
	video, err := m.CreateVideo(CreateVideoParams{
		UserID:      userID,
		Title:       "clip",
		Duration:    300,
		Categories:  []string{"amateur"},
		IsPublished: published,
	})
	require.NoError(t, err)
	return video.Id
}

func TestCreateUserHashesPassword(t *testing.T) {
	m := NewMemoryStorage()

	user, err := m.CreateUser(CreateUserParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.Equal(t, int64(1), user.Id)
	assert.Zero(t, user.SubscriberCount)
}

func TestAuthenticateUser(t *testing.T) {
	m := NewMemoryStorage()
	newTestUser(t, m, "alice")

	user, err := m.AuthenticateUser("alice@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)

	wrongPassword, err := m.AuthenticateUser("alice@example.com", "nope")
	require.NoError(t, err)
	assert.Nil(t, wrongPassword)

	unknownEmail, err := m.AuthenticateUser("bob@example.com", "secret123")
	require.NoError(t, err)
	assert.Nil(t, unknownEmail)
}

func TestGetUserNotFound(t *testing.T) {
	m := NewMemoryStorage()

	user, err := m.GetUser(42)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdateUserPartial(t *testing.T) {
	m := NewMemoryStorage()
	id := newTestUser(t, m, "alice")

	bio := "creator"
	updated, err := m.UpdateUser(id, UpdateUserParams{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "creator", updated.Bio)
	assert.Equal(t, "alice", updated.Username, "unset fields stay untouched")
}

func TestCreateVideoStartsWithZeroCounters(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")

	first := newTestVideo(t, m, userID, true)
	second := newTestVideo(t, m, userID, true)

	assert.NotEqual(t, first, second)

	video, err := m.GetVideo(first)
	require.NoError(t, err)
	require.NotNil(t, video)
	assert.Zero(t, video.Views)
	assert.Zero(t, video.Likes)
	assert.Zero(t, video.Dislikes)
}

func TestListingsExcludeUnpublished(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")

	published := newTestVideo(t, m, userID, true)
	draft := newTestVideo(t, m, userID, false)

	videos, err := m.GetVideos(10, 0)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, published, videos[0].Id)

	// drafts stay reachable through the owner listing and direct lookup
	mine, err := m.GetVideosByUser(userID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	video, err := m.GetVideo(draft)
	require.NoError(t, err)
	assert.NotNil(t, video)
}

func TestIncrementVideoViews(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")
	videoID := newTestVideo(t, m, userID, true)

	for i := 0; i < 5; i++ {
		_, err := m.IncrementVideoViews(videoID)
		require.NoError(t, err)
	}

	video, err := m.GetVideo(videoID)
	require.NoError(t, err)
	assert.Equal(t, 5, video.Views)

	missing, err := m.IncrementVideoViews(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteVideoCascades(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")
	videoID := newTestVideo(t, m, userID, true)

	comment, err := m.CreateComment(CreateCommentParams{VideoID: videoID, UserID: userID, Content: "nice"})
	require.NoError(t, err)
	_, err = m.CreateLikedVideo(userID, videoID)
	require.NoError(t, err)
	_, err = m.CreateVideoHistory(userID, videoID, 120)
	require.NoError(t, err)

	deleted, err := m.DeleteVideo(videoID)
	require.NoError(t, err)
	assert.True(t, deleted)

	video, err := m.GetVideo(videoID)
	require.NoError(t, err)
	assert.Nil(t, video)

	gone, err := m.GetComment(comment.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	likes, err := m.GetLikedVideosByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	history, err := m.GetVideoHistoryByUser(userID)
	require.NoError(t, err)
	assert.Empty(t, history)

	again, err := m.DeleteVideo(videoID)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestCreateLikedVideoBumpsLikeCounter(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")
	videoID := newTestVideo(t, m, userID, true)

	_, err := m.CreateLikedVideo(userID, videoID)
	require.NoError(t, err)

	video, err := m.GetVideo(videoID)
	require.NoError(t, err)
	assert.Equal(t, 1, video.Likes)
}

func TestCreateSubscriptionBumpsOwnerOnly(t *testing.T) {
	m := NewMemoryStorage()
	ownerID := newTestUser(t, m, "owner")
	fanID := newTestUser(t, m, "fan")

	channel, err := m.CreateChannel(CreateChannelParams{UserID: ownerID, Name: "main"})
	require.NoError(t, err)

	_, err = m.CreateSubscription(fanID, channel.Id)
	require.NoError(t, err)

	owner, err := m.GetUser(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, owner.SubscriberCount)

	fan, err := m.GetUser(fanID)
	require.NoError(t, err)
	assert.Zero(t, fan.SubscriberCount)

	subs, err := m.GetSubscriptionsByUser(fanID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, channel.Id, subs[0].ChannelID)
}

func TestVideoHistoryIsAppendOnly(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")
	videoID := newTestVideo(t, m, userID, true)

	_, err := m.CreateVideoHistory(userID, videoID, 30)
	require.NoError(t, err)
	_, err = m.CreateVideoHistory(userID, videoID, 90)
	require.NoError(t, err)

	history, err := m.GetVideoHistoryByUser(userID)
	require.NoError(t, err)
	assert.Len(t, history, 2, "repeat views append, never overwrite")
}

func TestSiteSettingsDefaultsAndUpdate(t *testing.T) {
	m := NewMemoryStorage()

	settings, err := m.GetSiteSettings()
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.False(t, settings.AdsEnabled)
	assert.Equal(t, "dark", settings.Theme)

	enabled := true
	theme := "light"
	updated, err := m.UpdateSiteSettings(UpdateSiteSettingsParams{
		AdsEnabled: &enabled,
		Theme:      &theme,
	})
	require.NoError(t, err)
	assert.True(t, updated.AdsEnabled)
	assert.Equal(t, "light", updated.Theme)

	reloaded, err := m.GetSiteSettings()
	require.NoError(t, err)
	assert.True(t, reloaded.AdsEnabled)
	assert.Equal(t, 5, reloaded.AdSkippableAfter, "unset fields keep defaults")
}

func TestGetVideoReturnsCopy(t *testing.T) {
	m := NewMemoryStorage()
	userID := newTestUser(t, m, "alice")
	videoID := newTestVideo(t, m, userID, true)

	video, err := m.GetVideo(videoID)
	require.NoError(t, err)
	video.Title = "mutated"
	video.Categories[0] = "mutated"

	fresh, err := m.GetVideo(videoID)
	require.NoError(t, err)
	assert.Equal(t, "clip", fresh.Title)
	assert.Equal(t, "amateur", fresh.Categories[0])
}
