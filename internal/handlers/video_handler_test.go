package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hushplay/hushplay_server/internal/middlewares"
	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/store"
)

func testVideoHandler(t *testing.T) (*VideoHandler, *store.MemoryStorage, *models.User) {
	t.Helper()
	storage := store.NewMemoryStorage()
	logger := log.New(io.Discard, "", 0)

	user, err := storage.CreateUser(store.CreateUserParams{
		Username: "creator",
		Email:    "creator@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	return NewVideoHandler(storage, nil, logger), storage, user
}

func withUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), middlewares.UserContextKey, user)
	return r.WithContext(ctx)
}

func decodeData(t *testing.T, body io.Reader, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func TestHandlerCreateVideoRunsTagger(t *testing.T) {
	vh, _, user := testVideoHandler(t)

	body := `{"title":"MILF stepmom surprise","duration":45,"is_published":true}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(body)), user)
	rec := httptest.NewRecorder()

	vh.HandlerCreateVideo(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var video models.Video
	decodeData(t, rec.Body, &video)

	assert.Equal(t, []string{"milf", "stepmom"}, video.Categories)
	assert.True(t, video.IsQuickie, "45s uploads are quickies")
	assert.True(t, strings.HasPrefix(video.FilePath, "videos/"))
	assert.True(t, strings.HasPrefix(video.ThumbnailPath, "thumbnails/"))
	assert.Zero(t, video.Views)
}

func TestHandlerCreateVideoRequiresAuth(t *testing.T) {
	vh, _, _ := testVideoHandler(t)

	body := `{"title":"clip"}`
	req := httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(body))
	rec := httptest.NewRecorder()

	vh.HandlerCreateVideo(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerCreateVideoRejectsNegativeDuration(t *testing.T) {
	vh, _, user := testVideoHandler(t)

	body := `{"title":"clip","duration":-5}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/videos", strings.NewReader(body)), user)
	rec := httptest.NewRecorder()

	vh.HandlerCreateVideo(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerGetVideoByIDCountsViewAndHistory(t *testing.T) {
	vh, storage, user := testVideoHandler(t)

	created, err := storage.CreateVideo(store.CreateVideoParams{
		UserID:      user.Id,
		Title:       "clip",
		Duration:    300,
		IsPublished: true,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/videos/{id}", vh.HandlerGetVideoByID)

	req := withUser(httptest.NewRequest(http.MethodGet, "/videos/1", nil), user)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var video models.Video
	decodeData(t, rec.Body, &video)
	assert.Equal(t, 1, video.Views)

	history, err := storage.GetVideoHistoryByUser(user.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, created.Id, history[0].VideoID)
}

func TestHandlerGetVideoByIDAnonymousSkipsHistory(t *testing.T) {
	vh, storage, user := testVideoHandler(t)

	_, err := storage.CreateVideo(store.CreateVideoParams{
		UserID:      user.Id,
		Title:       "clip",
		Duration:    300,
		IsPublished: true,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/videos/{id}", vh.HandlerGetVideoByID)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	history, err := storage.GetVideoHistoryByUser(user.Id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestHandlerGetVideoByIDHidesDrafts(t *testing.T) {
	vh, storage, owner := testVideoHandler(t)

	_, err := storage.CreateVideo(store.CreateVideoParams{
		UserID:      owner.Id,
		Title:       "draft",
		Duration:    300,
		IsPublished: false,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/videos/{id}", vh.HandlerGetVideoByID)

	// anonymous viewers get a 404
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/videos/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the owner still sees it
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/videos/1", nil), owner))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerUpdateVideoOwnerOnly(t *testing.T) {
	vh, storage, owner := testVideoHandler(t)

	stranger, err := storage.CreateUser(store.CreateUserParams{
		Username: "stranger",
		Email:    "stranger@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = storage.CreateVideo(store.CreateVideoParams{
		UserID:      owner.Id,
		Title:       "clip",
		Duration:    300,
		IsPublished: true,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Patch("/videos/{id}", vh.HandlerUpdateVideo)

	body := `{"title":"renamed"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPatch, "/videos/1", strings.NewReader(body)), stranger))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPatch, "/videos/1", strings.NewReader(body)), owner))
	require.Equal(t, http.StatusOK, rec.Code)

	var video models.Video
	decodeData(t, rec.Body, &video)
	assert.Equal(t, "renamed", video.Title)
}

func TestHandlerDeleteVideoAdminOverride(t *testing.T) {
	vh, storage, owner := testVideoHandler(t)

	admin, err := storage.CreateUser(store.CreateUserParams{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secret123",
		IsAdmin:  true,
	})
	require.NoError(t, err)

	_, err = storage.CreateVideo(store.CreateVideoParams{
		UserID:      owner.Id,
		Title:       "clip",
		Duration:    300,
		IsPublished: true,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Delete("/videos/{id}", vh.HandlerDeleteVideo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodDelete, "/videos/1", nil), admin))
	require.Equal(t, http.StatusOK, rec.Code)

	video, err := storage.GetVideo(1)
	require.NoError(t, err)
	assert.Nil(t, video)
}
