package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hushplay/hushplay_server/internal/middlewares"
	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/recommend"
	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/utils"
)

const defaultRecommendationLimit = 20

type RecommendHandler struct {
	Engine  *recommend.Engine
	Storage store.Storage
	Logger  *log.Logger
}

func NewRecommendHandler(engine *recommend.Engine, storage store.Storage, logger *log.Logger) *RecommendHandler {
	return &RecommendHandler{
		Engine:  engine,
		Storage: storage,
		Logger:  logger,
	}
}

// resolveVideos turns ranked ids into full records, preserving order. Ids
// that vanished between ranking and lookup are dropped.
func (rh *RecommendHandler) resolveVideos(ids []int64) []models.Video {
	videos := []models.Video{}
	for _, id := range ids {
		video, err := rh.Storage.GetVideo(id)
		if err != nil {
			rh.Logger.Println("Error resolving recommended video:", err)
			continue
		}
		if video == nil {
			continue
		}
		videos = append(videos, *video)
	}
	return videos
}

func recommendationLimit(r *http.Request) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		return v
	}
	return defaultRecommendationLimit
}

func (rh *RecommendHandler) HandlerGetRecommendations(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		rh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	ids := rh.Engine.GetRecommendations(user.Id, recommendationLimit(r))
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": rh.resolveVideos(ids)})
}

func (rh *RecommendHandler) HandlerGetSimilarVideos(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	var userID *int64
	if user, ok := middlewares.GetUserFromContext(r); ok {
		userID = &user.Id
	}

	ids := rh.Engine.GetSimilarVideos(videoID, userID, recommendationLimit(r))
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": rh.resolveVideos(ids)})
}

func (rh *RecommendHandler) HandlerGetCategoryTrending(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid category"})
		return
	}

	videos := rh.Engine.GetCategoryRecommendations(category, recommendationLimit(r))
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}
