package handlers

import (
	"log"
	"net/http"

	"github.com/hushplay/hushplay_server/internal/middlewares"
	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/utils"
)

type DashboardHandler struct {
	Storage store.Storage
	Logger  *log.Logger
}

func NewDashboardHandler(storage store.Storage, logger *log.Logger) *DashboardHandler {
	return &DashboardHandler{
		Storage: storage,
		Logger:  logger,
	}
}

type DashboardMetrics struct {
	TotalVideos     int            `json:"total_videos"`
	PublishedVideos int            `json:"published_videos"`
	TotalViews      int            `json:"total_views"`
	TotalLikes      int            `json:"total_likes"`
	Subscribers     int            `json:"subscribers"`
	Videos          []models.Video `json:"videos"`
}

// HandlerGetDashboardMetrics aggregates the creator's totals across all of
// their videos, published or not.
func (dh *DashboardHandler) HandlerGetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		dh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videos, err := dh.Storage.GetVideosByUser(user.Id)
	if err != nil {
		dh.Logger.Println("Error fetching creator videos:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	metrics := DashboardMetrics{
		TotalVideos: len(videos),
		Subscribers: user.SubscriberCount,
		Videos:      videos,
	}
	for _, v := range videos {
		if v.IsPublished {
			metrics.PublishedVideos++
		}
		metrics.TotalViews += v.Views
		metrics.TotalLikes += v.Likes
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": metrics})
}
