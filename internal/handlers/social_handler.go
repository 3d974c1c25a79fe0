package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hushplay/hushplay_server/internal/middlewares"
	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/utils"
)

// SocialHandler covers the interaction surface: subscriptions, likes and
// watch history.
type SocialHandler struct {
	Storage store.Storage
	Logger  *log.Logger
}

func NewSocialHandler(storage store.Storage, logger *log.Logger) *SocialHandler {
	return &SocialHandler{
		Storage: storage,
		Logger:  logger,
	}
}

func (sh *SocialHandler) HandlerGetSubscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	subscriptions, err := sh.Storage.GetSubscriptionsByUser(user.Id)
	if err != nil {
		sh.Logger.Println("Error fetching subscriptions:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": subscriptions})
}

func (sh *SocialHandler) HandlerCreateSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	channelID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid channel id"})
		return
	}

	channel, err := sh.Storage.GetChannel(channelID)
	if err != nil {
		sh.Logger.Println("Error fetching channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if channel == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Channel not found"})
		return
	}
	if channel.UserID == user.Id {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Cannot subscribe to your own channel"})
		return
	}

	subscription, err := sh.Storage.CreateSubscription(user.Id, channelID)
	if err != nil {
		sh.Logger.Println("Error creating subscription:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": subscription})
}

func (sh *SocialHandler) HandlerGetLikedVideos(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	liked, err := sh.Storage.GetLikedVideosByUser(user.Id)
	if err != nil {
		sh.Logger.Println("Error fetching liked videos:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": liked})
}

func (sh *SocialHandler) HandlerCreateLikedVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := sh.Storage.GetVideo(videoID)
	if err != nil {
		sh.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	liked, err := sh.Storage.CreateLikedVideo(user.Id, videoID)
	if err != nil {
		sh.Logger.Println("Error creating like:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": liked})
}

func (sh *SocialHandler) HandlerGetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	history, err := sh.Storage.GetVideoHistoryByUser(user.Id)
	if err != nil {
		sh.Logger.Println("Error fetching watch history:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": history})
}

// HandlerCreateHistory records watch progress explicitly, e.g. when the
// player reports how long a viewer actually watched. History is append-only;
// repeat views append new records.
func (sh *SocialHandler) HandlerCreateHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		sh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := sh.Storage.GetVideo(videoID)
	if err != nil {
		sh.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	type Request struct {
		WatchDuration int `json:"watch_duration"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		sh.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.WatchDuration < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Watch duration must be non-negative"})
		return
	}

	entry, err := sh.Storage.CreateVideoHistory(user.Id, videoID, req.WatchDuration)
	if err != nil {
		sh.Logger.Println("Error creating history record:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": entry})
}
