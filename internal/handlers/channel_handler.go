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

type ChannelHandler struct {
	Storage store.Storage
	Logger  *log.Logger
}

func NewChannelHandler(storage store.Storage, logger *log.Logger) *ChannelHandler {
	return &ChannelHandler{
		Storage: storage,
		Logger:  logger,
	}
}

func (ch *ChannelHandler) HandlerGetChannel(w http.ResponseWriter, r *http.Request) {
	channelID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid channel id"})
		return
	}

	channel, err := ch.Storage.GetChannel(channelID)
	if err != nil {
		ch.Logger.Println("Error fetching channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if channel == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Channel not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": channel})
}

func (ch *ChannelHandler) HandlerGetChannelsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid user id"})
		return
	}

	channels, err := ch.Storage.GetChannelsByUser(userID)
	if err != nil {
		ch.Logger.Println("Error fetching channels:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": channels})
}

func (ch *ChannelHandler) HandlerCreateChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	type Request struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		BannerImage string `json:"banner_image"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		ch.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Channel name is required"})
		return
	}

	channel, err := ch.Storage.CreateChannel(store.CreateChannelParams{
		UserID:      user.Id,
		Name:        req.Name,
		Description: req.Description,
		BannerImage: req.BannerImage,
	})
	if err != nil {
		ch.Logger.Println("Error creating channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": channel})
}

func (ch *ChannelHandler) HandlerUpdateChannel(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	channelID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid channel id"})
		return
	}

	channel, err := ch.Storage.GetChannel(channelID)
	if err != nil {
		ch.Logger.Println("Error fetching channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if channel == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Channel not found"})
		return
	}
	if channel.UserID != user.Id {
		utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"message": "Not your channel"})
		return
	}

	type Request struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		BannerImage *string `json:"banner_image"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		ch.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	updated, err := ch.Storage.UpdateChannel(channelID, store.UpdateChannelParams{
		Name:        req.Name,
		Description: req.Description,
		BannerImage: req.BannerImage,
	})
	if err != nil {
		ch.Logger.Println("Error updating channel:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": updated})
}
