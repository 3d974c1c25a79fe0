package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hushplay/hushplay_server/internal/middlewares"
	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/tagger"
	"github.com/hushplay/hushplay_server/internal/utils"
)

const defaultPageSize = 20

type VideoHandler struct {
	Storage store.Storage
	Tracker *store.ViewTracker // optional; nil disables windowed view counting
	Logger  *log.Logger
}

func NewVideoHandler(storage store.Storage, tracker *store.ViewTracker, logger *log.Logger) *VideoHandler {
	return &VideoHandler{
		Storage: storage,
		Tracker: tracker,
		Logger:  logger,
	}
}

func limitOffset(r *http.Request) (int, int) {
	limit := defaultPageSize
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func (vh *VideoHandler) HandlerGetVideos(w http.ResponseWriter, r *http.Request) {
	limit, offset := limitOffset(r)

	videos, err := vh.Storage.GetVideos(limit, offset)
	if err != nil {
		vh.Logger.Println("Error fetching videos:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

// HandlerGetVideoByID serves the watch page. Every successful view bumps the
// lifetime counter and, for logged-in viewers, appends a history record.
func (vh *VideoHandler) HandlerGetVideoByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := vh.Storage.GetVideo(videoID)
	if err != nil {
		vh.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	user, loggedIn := middlewares.GetUserFromContext(r)

	// unpublished videos are visible to their owner only
	if !video.IsPublished && (!loggedIn || user.Id != video.UserID) {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	bumped, err := vh.Storage.IncrementVideoViews(videoID)
	if err != nil {
		vh.Logger.Println("Error incrementing views:", err)
	} else if bumped != nil {
		video = bumped
	}

	if vh.Tracker != nil {
		if err := vh.Tracker.RecordView(videoID); err != nil {
			vh.Logger.Println("Error recording windowed view:", err)
		}
	}

	if loggedIn {
		if _, err := vh.Storage.CreateVideoHistory(user.Id, videoID, 0); err != nil {
			vh.Logger.Println("Error appending watch history:", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": video})
}

func (vh *VideoHandler) HandlerGetVideosByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid user id"})
		return
	}

	videos, err := vh.Storage.GetVideosByUser(userID)
	if err != nil {
		vh.Logger.Println("Error fetching user videos:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

func (vh *VideoHandler) HandlerGetRecentVideos(w http.ResponseWriter, r *http.Request) {
	limit, _ := limitOffset(r)

	videos, err := vh.Storage.GetRecentVideos(limit)
	if err != nil {
		vh.Logger.Println("Error fetching recent videos:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

func (vh *VideoHandler) HandlerGetTrendingVideos(w http.ResponseWriter, r *http.Request) {
	limit, _ := limitOffset(r)

	videos, err := vh.Storage.GetTrendingVideos(limit)
	if err != nil {
		vh.Logger.Println("Error fetching trending videos:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

func (vh *VideoHandler) HandlerGetQuickies(w http.ResponseWriter, r *http.Request) {
	limit, _ := limitOffset(r)

	videos, err := vh.Storage.GetQuickies(limit)
	if err != nil {
		vh.Logger.Println("Error fetching quickies:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": videos})
}

// HandlerCreateVideo registers an upload. The request carries metadata only;
// the media itself goes to object storage out of band, keyed by the paths
// minted here. Categories and tags come from the content tagger, not the
// raw request.
func (vh *VideoHandler) HandlerCreateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	type Request struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		Duration    *int     `json:"duration"`
		IsQuickie   bool     `json:"is_quickie"`
		IsPublished bool     `json:"is_published"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		vh.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.Title == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Title is required"})
		return
	}
	if req.Duration != nil && *req.Duration < 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Duration must be non-negative"})
		return
	}

	tagged := tagger.TagContent(tagger.Input{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Duration:    req.Duration,
		IsQuickie:   req.IsQuickie,
	})

	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}

	objectKey := uuid.New().String()
	video, err := vh.Storage.CreateVideo(store.CreateVideoParams{
		UserID:        user.Id,
		Title:         req.Title,
		Description:   req.Description,
		FilePath:      "videos/" + objectKey,
		ThumbnailPath: "thumbnails/" + objectKey,
		Duration:      duration,
		Categories:    tagged.Categories,
		Tags:          tagged.Tags,
		IsQuickie:     tagged.ContentType == tagger.ContentTypeQuickie,
		IsPublished:   req.IsPublished,
	})
	if err != nil {
		vh.Logger.Println("Error creating video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": video})
}

// HandlerUpdateVideo edits metadata. When title, description or tags change
// the video is retagged against the merged metadata.
func (vh *VideoHandler) HandlerUpdateVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := vh.Storage.GetVideo(videoID)
	if err != nil {
		vh.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}
	if video.UserID != user.Id {
		utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"message": "Not your video"})
		return
	}

	type Request struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Tags        *[]string `json:"tags"`
		IsQuickie   *bool     `json:"is_quickie"`
		IsPublished *bool     `json:"is_published"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		vh.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	params := store.UpdateVideoParams{
		Title:       req.Title,
		Description: req.Description,
		IsQuickie:   req.IsQuickie,
		IsPublished: req.IsPublished,
	}

	if req.Title != nil || req.Description != nil || req.Tags != nil {
		title := video.Title
		if req.Title != nil {
			title = *req.Title
		}
		description := video.Description
		if req.Description != nil {
			description = *req.Description
		}
		tags := video.Tags
		if req.Tags != nil {
			tags = *req.Tags
		}

		var duration *int
		if video.Duration > 0 {
			d := video.Duration
			duration = &d
		}

		isQuickie := video.IsQuickie
		if req.IsQuickie != nil {
			isQuickie = *req.IsQuickie
		}

		tagged := tagger.TagContent(tagger.Input{
			Title:       title,
			Description: description,
			Tags:        tags,
			Duration:    duration,
			IsQuickie:   isQuickie,
		})

		params.Categories = &tagged.Categories
		params.Tags = &tagged.Tags
		quickie := tagged.ContentType == tagger.ContentTypeQuickie
		params.IsQuickie = &quickie
	}

	updated, err := vh.Storage.UpdateVideo(videoID, params)
	if err != nil {
		vh.Logger.Println("Error updating video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": updated})
}

func (vh *VideoHandler) HandlerDeleteVideo(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := vh.Storage.GetVideo(videoID)
	if err != nil {
		vh.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}
	if video.UserID != user.Id && !user.IsAdmin {
		utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"message": "Not your video"})
		return
	}

	deleted, err := vh.Storage.DeleteVideo(videoID)
	if err != nil {
		vh.Logger.Println("Error deleting video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if !deleted {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Video deleted"})
}

func (vh *VideoHandler) HandlerToggleVideoAds(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		vh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := vh.Storage.GetVideo(videoID)
	if err != nil {
		vh.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}
	if video.UserID != user.Id {
		utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"message": "Not your video"})
		return
	}

	type Request struct {
		HasAds      bool    `json:"has_ads"`
		AdURL       *string `json:"ad_url"`
		AdStartTime *int    `json:"ad_start_time"`
		AdSkippable *bool   `json:"ad_skippable"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		vh.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	updated, err := vh.Storage.ToggleVideoAds(videoID, req.HasAds, req.AdURL, req.AdStartTime, req.AdSkippable)
	if err != nil {
		vh.Logger.Println("Error toggling video ads:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": updated})
}
