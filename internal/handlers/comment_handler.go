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

type CommentHandler struct {
	Storage store.Storage
	Logger  *log.Logger
}

func NewCommentHandler(storage store.Storage, logger *log.Logger) *CommentHandler {
	return &CommentHandler{
		Storage: storage,
		Logger:  logger,
	}
}

func (ch *CommentHandler) HandlerGetCommentsByVideo(w http.ResponseWriter, r *http.Request) {
	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	comments, err := ch.Storage.GetCommentsByVideo(videoID)
	if err != nil {
		ch.Logger.Println("Error fetching comments:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": comments})
}

func (ch *CommentHandler) HandlerCreateComment(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		ch.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	videoID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid video id"})
		return
	}

	video, err := ch.Storage.GetVideo(videoID)
	if err != nil {
		ch.Logger.Println("Error fetching video:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if video == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "Video not found"})
		return
	}

	type Request struct {
		Content  string `json:"content"`
		ParentID *int64 `json:"parent_id"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		ch.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	if req.Content == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Comment content is required"})
		return
	}

	if req.ParentID != nil {
		parent, err := ch.Storage.GetComment(*req.ParentID)
		if err != nil {
			ch.Logger.Println("Error fetching parent comment:", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
			return
		}
		if parent == nil || parent.VideoID != videoID {
			utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid parent comment"})
			return
		}
	}

	comment, err := ch.Storage.CreateComment(store.CreateCommentParams{
		VideoID:  videoID,
		UserID:   user.Id,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		ch.Logger.Println("Error creating comment:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"data": comment})
}
