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

type UserHandler struct {
	Storage store.Storage
	Logger  *log.Logger
}

func NewUserHandler(storage store.Storage, logger *log.Logger) *UserHandler {
	return &UserHandler{
		Storage: storage,
		Logger:  logger,
	}
}

// HandlerGetUser returns a public profile. PasswordHash is never serialized.
func (uh *UserHandler) HandlerGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid user id"})
		return
	}

	user, err := uh.Storage.GetUser(userID)
	if err != nil {
		uh.Logger.Println("Error fetching user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if user == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "User not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": user})
}

func (uh *UserHandler) HandlerUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middlewares.GetUserFromContext(r)
	if !ok {
		uh.Logger.Println("No user found in context.")
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"message": "Not Authorized"})
		return
	}

	type Request struct {
		DisplayName  *string `json:"display_name"`
		ProfileImage *string `json:"profile_image"`
		Bio          *string `json:"bio"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		uh.Logger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	updated, err := uh.Storage.UpdateUser(user.Id, store.UpdateUserParams{
		DisplayName:  req.DisplayName,
		ProfileImage: req.ProfileImage,
		Bio:          req.Bio,
	})
	if err != nil {
		uh.Logger.Println("Error updating user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if updated == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "User not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": updated})
}
