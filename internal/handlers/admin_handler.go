package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/utils"
)

type AdminHandler struct {
	Storage     store.Storage
	AdminLogger *log.Logger
}

func NewAdminHandler(storage store.Storage, adminLogger *log.Logger) *AdminHandler {
	return &AdminHandler{
		Storage:     storage,
		AdminLogger: adminLogger,
	}
}

func (ah *AdminHandler) HandlerGetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := ah.Storage.GetAllUsers()
	if err != nil {
		ah.AdminLogger.Println("Error fetching all users:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": users})
}

func (ah *AdminHandler) HandlerSetUserBan(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Invalid user id"})
		return
	}

	type Request struct {
		Banned bool `json:"banned"`
	}

	var req Request
	if err := utils.ReadJSON(r, &req); err != nil {
		ah.AdminLogger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	updated, err := ah.Storage.UpdateUser(userID, store.UpdateUserParams{
		IsBanned: &req.Banned,
	})
	if err != nil {
		ah.AdminLogger.Println("Error updating ban state:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}
	if updated == nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"message": "User not found"})
		return
	}

	ah.AdminLogger.Printf("User %d banned=%t", userID, req.Banned)
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": updated})
}

func (ah *AdminHandler) HandlerGetSiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := ah.Storage.GetSiteSettings()
	if err != nil {
		ah.AdminLogger.Println("Error fetching site settings:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": settings})
}

func (ah *AdminHandler) HandlerUpdateSiteSettings(w http.ResponseWriter, r *http.Request) {
	var req store.UpdateSiteSettingsParams
	if err := utils.ReadJSON(r, &req); err != nil {
		ah.AdminLogger.Println("Error decoding request body:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"message": "Bad Request"})
		return
	}

	settings, err := ah.Storage.UpdateSiteSettings(req)
	if err != nil {
		ah.AdminLogger.Println("Error updating site settings:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"message": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"data": settings})
}
