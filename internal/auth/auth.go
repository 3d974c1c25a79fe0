package auth

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"

	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/utils"
)

const SessionName = "hushplay_session"

// PasswordAuth serves the email/password auth surface: register, login,
// logout and the session-introspection endpoint.
type PasswordAuth struct {
	Logger       *log.Logger
	SessionStore *sessions.CookieStore
	Storage      store.Storage
}

func NewPasswordAuth(logger *log.Logger, sessionStore *sessions.CookieStore, storage store.Storage) *PasswordAuth {
	return &PasswordAuth{
		Logger:       logger,
		SessionStore: sessionStore,
		Storage:      storage,
	}
}

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (pa *PasswordAuth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		pa.Logger.Println("Error decoding register request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Invalid request body"})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "username, email and password are required"})
		return
	}

	existing, err := pa.Storage.GetUserByUsername(req.Username)
	if err != nil {
		pa.Logger.Println("Error checking username:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}
	if existing != nil {
		utils.WriteJSON(w, http.StatusConflict, utils.Envelope{"error": "username already taken"})
		return
	}

	existing, err = pa.Storage.GetUserByEmail(req.Email)
	if err != nil {
		pa.Logger.Println("Error checking email:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}
	if existing != nil {
		utils.WriteJSON(w, http.StatusConflict, utils.Envelope{"error": "email already registered"})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user, err := pa.Storage.CreateUser(store.CreateUserParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: displayName,
	})
	if err != nil {
		pa.Logger.Println("Error creating user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	// every new account gets a default channel
	_, err = pa.Storage.CreateChannel(store.CreateChannelParams{
		UserID: user.Id,
		Name:   displayName,
	})
	if err != nil {
		pa.Logger.Println("Error creating default channel:", err)
	}

	if err := pa.startSession(w, r, user.Id, user.Email); err != nil {
		pa.Logger.Println("Error starting session:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.Envelope{"user": user})
}

func (pa *PasswordAuth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		pa.Logger.Println("Error decoding login request:", err)
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Invalid request body"})
		return
	}

	user, err := pa.Storage.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		pa.Logger.Println("Error authenticating user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}
	// one response for unknown email and wrong password
	if user == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Invalid email or password"})
		return
	}
	if user.IsBanned {
		utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Account is banned"})
		return
	}

	if err := pa.startSession(w, r, user.Id, user.Email); err != nil {
		pa.Logger.Println("Error starting session:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"user": user})
}

func (pa *PasswordAuth) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := pa.SessionStore.Get(r, SessionName)
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Logged out"})
		return
	}

	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		pa.Logger.Println("Error clearing session:", err)
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Logged out"})
}

func (pa *PasswordAuth) AuthUser(w http.ResponseWriter, r *http.Request) {
	session, err := pa.SessionStore.Get(r, SessionName)
	if err != nil || session.IsNew {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	userIDStr, ok := session.Values["user_id"].(string)
	if !ok || userIDStr == "" {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	user, err := pa.Storage.GetUser(userID)
	if err != nil {
		pa.Logger.Println("Error loading session user:", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}
	if user == nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"user": user})
}

func (pa *PasswordAuth) startSession(w http.ResponseWriter, r *http.Request, userID int64, email string) error {
	session, err := pa.SessionStore.Get(r, SessionName)
	if err != nil {
		// a stale cookie is replaced by the fresh session below
		pa.Logger.Println("Replacing undecodable session:", err)
	}

	session.Values["user_id"] = strconv.FormatInt(userID, 10)
	session.Values["user_email"] = email
	return session.Save(r, w)
}
