package middlewares

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/hushplay/hushplay_server/internal/auth"
	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/store"
	"github.com/hushplay/hushplay_server/internal/utils"
)

type contextKey string

const UserContextKey contextKey = "user"
const AdminContextKey contextKey = "admin"

type MiddlewareHandler struct {
	Logger       *log.Logger
	AdminLogger  *log.Logger
	SessionStore *sessions.CookieStore
	Storage      store.Storage
}

func NewMiddlewareHandler(logger *log.Logger, adminLogger *log.Logger, sessionStore *sessions.CookieStore, storage store.Storage) *MiddlewareHandler {
	return &MiddlewareHandler{
		Logger:       logger,
		AdminLogger:  adminLogger,
		SessionStore: sessionStore,
		Storage:      storage,
	}
}

// sessionUser resolves the session cookie to a user id and email. It does not
// hit storage; handlers needing the full record load it themselves.
func (mh *MiddlewareHandler) sessionUser(r *http.Request) (*models.User, bool) {
	session, err := mh.SessionStore.Get(r, auth.SessionName)
	if err != nil || session.IsNew {
		return nil, false
	}

	userEmail, emailOk := session.Values["user_email"].(string)
	userIDStr, idOk := session.Values["user_id"].(string)
	if !emailOk || !idOk || userEmail == "" || userIDStr == "" {
		return nil, false
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return nil, false
	}

	return &models.User{
		Id:    userID,
		Email: userEmail,
	}, true
}

func (mh *MiddlewareHandler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		user, ok := mh.sessionUser(r)
		if !ok {
			mh.Logger.Println("Unauthenticated request in auth middleware")
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}

		full, err := mh.Storage.GetUser(user.Id)
		if err != nil {
			mh.Logger.Println("Error loading user in auth middleware:", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
			return
		}
		if full == nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Not Authorized"})
			return
		}
		if full.IsBanned {
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Account is banned"})
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, full)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaybeAuthenticate attaches the user to the context when a valid session is
// present and continues anonymously when it is not. Public routes whose
// behavior is enriched for logged-in viewers use this.
func (mh *MiddlewareHandler) MaybeAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		user, ok := mh.sessionUser(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		full, err := mh.Storage.GetUser(user.Id)
		if err != nil || full == nil || full.IsBanned {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, full)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (mh *MiddlewareHandler) AuthenticateAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		user, ok := mh.sessionUser(r)
		if !ok {
			mh.AdminLogger.Println("Unauthenticated request in admin middleware")
			utils.WriteJSON(w, http.StatusUnauthorized, utils.Envelope{"error": "Admin access required"})
			return
		}

		full, err := mh.Storage.GetUser(user.Id)
		if err != nil {
			mh.AdminLogger.Println("Error loading user in admin middleware:", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
			return
		}
		if full == nil || !full.IsAdmin {
			mh.AdminLogger.Printf("Non-admin access attempt on %s", r.URL.Path)
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Admin access required"})
			return
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, full)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (mh *MiddlewareHandler) Cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && !isOriginAllowed(origin) {
			mh.Logger.Printf("Origin not allowed: %s", origin)
			utils.WriteJSON(w, http.StatusForbidden, utils.Envelope{"error": "Origin not allowed"})
			return
		}

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Expose-Headers", "Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours

		// Handle preflight requests (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		mh.Logger.Printf("Request: %s %s | Origin: %s",
			r.Method, r.URL.Path, origin)

		next.ServeHTTP(w, r)
	})
}

func (mh *MiddlewareHandler) Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func isOriginAllowed(origin string) bool {
	allowedOrigins := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}

func GetUserFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}

func GetAdminFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(AdminContextKey).(*models.User)
	return user, ok
}
