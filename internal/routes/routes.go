package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/hushplay/hushplay_server/internal/app"
)

func SetupRoutes(app *app.Application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httprate.LimitAll(200, time.Minute))
	r.Use(app.MiddlewareHandler.RequestLogger)
	r.Use(app.MiddlewareHandler.Security)

	r.Route("/auth", func(r chi.Router) {

		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)

		r.Post("/register", app.Auth.Register)
		r.Post("/login", app.Auth.Login)
		r.Post("/logout", app.Auth.Logout)
		r.Get("/user", app.Auth.AuthUser)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)

		// public routes
		r.Route("/public", func(r chi.Router) {
			r.Get("/videos", app.VideoHandler.HandlerGetVideos)
			r.Get("/videos/recent", app.VideoHandler.HandlerGetRecentVideos)
			r.Get("/videos/trending", app.VideoHandler.HandlerGetTrendingVideos)
			r.Get("/videos/quickies", app.VideoHandler.HandlerGetQuickies)
			r.With(app.MiddlewareHandler.MaybeAuthenticate).Get("/videos/{id}", app.VideoHandler.HandlerGetVideoByID)
			r.Get("/videos/{id}/comments", app.CommentHandler.HandlerGetCommentsByVideo)
			r.With(app.MiddlewareHandler.MaybeAuthenticate).Get("/videos/{id}/similar", app.RecommendHandler.HandlerGetSimilarVideos)
			r.Get("/categories/{category}/trending", app.RecommendHandler.HandlerGetCategoryTrending)
			r.Get("/users/{id}", app.UserHandler.HandlerGetUser)
			r.Get("/users/{id}/videos", app.VideoHandler.HandlerGetVideosByUser)
			r.Get("/users/{id}/channels", app.ChannelHandler.HandlerGetChannelsByUser)
			r.Get("/channels/{id}", app.ChannelHandler.HandlerGetChannel)
		})

		// auth routes
		r.Group(func(r chi.Router) {
			r.Use(app.MiddlewareHandler.Authenticate)

			r.Patch("/users/me", app.UserHandler.HandlerUpdateProfile)

			r.Route("/videos", func(r chi.Router) {
				r.Post("/", app.VideoHandler.HandlerCreateVideo)
				r.Patch("/{id}", app.VideoHandler.HandlerUpdateVideo)
				r.Delete("/{id}", app.VideoHandler.HandlerDeleteVideo)
				r.Post("/{id}/ads", app.VideoHandler.HandlerToggleVideoAds)
				r.Post("/{id}/comments", app.CommentHandler.HandlerCreateComment)
				r.Post("/{id}/like", app.SocialHandler.HandlerCreateLikedVideo)
				r.Post("/{id}/history", app.SocialHandler.HandlerCreateHistory)
			})

			r.Route("/channels", func(r chi.Router) {
				r.Post("/", app.ChannelHandler.HandlerCreateChannel)
				r.Patch("/{id}", app.ChannelHandler.HandlerUpdateChannel)
				r.Post("/{id}/subscribe", app.SocialHandler.HandlerCreateSubscription)
			})

			r.Get("/subscriptions", app.SocialHandler.HandlerGetSubscriptions)
			r.Get("/likes", app.SocialHandler.HandlerGetLikedVideos)
			r.Get("/history", app.SocialHandler.HandlerGetHistory)
			r.Get("/recommendations", app.RecommendHandler.HandlerGetRecommendations)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/metrics", app.DashboardHandler.HandlerGetDashboardMetrics)
			})
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)
		r.Use(app.MiddlewareHandler.AuthenticateAdmin)

		r.Get("/users", app.AdminHandler.HandlerGetAllUsers)
		r.Patch("/users/{id}/ban", app.AdminHandler.HandlerSetUserBan)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", app.AdminHandler.HandlerGetSiteSettings)
			r.Patch("/", app.AdminHandler.HandlerUpdateSiteSettings)
		})
	})

	return r
}
