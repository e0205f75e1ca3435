package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ahsasnagar11/typeshit3/internal/config"
	authsvc "github.com/ahsasnagar11/typeshit3/internal/services/auth"
	chatsvc "github.com/ahsasnagar11/typeshit3/internal/services/chat"
	feedsvc "github.com/ahsasnagar11/typeshit3/internal/services/feed"
	likessvc "github.com/ahsasnagar11/typeshit3/internal/services/likes"
	matchessvc "github.com/ahsasnagar11/typeshit3/internal/services/matches"
	mediasvc "github.com/ahsasnagar11/typeshit3/internal/services/media"
	userssvc "github.com/ahsasnagar11/typeshit3/internal/services/users"
	"github.com/ahsasnagar11/typeshit3/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService    *authsvc.Service
	UsersService   *userssvc.Service
	ChatService    *chatsvc.Service
	LikesService   *likessvc.Service
	MatchesService *matchessvc.Service
	FeedService    *feedsvc.Service
	MediaService   *mediasvc.Service
	Logger         *zap.Logger
	Config         config.Config
}

// RegisterRoutes keeps the mobile client's existing paths: flat,
// unversioned, with ids in bodies and query strings. Mutating routes
// require a bearer token; reads stay open.
func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.UsersService)
	usersHandler := handlers.NewUsersHandler(deps.UsersService, deps.LikesService)
	chatHandler := handlers.NewChatHandler(deps.ChatService)
	likesHandler := handlers.NewLikesHandler(deps.LikesService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchesService, deps.FeedService)
	mediaHandler := handlers.NewMediaHandler(deps.MediaService)
	healthHandler := handlers.NewHealthHandler()

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/health", healthHandler.Handle)

	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Post("/refresh", authHandler.Refresh)
	r.With(authMW).Post("/logout", authHandler.Logout)

	r.Get("/users/{userId}", usersHandler.Get)
	r.Get("/check-user/{userId}", usersHandler.CheckUser)
	r.With(authMW).Put("/users/{userId}", usersHandler.Update)
	r.With(authMW).Post("/media/photo", mediaHandler.UploadPhoto)

	r.With(authMW).Post("/chats", chatHandler.Send)
	r.Get("/messages", chatHandler.Messages)

	r.With(authMW).Post("/like-profile", likesHandler.LikeProfile)
	r.Get("/received-likes/{userId}", likesHandler.ReceivedLikes)

	r.With(authMW).Post("/create-match", matchesHandler.Create)
	r.With(authMW).Post("/decline-match", matchesHandler.Decline)
	r.Get("/get-matches/{userId}", matchesHandler.List)
	r.Get("/matches", matchesHandler.Browse)
}
