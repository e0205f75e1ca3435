package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ahsasnagar11/typeshit3/internal/config"
	s3infra "github.com/ahsasnagar11/typeshit3/internal/infra/s3"
	pgrepo "github.com/ahsasnagar11/typeshit3/internal/repo/postgres"
	redrepo "github.com/ahsasnagar11/typeshit3/internal/repo/redis"
	authsvc "github.com/ahsasnagar11/typeshit3/internal/services/auth"
	chatsvc "github.com/ahsasnagar11/typeshit3/internal/services/chat"
	feedsvc "github.com/ahsasnagar11/typeshit3/internal/services/feed"
	likessvc "github.com/ahsasnagar11/typeshit3/internal/services/likes"
	matchessvc "github.com/ahsasnagar11/typeshit3/internal/services/matches"
	mediasvc "github.com/ahsasnagar11/typeshit3/internal/services/media"
	ratesvc "github.com/ahsasnagar11/typeshit3/internal/services/rate"
	userssvc "github.com/ahsasnagar11/typeshit3/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	chatRepo := pgrepo.NewChatRepo(pool)
	likeRepo := pgrepo.NewLikeRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(authsvc.Dependencies{
		JWT:        jwtManager,
		Sessions:   sessionRepo,
		Users:      userRepo,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})
	usersService := userssvc.NewService(userRepo)
	feedService := feedsvc.NewService(userRepo)
	rateLimiter := ratesvc.NewLimiter(
		rateRepo,
		cfg.Chat.SendMaxPerMinute,
		cfg.Chat.SendMaxPer10Sec,
	)
	chatService := chatsvc.NewService(chatsvc.Dependencies{
		Messages: chatRepo,
		Limiter:  rateLimiter,
	})
	likesService := likessvc.NewService(likessvc.Dependencies{
		Pool:  pool,
		Likes: likeRepo,
		Users: userRepo,
	})
	matchesService := matchessvc.NewService(matchessvc.Dependencies{
		Pool:    pool,
		Matches: matchRepo,
		Likes:   likeRepo,
		Users:   userRepo,
		Logger:  log,
	}, matchessvc.Config{
		AllowDummyIDs: cfg.Debug.AllowDummyIDs,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(mediaStorage, userRepo)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		UsersService:   usersService,
		ChatService:    chatService,
		LikesService:   likesService,
		MatchesService: matchesService,
		FeedService:    feedService,
		MediaService:   mediaService,
		Logger:         log,
		Config:         cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
