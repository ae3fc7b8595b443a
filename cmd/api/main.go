package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"handyconnect/internal/config"
	"handyconnect/internal/database"
	"handyconnect/internal/domain/auth"
	"handyconnect/internal/domain/booking"
	"handyconnect/internal/domain/chat"
	"handyconnect/internal/domain/document"
	"handyconnect/internal/domain/notification"
	"handyconnect/internal/domain/profile"
	"handyconnect/internal/domain/relationship"
	"handyconnect/internal/middleware"
	jwtsvc "handyconnect/internal/pkg/jwt"
	"handyconnect/internal/pkg/logger"
	"handyconnect/internal/service/email"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New()
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&auth.User{},
		&profile.ProfessionalProfile{},
		&profile.ProfessionalPrivate{},
		&profile.CustomerProfile{},
		&booking.Booking{},
		&chat.Conversation{},
		&chat.Message{},
		&notification.Notification{},
		&notification.PushSubscription{},
		&document.Document{},
	); err != nil {
		log.Fatal("auto-migrate failed", zap.Error(err))
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var mailer auth.WelcomeMailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFromName, cfg.SMTPPort == "465")
	}

	profileRepo := profile.NewRepository(db)
	profileService := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileService)

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, profileService, j, mailer, log)
	authHandler := auth.NewHandler(authService)

	guard := relationship.NewService(relationship.NewRepository(db))

	pusher := notification.NewWebPusher(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.VAPIDSubject)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, guard, pusher, log)
	notificationHandler := notification.NewHandler(notificationService)

	bookingRepo := booking.NewRepository(db)
	bookingService := booking.NewService(bookingRepo, profileService, notification.NewBookingNotifier(notificationService, log))
	bookingHandler := booking.NewHandler(bookingService)

	hub := chat.NewHub()
	chatRepo := chat.NewRepository(db)
	chatService := chat.NewService(chatRepo, profileService, hub)
	chatHandler := chat.NewHandler(chatService)
	wsHandler := chat.NewWSHandler(hub, j, chatService, log)

	documentRepo := document.NewRepository(db)
	documentService := document.NewService(documentRepo, profileService, cfg.DocumentsDir)
	documentHandler := document.NewHandler(documentService)

	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		auth.RegisterRoutes(v1, authHandler)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			profile.RegisterRoutes(v1, protected, profileHandler)
			booking.RegisterRoutes(protected, bookingHandler)
			chat.RegisterRoutes(protected, chatHandler)
			notification.RegisterRoutes(protected, notificationHandler)
			document.RegisterRoutes(protected, documentHandler)
		}
	}

	r.GET("/ws/chat", wsHandler.Handle)

	log.Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
