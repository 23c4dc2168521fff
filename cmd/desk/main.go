package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/config"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/middleware"
	authmod "merchantdesk/internal/modules/auth"
	"merchantdesk/internal/modules/booking"
	"merchantdesk/internal/modules/branch"
	"merchantdesk/internal/modules/catalog"
	"merchantdesk/internal/modules/chat"
	"merchantdesk/internal/modules/notification"
	"merchantdesk/internal/modules/social"
	"merchantdesk/internal/store"
	"merchantdesk/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	tokens := auth.NewStore(cfg.SecretKey, cfg.TokenFile, cfg.CookieFile)
	session := auth.NewSession()

	api := upstream.NewClient(cfg.APIBaseURL, cfg.APIKey, tokens)

	db, err := store.Connect(cfg.CacheDSN)
	if err != nil {
		log.Fatal(err)
	}
	cache, err := store.NewNotificationCache(db, 0)
	if err != nil {
		log.Fatal(err)
	}

	hub := newRealtimeHub(cfg, tokens, api, cache)
	defer hub.stop()

	restoreSession(tokens, session, api, hub)

	authService := authmod.NewService(api.Auth, tokens, session, hub.start, hub.stop)
	authHandler := authmod.NewHandler(authService)

	branchService := branch.NewService(api.Branches, api.Stores, session)
	branchHandler := branch.NewHandler(branchService)

	catalogService := catalog.NewService(api.Catalog, session)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(api.Bookings, session)
	bookingHandler := booking.NewHandler(bookingService)

	chatService := chat.NewService(api.Chat, hub, session)
	chatHandler := chat.NewHandler(chatService)

	notificationService := notification.NewService(api.Notifications, cache, hub, session)
	notificationHandler := notification.NewHandler(notificationService)

	socialService := social.NewService(api.Socials, session)
	socialHandler := social.NewHandler(socialService)

	r := gin.New()
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		branchHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		chatHandler.RegisterRoutes(v1)
		notificationHandler.RegisterRoutes(v1)
		socialHandler.RegisterRoutes(v1)
	}

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("dashboard listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// restoreSession resumes a previous sign-in when a still-valid merchant
// token survives on disk, so a restart does not force a new login.
func restoreSession(tokens *auth.Store, session *auth.Session, api *upstream.Client, hub *realtimeHub) {
	token, err := tokens.Load()
	if err != nil {
		return
	}

	claims, err := auth.ValidateToken(token, domain.UserMerchant)
	if err != nil {
		log.Printf("stored token rejected: %v", err)
		_ = tokens.Clear()
		return
	}

	identity := domain.Identity{
		UserID:     claims.UserID,
		UserType:   claims.Type,
		MerchantID: claims.MerchantID,
		StoreID:    claims.StoreID,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if profile, err := api.Stores.Profile(ctx); err == nil {
		identity.StoreID = profile.ID
		identity.StoreName = profile.Name
	}

	session.Set(identity)
	hub.start(identity)
	log.Printf("session restored for merchant %s", identity.UserID)
}
