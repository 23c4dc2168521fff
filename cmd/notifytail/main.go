// notifytail connects the notification channel with the stored merchant
// token and prints pushes as they arrive. Handy when debugging room
// membership and event normalization against a live backend.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/config"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/notify"
	"merchantdesk/internal/realtime"
	"merchantdesk/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	tokens := auth.NewStore(cfg.SecretKey, cfg.TokenFile, cfg.CookieFile)

	token, err := tokens.Load()
	if err != nil {
		log.Fatalf("no stored token, sign in through the dashboard first: %v", err)
	}
	claims, err := auth.ValidateToken(token, domain.UserMerchant)
	if err != nil {
		log.Fatalf("stored token rejected: %v", err)
	}

	identity := domain.Identity{
		UserID:     claims.UserID,
		UserType:   claims.Type,
		MerchantID: claims.MerchantID,
		StoreID:    claims.StoreID,
	}

	api := upstream.NewClient(cfg.APIBaseURL, cfg.APIKey, tokens)

	client := realtime.NewClient(identity, tokens, realtime.Options{
		SocketURL:     cfg.SocketURL,
		SignInURL:     cfg.SignInURL,
		ReconnectBase: cfg.ReconnectBase,
		MaxReconnects: cfg.MaxReconnects,
		Backoff:       notify.ExponentialBackoff(cfg.ReconnectBase),
	})

	center := notify.NewCenter(client, api.Stores, api.Notifications, nil, notify.CenterOptions{
		PollPeriod: cfg.UnreadPollPeriod,
	})

	center.Subscribe(func(n domain.Notification) {
		log.Printf("[%s] %s: %s (priority=%s read=%v)", n.Type, n.Title, n.Message, n.Priority, n.Read)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	center.Start(ctx)
	log.Printf("tailing notifications for merchant %s (store %s)", identity.UserID, identity.StoreID)

	<-ctx.Done()
	center.Close()
}
