package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"whatsapp-client/internal/config"
	"whatsapp-client/pkg/webhook"
	"whatsapp-client/pkg/whatsapp"
)

// echobot verifies the webhook, echoes every inbound text message back to
// its sender and marks it as read. It is the smallest useful wiring of the
// client and webhook packages.
func main() {
	cfg := config.LoadConfig()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	client, err := whatsapp.NewClient(whatsapp.Config{
		AccessToken:   cfg.WhatsAppToken,
		PhoneNumberID: cfg.PhoneNumberID,
		Version:       cfg.GraphVersion,
		Logger:        &log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("client setup failed")
	}

	handler := webhook.NewHandler(cfg.VerifyToken).WithLogger(log)

	handler.Subscribe(webhook.EventMessageReceived, func(event webhook.Event) {
		msg := event.Message
		if msg == nil || msg.Text == "" {
			return
		}
		log.Info().Str("from", msg.From).Str("text", msg.Text).Msg("message received")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := client.MarkAsRead(ctx, msg.ID); err != nil {
			log.Warn().Err(err).Msg("mark as read failed")
		}
		if _, err := client.SendText(ctx, msg.From, msg.Text); err != nil {
			log.Error().Err(err).Msg("echo failed")
		}
	})

	srv, err := handler.StartServer(cfg.Port, func() {
		log.Info().Int("port", cfg.Port).Msg("webhook server listening")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("server start failed")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
