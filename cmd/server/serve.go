package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/minbar/internal/display"
	"github.com/Nixie-Tech-LLC/minbar/internal/logger"
	"github.com/Nixie-Tech-LLC/minbar/internal/notify"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the display server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	provider, cleanup, err := InitProvider(ctx, env)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := display.Options{
		InitialCity:     env.DefaultCity,
		Messages:        env.Messages,
		ClockInterval:   env.ClockInterval,
		MessageInterval: env.MessageInterval,
		Locale:          env.Locale,
	}

	var publisher *notify.Publisher
	if env.MQTTBroker != "" {
		client, err := notify.Connect(env.MQTTBroker, env.MQTTClientID)
		if err != nil {
			// The screen works without MQTT.
			log.Error().Err(err).Str("broker", env.MQTTBroker).Msg("MQTT disabled")
		} else {
			publisher = notify.NewPublisher(client, env.DisplayID)
			defer publisher.Close()
			opts.Notifier = publisher
		}
	}

	clock := display.NewClock(provider, opts)
	if publisher != nil {
		if err := publisher.HandleCommands(func(city string) { clock.SetCity(city) }); err != nil {
			log.Error().Err(err).Msg("remote commands disabled")
		}
	}

	if !env.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware())
	RegisterRoutes(r, env, clock, provider, LoadTemplates())

	srv := &http.Server{
		Addr:              env.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	clockDone := make(chan error, 1)
	go func() { clockDone <- clock.Run(runCtx) }()

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", env.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	cancelRun()
	select {
	case <-clockDone:
	case <-time.After(shutdownTimeout):
		log.Warn().Msg("display clock did not stop in time")
	}
	return runErr
}
