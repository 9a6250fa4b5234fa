package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/trattoria-labs/tavolo/agent/agents"
	"github.com/trattoria-labs/tavolo/agent/archive"
	contractx "github.com/trattoria-labs/tavolo/agent/contract"
	"github.com/trattoria-labs/tavolo/agent/dispatch"
	"github.com/trattoria-labs/tavolo/agent/restaurant"
	statex "github.com/trattoria-labs/tavolo/agent/state"
	configx "github.com/trattoria-labs/tavolo/pkg/config"
	_ "github.com/trattoria-labs/tavolo/pkg/logger/autoload"
	webhookx "github.com/trattoria-labs/tavolo/pkg/webhook"
	"github.com/trattoria-labs/tavolo/server"
)

func main() {
	restCfg := restaurant.MustLoad()

	storeCfg := configx.MustNew[statex.StoreConfig]("SESSION")
	store := statex.NewMemoryStore(
		statex.WithTTL(storeCfg.TTL),
		statex.WithSweepPeriod(storeCfg.SweepPeriod),
	)
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var orderArchive contractx.OrderArchive
	archiveCfg := configx.MustNew[archive.Config]("ARCHIVE")
	if archiveCfg.DSN != "" {
		pg := archive.MustNewPostgres(*archiveCfg)
		if err := pg.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("archive init failed")
		}
		defer pg.Close()
		orderArchive = pg
		log.Info().Msg("postgres order archive enabled")
	} else {
		orderArchive = archive.NewNoop()
		log.Info().Msg("order archive disabled")
	}

	var notifier contractx.Notifier
	webhookCfg := configx.MustNew[webhookx.Config]("WEBHOOK")
	if webhookCfg.URL != "" {
		notifier = webhookx.MustNew(*webhookCfg)
		log.Info().Msg("restaurant webhook enabled")
	}

	dispatcher := dispatch.MustNew(store, agents.NewRegistry(restCfg), orderArchive, notifier)

	serverCfg := configx.MustNew[server.Config]("SERVER")
	srv, err := server.New(*serverCfg, dispatcher, restCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build http server")
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}

	// Let in-flight order effects finish before the process exits.
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}
