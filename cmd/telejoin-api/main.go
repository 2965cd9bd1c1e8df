// @title         telejoin API
// @version       0.1.0
// @description   Joins completed field visits with vehicle telemetry by date

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"telejoin/internal/core/version"
	"telejoin/internal/modkit"
	"telejoin/internal/platform/config"
	"telejoin/internal/platform/logger"
	phttp "telejoin/internal/platform/net/http"

	"telejoin/internal/services/api"
	pipemod "telejoin/internal/services/pipeline/module"
)

func main() {
	version.SetService("telejoin-api")

	// shared settings live under TELEJOIN_*, the http server under TELEJOIN_API_*
	root := config.New()
	appCfg := root.Prefix("TELEJOIN_")
	apiCfg := appCfg.Prefix("API_")

	l := logger.Named("telejoin-api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipe, err := pipemod.New(modkit.Deps{Log: l, Cfg: appCfg}, pipemod.FromConfig(root))
	if err != nil {
		l.Fatal().Err(err).Msg("pipeline init failed")
	}

	watched, err := pipe.Watch(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("telemetry watcher failed")
	}

	// http server (reads TELEJOIN_API_PORT and friends)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         appCfg,
			Logger:         l,
			Pipeline:       pipe,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	l.Info().Strs("sources", pipe.Service().Sources()).Str("version", version.Info().Version).Msg("starting")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	stop()
	<-watched
}
