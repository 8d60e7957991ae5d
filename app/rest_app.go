package app

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/TeddyRux/marathon/config"
	"github.com/TeddyRux/marathon/pkg/logger"
	"github.com/TeddyRux/marathon/rest"
)

// NewRestApp wires the full REST application.
func NewRestApp(configName string, configDirPath string) (*fx.App, error) {
	cfg, err := config.InitConfig(configName, configDirPath)
	if err != nil {
		return nil, err
	}

	logger.InitLogger(cfg.Logging.Level, cfg.Logging.Console)

	app := fx.New(
		HandlerModule(cfg),
		fx.Invoke(StartRestApp),
	)
	return app, nil
}

// StartRestApp binds the echo engine to the fx lifecycle.
func StartRestApp(lc fx.Lifecycle, cfg config.ServerConfig, handler *rest.Handler) error {
	engine := echo.New()
	engine.HideBanner = true
	handler.SetupRoutes(engine)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverHost := cfg.Host
			if serverHost == "" {
				serverHost = ":8080"
			}
			go func() {
				logger.Logger(ctx).Info().Msgf("starting rest server on %s", serverHost)
				if err := engine.Start(serverHost); err != nil {
					logger.Logger(ctx).Fatal().Err(err).Msgf("start rest server fail on %s", serverHost)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Logger(ctx).Info().Msg("shutting down rest server")
			return engine.Shutdown(ctx)
		},
	})

	return nil
}
