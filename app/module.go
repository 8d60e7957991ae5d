package app

import (
	"go.uber.org/fx"

	"github.com/TeddyRux/marathon/config"
	"github.com/TeddyRux/marathon/rest"
	"github.com/TeddyRux/marathon/service"
)

func ConfigModule(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Provide(func() config.Config {
			return cfg
		}),
		fx.Provide(func(c config.Config) config.ServerConfig {
			return c.Server
		}),
		fx.Provide(func(c config.Config) config.LoggingConfig {
			return c.Logging
		}),
	)
}

// ServiceModule creates an Fx module that provides the service layer.
func ServiceModule(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		fx.Provide(service.NewService),
	)
}

// HandlerModule creates an Fx module that provides the REST handler.
func HandlerModule(cfg config.Config) fx.Option {
	return fx.Options(
		ServiceModule(cfg),
		fx.Provide(rest.NewHandler),
	)
}
