//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"pingerconf/internal"
	"pingerconf/internal/controllers"
	"pingerconf/internal/editor"
	"pingerconf/internal/providers"
	"pingerconf/internal/services"
	"pingerconf/internal/storage"
	"pingerconf/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewMetricsProvider,
		providers.NewAuthProvider,
		providers.NewGateProvider,

		storage.NewDocumentStore,
		services.NewConfigService,
		wire.Bind(new(editor.RecordGateway), new(services.ConfigServiceInterface)),
		editor.NewRegistry,
		wire.Bind(new(providers.DraftCounter), new(*editor.Registry)),
		editor.NewScheduler,

		controllers.NewDocumentController,
		controllers.NewGateController,
		controllers.NewDraftController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
