//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"meetup/internal"
	"meetup/internal/controllers"
	"meetup/internal/providers"
	"meetup/internal/repositories/sqlite"
	"meetup/internal/services"
	"meetup/internal/storage"
	"meetup/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		provideLogger,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewStoreProvider,
		sqlite.NewGroupRepositoryProvider,

		services.NewGroupService,
		services.NewRecentService,
		services.NewFilterService,

		controllers.NewGroupController,
		controllers.NewRecentController,
		controllers.NewFilterController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
