package di

import (
	"meetup/internal/providers"
	"meetup/internal/structures"
)

// provideLogger adds a cleanup to NewLogProvider so the injector closes log files.
func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}
