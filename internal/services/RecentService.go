package services

import (
	"errors"
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/recent"
	"meetup/internal/storage"
)

type RecentServiceInterface interface {
	Clubs(profile string) ([]models.RecentClub, error)
	AddClub(profile string, club models.RecentClub) ([]models.RecentClub, error)
	RemoveClub(profile, id string) ([]models.RecentClub, error)
	Thunders(profile string) ([]models.RecentThunder, error)
	AddThunder(profile string, thunder models.RecentThunder) ([]models.RecentThunder, error)
	RemoveThunder(profile, id string) ([]models.RecentThunder, error)
	Profiles() int
}

// RecentService keeps the recently viewed clubs and thunders of every
// profile, each list bounded at recent.DefaultCapacity. A failed write leaves the in-memory list updated and is returned
// to the caller as a recent.ErrPersistence; a failed initial read aborts.
type RecentService struct {
	clubs    *recent.Registry[models.RecentClub]
	thunders *recent.Registry[models.RecentThunder]
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewRecentService(store storage.KeyValueStore, logger providers.Logger, metrics providers.MetricsProviderInterface) RecentServiceInterface {
	opts := []recent.Option{recent.WithLogger(logger)}
	return &RecentService{
		clubs:    recent.NewRegistry[models.RecentClub](store, recent.KeyRecentClubs, opts...),
		thunders: recent.NewRegistry[models.RecentThunder](store, recent.KeyRecentThunders, opts...),
		logger:   logger,
		metrics:  metrics,
	}
}

func list[T recent.Identifiable](rs *RecentService, reg *recent.Registry[T], profile string) ([]T, error) {
	items, err := reg.View(profile)
	if err != nil {
		rs.logger.Errorf(providers.TypeStore, "Loading %s for %q: %s", reg.Base(), profile, err)
		return nil, err
	}
	return items, nil
}

func mutate[T recent.Identifiable](rs *RecentService, reg *recent.Registry[T], profile, op string, fn func(*recent.Cache[T]) ([]T, error)) ([]T, error) {
	c, release, err := reg.Acquire(profile)
	if err != nil {
		rs.logger.Errorf(providers.TypeStore, "Loading %s for %q: %s", reg.Base(), profile, err)
		return nil, err
	}
	defer release()

	items, err := fn(c)
	rs.metrics.IncRecentMutations(reg.Base(), op)
	if errors.Is(err, recent.ErrPersistence) {
		rs.logger.Warnf(providers.TypeStore, "Recent list %s kept in memory only: %s", c.Key(), err)
	}
	return items, err
}

func (rs *RecentService) Clubs(profile string) ([]models.RecentClub, error) {
	return list(rs, rs.clubs, profile)
}

func (rs *RecentService) AddClub(profile string, club models.RecentClub) ([]models.RecentClub, error) {
	return mutate(rs, rs.clubs, profile, "add", func(c *recent.Cache[models.RecentClub]) ([]models.RecentClub, error) {
		return c.Add(club)
	})
}

func (rs *RecentService) RemoveClub(profile, id string) ([]models.RecentClub, error) {
	return mutate(rs, rs.clubs, profile, "remove", func(c *recent.Cache[models.RecentClub]) ([]models.RecentClub, error) {
		return c.Remove(id)
	})
}

func (rs *RecentService) Thunders(profile string) ([]models.RecentThunder, error) {
	return list(rs, rs.thunders, profile)
}

func (rs *RecentService) AddThunder(profile string, thunder models.RecentThunder) ([]models.RecentThunder, error) {
	return mutate(rs, rs.thunders, profile, "add", func(c *recent.Cache[models.RecentThunder]) ([]models.RecentThunder, error) {
		return c.Add(thunder)
	})
}

func (rs *RecentService) RemoveThunder(profile, id string) ([]models.RecentThunder, error) {
	return mutate(rs, rs.thunders, profile, "remove", func(c *recent.Cache[models.RecentThunder]) ([]models.RecentThunder, error) {
		return c.Remove(id)
	})
}

// Profiles reports how many recent lists are held in memory across both kinds.
func (rs *RecentService) Profiles() int {
	return rs.clubs.Len() + rs.thunders.Len()
}
