package services

import (
	"fmt"
	json "github.com/goccy/go-json"
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/recent"
	"meetup/internal/storage"
)

const (
	KeySelectedClubFilter    = "selectedClubFilter"
	KeySelectedThunderFilter = "selectedThunderFilter"
)

type FilterServiceInterface interface {
	Get(kind models.GroupKind, profile string) (models.SelectedFilter, error)
	Set(kind models.GroupKind, profile string, filter models.SelectedFilter) (models.SelectedFilter, error)
}

type FilterService struct {
	store  storage.KeyValueStore
	logger providers.Logger
}

func NewFilterService(store storage.KeyValueStore, logger providers.Logger) FilterServiceInterface {
	return &FilterService{store: store, logger: logger}
}

func filterKey(kind models.GroupKind, profile string) (string, error) {
	switch kind {
	case models.KindClub:
		return recent.Key(profile, KeySelectedClubFilter), nil
	case models.KindThunder:
		return recent.Key(profile, KeySelectedThunderFilter), nil
	default:
		return "", ErrInvalidKind
	}
}

func (fs *FilterService) Get(kind models.GroupKind, profile string) (models.SelectedFilter, error) {
	empty := models.SelectedFilter{Categories: []string{}}

	key, err := filterKey(kind, profile)
	if err != nil {
		return empty, err
	}
	raw, ok, err := fs.store.Get(key)
	if err != nil {
		return empty, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return empty, nil
	}

	var f models.SelectedFilter
	if err := json.Unmarshal(raw, &f); err != nil {
		fs.logger.Warnf(providers.TypeStore, "Discarding unparseable filter %s: %s", key, err)
		return empty, nil
	}
	return f.Normalize(), nil
}

func (fs *FilterService) Set(kind models.GroupKind, profile string, filter models.SelectedFilter) (models.SelectedFilter, error) {
	f := filter.Normalize()

	key, err := filterKey(kind, profile)
	if err != nil {
		return f, err
	}
	data, err := json.Marshal(f)
	if err != nil {
		return f, err
	}
	if err := fs.store.Set(key, data); err != nil {
		return f, fmt.Errorf("save %s: %w", key, err)
	}
	return f, nil
}
