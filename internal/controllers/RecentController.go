package controllers

import (
	"errors"
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/recent"
	"meetup/internal/services"
	"net/http"
)

type RecentController struct {
	logger  providers.Logger
	service services.RecentServiceInterface
}

func NewRecentController(logger providers.Logger, service services.RecentServiceInterface) *RecentController {
	return &RecentController{
		logger:  logger,
		service: service,
	}
}

// recentResponse carries the list as it is in memory. Persisted is false when
// the write-through to the store failed.
type recentResponse[T any] struct {
	Items     []T  `json:"items"`
	Persisted bool `json:"persisted"`
}

func respondRecent[T any](rc *RecentController, w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil && items == nil {
		rc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeError(w, http.StatusServiceUnavailable, "recent list unavailable")
		return
	}
	if err != nil && !errors.Is(err, recent.ErrPersistence) {
		rc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, recentResponse[T]{Items: items, Persisted: err == nil})
}

func (rc *RecentController) List(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	switch getKind(r) {
	case models.KindClub:
		items, err := rc.service.Clubs(profile)
		respondRecent(rc, w, r, items, err)
	case models.KindThunder:
		items, err := rc.service.Thunders(profile)
		respondRecent(rc, w, r, items, err)
	default:
		writeError(w, http.StatusBadRequest, services.ErrInvalidKind.Error())
	}
}

// Add records a detail-page view. An entity without an id leaves the list untouched.
func (rc *RecentController) Add(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	switch getKind(r) {
	case models.KindClub:
		var club models.RecentClub
		if err := decodeBody(w, r, &club); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		items, err := rc.service.AddClub(profile, club)
		respondRecent(rc, w, r, items, err)
	case models.KindThunder:
		var thunder models.RecentThunder
		if err := decodeBody(w, r, &thunder); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		items, err := rc.service.AddThunder(profile, thunder)
		respondRecent(rc, w, r, items, err)
	default:
		writeError(w, http.StatusBadRequest, services.ErrInvalidKind.Error())
	}
}

func (rc *RecentController) Remove(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	profile, id := q.Get("profile"), q.Get("id")
	switch getKind(r) {
	case models.KindClub:
		items, err := rc.service.RemoveClub(profile, id)
		respondRecent(rc, w, r, items, err)
	case models.KindThunder:
		items, err := rc.service.RemoveThunder(profile, id)
		respondRecent(rc, w, r, items, err)
	default:
		writeError(w, http.StatusBadRequest, services.ErrInvalidKind.Error())
	}
}
