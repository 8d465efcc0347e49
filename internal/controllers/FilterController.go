package controllers

import (
	"errors"
	"meetup/internal/models"
	"meetup/internal/providers"
	"meetup/internal/services"
	"net/http"
)

type FilterController struct {
	logger  providers.Logger
	service services.FilterServiceInterface
}

func NewFilterController(logger providers.Logger, service services.FilterServiceInterface) *FilterController {
	return &FilterController{
		logger:  logger,
		service: service,
	}
}

func (fc *FilterController) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrInvalidKind) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	writeError(w, http.StatusServiceUnavailable, "filter store unavailable")
}

func (fc *FilterController) Get(w http.ResponseWriter, r *http.Request) {
	f, err := fc.service.Get(getKind(r), r.URL.Query().Get("profile"))
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (fc *FilterController) Set(w http.ResponseWriter, r *http.Request) {
	var f models.SelectedFilter
	if err := decodeBody(w, r, &f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := fc.service.Set(getKind(r), r.URL.Query().Get("profile"), f)
	if err != nil {
		fc.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
