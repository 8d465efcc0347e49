package controllers

import (
	"errors"
	"fmt"
	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"meetup/internal/models"
	"meetup/internal/repositories"
	"meetup/internal/services"
	"net/http"
	"strings"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// writeJSONTagged writes v with an ETag derived from its encoding and answers
// 304 when the client already holds that version.
func writeJSONTagged(w http.ResponseWriter, r *http.Request, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(gson))
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// etagMatches applies the weak comparison If-None-Match calls for. Each header
// value may carry a comma separated list of tags or the wildcard.
func etagMatches(values []string, etag string) bool {
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
				return true
			}
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrBanned):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrGroupFull),
		errors.Is(err, services.ErrLastAdmin),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotMember), errors.Is(err, services.ErrInvalidKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON body into dst and runs its validate tags.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		return v.Errors
	}
	return nil
}

func getKind(r *http.Request) models.GroupKind {
	return models.GroupKind(r.URL.Query().Get("kind"))
}
