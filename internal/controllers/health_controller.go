package controllers

import (
	"fmt"
	"meetup/internal/providers"
	"meetup/internal/services"
	"meetup/internal/structures"
	"net/http"
	"time"
)

type HealthController struct {
	recent    services.RecentServiceInterface
	cache     providers.CacheProviderInterface
	driver    string
	startTime time.Time
}

type healthResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	StorageDriver  string  `json:"storage_driver"`
	RecentProfiles int     `json:"recent_profiles"`
	CachedRosters  int64   `json:"cached_rosters"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "ok",
		Uptime:         formatDuration(uptime),
		UptimeSeconds:  uptime.Seconds(),
		StorageDriver:  hc.driver,
		RecentProfiles: hc.recent.Profiles(),
		CachedRosters:  hc.cache.Entries(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, recent services.RecentServiceInterface, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		recent:    recent,
		cache:     cache,
		driver:    conf.Storage.Driver,
		startTime: time.Now(),
	}
}
