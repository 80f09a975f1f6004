package handlers

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HealthHandler struct {
	render  *render.Render
	db      *gorm.DB
	redis   *redis.Client
	appName string
	appEnv  string
}

func NewHealthHandler(renderer *render.Render, db *gorm.DB, redisClient *redis.Client, appName, appEnv string) *HealthHandler {
	return &HealthHandler{render: renderer, db: db, redis: redisClient, appName: appName, appEnv: appEnv}
}

// Healthz reports liveness of the process and its backing stores. A broken
// dependency flips the status to 503 so orchestrators can restart or reroute.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	checks := M{}
	healthy := true

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		checks["database"] = "down"
		healthy = false
	} else {
		checks["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	h.render.JSON(w, status, M{"status": state, "checks": checks})
}

func (h *HealthHandler) Meta(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, M{
		"name":        h.appName,
		"environment": h.appEnv,
	})
}
