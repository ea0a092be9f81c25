package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler serves /health. The database check is mandatory; the redis
// check only runs when background sends are configured.
type HealthHandler struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewHealthHandler creates a health handler (redis optional).
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redisClient}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{
		"database": checkResult(h.pool.Ping(ctx)),
	}
	if h.redis != nil {
		checks["redis"] = checkResult(h.redis.Ping(ctx).Err())
	}

	status, code := "ok", http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: status, Checks: checks})
}

func checkResult(err error) string {
	if err != nil {
		return "down: " + err.Error()
	}
	return "ok"
}
