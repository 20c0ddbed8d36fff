package router

import (
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/sentraid/sentra/internal/pkg/config"
)

// middlewareMaintenance rejects routes listed under app.maintenance.endpoints
// with 503. The list is read once at router build time.
func middlewareMaintenance(cfg config.Config) Middleware {
	var endpoints map[string]struct{}
	if cfg != nil {
		trimmed := lo.FilterMap(cfg.GetArray("app.maintenance.endpoints"), func(e string, _ int) (string, bool) {
			e = strings.TrimSpace(e)
			return e, e != ""
		})
		endpoints = lo.SliceToMap(trimmed, func(e string) (string, struct{}) {
			return e, struct{}{}
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, blocked := endpoints[matchedRoutePath(r)]; blocked {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
