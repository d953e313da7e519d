package router

import (
	"net/http"

	"github.com/api-sage/cfc-rewards/src/internal/metrics"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, middleware func(http.Handler) http.Handler)
}

// Middlewares groups the guards applied to each route family.
type Middlewares struct {
	RateLimit func(http.Handler) http.Handler
	Bearer    func(http.Handler) http.Handler
	Admin     func(http.Handler) http.Handler
}

type Controllers struct {
	Auth         RouteRegistrar
	Program      RouteRegistrar
	Profile      RouteRegistrar
	Subscription RouteRegistrar
	Wallet       RouteRegistrar
	Admin        RouteRegistrar
}

func New(controllers Controllers, mw Middlewares) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)
	mux.Handle("/metrics", metrics.Handler())

	register(mux, controllers.Auth, mw.RateLimit)
	register(mux, controllers.Program, nil)
	register(mux, controllers.Profile, mw.Bearer)
	register(mux, controllers.Subscription, mw.Bearer)
	register(mux, controllers.Wallet, mw.Bearer)
	register(mux, controllers.Admin, mw.Admin)

	return metrics.InstrumentHandler(mux)
}

func register(mux *http.ServeMux, registrar RouteRegistrar, middleware func(http.Handler) http.Handler) {
	if registrar == nil {
		return
	}
	registrar.RegisterRoutes(mux, middleware)
}
