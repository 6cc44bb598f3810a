package geo

import (
	"context"

	"github.com/tripintel/tripintel/internal/domain"
)

// Resolver dispatches route resolution by transport mode: network-routable
// modes go to the routing provider, fly and train to the local estimator.
// It implements Router itself so callers never branch on mode.
type Resolver struct {
	router    Router
	estimator Router
}

// NewResolver wraps the network router with estimator fallback for the
// non-network modes.
func NewResolver(router Router) *Resolver {
	return &Resolver{router: router, estimator: Estimator{}}
}

// ResolveRoute implements Router.
func (r *Resolver) ResolveRoute(ctx context.Context, from, to domain.Coordinate, mode domain.TransportMode) (Route, error) {
	if mode.Routable() {
		return r.router.ResolveRoute(ctx, from, to, mode)
	}
	return r.estimator.ResolveRoute(ctx, from, to, mode)
}
