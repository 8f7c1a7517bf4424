package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/dishantyadav04/agribid/business/web/errs"
	"github.com/dishantyadav04/agribid/foundation/web"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned to clients submitting faster than the
// configured bid rate.
var ErrRateLimited = errors.New("too many requests, slow down")

// RateLimit rejects requests once the configured requests-per-second
// budget is exhausted. Applied to the bid submission endpoints so a single
// client can't flood the pending pool.
func RateLimit(rps float64, burst int) web.Middleware {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !limiter.Allow() {
				return errs.NewTrusted(ErrRateLimited, http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
