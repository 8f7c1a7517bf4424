// Package handlers manages the different versions of the API.
package handlers

import (
	"context"
	"net/http"
	"os"

	v1 "github.com/dishantyadav04/agribid/app/services/ledger/handlers/v1"
	"github.com/dishantyadav04/agribid/business/core/auction"
	"github.com/dishantyadav04/agribid/business/web/mid"
	"github.com/dishantyadav04/agribid/foundation/blockchain/state"
	"github.com/dishantyadav04/agribid/foundation/events"
	"github.com/dishantyadav04/agribid/foundation/nameservice"
	"github.com/dishantyadav04/agribid/foundation/web"
	"go.uber.org/zap"
)

// MuxConfig contains all the mandatory systems required by handlers.
type MuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	State    *state.State
	Auction  *auction.Core
	NS       *nameservice.NameService
	Evts     *events.Events
	BidRPS   float64
	BidBurst int
}

// APIMux constructs a http.Handler with all application routes defined.
func APIMux(cfg MuxConfig) http.Handler {

	// Construct the web.App which holds all routes as well as common
	// Middleware.
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Cors("*"),
		mid.Panics(),
	)

	// Accept CORS 'OPTIONS' preflight requests.
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return nil
	}
	app.Handle(http.MethodOptions, "", "/*path", h)

	// Load the v1 routes.
	v1.Routes(app, v1.Config{
		Log:      cfg.Log,
		State:    cfg.State,
		Auction:  cfg.Auction,
		NS:       cfg.NS,
		Evts:     cfg.Evts,
		BidRPS:   cfg.BidRPS,
		BidBurst: cfg.BidBurst,
	})

	return app
}
