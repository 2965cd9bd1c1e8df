// Package api provides the HTTP API for the application
package api

import (
	"time"

	"telejoin/internal/platform/config"
	"telejoin/internal/platform/logger"
	phttp "telejoin/internal/platform/net/http"
	"telejoin/internal/platform/net/middleware"

	"telejoin/internal/modkit"
	"telejoin/internal/modkit/httpkit"
	"telejoin/internal/modkit/module"
	"telejoin/internal/modkit/swaggerkit"

	crossrefmod "telejoin/internal/services/api/crossref/module"
	metamod "telejoin/internal/services/api/meta/module"

	// pipeline module owns the Runner and Cache ports
	pipemod "telejoin/internal/services/pipeline/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Pipeline       *pipemod.Module
	EnableSwagger  bool
	EnableProfiler bool
}

// StackFromConfig reads middleware tuning from cfg with API_ prefix
func StackFromConfig(cfg config.Conf) httpkit.StackOptions {
	c := cfg.Prefix("API_")
	return httpkit.StackOptions{
		Timeout:     c.MayDuration("TIMEOUT", 60*time.Second),
		MaxBody:     c.MayBytes("MAX_BODY", 32<<20),
		Throttle:    c.MayInt("THROTTLE", 0),
		SlowRequest: c.MayDuration("SLOW_REQUEST", 2*time.Second),
		Origins:     c.MayCSV("CORS_ORIGINS", nil),
	}
}

// Mount mounts the API service onto the given router
// it must run before any other route is added to r
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg: opt.Config,
		Log: opt.Logger,
	}

	pipe := opt.Pipeline
	ports := module.MustPortsOf[pipemod.Ports](pipe)

	mods := []module.Module{
		metamod.New(deps, pipe.Service().Sources()),
		pipe, // no routes, registered so its ports are discoverable
		crossrefmod.New(deps, crossrefmod.FromConfig(deps.Cfg),
			modkit.WithPorts(crossrefmod.Ports{
				Runner: ports.Runner,
				Cache:  ports.Cache,
			}),
		),
	}

	r.Use(middleware.Heartbeat("/health"))
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(StackFromConfig(deps.Cfg)), func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m)
			m.MountRoutes(api)
		}
	})

	deps.Logger("api").Debug().Strs("modules", module.Names()).Msg("api mounted")
}
