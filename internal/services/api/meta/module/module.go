// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "telejoin/internal/modkit"
	"telejoin/internal/modkit/httpkit"
	str "telejoin/internal/platform/strings"

	metahttp "telejoin/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	sources   []string
	startedAt time.Time
}

// New constructs a meta module; sources feed the readiness checks
func New(deps modkit.Deps, sources []string, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		deps:      deps,
		built:     b,
		sources:   append([]string(nil), sources...),
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.deps.Cfg.MayString("SERVICE_NAME", "telejoin-api"),
			StartedAt:   m.startedAt,
			Sources:     m.sources,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
