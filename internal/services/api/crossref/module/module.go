// Package module wires crossref into the API using modkit
package module

import (
	modkit "telejoin/internal/modkit"
	"telejoin/internal/modkit/httpkit"
	str "telejoin/internal/platform/strings"
	crossrefhttp "telejoin/internal/services/api/crossref/http"
	crossrefsvc "telejoin/internal/services/api/crossref/service"
	pipe "telejoin/internal/services/pipeline/domain"
)

// Ports carries the pipeline ports this module needs
type Ports struct {
	Runner pipe.RunnerPort
	Cache  pipe.CachePort
}

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	opts  Options
	svc   crossrefsvc.Service
}

// New constructs a crossref module; the pipeline ports arrive via modkit.WithPorts
func New(deps modkit.Deps, opts Options, mods ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("crossref"),
		modkit.WithPrefix("/crossref"),
	}, mods...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Runner == nil {
		panic("crossref module requires Ports with a Runner")
	}
	return &Module{
		deps:  deps,
		built: b,
		opts:  opts,
		svc:   crossrefsvc.New(p.Runner, p.Cache),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		crossrefhttp.Register(rr, m.svc, m.opts.MaxUpload)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "crossref") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.svc }
