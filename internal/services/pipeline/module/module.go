// Package module wires the crossref pipeline using modkit
package module

import (
	"context"

	"telejoin/internal/core/schema"
	"telejoin/internal/modkit"
	"telejoin/internal/modkit/httpkit"
	"telejoin/internal/services/pipeline/domain"
	"telejoin/internal/services/pipeline/service"
)

// Ports defines the pipeline module ports
type Ports struct {
	Runner domain.RunnerPort
	Cache  domain.CachePort
}

// Module implements the pipeline module
type Module struct {
	deps  modkit.Deps
	opts  Options
	svc   *service.Svc
	ports Ports
}

// New constructs the pipeline module
// The schema file is read here so a bad override fails at startup
func New(deps modkit.Deps, opts Options) (*Module, error) {
	sch, err := schema.Load(opts.SchemaFile)
	if err != nil {
		return nil, err
	}
	if len(opts.Sources) == 0 {
		opts.Sources = DefaultSources
	}
	svc := service.New(service.Config{
		Sources:  opts.Sources,
		Schema:   sch,
		Cache:    opts.Cache,
		CacheMax: opts.CacheMax,
	})
	m := &Module{deps: deps, opts: opts, svc: svc}
	m.ports = Ports{Runner: svc, Cache: svc}
	return m, nil
}

// Watch starts the source watcher when enabled; the returned channel closes
// when it stops, or is already closed when watching is off
func (m *Module) Watch(ctx context.Context) (<-chan struct{}, error) {
	if !m.opts.Watch || !m.opts.Cache {
		done := make(chan struct{})
		close(done)
		return done, nil
	}
	return service.NewWatcher(m.opts.Sources, m.svc, nil).Start(ctx)
}

// Service returns the concrete pipeline service
func (m *Module) Service() *service.Svc { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return "pipeline" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// MountRoutes is a no-op as the pipeline has no routes of its own
func (m *Module) MountRoutes(httpkit.Router) {}
