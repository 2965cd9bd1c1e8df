package module

import (
	phttp "telejoin/internal/platform/net/http"
)

// RunnerPort stands in for a module port interface
type RunnerPort interface {
	Run() int
}

type runner struct{ n int }

func (r runner) Run() int { return r.n }

// fakeModule is a small module double
type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string             { return m.name }
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) MountRoutes(phttp.Router) {}

var _ Module = fakeModule{}
