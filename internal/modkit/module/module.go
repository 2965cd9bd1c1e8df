// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "telejoin/internal/platform/net/http"
)

// Module is what the api mounts and what cross wiring inspects
// it lives apart from modkit so a module can export its own ports type without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
