package module

import (
	"slices"
	"sync"
)

// process wide registry of mounted modules, filled once during bootstrap
var (
	mu  sync.RWMutex
	reg = map[string]Module{}
)

// Register records m under its name, replacing any earlier entry
func Register(m Module) {
	mu.Lock()
	reg[m.Name()] = m
	mu.Unlock()
}

// Lookup returns the module registered under name
func Lookup(name string) (Module, bool) {
	mu.RLock()
	m, ok := reg[name]
	mu.RUnlock()
	return m, ok
}

// PortsAs finds a T on the module registered under name
func PortsAs[T any](name string) (T, bool) {
	m, ok := Lookup(name)
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}

// Names lists registered modules in sorted order
func Names() []string {
	mu.RLock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	mu.RUnlock()
	slices.Sort(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]Module{}
	mu.Unlock()
}
