package module

import "sync"

// ports published by name once main has wired the modules, read by late lookups and tests
var registry = struct {
	sync.RWMutex
	byName map[string]any
}{byName: map[string]any{}}

// Register publishes ports under name, a second call replaces the first
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	registry.byName[name] = ports
}

// PortsAs looks name up and asserts its ports to T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v := registry.byName[name]
	registry.RUnlock()
	out, ok := v.(T)
	return out, ok
}

// Reset forgets every registration
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.byName = map[string]any{}
}
