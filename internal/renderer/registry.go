package renderer

import "fmt"

// BackendDeps are the collaborators the named backends are built from.
type BackendDeps struct {
	EngineCommand []string
	EnginePool    *EnginePool
	Remote        RemoteOptions
	Paginated     PaginatedOptions
}

var backendNames = []string{"engine", "vector", "remote", "paginated"}

// KnownBackends lists every backend name BuildBackends accepts.
func KnownBackends() []string {
	return append([]string(nil), backendNames...)
}

// BuildBackends turns a configured priority list into backend instances in the
// same order.
func BuildBackends(names []string, deps BackendDeps) ([]Backend, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one backend is required")
	}

	seen := make(map[string]bool, len(names))
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("backend %q listed more than once", name)
		}
		seen[name] = true

		switch name {
		case "engine":
			backends = append(backends, NewEngineBackend(deps.EngineCommand, deps.EnginePool))
		case "vector":
			backends = append(backends, NewVectorBackend())
		case "remote":
			backends = append(backends, NewRemoteBackend(deps.Remote))
		case "paginated":
			backends = append(backends, NewPaginatedBackend(deps.Paginated))
		default:
			return nil, fmt.Errorf("unknown backend %q", name)
		}
	}
	return backends, nil
}
