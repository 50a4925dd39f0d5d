// Package persona provides the static persona catalog and lookup.
package persona

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/slashgen-ai/slashgen/pkg/types"
)

// ErrNotFound is returned when a persona id does not resolve.
var ErrNotFound = fmt.Errorf("persona not found")

// Registry is a read-only lookup table of persona profiles. It is populated
// once at construction and never mutated afterwards.
type Registry struct {
	profiles map[types.PersonaID]types.PersonaProfile
	order    []types.PersonaID
}

// NewRegistry creates a registry with the built-in persona catalog.
func NewRegistry() *Registry {
	return newRegistry(defaultProfiles())
}

// NewRegistryWithProfiles creates a registry from an explicit profile list.
// Used when a catalog file overrides the built-in set.
func NewRegistryWithProfiles(profiles []types.PersonaProfile) *Registry {
	return newRegistry(profiles)
}

func newRegistry(profiles []types.PersonaProfile) *Registry {
	r := &Registry{profiles: make(map[types.PersonaID]types.PersonaProfile, len(profiles))}
	for _, p := range profiles {
		if _, exists := r.profiles[p.ID]; !exists {
			r.order = append(r.order, p.ID)
		}
		r.profiles[p.ID] = p
	}
	return r
}

// Get resolves a persona id. Unknown ids fail explicitly; the error carries a
// closest-match suggestion when one is reasonably near.
func (r *Registry) Get(id types.PersonaID) (*types.PersonaProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		if suggestion := r.closest(id); suggestion != "" {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, id, suggestion)
		}
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return &p, nil
}

// List returns all profiles in catalog order.
func (r *Registry) List() []types.PersonaProfile {
	out := make([]types.PersonaProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// closest returns the nearest known id within edit distance 3, or "".
func (r *Registry) closest(id types.PersonaID) types.PersonaID {
	best := types.PersonaID("")
	bestDist := 4
	for _, known := range r.order {
		d := levenshtein.ComputeDistance(string(id), string(known))
		if d < bestDist {
			best = known
			bestDist = d
		}
	}
	return best
}
