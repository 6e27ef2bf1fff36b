package platform

import (
	"errors"

	"github.com/law-makers/jobscout/pkg/models"
)

// ErrUnsupportedPlatform is returned when no enabled adapter matches a page
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Options configures the default registry
type Options struct {
	// SeekDomains overrides the domains the SEEK adapter matches
	SeekDomains []string
	// Disabled platforms are skipped by Resolve
	Disabled map[models.Platform]bool
}

// Registry maps platform kinds to adapters
type Registry struct {
	order    []models.Platform
	adapters map[models.Platform]Adapter
	disabled map[models.Platform]bool
}

// NewRegistry registers adapters in resolution order. A later adapter for the
// same platform replaces the earlier one.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{
		adapters: make(map[models.Platform]Adapter, len(adapters)),
		disabled: make(map[models.Platform]bool),
	}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Default builds the registry for LinkedIn, SEEK and Indeed
func Default(opts Options) *Registry {
	r := NewRegistry(NewLinkedIn(), NewSEEK(opts.SeekDomains...), NewIndeed())
	for p, off := range opts.Disabled {
		r.SetEnabled(p, !off)
	}
	return r
}

// Register adds or replaces the adapter for its platform
func (r *Registry) Register(a Adapter) {
	p := a.Platform()
	if _, exists := r.adapters[p]; !exists {
		r.order = append(r.order, p)
	}
	r.adapters[p] = a
}

// SetEnabled toggles whether Resolve considers a platform
func (r *Registry) SetEnabled(p models.Platform, enabled bool) {
	r.disabled[p] = !enabled
}

// Enabled reports whether the platform is registered and not disabled
func (r *Registry) Enabled(p models.Platform) bool {
	_, ok := r.adapters[p]
	return ok && !r.disabled[p]
}

// Resolve returns the first enabled adapter whose Matches accepts pageURL
func (r *Registry) Resolve(pageURL string) (Adapter, bool) {
	for _, p := range r.order {
		if r.disabled[p] {
			continue
		}
		if a := r.adapters[p]; a.Matches(pageURL) {
			return a, true
		}
	}
	return nil, false
}

// Lookup returns the adapter registered for p regardless of its enabled state
func (r *Registry) Lookup(p models.Platform) (Adapter, bool) {
	a, ok := r.adapters[p]
	return a, ok
}

// Platforms returns the registered platforms in resolution order
func (r *Registry) Platforms() []models.Platform {
	out := make([]models.Platform, len(r.order))
	copy(out, r.order)
	return out
}
