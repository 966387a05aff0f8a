// Package resample provides the Lanczos resampler backends used for resizing and comparison.
package resample

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"printsize/quality"
)

// DefaultBackend is used when no backend is configured
const DefaultBackend = "lanczos"

// ErrUnknownBackend is returned by Lookup for unregistered names
var ErrUnknownBackend = errors.New("unknown resampling backend")

// Lanczos resamples with the pure Go Lanczos filter from imaging
type Lanczos struct{}

// Resample implements quality.Resampler
func (Lanczos) Resample(img image.Image, width, height int) (image.Image, error) {
	if err := checkTarget(img, width, height); err != nil {
		return nil, err
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

func checkTarget(img image.Image, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid target size %dx%d", width, height)
	}
	if img == nil || img.Bounds().Empty() {
		return errors.New("cannot resample an empty image")
	}
	return nil
}

// Registry maps backend names to resamplers
type Registry struct {
	backends map[string]quality.Resampler
	mutex    sync.RWMutex
}

// NewRegistry creates a registry holding the pure Go Lanczos backend
func NewRegistry() *Registry {
	r := &Registry{backends: make(map[string]quality.Resampler)}
	r.Register(DefaultBackend, Lanczos{})
	return r
}

// Register adds or replaces a backend
func (r *Registry) Register(name string, rs quality.Resampler) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.backends[strings.ToLower(name)] = rs
}

// Lookup returns the backend registered under name; empty selects the default
func (r *Registry) Lookup(name string) (quality.Resampler, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if name == "" {
		name = DefaultBackend
	}
	rs, ok := r.backends[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(r.namesLocked(), ", "))
	}
	return rs, nil
}

// Names lists registered backends in sorted order
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.backends))
	for n := range r.backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Lookup finds a backend in the default registry
func Lookup(name string) (quality.Resampler, error) {
	return defaultRegistry.Lookup(name)
}

// Names lists the default registry's backends
func Names() []string {
	return defaultRegistry.Names()
}
