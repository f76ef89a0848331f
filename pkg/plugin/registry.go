// Package plugin holds the registry of scanner factories and reporters available to a scan.
package plugin

import (
	"maps"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// ScannerFactory creates a scanner instance from its configuration.
type ScannerFactory func(cfg model.ScannerConfig) (interfaces.Scanner, error)

var (
	ErrDuplicated = goerr.New("plugin already registered")
	ErrNotFound   = goerr.New("plugin not found")
)

// Registry is an explicit set of plugins. Registration happens at start-up; lookups are safe
// for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	scanners  map[string]ScannerFactory
	reporters map[string]interfaces.Reporter
}

func New() *Registry {
	return &Registry{
		scanners:  make(map[string]ScannerFactory),
		reporters: make(map[string]interfaces.Reporter),
	}
}

func (x *Registry) RegisterScanner(name string, factory ScannerFactory) error {
	if name == "" || factory == nil {
		return goerr.Wrap(types.ErrInvalidOption, "scanner name and factory are required", goerr.V("name", name))
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.scanners[name]; ok {
		return goerr.Wrap(ErrDuplicated, "scanner", goerr.V("name", name))
	}
	x.scanners[name] = factory
	return nil
}

func (x *Registry) RegisterReporter(reporter interfaces.Reporter) error {
	if reporter == nil || reporter.Name() == "" {
		return goerr.Wrap(types.ErrInvalidOption, "reporter must have a name")
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.reporters[reporter.Name()]; ok {
		return goerr.Wrap(ErrDuplicated, "reporter", goerr.V("name", reporter.Name()))
	}
	x.reporters[reporter.Name()] = reporter
	return nil
}

// ScannerNames returns registered scanner names in sorted order.
func (x *Registry) ScannerNames() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Sorted(maps.Keys(x.scanners))
}

func (x *Registry) HasScanner(name string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.scanners[name]
	return ok
}

// NewScanner instantiates the named scanner.
func (x *Registry) NewScanner(name string, cfg model.ScannerConfig) (interfaces.Scanner, error) {
	x.mu.RLock()
	factory, ok := x.scanners[name]
	x.mu.RUnlock()
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "scanner", goerr.V("name", name))
	}

	scanner, err := factory(cfg)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create scanner", goerr.V("name", name))
	}
	return scanner, nil
}

// ReporterNames returns registered reporter names in sorted order.
func (x *Registry) ReporterNames() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Sorted(maps.Keys(x.reporters))
}

func (x *Registry) Reporter(name string) (interfaces.Reporter, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	r, ok := x.reporters[name]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "reporter", goerr.V("name", name))
	}
	return r, nil
}
