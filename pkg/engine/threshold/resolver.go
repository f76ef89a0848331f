package threshold

import (
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// Source tells where a resolved threshold came from.
type Source string

const (
	SourceScanner       Source = "scanner"
	SourceScannerConfig Source = "scanner_config"
	SourceGlobalConfig  Source = "global_config"
	SourceDefault       Source = "default"
)

// Resolver picks exactly one threshold per scanner. The scanner's own default is consulted first,
// then the per-scanner configuration, the global configuration and finally MEDIUM.
type Resolver struct {
	global    *types.Threshold
	overrides map[string]types.Threshold
	defaults  map[string]types.Threshold
}

func NewResolver(global *types.Threshold, overrides map[string]types.Threshold) *Resolver {
	r := &Resolver{
		global:    global,
		overrides: make(map[string]types.Threshold, len(overrides)),
		defaults:  make(map[string]types.Threshold),
	}
	for name, t := range overrides {
		r.overrides[name] = t
	}
	return r
}

// SetScannerDefault registers the threshold a scanner instance declares for itself.
// It must be called before the resolver is shared between goroutines.
func (x *Resolver) SetScannerDefault(name string, t types.Threshold) {
	x.defaults[name] = t
}

func (x *Resolver) Resolve(name string) types.Threshold {
	t, _ := x.ResolveWithSource(name)
	return t
}

func (x *Resolver) ResolveWithSource(name string) (types.Threshold, Source) {
	if x == nil {
		return types.DefaultThreshold, SourceDefault
	}
	if t, ok := x.defaults[name]; ok {
		return t, SourceScanner
	}
	if t, ok := x.overrides[name]; ok {
		return t, SourceScannerConfig
	}
	if x.global != nil {
		return *x.global, SourceGlobalConfig
	}
	return types.DefaultThreshold, SourceDefault
}

// Global returns the global threshold used for the overall verdict.
func (x *Resolver) Global() types.Threshold {
	if x == nil || x.global == nil {
		return types.DefaultThreshold
	}
	return *x.global
}
