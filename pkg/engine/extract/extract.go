// Package extract turns raw scanner payloads into severity histograms.
package extract

import (
	"encoding/json"
	"maps"
	"reflect"
	"strings"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// SeverityTable maps lower-cased native severity names to buckets.
type SeverityTable map[string]types.Severity

// DefaultSeverityTable maps SARIF levels and the bucket names themselves.
func DefaultSeverityTable() SeverityTable {
	return SeverityTable{
		"error":         types.SeverityHigh,
		"warning":       types.SeverityMedium,
		"note":          types.SeverityLow,
		"none":          types.SeverityInfo,
		"critical":      types.SeverityCritical,
		"high":          types.SeverityHigh,
		"medium":        types.SeverityMedium,
		"moderate":      types.SeverityMedium,
		"low":           types.SeverityLow,
		"info":          types.SeverityInfo,
		"informational": types.SeverityInfo,
		"unknown":       types.SeverityInfo,
	}
}

type Extractor struct {
	table SeverityTable
}

type Option func(*Extractor)

// WithSeverity overrides or adds one native severity mapping.
func WithSeverity(native string, sev types.Severity) Option {
	return func(x *Extractor) {
		x.table[strings.ToLower(native)] = sev
	}
}

func New(opts ...Option) *Extractor {
	x := &Extractor{table: DefaultSeverityTable()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Table returns a copy of the effective mapping.
func (x *Extractor) Table() SeverityTable {
	return maps.Clone(x.table)
}

// Lookup maps a native severity name. Unknown names are informational.
func (x *Extractor) Lookup(native string) types.Severity {
	if sev, ok := x.table[strings.ToLower(strings.TrimSpace(native))]; ok {
		return sev
	}
	return types.SeverityInfo
}

// NativeSeverity returns properties.severity when present, else the SARIF level.
func NativeSeverity(r *sarif.Result) string {
	if s := r.Property(model.PropSeverity); s != "" {
		return s
	}
	if r.Level == "" {
		// SARIF defaults a missing level to warning
		return string(sarif.LevelWarning)
	}
	return string(r.Level)
}

// Severity returns the bucket of a finding.
func (x *Extractor) Severity(r *sarif.Result) types.Severity {
	return x.Lookup(NativeSeverity(r))
}

// Extract computes the histogram and finding count of a payload. It never fails; unreadable payloads count as zero.
func (x *Extractor) Extract(p model.Payload) (types.SeverityHistogram, int) {
	var h types.SeverityHistogram
	switch v := p.(type) {
	case *model.FindingSetPayload:
		if v == nil || v.Log == nil {
			break
		}
		for i := range v.Log.Runs {
			for j := range v.Log.Runs[i].Results {
				r := &v.Log.Runs[i].Results[j]
				if r.IsSuppressed() {
					continue
				}
				h.Add(x.Severity(r), 1)
			}
		}

	case model.OpaquePayload:
		h = x.extractOpaque(v)
	}

	return h, h.Total()
}

func (x *Extractor) extractOpaque(p model.OpaquePayload) types.SeverityHistogram {
	var h types.SeverityHistogram

	if counts, ok := p["severityCounts"]; ok {
		if m, ok := asMap(counts); ok {
			for key, value := range m {
				if n, ok := asInt(value); ok && n > 0 {
					h.Add(x.Lookup(key), n)
				}
			}
			return h
		}
	}

	if findings, ok := asSlice(p["findings"]); ok {
		for _, f := range findings {
			sev := ""
			if m, ok := asMap(f); ok {
				sev, _ = m["severity"].(string)
			}
			h.Add(x.Lookup(sev), 1)
		}
	}

	return h
}

// asSlice accepts any slice or array, e.g. []any decoded from JSON or
// []map[string]any built in Go.
func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMap accepts any map keyed by a string kind.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case model.OpaquePayload:
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func asInt(v any) (int, bool) {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		return int(f), err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return int(rv.Float()), true
	}
	return 0, false
}
