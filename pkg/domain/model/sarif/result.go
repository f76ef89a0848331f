package sarif

import (
	"encoding/json"
	"io"
	"maps"

	"github.com/m-mizutani/goerr/v2"
)

// NewLog returns an empty SARIF 2.1.0 log.
func NewLog() *Log {
	return &Log{Version: Version, Schema: Schema, Runs: []Run{}}
}

// Decode reads a SARIF log. A document without version or runs is rejected.
func Decode(r io.Reader) (*Log, error) {
	var log Log
	if err := json.NewDecoder(r).Decode(&log); err != nil {
		return nil, goerr.Wrap(err, "failed to decode SARIF log")
	}
	if log.Version == "" || log.Runs == nil {
		return nil, goerr.New("not a SARIF log", goerr.V("version", log.Version))
	}
	return &log, nil
}

// Path returns the URI of the first physical location, or "" when the result has none.
func (x *Result) Path() string {
	if loc := x.physical(); loc != nil && loc.ArtifactLocation != nil {
		return loc.ArtifactLocation.URI
	}
	return ""
}

// SetPath replaces the URI of the first physical location.
func (x *Result) SetPath(uri string) {
	if loc := x.physical(); loc != nil && loc.ArtifactLocation != nil {
		loc.ArtifactLocation.URI = uri
	}
}

// Lines returns the start and end line of the first region. When only the start line is known, end equals start.
func (x *Result) Lines() (start, end int) {
	loc := x.physical()
	if loc == nil || loc.Region == nil {
		return 0, 0
	}
	start, end = loc.Region.StartLine, loc.Region.EndLine
	if end < start {
		end = start
	}
	return start, end
}

func (x *Result) physical() *PhysicalLocation {
	if len(x.Locations) == 0 {
		return nil
	}
	return x.Locations[0].PhysicalLocation
}

// Property returns a string property of the result.
func (x *Result) Property(key string) string {
	if x.Properties == nil {
		return ""
	}
	if s, ok := x.Properties[key].(string); ok {
		return s
	}
	return ""
}

func (x *Result) SetProperty(key string, value any) {
	if x.Properties == nil {
		x.Properties = Properties{}
	}
	x.Properties[key] = value
}

func (x *Result) IsSuppressed() bool {
	return len(x.Suppressions) > 0
}

// Clone returns a deep copy of the result. Property values are copied shallowly.
func (x Result) Clone() Result {
	out := x
	out.Fingerprints = maps.Clone(x.Fingerprints)
	out.PartialFingerprints = maps.Clone(x.PartialFingerprints)
	out.Properties = maps.Clone(x.Properties)
	if x.Suppressions != nil {
		out.Suppressions = append([]Suppression{}, x.Suppressions...)
	}
	if x.Locations != nil {
		out.Locations = make([]Location, len(x.Locations))
		for i, loc := range x.Locations {
			out.Locations[i] = loc.clone()
		}
	}
	return out
}

func (x Location) clone() Location {
	if x.PhysicalLocation == nil {
		return x
	}
	p := *x.PhysicalLocation
	if p.ArtifactLocation != nil {
		a := *p.ArtifactLocation
		p.ArtifactLocation = &a
	}
	if p.Region != nil {
		r := *p.Region
		p.Region = &r
	}
	return Location{PhysicalLocation: &p}
}

// Clone returns a deep copy of the run.
func (x Run) Clone() Run {
	out := x
	out.Properties = maps.Clone(x.Properties)
	if x.Tool.Driver.Rules != nil {
		out.Tool.Driver.Rules = append([]ReportingDescriptor{}, x.Tool.Driver.Rules...)
	}
	out.Results = make([]Result, len(x.Results))
	for i, r := range x.Results {
		out.Results[i] = r.Clone()
	}
	return out
}

// Clone returns a deep copy of the log.
func (x *Log) Clone() *Log {
	if x == nil {
		return nil
	}
	out := *x
	out.Runs = make([]Run, len(x.Runs))
	for i, run := range x.Runs {
		out.Runs[i] = run.Clone()
	}
	return &out
}
