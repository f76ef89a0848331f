// Package aggregate merges scan results into one finding set with running totals.
package aggregate

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/engine/extract"
	"github.com/secmon-lab/barrage/pkg/engine/threshold"
)

// ConvertedDirName is the directory under the output directory that holds converted targets.
// Findings in it are kept while anything else under the output directory is excluded.
const ConvertedDirName = "converted"

type jobKey struct {
	scanner string
	kind    types.TargetKind
}

func (x jobKey) compare(y jobKey) int {
	if c := cmp.Compare(x.scanner, y.scanner); c != 0 {
		return c
	}
	return cmp.Compare(x.kind.Order(), y.kind.Order())
}

// Aggregator is the single writer of the aggregate report. Merge may be called from any
// goroutine; calls are serialized.
type Aggregator struct {
	mu sync.Mutex

	extractor *extract.Extractor
	resolver  *threshold.Resolver
	now       func() time.Time

	sourceDir    string
	outputDir    string
	convertedDir string
	excluder     *Excluder

	runs       map[jobKey]*sarif.Run
	additional map[jobKey]model.OpaquePayload
	metrics    map[jobKey]*model.ScannerMetrics
	summary    model.SummaryStats
}

type Option func(*Aggregator)

func WithExtractor(extractor *extract.Extractor) Option {
	return func(x *Aggregator) {
		x.extractor = extractor
	}
}

func WithResolver(resolver *threshold.Resolver) Option {
	return func(x *Aggregator) {
		x.resolver = resolver
	}
}

// WithOutputDir enables self-exclusion of findings located in the output directory.
func WithOutputDir(dir string) Option {
	return func(x *Aggregator) {
		x.outputDir = dir
	}
}

// WithConvertedDir overrides the converted target directory, outputDir/converted by default.
func WithConvertedDir(dir string) Option {
	return func(x *Aggregator) {
		x.convertedDir = dir
	}
}

func WithClock(now func() time.Time) Option {
	return func(x *Aggregator) {
		x.now = now
	}
}

func New(sourceDir string, opts ...Option) *Aggregator {
	x := &Aggregator{
		extractor:  extract.New(),
		resolver:   threshold.NewResolver(nil, nil),
		now:        time.Now,
		sourceDir:  sourceDir,
		runs:       make(map[jobKey]*sarif.Run),
		additional: make(map[jobKey]model.OpaquePayload),
		metrics:    make(map[jobKey]*model.ScannerMetrics),
	}
	for _, opt := range opts {
		opt(x)
	}

	x.excluder = NewExcluder(sourceDir, x.outputDir, x.convertedDir)
	return x
}

// Excluder returns the self-exclusion rule of this aggregate so that the dispatcher derives
// job statuses from the same findings that are merged.
func (x *Aggregator) Excluder() *Excluder {
	return x.excluder
}

// Merge adds one scan result. A result for an already merged (scanner, kind) pair replaces
// the previous entry and its contribution to the totals.
func (x *Aggregator) Merge(result *model.ScanResult) {
	if result == nil {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	key := jobKey{scanner: result.ScannerName, kind: result.Kind}
	if prev, ok := x.metrics[key]; ok {
		x.subtract(prev)
		delete(x.runs, key)
		delete(x.additional, key)
	}

	th, src := x.resolver.ResolveWithSource(result.ScannerName)
	m := &model.ScannerMetrics{
		Status:          result.Status,
		Threshold:       th,
		ThresholdSource: string(src),
		ExitCode:        result.ExitCode,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMS:      result.Duration().Milliseconds(),
		Error:           result.Error,
		Errors:          slices.Clone(result.Errors),
		SkipReason:      result.SkipReason,
	}

	switch p := result.Payload.(type) {
	case *model.FindingSetPayload:
		if p != nil && p.Log != nil {
			x.runs[key] = x.normalize(result, p.Log, m)
		} else {
			m.Histogram = result.Histogram
		}

	case model.OpaquePayload:
		m.Histogram, _ = x.extractor.Extract(p)
		x.additional[key] = maps.Clone(p)

	default:
		m.Histogram = result.Histogram
	}

	m.FindingCount = m.Histogram.Total()
	m.Actionable = threshold.Evaluate(m.Histogram, th)

	x.add(m)
	x.metrics[key] = m
}

func (x *Aggregator) add(m *model.ScannerMetrics) {
	x.summary.BySeverity = x.summary.BySeverity.Plus(m.Histogram)
	x.summary.ActionableBySeverity = x.summary.ActionableBySeverity.Plus(threshold.Filter(m.Histogram, m.Threshold))
	x.summary.Total += m.FindingCount
	x.summary.Actionable += m.Actionable
	x.summary.Suppressed += m.Suppressed
	x.summary.SelfExcluded += m.SelfExcluded
	x.summary.Scanners.Add(m.Status, 1)
}

func (x *Aggregator) subtract(m *model.ScannerMetrics) {
	x.summary.BySeverity = x.summary.BySeverity.Minus(m.Histogram)
	x.summary.ActionableBySeverity = x.summary.ActionableBySeverity.Minus(threshold.Filter(m.Histogram, m.Threshold))
	x.summary.Total -= m.FindingCount
	x.summary.Actionable -= m.Actionable
	x.summary.Suppressed -= m.Suppressed
	x.summary.SelfExcluded -= m.SelfExcluded
	x.summary.Scanners.Add(m.Status, -1)
}

// normalize copies the findings of one job into a single run: paths are sanitized, findings
// in the output directory are dropped, IDs are assigned and duplicates within the job collapse.
func (x *Aggregator) normalize(result *model.ScanResult, log *sarif.Log, m *model.ScannerMetrics) *sarif.Run {
	run := &sarif.Run{
		Tool:    sarif.Tool{Driver: sarif.ToolComponent{Name: result.ScannerName}},
		Results: []sarif.Result{},
		Properties: sarif.Properties{
			model.PropScanner:    result.ScannerName,
			model.PropTargetKind: string(result.Kind),
			"target":             result.Target,
		},
	}

	seen := make(map[types.FindingID]struct{})
	rules := make(map[string]struct{})

	for _, src := range log.Runs {
		if run.Tool.Driver.Version == "" {
			run.Tool.Driver.Version = src.Tool.Driver.Version
			run.Tool.Driver.InformationURI = src.Tool.Driver.InformationURI
		}
		for _, rule := range src.Tool.Driver.Rules {
			if _, ok := rules[rule.ID]; !ok {
				rules[rule.ID] = struct{}{}
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
			}
		}

		for _, r := range src.Results {
			f := r.Clone()
			x.sanitizeLocations(&f)
			if x.excluder.IsExcluded(f.Path()) {
				m.SelfExcluded++
				continue
			}

			id := findingIDOf(&f)
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			native := extract.NativeSeverity(&f)
			sev := x.extractor.Lookup(native)
			if !strings.EqualFold(native, sev.String()) {
				f.SetProperty(model.PropNativeSeverity, native)
			}
			f.GUID = string(id)
			f.SetProperty(model.PropFindingID, string(id))
			f.SetProperty(model.PropScanner, result.ScannerName)
			f.SetProperty(model.PropTargetKind, string(result.Kind))
			f.SetProperty(model.PropSeverity, sev.String())

			if f.IsSuppressed() {
				m.Suppressed++
			} else {
				m.Histogram.Add(sev, 1)
			}
			run.Results = append(run.Results, f)
		}
	}

	slices.SortFunc(run.Results, compareResults)
	slices.SortFunc(run.Tool.Driver.Rules, func(a, b sarif.ReportingDescriptor) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return run
}

func (x *Aggregator) sanitizeLocations(r *sarif.Result) {
	for _, loc := range r.Locations {
		if loc.PhysicalLocation != nil && loc.PhysicalLocation.ArtifactLocation != nil {
			a := loc.PhysicalLocation.ArtifactLocation
			a.URI = SanitizePath(a.URI, x.excluder.Root())
		}
	}
}

func compareResults(a, b sarif.Result) int {
	as, ae := a.Lines()
	bs, be := b.Lines()
	return cmp.Or(
		cmp.Compare(a.RuleID, b.RuleID),
		cmp.Compare(a.Path(), b.Path()),
		cmp.Compare(as, bs),
		cmp.Compare(ae, be),
		cmp.Compare(a.GUID, b.GUID),
		cmp.Compare(a.Message.Text, b.Message.Text),
	)
}

// Len returns the number of merged (scanner, kind) entries.
func (x *Aggregator) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.metrics)
}

// Snapshot returns a deep copy of the current aggregate in deterministic order.
func (x *Aggregator) Snapshot() *model.AggregateReport {
	x.mu.Lock()
	defer x.mu.Unlock()

	keys := slices.SortedFunc(maps.Keys(x.metrics), jobKey.compare)

	log := sarif.NewLog()
	additional := make(map[string]map[types.TargetKind]model.OpaquePayload)
	results := make(map[string]map[types.TargetKind]*model.ScannerMetrics)

	for _, key := range keys {
		if run, ok := x.runs[key]; ok {
			log.Runs = append(log.Runs, run.Clone())
		}
		if p, ok := x.additional[key]; ok {
			if additional[key.scanner] == nil {
				additional[key.scanner] = make(map[types.TargetKind]model.OpaquePayload)
			}
			additional[key.scanner][key.kind] = maps.Clone(p)
		}
		if results[key.scanner] == nil {
			results[key.scanner] = make(map[types.TargetKind]*model.ScannerMetrics)
		}
		m := *x.metrics[key]
		m.Errors = slices.Clone(m.Errors)
		results[key.scanner][key.kind] = &m
	}

	summary := x.summary
	summary.Status = threshold.Status(summary.ActionableBySeverity)

	return &model.AggregateReport{
		Sarif:             log,
		AdditionalReports: additional,
		Metadata: model.ReportMetadata{
			GeneratedAt:     x.now(),
			SourceDir:       x.sourceDir,
			OutputDir:       x.outputDir,
			GlobalThreshold: x.resolver.Global(),
			Summary:         summary,
			ScannerResults:  results,
		},
	}
}
