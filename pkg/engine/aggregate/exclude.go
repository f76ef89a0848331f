package aggregate

import (
	"path/filepath"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
)

// Excluder recognizes findings located in the scan's own output directory. The converted
// directory is exempt. A nil Excluder excludes nothing.
type Excluder struct {
	root         string
	excludedDir  string
	convertedDir string
}

// NewExcluder creates an Excluder for outputDir. An empty convertedDir means outputDir/converted.
func NewExcluder(sourceDir, outputDir, convertedDir string) *Excluder {
	x := &Excluder{root: NormalizeRoot(sourceDir)}
	if outputDir == "" {
		return x
	}

	if convertedDir == "" {
		convertedDir = filepath.Join(outputDir, ConvertedDirName)
	}
	x.excludedDir = SanitizePath(NormalizeRoot(outputDir), x.root)
	x.convertedDir = SanitizePath(NormalizeRoot(convertedDir), x.root)
	return x
}

// Root is the normalized source directory that finding paths are made relative to.
func (x *Excluder) Root() string {
	if x == nil {
		return ""
	}
	return x.root
}

// IsExcluded reports whether the sanitized path p lies in the output directory.
func (x *Excluder) IsExcluded(p string) bool {
	if x == nil || x.excludedDir == "" || p == "" {
		return false
	}
	return IsWithin(p, x.excludedDir) && !IsWithin(p, x.convertedDir)
}

// Excludes reports whether the first location of r lies in the output directory.
func (x *Excluder) Excludes(r *sarif.Result) bool {
	if x == nil {
		return false
	}
	return x.IsExcluded(SanitizePath(r.Path(), x.root))
}

// Filter returns payload without excluded findings. The given payload is not modified;
// opaque payloads carry no locations and are returned as is.
func (x *Excluder) Filter(payload model.Payload) model.Payload {
	p, ok := payload.(*model.FindingSetPayload)
	if !ok || p == nil || p.Log == nil || x == nil || x.excludedDir == "" {
		return payload
	}

	log := *p.Log
	log.Runs = make([]sarif.Run, len(p.Log.Runs))
	for i, run := range p.Log.Runs {
		filtered := run
		filtered.Results = make([]sarif.Result, 0, len(run.Results))
		for _, r := range run.Results {
			if !x.Excludes(&r) {
				filtered.Results = append(filtered.Results, r)
			}
		}
		log.Runs[i] = filtered
	}
	return &model.FindingSetPayload{Log: &log}
}
