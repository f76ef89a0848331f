package reporter

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
)

// SARIF renders the merged finding set as a SARIF 2.1.0 log with one run per scanner and target kind.
type SARIF struct{}

func NewSARIF() *SARIF { return &SARIF{} }

func (x *SARIF) Name() string      { return "sarif" }
func (x *SARIF) Extension() string { return "sarif" }

func (x *SARIF) Report(report *model.AggregateReport) ([]byte, error) {
	log := sarif.NewLog()
	if report.Sarif != nil {
		log.Runs = append(log.Runs, report.Sarif.Runs...)
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal SARIF log")
	}
	return append(data, '\n'), nil
}
