package reporter

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
)

// JSON renders the whole aggregate report.
type JSON struct{}

func NewJSON() *JSON { return &JSON{} }

func (x *JSON) Name() string      { return "json" }
func (x *JSON) Extension() string { return "json" }

func (x *JSON) Report(report *model.AggregateReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal aggregate report")
	}
	return append(data, '\n'), nil
}
