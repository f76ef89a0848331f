package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/usecase"
)

func TestCompareBaseline(t *testing.T) {
	newResult := func(id string, suppressed bool) sarif.Result {
		r := sarif.Result{RuleID: id}
		r.SetProperty(model.PropFindingID, id)
		if suppressed {
			r.Suppressions = []sarif.Suppression{{Kind: sarif.SuppressionKindExternal, Status: sarif.SuppressionStatusAccepted}}
		}
		return r
	}

	log := sarif.NewLog()
	log.Runs = []sarif.Run{{Results: []sarif.Result{
		newResult("kept", false),
		newResult("added", false),
		newResult("muted", true),
	}}}
	report := &model.AggregateReport{Sarif: log}

	usecase.CompareBaselineForTest(report, []string{"kept", "gone", "also-gone"})

	results := report.Results()
	gt.V(t, results[0].BaselineState).Equal(sarif.BaselineStateUnchanged)
	gt.V(t, results[1].BaselineState).Equal(sarif.BaselineStateNew)
	gt.V(t, results[2].BaselineState).Equal(sarif.BaselineStateNew)

	// Suppressed findings are not counted as new
	gt.V(t, report.Metadata.Summary.New).Equal(1)
	gt.V(t, report.Metadata.Summary.Absent).Equal(2)
}
