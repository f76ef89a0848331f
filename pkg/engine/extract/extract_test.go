package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/engine/extract"
)

func findingSet(results ...sarif.Result) *model.FindingSetPayload {
	log := sarif.NewLog()
	log.Runs = append(log.Runs, sarif.Run{
		Tool:    sarif.Tool{Driver: sarif.ToolComponent{Name: "test"}},
		Results: results,
	})
	return &model.FindingSetPayload{Log: log}
}

func TestExtractFindingSet(t *testing.T) {
	x := extract.New()

	t.Run("levels and severity properties", func(t *testing.T) {
		p := findingSet(
			sarif.Result{RuleID: "a", Level: sarif.LevelError},
			sarif.Result{RuleID: "b", Level: sarif.LevelWarning},
			sarif.Result{RuleID: "c", Level: sarif.LevelNote},
			sarif.Result{RuleID: "d", Level: sarif.LevelNone},
			sarif.Result{RuleID: "e", Level: sarif.LevelNote, Properties: sarif.Properties{"severity": "CRITICAL"}},
		)
		h, count := x.Extract(p)
		gt.V(t, h).Equal(types.SeverityHistogram{Critical: 1, High: 1, Medium: 1, Low: 1, Info: 1})
		gt.V(t, count).Equal(5)
	})

	t.Run("unknown severity is info", func(t *testing.T) {
		h, count := x.Extract(findingSet(sarif.Result{Properties: sarif.Properties{"severity": "spicy"}}))
		gt.V(t, h.Info).Equal(1)
		gt.V(t, count).Equal(1)
	})

	t.Run("scanner side suppressions are not counted", func(t *testing.T) {
		h, count := x.Extract(findingSet(
			sarif.Result{Level: sarif.LevelError, Suppressions: []sarif.Suppression{{Kind: sarif.SuppressionKindInSource}}},
			sarif.Result{Level: sarif.LevelError},
		))
		gt.V(t, h.High).Equal(1)
		gt.V(t, count).Equal(1)
	})

	t.Run("nil payloads are empty", func(t *testing.T) {
		_, count := x.Extract(nil)
		gt.V(t, count).Equal(0)
		_, count = x.Extract(&model.FindingSetPayload{})
		gt.V(t, count).Equal(0)
	})
}

func TestExtractOpaque(t *testing.T) {
	x := extract.New()

	t.Run("trust severityCounts", func(t *testing.T) {
		p := model.OpaquePayload{
			"severityCounts": map[string]any{"critical": float64(2), "LOW": float64(1)},
			"findings":       []any{map[string]any{"severity": "high"}},
		}
		h, count := x.Extract(p)
		gt.V(t, h).Equal(types.SeverityHistogram{Critical: 2, Low: 1})
		gt.V(t, count).Equal(3)
	})

	t.Run("count findings", func(t *testing.T) {
		p := model.OpaquePayload{
			"findings": []any{
				map[string]any{"severity": "high"},
				map[string]any{"severity": "MEDIUM"},
				map[string]any{"severity": "whatever"},
				map[string]any{"title": "no severity"},
			},
		}
		h, count := x.Extract(p)
		gt.V(t, h).Equal(types.SeverityHistogram{High: 1, Medium: 1, Info: 2})
		gt.V(t, count).Equal(4)
	})

	t.Run("typed containers", func(t *testing.T) {
		testCases := map[string]struct {
			payload model.OpaquePayload
			want    types.SeverityHistogram
			count   int
		}{
			"findings as []map[string]any": {
				payload: model.OpaquePayload{
					"findings": []map[string]any{{"severity": "high"}, {"severity": "low"}},
				},
				want:  types.SeverityHistogram{High: 1, Low: 1},
				count: 2,
			},
			"findings as []OpaquePayload": {
				payload: model.OpaquePayload{
					"findings": []model.OpaquePayload{{"severity": "critical"}, {"severity": "critical"}},
				},
				want:  types.SeverityHistogram{Critical: 2},
				count: 2,
			},
			"findings as []map[string]string": {
				payload: model.OpaquePayload{
					"findings": []map[string]string{{"severity": "medium"}},
				},
				want:  types.SeverityHistogram{Medium: 1},
				count: 1,
			},
			"severityCounts as map[string]float64": {
				payload: model.OpaquePayload{
					"severityCounts": map[string]float64{"high": 2},
				},
				want:  types.SeverityHistogram{High: 2},
				count: 2,
			},
			"severityCounts as map[string]int64": {
				payload: model.OpaquePayload{
					"severityCounts": map[string]int64{"medium": 3, "low": 0},
				},
				want:  types.SeverityHistogram{Medium: 3},
				count: 3,
			},
			"severityCounts as json.Number": {
				payload: model.OpaquePayload{
					"severityCounts": map[string]any{"low": json.Number("4")},
				},
				want:  types.SeverityHistogram{Low: 4},
				count: 4,
			},
		}

		for name, tc := range testCases {
			t.Run(name, func(t *testing.T) {
				h, count := x.Extract(tc.payload)
				gt.V(t, h).Equal(tc.want)
				gt.V(t, count).Equal(tc.count)
			})
		}
	})

	t.Run("unrecognized shape is zero", func(t *testing.T) {
		h, count := x.Extract(model.OpaquePayload{"summary": "ok"})
		gt.V(t, h).Equal(types.SeverityHistogram{})
		gt.V(t, count).Equal(0)
	})
}

func TestSeverityTableOverride(t *testing.T) {
	x := extract.New(extract.WithSeverity("error", types.SeverityCritical))
	gt.V(t, x.Lookup("ERROR")).Equal(types.SeverityCritical)
	gt.V(t, extract.New().Lookup("error")).Equal(types.SeverityHigh)
}
