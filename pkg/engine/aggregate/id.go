package aggregate

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

var findingNamespace = uuid.MustParse("8f5b0c1e-2d7a-5e43-9b61-4c0f3a9d7e12")

// FindingID derives a stable identifier from rule, file and line range. The same
// inputs always produce the same ID regardless of scan order.
func FindingID(ruleID, file string, startLine, endLine int) types.FindingID {
	key := strings.Join([]string{
		ruleID,
		file,
		strconv.Itoa(startLine),
		strconv.Itoa(endLine),
	}, "|")
	return types.FindingID(uuid.NewSHA1(findingNamespace, []byte(key)).String())
}

func findingIDOf(r *sarif.Result) types.FindingID {
	start, end := r.Lines()
	return FindingID(r.RuleID, r.Path(), start, end)
}
