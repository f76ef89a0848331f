package types

type (
	GoogleProjectID string
	BQDatasetID     string
	BQTableID       string
)

func (x GoogleProjectID) String() string { return string(x) }
func (x BQDatasetID) String() string     { return string(x) }
func (x BQTableID) String() string       { return string(x) }

// DefaultBQTableID is the table of scan summaries.
const DefaultBQTableID BQTableID = "scans"
