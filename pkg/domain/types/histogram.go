package types

// SeverityHistogram counts findings per severity bucket. The zero value is an empty histogram.
type SeverityHistogram struct {
	Critical int `json:"critical" firestore:"critical" bigquery:"critical"`
	High     int `json:"high" firestore:"high" bigquery:"high"`
	Medium   int `json:"medium" firestore:"medium" bigquery:"medium"`
	Low      int `json:"low" firestore:"low" bigquery:"low"`
	Info     int `json:"info" firestore:"info" bigquery:"info"`
}

func (x *SeverityHistogram) bucket(sev Severity) *int {
	switch sev {
	case SeverityCritical:
		return &x.Critical
	case SeverityHigh:
		return &x.High
	case SeverityMedium:
		return &x.Medium
	case SeverityLow:
		return &x.Low
	default:
		return &x.Info
	}
}

// Add adds n (possibly negative) to the bucket of sev.
func (x *SeverityHistogram) Add(sev Severity, n int) {
	*x.bucket(sev) += n
}

func (x SeverityHistogram) Get(sev Severity) int {
	return *x.bucket(sev)
}

func (x SeverityHistogram) Total() int {
	return x.Critical + x.High + x.Medium + x.Low + x.Info
}

func (x SeverityHistogram) Plus(y SeverityHistogram) SeverityHistogram {
	return SeverityHistogram{
		Critical: x.Critical + y.Critical,
		High:     x.High + y.High,
		Medium:   x.Medium + y.Medium,
		Low:      x.Low + y.Low,
		Info:     x.Info + y.Info,
	}
}

func (x SeverityHistogram) Minus(y SeverityHistogram) SeverityHistogram {
	return SeverityHistogram{
		Critical: x.Critical - y.Critical,
		High:     x.High - y.High,
		Medium:   x.Medium - y.Medium,
		Low:      x.Low - y.Low,
		Info:     x.Info - y.Info,
	}
}
