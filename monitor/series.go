package monitor

// Trend is the direction of the latest sample relative to the one before it.
type Trend int

const (
	TrendStable Trend = iota
	TrendIncreasing
	TrendDecreasing
)

func (t Trend) String() string {
	switch t {
	case TrendIncreasing:
		return "increasing"
	case TrendDecreasing:
		return "decreasing"
	default:
		return "stable"
	}
}

// ResourceSeries keeps the full append-only history of one metric alongside
// the latest value, the running maximum, and the current trend.
type ResourceSeries struct {
	values  []int64
	latest  int64
	maximum int64
	trend   Trend
}

// Append records a new sample. The trend compares the incoming value against
// the latest value before it is overwritten; the very first append is
// compared against the zero baseline.
func (s *ResourceSeries) Append(value int64) {
	switch {
	case value == s.latest:
		s.trend = TrendStable
	case value > s.latest:
		s.trend = TrendIncreasing
	default:
		s.trend = TrendDecreasing
	}
	s.latest = value
	if value > s.maximum {
		s.maximum = value
	}
	s.values = append(s.values, value)
}

// Values returns the recorded samples in chronological order.
func (s *ResourceSeries) Values() []int64 {
	out := make([]int64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *ResourceSeries) Latest() int64  { return s.latest }
func (s *ResourceSeries) Maximum() int64 { return s.maximum }
func (s *ResourceSeries) Trend() Trend   { return s.trend }
func (s *ResourceSeries) Len() int       { return len(s.values) }
