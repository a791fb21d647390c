package models

// TrackedLine is the registry-owned specification of one signal line. The
// geometry copy in Line is authoritative for evaluation; trailing moves are
// pushed back to the chart host. IsTriggered only moves false to true within
// a spec's lifetime; a fresh upsert rebuilds the spec.
type TrackedLine struct {
	Line        TrendLine
	OrderType   OrderType
	Comment     string
	IsTrail     bool
	IsTriggered bool
}
