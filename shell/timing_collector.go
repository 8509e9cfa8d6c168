package shell

import "time"

// TimingCollector collects timing measurements during benchmark operations
// for detailed performance analysis.
type TimingCollector struct {
	LoadTime   *time.Duration
	DecideTime *time.Duration
	WriteTime  *time.Duration
}

// NewTimingCollector creates a new TimingCollector with
// pointers to duration variables that will accumulate timing measurements.
func NewTimingCollector(loadTime, decideTime, writeTime *time.Duration) TimingCollector {
	return TimingCollector{
		LoadTime:   loadTime,
		DecideTime: decideTime,
		WriteTime:  writeTime,
	}
}

// RecordLoad records the time spent reading current state from the database.
func (t TimingCollector) RecordLoad(duration time.Duration) {
	if t.LoadTime != nil {
		*t.LoadTime += duration
	}
}

// RecordDecide records the time spent in pure decision logic.
func (t TimingCollector) RecordDecide(duration time.Duration) {
	if t.DecideTime != nil {
		*t.DecideTime += duration
	}
}

// RecordWrite records the time spent executing the guarded write.
func (t TimingCollector) RecordWrite(duration time.Duration) {
	if t.WriteTime != nil {
		*t.WriteTime += duration
	}
}
