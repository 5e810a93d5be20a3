package telemetry

import (
	"strings"
	"sync"
)

type Report struct {
	Level  string
	Id     string
	Params []any
}

// Recorder is an API that keeps every report in memory so that tests can
// assert on what a component reported.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
	counts  map[string]int64
}

func NewRecorder() *Recorder {
	return &Recorder{counts: map[string]int64{}}
}

func (r *Recorder) push(level, id string, params []any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, Report{Level: level, Id: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.push("broken", id, params)
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.push("warning", id, params)
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.push("debug", msg, params)
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.counts[id] = count
}

// Find returns every report of the given level whose id ends with suffix.
func (r *Recorder) Find(level, suffix string) []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var out []Report
	for _, report := range r.reports {
		if report.Level == level && strings.HasSuffix(report.Id, suffix) {
			out = append(out, report)
		}
	}
	return out
}

// Count returns the last count reported under an id ending with suffix.
func (r *Recorder) Count(suffix string) (int64, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for id, n := range r.counts {
		if strings.HasSuffix(id, suffix) {
			return n, true
		}
	}
	return 0, false
}
