package monitor

import (
	"sync"
	"time"

	"procwatch/models"
)

// Sampler is a refreshable view of one live OS process. Stats either returns
// a complete snapshot or an error, never a partial one.
type Sampler interface {
	Stats() (models.ProcessStats, error)
}

// MonitoredProcess tracks one process across sampling cycles. The three
// metric series and the timestamp sequence grow in lockstep: a successful
// sample appends to all four, a failed one appends to none.
type MonitoredProcess struct {
	pid     int32
	name    string
	started time.Time
	sampler Sampler

	mu          sync.Mutex
	handles     ResourceSeries
	memory      ResourceSeries
	threads     ResourceSeries
	timestamps  []time.Time
	runningTime time.Duration

	sampleFailed bool
	sampleErr    string

	// samples already written out by a previous export
	exported int
}

// NewMonitoredProcess wraps a directory entry. The display name is captured
// here once and never refreshed.
func NewMonitoredProcess(entry models.ProcessEntry, sampler Sampler) *MonitoredProcess {
	return &MonitoredProcess{
		pid:     entry.Pid,
		name:    entry.Name,
		started: entry.StartTime,
		sampler: sampler,
	}
}

// Sample runs one sampling attempt. The error indicator always reflects the
// outcome of the most recent attempt: a failure records its message, a later
// success clears it again.
func (p *MonitoredProcess) Sample() {
	stats, err := p.sampler.Stats()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.sampleFailed = true
		p.sampleErr = err.Error()
		return
	}

	p.sampleFailed = false
	p.sampleErr = ""

	now := time.Now()
	p.timestamps = append(p.timestamps, now)
	p.handles.Append(stats.HandleCount)
	p.memory.Append(stats.MemoryBytes)
	p.threads.Append(stats.ThreadCount)
	p.runningTime = now.Sub(p.started)
}

func (p *MonitoredProcess) Pid() int32           { return p.pid }
func (p *MonitoredProcess) Name() string         { return p.name }
func (p *MonitoredProcess) StartTime() time.Time { return p.started }

// Handles returns a copy of the open-handle series.
func (p *MonitoredProcess) Handles() ResourceSeries {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copySeries(p.handles)
}

// Memory returns a copy of the resident-memory series.
func (p *MonitoredProcess) Memory() ResourceSeries {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copySeries(p.memory)
}

// Threads returns a copy of the thread-count series.
func (p *MonitoredProcess) Threads() ResourceSeries {
	p.mu.Lock()
	defer p.mu.Unlock()
	return copySeries(p.threads)
}

// Timestamps returns a copy of the per-sample timestamps.
func (p *MonitoredProcess) Timestamps() []time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]time.Time, len(p.timestamps))
	copy(out, p.timestamps)
	return out
}

// SampleCount is the number of recorded samples.
func (p *MonitoredProcess) SampleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timestamps)
}

// RunningTime is now minus process start time as of the last successful sample.
func (p *MonitoredProcess) RunningTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningTime
}

// SampleError reports whether the most recent sampling attempt failed and
// with which message.
func (p *MonitoredProcess) SampleError() (bool, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sampleFailed, p.sampleErr
}

func copySeries(s ResourceSeries) ResourceSeries {
	values := make([]int64, len(s.values))
	copy(values, s.values)
	s.values = values
	return s
}
