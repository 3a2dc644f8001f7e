package monitor

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"procwatch/export"
	"procwatch/models"
)

// Directory finds live processes and opens refreshable handles to them.
type Directory interface {
	FindByPid(pid int32) (models.ProcessEntry, error)
	FindByName(name string) ([]models.ProcessEntry, error)
	Open(pid int32) (Sampler, error)
}

// MonitoringSession owns the ordered set of monitored processes, the
// sampling scheduler, and the search state. Every mutating action is gated
// on whether monitoring is active; the gates are computed from current state
// on demand, never cached.
//
// The session mutex serializes scheduler fires and user actions onto one
// logical execution context, so all mutation is totally ordered. Stopping
// monitoring suppresses the next fire; a sampling cycle already underway
// finishes.
type MonitoringSession struct {
	mu sync.Mutex

	dir Directory
	fs  export.FileSystem

	interval time.Duration
	active   bool

	processes []*MonitoredProcess

	searchOpen   bool
	searchResult []models.ProcessEntry
	selected     int

	lastErr string

	sched *scheduler
}

// NewSession creates an idle session backed by the given process directory.
func NewSession(dir Directory) *MonitoringSession {
	return &MonitoringSession{
		dir:      dir,
		fs:       export.OSFileSystem{},
		selected: -1,
	}
}

// SetInterval sets the sampling period. It takes effect on the next
// activation; a period of zero or less keeps monitoring from starting.
func (s *MonitoringSession) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = d
}

func (s *MonitoringSession) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

func (s *MonitoringSession) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// LastError is the message of the last surfaced session-level failure.
func (s *MonitoringSession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Processes returns the monitored set in insertion order.
func (s *MonitoringSession) Processes() []*MonitoredProcess {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*MonitoredProcess, len(s.processes))
	copy(out, s.processes)
	return out
}

// SearchResults returns the current search hits.
func (s *MonitoringSession) SearchResults() []models.ProcessEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ProcessEntry, len(s.searchResult))
	copy(out, s.searchResult)
	return out
}

func (s *MonitoringSession) SelectedIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *MonitoringSession) SearchOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchOpen
}

// Gates. Each public gate recomputes from current state under the lock.

func (s *MonitoringSession) CanSearch(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSearch(query)
}

func (s *MonitoringSession) CanOpenSearch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canOpenSearch()
}

func (s *MonitoringSession) CanAddProcess() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canAddProcess()
}

func (s *MonitoringSession) CanRemoveProcess() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canRemoveProcess()
}

func (s *MonitoringSession) CanToggleMonitoring() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canToggleMonitoring()
}

// CanExport requires an inactive session and at least one recorded sample.
func (s *MonitoringSession) CanExport(p *MonitoredProcess) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canExport(p)
}

func (s *MonitoringSession) canSearch(query string) bool {
	return !s.active && strings.TrimSpace(query) != ""
}

func (s *MonitoringSession) canOpenSearch() bool {
	return !s.active && !s.searchOpen
}

func (s *MonitoringSession) canAddProcess() bool {
	if s.active || s.selected < 0 || s.selected >= len(s.searchResult) {
		return false
	}
	return s.findByPid(s.searchResult[s.selected].Pid) == nil
}

func (s *MonitoringSession) canRemoveProcess() bool {
	return !s.active
}

func (s *MonitoringSession) canToggleMonitoring() bool {
	return s.active || (s.interval > 0 && len(s.processes) > 0)
}

func (s *MonitoringSession) canExport(p *MonitoredProcess) bool {
	return !s.active && p != nil && p.SampleCount() > 0
}

// OpenSearch opens the search popup and resets the previous result.
func (s *MonitoringSession) OpenSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canOpenSearch() {
		return
	}
	s.searchOpen = true
	s.searchResult = nil
	s.selected = -1
}

func (s *MonitoringSession) CloseSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchOpen = false
}

// Search looks up live processes. A query that parses as an integer is
// treated as a process id and yields at most one hit; anything else matches
// by name. Lookup failures collapse to an empty result, never to an error.
func (s *MonitoringSession) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canSearch(query) {
		return
	}

	query = strings.TrimSpace(query)

	var result []models.ProcessEntry
	if pid, err := strconv.Atoi(query); err == nil {
		if entry, err := s.dir.FindByPid(int32(pid)); err == nil {
			result = []models.ProcessEntry{entry}
		}
	} else {
		if entries, err := s.dir.FindByName(query); err == nil {
			result = entries
		}
	}

	s.searchResult = result
	if len(result) > 0 {
		s.selected = 0
	} else {
		s.selected = -1
	}
}

// Select moves the search selection; out-of-range indexes are ignored.
func (s *MonitoringSession) Select(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i >= 0 && i < len(s.searchResult) {
		s.selected = i
	}
}

// AddSelected wraps the selected search hit into a MonitoredProcess, appends
// it to the monitored set, and closes the search popup. It is silently
// rejected when the gate is false; the returned process is nil in that case.
func (s *MonitoringSession) AddSelected() *MonitoredProcess {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canAddProcess() {
		return nil
	}

	entry := s.searchResult[s.selected]
	sampler, err := s.dir.Open(entry.Pid)
	if err != nil {
		s.lastErr = err.Error()
		return nil
	}

	p := NewMonitoredProcess(entry, sampler)
	s.processes = append(s.processes, p)
	s.searchOpen = false
	return p
}

// Remove drops a process from the monitored set. Rejected while monitoring
// is active; sampling failures never remove a process, only this does.
func (s *MonitoringSession) Remove(p *MonitoredProcess) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canRemoveProcess() {
		return
	}
	for i, q := range s.processes {
		if q == p {
			s.processes = append(s.processes[:i], s.processes[i+1:]...)
			return
		}
	}
}

// ToggleMonitoring flips the active flag. Activation starts the scheduler at
// the configured interval; deactivation stops future fires.
func (s *MonitoringSession) ToggleMonitoring() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canToggleMonitoring() {
		return
	}

	if s.active {
		s.active = false
		s.sched.stop()
		s.sched = nil
		return
	}

	s.active = true
	s.sched = startScheduler(s.interval, s.runCycle)
}

// runCycle samples every monitored process in insertion order. One process's
// failure never prevents sampling the rest. A fire that lands after
// deactivation is a no-op.
func (s *MonitoringSession) runCycle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return
	}
	for _, p := range s.processes {
		p.Sample()
	}
}

// Export appends p's recorded history to destPath, writing the fixed header
// only when the destination is newly created. Samples already exported by a
// previous call are skipped, so repeat exports append only new lines. Any
// failure is recorded as the session error message and returned; it never
// removes the process or affects its series.
func (s *MonitoringSession) Export(p *MonitoredProcess, destPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.canExport(p) {
		return nil
	}

	p.mu.Lock()
	from := p.exported
	h := export.History{
		Timestamps: p.timestamps[from:],
		Handles:    p.handles.values[from:],
		Memory:     p.memory.values[from:],
		Threads:    p.threads.values[from:],
	}
	total := len(p.timestamps)
	p.mu.Unlock()

	if err := export.WriteHistory(s.fs, destPath, h); err != nil {
		s.lastErr = err.Error()
		return err
	}

	p.mu.Lock()
	p.exported = total
	p.mu.Unlock()
	return nil
}

func (s *MonitoringSession) findByPid(pid int32) *MonitoredProcess {
	for _, p := range s.processes {
		if p.pid == pid {
			return p
		}
	}
	return nil
}
