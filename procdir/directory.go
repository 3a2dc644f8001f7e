package procdir

import (
	"fmt"
	"strings"
	"time"

	"procwatch/models"
	"procwatch/monitor"

	"github.com/shirou/gopsutil/v3/process"
)

// Directory enumerates live OS processes via gopsutil.
type Directory struct {
	dockerLookup bool
}

// New builds a directory. Docker container-name lookup is enabled only when
// requested and the docker socket is actually present.
func New(dockerLookup bool) *Directory {
	c := DetectCapabilities()
	return &Directory{dockerLookup: dockerLookup && c.HasDockerSocket}
}

// FindByPid returns the single live process with the given id.
func (d *Directory) FindByPid(pid int32) (models.ProcessEntry, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return models.ProcessEntry{}, fmt.Errorf("process %d not found: %w", pid, err)
	}

	name, err := p.Name()
	if err != nil {
		return models.ProcessEntry{}, fmt.Errorf("process %d inaccessible: %w", pid, err)
	}

	return models.ProcessEntry{
		Pid:       pid,
		Name:      name,
		StartTime: startTime(p),
	}, nil
}

// FindByName returns every live process whose name contains the query,
// case-insensitive. With docker lookup enabled, running container names
// match too, resolved to the container's init process.
func (d *Directory) FindByName(query string) ([]models.ProcessEntry, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	q := strings.ToLower(query)
	var entries []models.ProcessEntry

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if !strings.Contains(strings.ToLower(name), q) {
			continue
		}

		entries = append(entries, models.ProcessEntry{
			Pid:       p.Pid,
			Name:      name,
			StartTime: startTime(p),
		})
	}

	if d.dockerLookup {
		entries = append(entries, d.findContainers(q)...)
	}

	return entries, nil
}

// Open returns a refreshable handle for one process.
func (d *Directory) Open(pid int32) (monitor.Sampler, error) {
	p, err := process.NewProcess(pid)
	if err != nil {
		return nil, fmt.Errorf("process %d not found: %w", pid, err)
	}
	return &Handle{proc: p}, nil
}

func startTime(p *process.Process) time.Time {
	if created, err := p.CreateTime(); err == nil && created > 0 {
		return time.UnixMilli(created)
	}
	return time.Now()
}

// Handle reads live resource counters for a single process.
type Handle struct {
	proc *process.Process
}

// Stats takes a fresh snapshot. Any counter that cannot be read fails the
// whole snapshot, so callers never see a partial one.
func (h *Handle) Stats() (models.ProcessStats, error) {
	fds, err := h.proc.NumFDs()
	if err != nil {
		return models.ProcessStats{}, fmt.Errorf("handle count for pid %d: %w", h.proc.Pid, err)
	}

	mem, err := h.proc.MemoryInfo()
	if err != nil {
		return models.ProcessStats{}, fmt.Errorf("memory info for pid %d: %w", h.proc.Pid, err)
	}

	threads, err := h.proc.NumThreads()
	if err != nil {
		return models.ProcessStats{}, fmt.Errorf("thread count for pid %d: %w", h.proc.Pid, err)
	}

	return models.ProcessStats{
		HandleCount: int64(fds),
		MemoryBytes: int64(mem.RSS),
		ThreadCount: int64(threads),
	}, nil
}
