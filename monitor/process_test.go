package monitor

import (
	"errors"
	"testing"
	"time"

	"procwatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSampler struct {
	stats models.ProcessStats
	err   error
	calls int
}

func (f *fakeSampler) Stats() (models.ProcessStats, error) {
	f.calls++
	if f.err != nil {
		return models.ProcessStats{}, f.err
	}
	return f.stats, nil
}

func testEntry(pid int32, name string) models.ProcessEntry {
	return models.ProcessEntry{
		Pid:       pid,
		Name:      name,
		StartTime: time.Now().Add(-time.Minute),
	}
}

func TestSampleAppendsAllFourSequences(t *testing.T) {
	sampler := &fakeSampler{stats: models.ProcessStats{HandleCount: 12, MemoryBytes: 4096, ThreadCount: 3}}
	p := NewMonitoredProcess(testEntry(42, "worker"), sampler)

	for i := 0; i < 3; i++ {
		p.Sample()
	}

	require.Equal(t, 3, p.SampleCount())
	assert.Equal(t, 3, p.Handles().Len())
	assert.Equal(t, 3, p.Memory().Len())
	assert.Equal(t, 3, p.Threads().Len())
	assert.Len(t, p.Timestamps(), 3)

	assert.Equal(t, int64(12), p.Handles().Latest())
	assert.Equal(t, int64(4096), p.Memory().Latest())
	assert.Equal(t, int64(3), p.Threads().Latest())

	assert.Greater(t, p.RunningTime(), time.Duration(0))

	failed, msg := p.SampleError()
	assert.False(t, failed)
	assert.Empty(t, msg)
}

func TestFailedSampleAppendsNothing(t *testing.T) {
	sampler := &fakeSampler{stats: models.ProcessStats{HandleCount: 1, MemoryBytes: 1, ThreadCount: 1}}
	p := NewMonitoredProcess(testEntry(42, "worker"), sampler)

	p.Sample()
	require.Equal(t, 1, p.SampleCount())

	sampler.err = errors.New("process has exited")
	p.Sample()

	assert.Equal(t, 1, p.SampleCount(), "failed sample must not grow the timestamp sequence")
	assert.Equal(t, 1, p.Handles().Len())
	assert.Equal(t, 1, p.Memory().Len())
	assert.Equal(t, 1, p.Threads().Len())

	failed, msg := p.SampleError()
	assert.True(t, failed)
	assert.Equal(t, "process has exited", msg)
}

func TestSampleErrorReflectsLastAttemptOnly(t *testing.T) {
	sampler := &fakeSampler{
		stats: models.ProcessStats{HandleCount: 5, MemoryBytes: 100, ThreadCount: 2},
		err:   errors.New("access denied"),
	}
	p := NewMonitoredProcess(testEntry(7, "svc"), sampler)

	p.Sample()
	failed, msg := p.SampleError()
	require.True(t, failed)
	require.Equal(t, "access denied", msg)

	sampler.err = nil
	p.Sample()

	failed, msg = p.SampleError()
	assert.False(t, failed, "a later success overwrites the failure indicator")
	assert.Empty(t, msg)
	assert.Equal(t, 1, p.SampleCount())
}

func TestIdentityCapturedAtAddTime(t *testing.T) {
	entry := testEntry(1234, "chrome.exe")
	p := NewMonitoredProcess(entry, &fakeSampler{})

	assert.Equal(t, int32(1234), p.Pid())
	assert.Equal(t, "chrome.exe", p.Name())
	assert.Equal(t, entry.StartTime, p.StartTime())
}
